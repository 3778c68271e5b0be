package main

import "github.com/frahmantamala/rbac-dashboard/cmd"

func main() {
	cmd.Execute()
}
