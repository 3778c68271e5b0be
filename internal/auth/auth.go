package auth

import (
	"time"

	"github.com/frahmantamala/rbac-dashboard/internal/user"
	"golang.org/x/crypto/bcrypt"
)

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	User      *user.User `json:"user"`
}

type RegisterResponse struct {
	Message string     `json:"message"`
	User    *user.User `json:"user"`
}

type LoginResponse struct {
	Message string `json:"message"`
	*LoginResult
}

type ProfileResponse struct {
	User *user.User `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
