package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/rbac-dashboard/internal/auth"
	activitylogDatamodel "github.com/frahmantamala/rbac-dashboard/internal/core/datamodel/activitylog"
	contentDatamodel "github.com/frahmantamala/rbac-dashboard/internal/core/datamodel/content"
	userDatamodel "github.com/frahmantamala/rbac-dashboard/internal/core/datamodel/user"
	"github.com/frahmantamala/rbac-dashboard/internal/core/rbac"
	"github.com/spf13/cobra"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	clearData    bool
	seedPassword string
)

type seedAccount struct {
	Username string
	Email    string
	Role     rbac.Role
}

var seedAccounts = []seedAccount{
	{"admin", "admin@example.com", rbac.RoleAdmin},
	{"editor", "editor@example.com", rbac.RoleEditor},
	{"viewer", "viewer@example.com", rbac.RoleViewer},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with one account per role and a sample post for development and testing purposes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		cfg, err := loadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		sqlDB, gormDB, err := initDB(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to init db: %w", err)
		}
		defer sqlDB.Close()

		return seed(ctx, gormDB.WithContext(ctx), cfg.Security.BCryptCost)
	},
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
	seedCmd.Flags().StringVar(&seedPassword, "password", "password123", "Password given to every seeded account")
}

func seed(ctx context.Context, db *gorm.DB, bcryptCost int) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if clearData {
			for _, model := range []any{&activitylogDatamodel.ActivityLog{}, &contentDatamodel.Content{}, &userDatamodel.User{}} {
				if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
					return fmt.Errorf("failed to clear %T: %w", model, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		hash, err := auth.HashPassword(seedPassword, bcryptCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		ids := make(map[rbac.Role]int64, len(seedAccounts))
		for _, a := range seedAccounts {
			record := userDatamodel.User{
				Username:     a.Username,
				Email:        a.Email,
				PasswordHash: hash,
				Role:         string(a.Role),
				IsActive:     true,
			}
			result := tx.Where(userDatamodel.User{Email: a.Email}).FirstOrCreate(&record)
			if result.Error != nil {
				return fmt.Errorf("failed to seed %s: %w", a.Email, result.Error)
			}
			ids[a.Role] = record.ID
			if result.RowsAffected > 0 {
				fmt.Printf("Seeded %s user: %s\n", a.Role, a.Email)
			} else {
				fmt.Printf("%s user already exists: %s\n", a.Role, a.Email)
			}
		}

		post := contentDatamodel.Content{
			Title:    "Welcome to the dashboard",
			Body:     "Editors can publish posts and comments. Viewers can read what is published.",
			Type:     "post",
			Status:   "published",
			Tags:     datatypes.JSON(`["welcome","getting-started"]`),
			AuthorID: ids[rbac.RoleEditor],
		}
		result := tx.Where(contentDatamodel.Content{Title: post.Title, AuthorID: post.AuthorID}).FirstOrCreate(&post)
		if result.Error != nil {
			return fmt.Errorf("failed to seed sample post: %w", result.Error)
		}
		if result.RowsAffected > 0 {
			fmt.Println("Seeded sample post:", post.Title)
		}

		fmt.Println("Seeding complete")
		return nil
	})
}
