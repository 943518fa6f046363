package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/enginequip/quotation-backend/pkg/config"
	"github.com/enginequip/quotation-backend/pkg/db"
	"github.com/enginequip/quotation-backend/pkg/db/models"
	"github.com/enginequip/quotation-backend/pkg/enums"
	"github.com/enginequip/quotation-backend/pkg/logger"
	"github.com/enginequip/quotation-backend/pkg/security"
)

// Seeds the starter accounts. Catalog rows ship with the migrations; user
// rows cannot, because Argon2id hashes are salted per run.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	adminPassword := flag.String("admin-password", "admin123", "password for the seeded admin account")
	staffPassword := flag.String("staff-password", "staff123", "password for the seeded staff account")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	var count int64
	if err := dbClient.DB().WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		logg.Error(ctx, "failed to count users", err)
		os.Exit(1)
	}
	if count > 0 {
		logg.Info(ctx, "users already seeded, nothing to do")
		return
	}

	accounts := []struct {
		username string
		password string
		role     enums.Role
	}{
		{username: "admin", password: *adminPassword, role: enums.RoleAdmin},
		{username: "staff1", password: *staffPassword, role: enums.RoleStaff},
	}

	for _, account := range accounts {
		hash, err := security.HashPassword(account.password, cfg.Password)
		if err != nil {
			logg.Error(ctx, fmt.Sprintf("failed to hash password for %s", account.username), err)
			os.Exit(1)
		}

		user := models.User{
			Username:     account.username,
			PasswordHash: hash,
			Role:         account.role,
		}
		if err := dbClient.DB().WithContext(ctx).Create(&user).Error; err != nil {
			logg.Error(ctx, fmt.Sprintf("failed to create user %s", account.username), err)
			os.Exit(1)
		}

		logg.Info(logg.WithFields(ctx, map[string]any{
			"username": account.username,
			"role":     string(account.role),
		}), "seeded user")
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
