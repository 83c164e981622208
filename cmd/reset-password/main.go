package main

import (
	"flag"
	"log"

	"maitri-medico/internal/model"
	"maitri-medico/pkg/config"
	"maitri-medico/pkg/database"
	"maitri-medico/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Resets a back-office account's password. Defaults to the seeded super-admin.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if _, err := logger.Init(cfg.Logger); err != nil {
		log.Fatalf("init logger: %v", err)
	}

	email := flag.String("email", cfg.Seed.SuperAdminEmail, "account email")
	newPassword := flag.String("password", cfg.Seed.SuperAdminPassword, "new password")
	flag.Parse()

	db, err := database.ConnectDB(cfg.Database)
	if err != nil {
		zap.L().Fatal("database", zap.Error(err))
	}

	var user model.User
	if err := db.Where("email = ?", *email).First(&user).Error; err != nil {
		zap.L().Fatal("user not found", zap.String("email", *email), zap.Error(err))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*newPassword), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Fatal("hash password", zap.Error(err))
	}

	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		zap.L().Fatal("update password", zap.Error(err))
	}

	zap.L().Info("password reset", zap.String("email", *email))
}
