// Command seed creates the initial admin account so a fresh deployment
// can log in. It is idempotent: an existing admin email is left alone.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	log "github.com/sirupsen/logrus"

	"github.com/elouannasse/fleet-management/internal/auth"
	"github.com/elouannasse/fleet-management/internal/config"
	"github.com/elouannasse/fleet-management/internal/db"
	"github.com/elouannasse/fleet-management/internal/models"
)

func main() {
	cfg := config.Load()

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@fleet.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("ADMIN_PASSWORD is required")
	}

	client, err := db.ConnectMongo(cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	stores := db.NewStores(client.Database(cfg.Database))

	if _, err := stores.Users.FindUserByEmail(ctx, email); err == nil {
		log.WithField("email", email).Info("admin already exists, nothing to do")
		return
	} else if !errors.Is(err, db.ErrNotFound) {
		log.WithError(err).Fatal("lookup failed")
	}

	authService := auth.NewService(cfg.JWTSecret, cfg.JWTExpiry)
	hash, err := authService.HashPassword(password)
	if err != nil {
		log.WithError(err).Fatal("hashing password failed")
	}

	id, err := stores.Users.InsertUser(ctx, models.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	})
	if err != nil {
		log.WithError(err).Fatal("creating admin failed")
	}

	log.WithFields(log.Fields{"email": email, "id": id.Hex()}).Info("admin created")
}
