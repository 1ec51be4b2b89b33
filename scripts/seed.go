//go:build ignore

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/hugh/go-desk/internal/auth"
	"github.com/hugh/go-desk/internal/blocklist"
	"github.com/hugh/go-desk/internal/company"
	"github.com/hugh/go-desk/internal/database"
	"github.com/hugh/go-desk/internal/database/models"
	"github.com/hugh/go-desk/pkg/config"
	"github.com/hugh/go-desk/pkg/util"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	name := os.Getenv("ADMIN_NAME")
	slug := os.Getenv("ADMIN_COMPANY_SLUG")

	if email == "" {
		email = "admin@godesk.local"
	}
	if password == "" {
		password = "admin123!"
	}
	if name == "" {
		name = "Admin User"
	}
	if slug == "" {
		slug = "acme"
	}

	ctx := context.Background()

	lists := blocklist.New(nil, logger)
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry())
	authService := auth.NewService(db, jwtService, lists, nil)
	companyService := company.NewService(db, lists)

	var existing models.User
	if err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		fmt.Printf("Admin user already exists: %s\n", email)
		return
	}

	if err := authService.Register(ctx, auth.RegisterInput{
		Name:     name,
		Email:    email,
		Password: password,
	}); err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	}

	resp, err := authService.Login(ctx, auth.LoginInput{Email: email, Password: password})
	if err != nil {
		log.Fatalf("failed to log in admin user: %v", err)
	}

	if err := companyService.Create(ctx, resp.User.ID, company.CreateInput{
		Name: "Acme Desk",
		Slug: slug,
	}); err != nil {
		log.Fatalf("failed to create company: %v", err)
	}

	fmt.Printf("Admin user created successfully!\n")
	fmt.Printf("Email: %s\n", email)
	fmt.Printf("Company: %s\n", slug)
	fmt.Printf("Token: %s\n", resp.Token)
}
