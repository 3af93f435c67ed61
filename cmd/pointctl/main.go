// cmd/pointctl/main.go
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/onerilhan/go-point-api/internal/auth"
	"github.com/onerilhan/go-point-api/internal/config"
	"github.com/onerilhan/go-point-api/internal/db"
)

func main() {
	// .env dosyasını yükle
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.LoadConfig()

	switch command := os.Args[1]; command {
	case "schema":
		handleSchema(cfg)
	case "token":
		handleToken(cfg, os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`
Point API CLI Tool

USAGE:
    go run ./cmd/pointctl <command> [arguments]

COMMANDS:
    schema                      Create point tables in PostgreSQL (idempotent)
    token <user_id> [role] [ttl] Issue a JWT for the /point endpoints (role: user|admin, ttl: 24h)

EXAMPLES:
    go run ./cmd/pointctl schema
    go run ./cmd/pointctl token 1
    go run ./cmd/pointctl token 99 admin 1h
`)
}

func handleSchema(cfg *config.Config) {
	database, err := db.Connect(cfg.GetDSN(), db.DefaultPoolConfig())
	if err != nil {
		fmt.Printf("Database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.EnsureSchema(database); err != nil {
		fmt.Printf("Schema creation failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Schema is up to date")
}

// tokenRequest token komutunun argümanları
type tokenRequest struct {
	UserID int64
	Role   string
	TTL    time.Duration
}

// parseTokenArgs <user_id> [role] [ttl] argümanlarını çözer
func parseTokenArgs(args []string) (tokenRequest, error) {
	req := tokenRequest{Role: "user", TTL: 24 * time.Hour}

	if len(args) < 1 {
		return req, fmt.Errorf("user_id required")
	}

	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || userID <= 0 {
		return req, fmt.Errorf("invalid user_id: %s", args[0])
	}
	req.UserID = userID

	if len(args) > 1 {
		switch args[1] {
		case "user", auth.RoleAdmin:
			req.Role = args[1]
		default:
			return req, fmt.Errorf("invalid role: %s (user|%s)", args[1], auth.RoleAdmin)
		}
	}

	if len(args) > 2 {
		ttl, err := time.ParseDuration(args[2])
		if err != nil || ttl <= 0 {
			return req, fmt.Errorf("invalid ttl: %s", args[2])
		}
		req.TTL = ttl
	}

	return req, nil
}

func handleToken(cfg *config.Config, args []string) {
	req, err := parseTokenArgs(args)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, req.TTL)
	token, err := tokens.GenerateToken(req.UserID, req.Role)
	if err != nil {
		fmt.Printf("Token generation failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
