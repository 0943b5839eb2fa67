package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/pkg/jwt"
)

// Issues a staff token pair signed with the configured secrets, for local testing
func main() {
	staffIDFlag := flag.String("staff-id", "", "staff UUID (random when empty)")
	businessIDFlag := flag.String("business-id", "", "business UUID (required)")
	rolesFlag := flag.String("roles", jwt.RoleFrontDesk, "comma-separated roles: front_desk, manager, admin")
	expiry := flag.Duration("expiry", time.Hour, "access token lifetime")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	accessSecret := os.Getenv("JWT_SECRET")
	refreshSecret := os.Getenv("JWT_REFRESH_SECRET")
	if accessSecret == "" || refreshSecret == "" {
		log.Fatal("JWT_SECRET and JWT_REFRESH_SECRET must be set")
	}

	businessID, err := uuid.Parse(*businessIDFlag)
	if err != nil {
		log.Fatalf("Invalid -business-id: %v", err)
	}
	staffID := uuid.New()
	if *staffIDFlag != "" {
		if staffID, err = uuid.Parse(*staffIDFlag); err != nil {
			log.Fatalf("Invalid -staff-id: %v", err)
		}
	}

	var roles []string
	for _, r := range strings.Split(*rolesFlag, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}

	tokens := jwt.NewService(accessSecret, refreshSecret, *expiry, 7*24*time.Hour)
	access, err := tokens.GenerateAccessToken(staffID, businessID, roles)
	if err != nil {
		log.Fatalf("Failed to generate access token: %v", err)
	}
	refresh, err := tokens.GenerateRefreshToken(staffID, businessID, roles)
	if err != nil {
		log.Fatalf("Failed to generate refresh token: %v", err)
	}
	expiresAt, err := tokens.GetTokenExpiry(access)
	if err != nil {
		log.Fatalf("Failed to read token expiry: %v", err)
	}

	fmt.Printf("staff_id:      %s\n", staffID)
	fmt.Printf("business_id:   %s\n", businessID)
	fmt.Printf("roles:         %s\n", strings.Join(roles, ","))
	fmt.Printf("expires_at:    %s\n\n", expiresAt.UTC().Format(time.RFC3339))
	fmt.Printf("ACCESS_TOKEN=%s\n", access)
	fmt.Printf("REFRESH_TOKEN=%s\n", refresh)
}
