package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/utils"
)

// Prints a fresh JWT_SECRET / JWT_REFRESH_SECRET pair in .env format
func main() {
	envOnly := flag.Bool("env", false, "print only the KEY=value lines")
	flag.Parse()

	accessSecret, refreshSecret, err := utils.GenerateJWTSecrets()
	if err != nil {
		log.Fatalf("Failed to generate secrets: %v", err)
	}

	if *envOnly {
		fmt.Printf("JWT_SECRET=%s\nJWT_REFRESH_SECRET=%s\n", accessSecret, refreshSecret)
		return
	}

	fmt.Println("# Add these to your .env file or deployment secrets.")
	fmt.Println("# Rotating them invalidates every issued staff token.")
	fmt.Printf("JWT_SECRET=%s\n", accessSecret)
	fmt.Printf("JWT_REFRESH_SECRET=%s\n", refreshSecret)
}
