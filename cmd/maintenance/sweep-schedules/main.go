package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/config"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/database"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/roomstate"
	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/services"
)

// Runs the schedule sweep once for every business: expires maintenance and
// inactive windows that ended and applies the ones starting today.
func main() {
	var dbURLFlag string
	var country string
	var timeout time.Duration
	flag.StringVar(&dbURLFlag, "database-url", "", "PostgreSQL connection string (overrides DATABASE_URL)")
	flag.StringVar(&country, "default-country", "", "country for businesses without one (overrides HOTEL_DEFAULT_COUNTRY)")
	flag.DurationVar(&timeout, "timeout", 5*time.Minute, "maximum time for the whole sweep")
	flag.Parse()

	_ = godotenv.Load()

	dbURL := dbURLFlag
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set and -database-url was not provided")
	}
	if country == "" {
		country = os.Getenv("HOTEL_DEFAULT_COUNTRY")
	}

	db, err := database.NewConnection(config.DatabaseConfig{
		URL:                dbURL,
		MaxConnections:     5,
		MaxIdleConnections: 2,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stderr)

	businesses := database.NewBusinessRepository(db)
	sweeper := services.NewScheduleService(
		businesses,
		businesses,
		database.NewRoomRepository(db),
		database.NewScheduleRepository(db),
		roomstate.NewResolver(nil).WithDefaultCountry(country),
		services.NewAuditService(db),
		logger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	summary, err := sweeper.SweepAll(ctx)

	fmt.Printf("Swept %d businesses (%d failed)\n", summary.Businesses, summary.Failed)
	for _, r := range summary.Results {
		fmt.Printf("  %s [%s]: %d expired, %d activated\n", r.BusinessID, r.BusinessDate, r.Expired, r.Activated)
	}

	if err != nil {
		log.Fatalf("sweep finished with errors: %v", err)
	}
}
