package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"hackfest_backend/internal/app/service"
	"hackfest_backend/internal/domain/repository"
	"hackfest_backend/internal/platform/config"
	"hackfest_backend/internal/platform/database"
)

// Imports users in bulk from a CSV file with a header row of
// username,email,password,role plus optional profile columns.
func main() {
	csvPath := flag.String("file", "", "path to the user CSV file")
	flag.Parse()

	if *csvPath == "" {
		log.Fatal("Usage: bulkusers -file <path>")
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("Could not open CSV file: %v", err)
	}
	defer f.Close()

	rows, reports, err := service.ParseCSV(f)
	if err != nil {
		log.Fatalf("Could not parse CSV: %v", err)
	}

	config.Load()
	database.Connect()
	defer database.Close()
	if err := database.CreateSchema(database.DB); err != nil {
		log.Fatalf("Could not create schema: %v", err)
	}

	userRepo := repository.NewPgUserRepository(database.DB)
	importService := service.NewImportService(userRepo, database.DB)

	result, err := importService.BulkCreate(context.Background(), rows)
	if err != nil {
		log.Fatalf("Import failed, no users created: %v", err)
	}

	for _, report := range reports {
		fmt.Println(report)
	}
	for _, report := range result.Reports {
		fmt.Println(report)
	}
	fmt.Printf("Done. Created %d users, skipped %d.\n", result.Created, result.Skipped)
}
