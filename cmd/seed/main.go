package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"conduit/database"
	"conduit/internal/utils"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file from project root
	if err := godotenv.Load(); err != nil {
		// Try loading from parent directory (in case running from cmd/seed/)
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found: %v", err)
		}
	}
}

func main() {
	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	numUsers := seedCmd.Int("users", utils.DefaultNumUsers, "Number of demo users to create")
	articlesPerUser := seedCmd.Int("articles", utils.DefaultArticlesPerUser, "Articles per demo user")

	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	switch os.Args[1] {
	case "seed":
		if err := seedCmd.Parse(os.Args[2:]); err != nil {
			log.Fatalf("Failed to parse flags: %v", err)
		}
		if err := utils.SeedDemoData(database.DB, *numUsers, *articlesPerUser); err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		log.Println("Seeding completed successfully")
	case "count":
		count, err := utils.GetUserCount(database.DB)
		if err != nil {
			log.Fatalf("Count failed: %v", err)
		}
		log.Printf("Total users: %d", count)
	case "clear":
		if err := utils.CleanupDemoData(database.DB); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		log.Println("Cleanup completed successfully")
	default:
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Usage: seed <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  seed   Create demo users, articles, follows and favorites")
	fmt.Println("         -users N     number of demo users (default 20)")
	fmt.Println("         -articles N  articles per user (default 3)")
	fmt.Println("  count  Print the total number of users")
	fmt.Println("  clear  Remove all seeded demo data")
}
