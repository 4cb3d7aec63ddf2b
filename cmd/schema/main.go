// Package main provides the schema command-line tool for creating or
// resetting the database schema.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"facuatrack/internal/config"
	"facuatrack/internal/store"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	drop := flag.Bool("drop", false, "Drop all tables before recreating them")
	showUsage := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *showUsage {
		fmt.Println("Usage: schema [options]")
		fmt.Println()
		fmt.Println("Creates the price-tracking tables, or recreates them with -drop.")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		os.Exit(0)
	}

	cfg := config.DefaultConfig()

	if *configFile != "" {
		loaded, err := config.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("❌ Failed to load config: %v", err)
		}

		cfg = loaded
	}

	db, err := store.Open(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}

	if *drop {
		fmt.Printf("🗑️  Dropping and recreating schema in %s\n", cfg.Database.Name)

		if err := store.Reset(db); err != nil {
			log.Fatalf("❌ Failed to reset schema: %v", err)
		}
	} else {
		fmt.Printf("🏗️  Creating schema in %s\n", cfg.Database.Name)

		if err := store.Migrate(db); err != nil {
			log.Fatalf("❌ Failed to migrate schema: %v", err)
		}
	}

	fmt.Println("✅ Schema ready")
}
