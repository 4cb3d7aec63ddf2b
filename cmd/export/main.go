// Package main provides the export command-line tool for regenerating
// the aggregate CSV from data already in the database.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"facuatrack/internal/config"
	"facuatrack/internal/export"
	"facuatrack/internal/logger"
	"facuatrack/internal/store"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	outputDir := flag.String("output", "", "Output directory (overrides config)")
	showUsage := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *showUsage {
		fmt.Println("Usage: export [options]")
		fmt.Println()
		fmt.Println("Rebuilds the aggregate CSV file from stored price observations.")
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

	if *outputDir != "" {
		cfg.Output.BasePath = *outputDir
	}

	db, err := store.Open(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}

	s := store.NewStore(db, logger.NewLoggerWithFormat(cfg.Logging.Level, cfg.Logging.Format))

	rows, err := s.ExportRows()
	if err != nil {
		log.Fatalf("❌ Failed to query observations: %v", err)
	}

	writer := export.NewWriter(cfg.Output.BasePath, cfg.Output.GetFinalName())
	if err := writer.SaveFinal(rows); err != nil {
		log.Fatalf("❌ Failed to write CSV: %v", err)
	}

	fmt.Printf("✅ Exported %d price rows to %s\n", len(rows), cfg.Output.GetFinalName())
}
