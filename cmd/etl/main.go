// Package main provides the etl command-line tool: crawl the price
// comparison site, normalize product names and load observations into
// the database with CSV mirrors.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"facuatrack/internal/config"
	"facuatrack/internal/crawler"
	"facuatrack/internal/export"
	"facuatrack/internal/logger"
	"facuatrack/internal/normalizer"
	"facuatrack/internal/pipeline"
	"facuatrack/internal/store"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	baseURL := flag.String("url", "", "Site base URL (overrides config)")
	showUsage := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *showUsage {
		printUsage()
		os.Exit(0)
	}

	cfg := loadConfig(*configFile)
	if *baseURL != "" {
		cfg.Crawler.BaseURL = *baseURL
	}

	logg := logger.NewLoggerWithFormat(cfg.Logging.Level, cfg.Logging.Format)

	db, err := store.Open(cfg.Database)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrInvalidCredentials):
			log.Fatalf("❌ Database rejected the credentials; check user/password (or DB_PASSWORD): %v", err)
		case errors.Is(err, store.ErrHostUnreachable):
			log.Fatalf("❌ Database host unreachable; check host/port: %v", err)
		default:
			log.Fatalf("❌ Failed to connect to database: %v", err)
		}
	}

	if err := store.Migrate(db); err != nil {
		log.Fatalf("❌ Failed to migrate schema: %v", err)
	}

	scraper := crawler.NewScraperWithConfig(&cfg.Crawler.Retry)
	client := crawler.NewClientWithDeps(scraper, crawler.NewParser())
	sink := export.NewWriter(cfg.Output.BasePath, cfg.Output.GetFinalName())

	runner := pipeline.NewRunner(
		client,
		normalizer.NewNormalizer(),
		store.NewStore(db, logg),
		sink,
		cfg.Crawler.BaseURL,
		logg,
	)

	fmt.Printf("🛒 Starting crawl of %s\n\n", cfg.Crawler.BaseURL)

	summary, err := runner.Run()
	if err != nil {
		log.Fatalf("❌ Run failed: %v", err)
	}

	fmt.Println()
	fmt.Println(summary.Render())
}

func loadConfig(path string) *config.Config {
	if path == "" {
		fmt.Println("⚙️  No config file given, using defaults")

		return config.DefaultConfig()
	}

	fmt.Printf("⚙️  Loading configuration from: %s\n", path)

	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	return cfg
}

func printUsage() {
	fmt.Println("Usage: etl [options]")
	fmt.Println()
	fmt.Println("Crawls the supermarket price site, normalizes every product and")
	fmt.Println("stores daily price observations in Postgres plus CSV mirrors.")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  DB_PASSWORD    Database password (overrides config file)")
}
