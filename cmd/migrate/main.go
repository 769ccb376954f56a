package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"hallpoint/config"
	"hallpoint/internal/pkg/database"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Warning: .env file not found. Loading configs from system environment only: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("goose: %v", err)
	}

	var migrationsDir string
	flag.StringVar(&migrationsDir, "dir", cfg.MigrationsDir, "directory with migration files")
	flag.Parse()

	db, err := database.NewPostgresDB(cfg.DatabaseURL, database.PoolConfig{MaxOpenConns: 1})
	if err != nil {
		log.Fatalf("goose: failed to connect to DB: %v\n", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("goose: failed to close DB: %v\n", err)
		}
	}()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("goose: %v", err)
	}

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}

	command := arguments[0]
	var args []string
	if len(arguments) > 1 {
		args = arguments[1:]
	}

	if err := goose.Run(command, db, migrationsDir, args...); err != nil {
		log.Fatalf("goose %v: %v", command, err)
	}

	fmt.Printf("goose %s success\n", command)
}
