package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	// Read environment to determine table prefix
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	prefix := os.Getenv("TABLE_PREFIX")
	if prefix == "" {
		switch env {
		case "prod":
			prefix = "prod_"
		case "test":
			prefix = "test_"
		default:
			prefix = "dev_"
		}
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }() // Error ignored: script exiting

	// Drop order follows foreign keys, children first
	tables := []string{
		"playbook_slides",
		"playbooks",
		"calendar_posts",
		"format_feedback",
		"document_formats",
		"posting_rules",
		"formats",
		"document_versions",
		"documents",
		"folders",
		"context_documents",
		"ikigai",
		"topics",
	}

	dropSQL := ""
	for _, table := range tables {
		dropSQL += fmt.Sprintf("DROP TABLE IF EXISTS %s%s CASCADE;\n", prefix, table)
	}

	if _, err := db.Exec(dropSQL); err != nil {
		log.Fatalf("Failed to drop tables: %v", err)
	}

	fmt.Printf("All tables dropped successfully (prefix: %s)\n", prefix)
}
