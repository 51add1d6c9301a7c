package main

import (
	"flag"
	"log"

	migrate "github.com/rubenv/sql-migrate"

	"github.com/johnquangdev/interview-assistant/internal/infrastructure/database"
	"github.com/johnquangdev/interview-assistant/pkg/config"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	dir := flag.String("dir", database.MigrationsDir, "directory holding the migration files")
	steps := flag.Int("steps", 0, "maximum number of migrations to apply (0 = all)")
	flag.Parse()

	var dirn migrate.MigrationDirection
	switch *direction {
	case "up":
		dirn = migrate.Up
	case "down":
		dirn = migrate.Down
	default:
		log.Fatalf("Unknown direction %q, use up or down", *direction)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database connection: %v", err)
	}

	log.Printf("🔄 Applying %s migrations from %s/ ...", *direction, *dir)
	n, err := migrate.ExecMax(sqlDB, "postgres", database.Migrations(*dir), dirn, *steps)
	if err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	log.Printf("✅ Successfully applied %d migration(s)!\n", n)
}
