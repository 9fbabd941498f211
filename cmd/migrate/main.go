// Command migrate manages the database schema. It wraps goose with the
// migrations embedded into the binary, so a deploy needs no migration
// files on disk:
//
//	migrate up        apply all pending migrations
//	migrate down      roll back the most recent migration
//	migrate status    print migration state
//	migrate version   print current schema version
package main

import (
	"database/sql"
	"embed"
	"fmt"
	"log"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"github.com/iliyamo/items-api/internal/database"
)

//go:embed migrations/*.sql
var migrations embed.FS

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	cmd := os.Args[1]

	_ = godotenv.Load()
	dsn := database.DSN(
		mustEnv("DB_USER"),
		os.Getenv("DB_PASS"),
		mustEnv("DB_HOST"),
		mustEnv("DB_PORT"),
		mustEnv("DB_NAME"),
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("mysql"); err != nil {
		log.Fatalf("set dialect: %v", err)
	}

	switch cmd {
	case "up":
		err = goose.Up(db, "migrations")
	case "down":
		err = goose.Down(db, "migrations")
	case "status":
		err = goose.Status(db, "migrations")
	case "version":
		err = goose.Version(db, "migrations")
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%s: %v", cmd, err)
	}
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: migrate <up|down|status|version>")
}
