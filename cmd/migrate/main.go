package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/vishaldhakal/nisimatsuya-sub001/internal/config"
	"github.com/vishaldhakal/nisimatsuya-sub001/internal/repository/postgres"
)

// Standalone migration runner. Creates the database when it does not
// exist yet, then applies the file migrations. The server also runs
// migrations on startup; this command exists for CI and for provisioning
// a fresh database without starting the server.
func main() {
	_ = godotenv.Load()

	dbCfg := config.DatabaseConfig{
		Host:           getEnv("DB_HOST", "localhost"),
		Port:           getEnv("DB_PORT", "5432"),
		User:           getEnv("DB_USER", "postgres"),
		Password:       getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "nisimatsuya"),
		SSLMode:        getEnv("DB_SSLMODE", "disable"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
	}

	if err := ensureDatabase(dbCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to ensure database exists: %v\n", err)
		os.Exit(1)
	}

	db, err := postgres.NewConnection(dbCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, dbCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run migrations: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Migrations applied successfully.")
}

// ensureDatabase connects to the maintenance database and creates the
// target database when missing
func ensureDatabase(cfg config.DatabaseConfig) error {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=postgres sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.DBName,
	).Scan(&exists)
	if err != nil {
		return err
	}

	if !exists {
		fmt.Printf("Database %q does not exist. Creating...\n", cfg.DBName)
		if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE %s", cfg.DBName)); err != nil {
			return err
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}
