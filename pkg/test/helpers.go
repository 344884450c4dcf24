package test

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"runtime"

	database "taskapp/internal/adapter/database/sqlite"
)

// findProjectRoot walks up from this file until it sees go.mod, so
// tests can locate the migrations directory from any package.
func findProjectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if wd, err := os.Getwd(); err == nil {
		return wd
	}

	log.Fatal("Could not find project root directory")
	return ""
}

func InitTestDB() *database.DB {
	sqlDB, err := sql.Open("sqlite3", ":memory:")

	if err != nil {
		log.Fatal(err)
	}

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		log.Fatal(err)
	}

	migrationsPath := filepath.Join(findProjectRoot(), "db", "migrations", "sqlite")
	database.RunMigrations(sqlDB, migrationsPath)

	return database.FromSQL(sqlDB)
}
