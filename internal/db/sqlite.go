package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// Connect opens the database named by CAFETERIA_DB and
// initializes the schema. Fatal on any failure.
func Connect() *sql.DB {
	path := os.Getenv("CAFETERIA_DB")
	if path == "" {
		log.Fatal("CAFETERIA_DB not set")
	}

	database, err := Open(path)
	if err != nil {
		log.Fatal("SQLite connection failed:", err)
	}

	log.Println("✅ Connected to", path)
	return database
}

// Open opens (or creates) the database file at path and runs the
// schema migration.
func Open(path string) (*sql.DB, error) {
	database, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := initSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return database, nil
}

// initSchema creates or updates the database schema
func initSchema(database *sql.DB) error {

	statements := []string{
		// -------------------------------
		// LOCATIONS (cafeterias)
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS locations (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			external_id TEXT UNIQUE NOT NULL,
			name        TEXT
		)`,

		// -------------------------------
		// PERIODS (Breakfast, Lunch, Dinner)
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS periods (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			external_id TEXT UNIQUE,
			name        TEXT NOT NULL
		)`,

		// -------------------------------
		// CATEGORIES (Grill, Homestyle, ...)
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS categories (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			external_id TEXT UNIQUE,
			name        TEXT NOT NULL,
			sort_order  INTEGER
		)`,

		// -------------------------------
		// FOODS (master catalog)
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS foods (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			mrn                 INTEGER,
			mrn_full            TEXT UNIQUE,
			name                TEXT NOT NULL,
			description         TEXT,
			portion             TEXT,
			qty                 TEXT,
			ingredients         TEXT,
			image_url           TEXT,
			nutrition_source_id TEXT
		)`,

		// -------------------------------
		// NUTRIENTS (Calories, Protein, ...)
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS nutrients (
			id   INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			unit TEXT,
			UNIQUE (name, unit)
		)`,

		// -------------------------------
		// FOOD NUTRIENT VALUES
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS food_nutrients (
			food_id       INTEGER NOT NULL,
			nutrient_id   INTEGER NOT NULL,
			value_numeric REAL,
			value_raw     TEXT,
			PRIMARY KEY (food_id, nutrient_id),
			FOREIGN KEY (food_id) REFERENCES foods(id) ON DELETE CASCADE,
			FOREIGN KEY (nutrient_id) REFERENCES nutrients(id) ON DELETE CASCADE
		)`,

		// -------------------------------
		// MENU ITEMS (one row per appearance of a food)
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS menu_items (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			menu_date        TEXT NOT NULL,
			location_id      INTEGER NOT NULL,
			period_id        INTEGER NOT NULL,
			category_id      INTEGER NOT NULL,
			food_id          INTEGER NOT NULL,
			sort_order       INTEGER,
			external_item_id TEXT,
			UNIQUE (menu_date, location_id, period_id, category_id, food_id),
			FOREIGN KEY (location_id) REFERENCES locations(id),
			FOREIGN KEY (period_id) REFERENCES periods(id),
			FOREIGN KEY (category_id) REFERENCES categories(id),
			FOREIGN KEY (food_id) REFERENCES foods(id)
		)`,

		// -------------------------------
		// FEEDBACK (swipe review votes, append-only)
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS feedback (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			food_id    INTEGER NOT NULL,
			user_id    TEXT,
			rating     INTEGER,
			comment    TEXT,
			created_at TEXT DEFAULT (datetime('now')),
			FOREIGN KEY (food_id) REFERENCES foods(id)
		)`,

		// -------------------------------
		// USERS
		// -------------------------------
		`CREATE TABLE IF NOT EXISTS users (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			email      TEXT UNIQUE NOT NULL,
			password   TEXT NOT NULL,
			created_at TEXT DEFAULT (datetime('now'))
		)`,
	}

	for _, stmt := range statements {
		if _, err := database.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
