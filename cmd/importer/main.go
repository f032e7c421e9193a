package main

import (
	"context"
	"flag"
	"log"
	"os"

	"cafeteria/internal/db"
	"cafeteria/internal/importer"
	"cafeteria/internal/menu"

	"github.com/joho/godotenv"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	dbPath := flag.String("db", os.Getenv("CAFETERIA_DB"), "path to the cafeteria database file")
	dataDir := flag.String("data", envOr("MENU_DATA_DIR", "data"), "directory of menu feed JSON files")
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("database path required (-db flag or CAFETERIA_DB)")
	}

	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatal("SQLite connection failed:", err)
	}
	defer database.Close()

	im := importer.New(menu.NewSQLiteRepository(database))

	reports, err := im.ImportDir(context.Background(), *dataDir)
	if err != nil {
		log.Fatal(err)
	}

	if len(reports) == 0 {
		log.Printf("No .json files found in %s. Add your menu feed files there.", *dataDir)
		return
	}

	items, itemErrors := 0, 0
	for _, report := range reports {
		items += report.Items
		itemErrors += len(report.ItemErrors)
	}

	log.Printf("All imports complete: %d documents, %d items, %d item errors.",
		len(reports), items, itemErrors)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
