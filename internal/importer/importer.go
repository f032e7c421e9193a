package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cafeteria/internal/menu"
)

// ErrInvalidDocument marks a document that cannot be imported at all
// (missing location/date/period). Item-level problems never carry it;
// they land in the Report instead.
var ErrInvalidDocument = errors.New("invalid menu document")

// ItemError records one failed item. The rest of the document is
// imported regardless.
type ItemError struct {
	Category string
	Item     string
	Err      error
}

// Report summarizes one document import.
type Report struct {
	Path       string
	LocationID string
	Date       string
	Period     string
	Items      int
	ItemErrors []ItemError
}

type Importer struct {
	repo menu.Repository
}

func New(repo menu.Repository) *Importer {
	return &Importer{repo: repo}
}

// --------------------------------------------------
// SINGLE DOCUMENT
// --------------------------------------------------

// ImportDocument normalizes one feed document into catalog rows.
// Re-running the same document is idempotent apart from the
// deliberate refresh of category and food descriptive fields.
func (im *Importer) ImportDocument(ctx context.Context, doc *Document) (*Report, error) {
	if err := validate(doc); err != nil {
		return nil, err
	}

	report := &Report{
		LocationID: doc.LocationID,
		Date:       doc.Date,
		Period:     doc.Period.Name,
	}

	// The location name is only set at first creation; the feed does
	// not re-derive it on this path.
	loc, err := im.repo.FindLocation(ctx, doc.LocationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		loc, err = im.repo.CreateLocation(ctx, doc.LocationID, nil)
		if err != nil {
			return nil, err
		}
	}

	var periodExternalID *string
	if doc.Period.ID != "" {
		periodExternalID = &doc.Period.ID
	}
	period, err := im.repo.FindOrCreatePeriod(ctx, periodExternalID, doc.Period.Name)
	if err != nil {
		return nil, err
	}

	for _, cat := range doc.Period.Categories {
		category, err := im.repo.UpsertCategory(ctx, cat.ID, cat.Name, cat.SortOrder)
		if err != nil {
			// The whole category is unusable, but the rest of the
			// document still imports.
			report.ItemErrors = append(report.ItemErrors, ItemError{
				Category: cat.Name,
				Err:      err,
			})
			log.Printf("import %s %s: category %q: %v", doc.LocationID, doc.Date, cat.Name, err)
			continue
		}

		for _, item := range cat.Items {
			if err := im.importItem(ctx, doc.Date, loc.ID, period.ID, category.ID, item); err != nil {
				report.ItemErrors = append(report.ItemErrors, ItemError{
					Category: cat.Name,
					Item:     item.Name,
					Err:      err,
				})
				log.Printf("import %s %s: item %q: %v", doc.LocationID, doc.Date, item.Name, err)
				continue
			}
			report.Items++
		}
	}

	return report, nil
}

func (im *Importer) importItem(ctx context.Context, date string, locationID, periodID, categoryID int64, item ItemEntry) error {
	if item.Name == "" {
		return fmt.Errorf("%w: item has no name", ErrInvalidDocument)
	}

	food, err := im.repo.UpsertFood(ctx, menu.FoodDescriptor{
		MRN:         item.MRN,
		MRNFull:     item.MRNFull,
		Name:        item.Name,
		Description: item.Desc,
		Portion:     item.Portion,
		Qty:         item.Qty,
		Ingredients: item.Ingredients,
	})
	if err != nil {
		return err
	}

	for _, n := range item.Nutrients {
		if n.Name == "" {
			return fmt.Errorf("%w: nutrient has no name", ErrInvalidDocument)
		}

		var unit *string
		if n.UOM != "" {
			unit = &n.UOM
		}
		nutrient, err := im.repo.UpsertNutrient(ctx, n.Name, unit)
		if err != nil {
			return err
		}

		numeric := parseNumeric(n.ValueNumeric)
		raw := n.Value
		if raw == nil && n.ValueNumeric != "" {
			raw = &n.ValueNumeric
		}

		if err := im.repo.SetFoodNutrientValue(ctx, food.ID, nutrient.ID, numeric, raw); err != nil {
			return err
		}
	}

	return im.repo.RecordMenuOccurrence(ctx, date, locationID, periodID, categoryID, food.ID, item.SortOrder)
}

// parseNumeric returns nil for missing sentinels ("-", empty) and
// for anything that fails a float parse; the raw text is kept either
// way.
func parseNumeric(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func validate(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: empty document", ErrInvalidDocument)
	}
	if doc.LocationID == "" {
		return fmt.Errorf("%w: missing locationId", ErrInvalidDocument)
	}
	if !menu.ValidDate(doc.Date) {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidDocument, doc.Date)
	}
	if doc.Period.Name == "" {
		return fmt.Errorf("%w: missing period name", ErrInvalidDocument)
	}
	return nil
}

// --------------------------------------------------
// FILES AND BATCHES
// --------------------------------------------------

// ImportFile reads and imports one JSON feed file.
func (im *Importer) ImportFile(ctx context.Context, path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDocument, path, err)
	}

	report, err := im.ImportDocument(ctx, &doc)
	if err != nil {
		return nil, err
	}
	report.Path = path
	return report, nil
}

// ImportDir imports every *.json file in dir. A failing document is
// logged and skipped; it never aborts the batch.
func (im *Importer) ImportDir(ctx context.Context, dir string) ([]*Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}

	var reports []*Report
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		log.Printf("Importing %s...", path)

		report, err := im.ImportFile(ctx, path)
		if err != nil {
			log.Printf("Error importing %s: %v", path, err)
			continue
		}

		log.Printf("Done: %s (%d items, %d errors)", path, report.Items, len(report.ItemErrors))
		reports = append(reports, report)
	}

	return reports, nil
}
