package menu

import (
	"context"
	"errors"
)

// ErrFoodNotFound is returned by writes that target a specific food row.
var ErrFoodNotFound = errors.New("food not found")

// Repository defines all database operations for the menu catalog.
// The importer and the query service depend ONLY on this interface.
type Repository interface {

	// -------------------------------
	// Catalog upserts (importer writes)
	// -------------------------------

	// Returns nil (no error) when the location is unknown.
	FindLocation(ctx context.Context, externalID string) (*Location, error)

	// A location's name is fixed at creation; there is no update path.
	CreateLocation(ctx context.Context, externalID string, name *string) (*Location, error)

	// Lookup is by external ID when present, otherwise by name
	// (feeds may omit stable IDs for standard meal slots).
	FindOrCreatePeriod(ctx context.Context, externalID *string, name string) (*Period, error)

	// Name and sort order are overwritten unconditionally on every
	// sighting; the feed is the source of truth for display ordering.
	UpsertCategory(ctx context.Context, externalID, name string, sortOrder *int) (*Category, error)

	// Matches by recipe code when the descriptor has one, otherwise
	// by (name, portion). Descriptive fields are refreshed on match;
	// image_url is never touched here.
	UpsertFood(ctx context.Context, d FoodDescriptor) (*Food, error)

	// Create-if-absent by (name, unit); nutrient identity is immutable.
	UpsertNutrient(ctx context.Context, name string, unit *string) (*Nutrient, error)

	// Insert-or-replace keyed by (food, nutrient).
	SetFoodNutrientValue(ctx context.Context, foodID, nutrientID int64, numeric *float64, raw *string) error

	// Insert; silently ignored when the (date, location, period,
	// category, food) tuple already exists. Sort order is not updated.
	RecordMenuOccurrence(ctx context.Context, menuDate string, locationID, periodID, categoryID, foodID int64, sortOrder *int) error

	// -------------------------------
	// Presentation writes
	// -------------------------------

	// Owned by the upload/enrichment side, never called by the importer.
	UpdateFoodImage(ctx context.Context, foodID int64, imageURL string) error

	// -------------------------------
	// Reads
	// -------------------------------

	// Distinct menu dates, newest first.
	ListMenuDates(ctx context.Context) ([]string, error)

	// Joined menu rows for one date with feedback rollups.
	// Empty slice when the date has no menu.
	MenuForDate(ctx context.Context, date string) ([]MenuRow, error)

	// Nutrition rows for a food ordered by nutrient name, plus the
	// food name. Empty name and empty slice when the food is unknown.
	NutrientsForFood(ctx context.Context, foodID int64) (string, []NutrientValue, error)
}
