package menu

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"cafeteria/internal/db"
)

func newTestRepo(t *testing.T) (*SQLiteRepository, *sql.DB) {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "cafeteria.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	return NewSQLiteRepository(database), database
}

func countRows(t *testing.T, database *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := database.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

// --------------------------------------------------
// LOCATIONS / PERIODS
// --------------------------------------------------

func TestFindLocationUnknownReturnsNil(t *testing.T) {
	repo, _ := newTestRepo(t)

	loc, err := repo.FindLocation(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc != nil {
		t.Fatalf("expected nil for unknown location, got %+v", loc)
	}
}

func TestCreateAndFindLocation(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.CreateLocation(ctx, "loc-1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindLocation(ctx, "loc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Fatalf("expected to find location %d, got %+v", created.ID, found)
	}
}

func TestFindOrCreatePeriodByExternalID(t *testing.T) {
	repo, database := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.FindOrCreatePeriod(ctx, strptr("p1"), "Lunch")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := repo.FindOrCreatePeriod(ctx, strptr("p1"), "Lunch")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected same period id, got %d and %d", first.ID, second.ID)
	}
	if n := countRows(t, database, "periods"); n != 1 {
		t.Errorf("expected 1 period row, got %d", n)
	}
}

func TestFindOrCreatePeriodFallsBackToName(t *testing.T) {
	repo, database := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.FindOrCreatePeriod(ctx, nil, "Breakfast")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := repo.FindOrCreatePeriod(ctx, nil, "Breakfast")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected same period id, got %d and %d", first.ID, second.ID)
	}
	if n := countRows(t, database, "periods"); n != 1 {
		t.Errorf("expected 1 period row, got %d", n)
	}
}

// --------------------------------------------------
// CATEGORIES
// --------------------------------------------------

func TestUpsertCategoryRefreshesNameAndSortOrder(t *testing.T) {
	repo, database := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.UpsertCategory(ctx, "c1", "Grill", intptr(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := repo.UpsertCategory(ctx, "c1", "Grill Station", intptr(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected stable category id, got %d and %d", first.ID, second.ID)
	}
	if second.Name != "Grill Station" {
		t.Errorf("expected refreshed name, got %q", second.Name)
	}
	if second.SortOrder == nil || *second.SortOrder != 3 {
		t.Errorf("expected refreshed sort order 3, got %v", second.SortOrder)
	}
	if n := countRows(t, database, "categories"); n != 1 {
		t.Errorf("expected 1 category row, got %d", n)
	}
}

// --------------------------------------------------
// FOODS
// --------------------------------------------------

func TestUpsertFoodByCodeRefreshesInPlace(t *testing.T) {
	repo, database := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.UpsertFood(ctx, FoodDescriptor{
		MRNFull:     "X-100",
		Name:        "Cheeseburger",
		Description: "old description",
		Portion:     "1 each",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := repo.UpsertFood(ctx, FoodDescriptor{
		MRNFull:     "X-100",
		Name:        "Cheeseburger",
		Description: "new description",
		Portion:     "1 each",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected stable food id, got %d and %d", first.ID, second.ID)
	}
	if second.Description != "new description" {
		t.Errorf("expected refreshed description, got %q", second.Description)
	}
	if n := countRows(t, database, "foods"); n != 1 {
		t.Errorf("expected 1 food row, got %d", n)
	}
}

func TestUpsertFoodFallbackByNameAndPortion(t *testing.T) {
	repo, database := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.UpsertFood(ctx, FoodDescriptor{
		Name:    "Garden Salad",
		Portion: "1 bowl",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := repo.UpsertFood(ctx, FoodDescriptor{
		Name:    "Garden Salad",
		Portion: "1 bowl",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected one food record, got ids %d and %d", first.ID, second.ID)
	}
	if n := countRows(t, database, "foods"); n != 1 {
		t.Errorf("expected 1 food row, got %d", n)
	}
}

func TestUpsertFoodNeverTouchesImageURL(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.UpsertFood(ctx, FoodDescriptor{MRNFull: "X-7", Name: "Tacos"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ImageURL != nil {
		t.Fatalf("expected null image url on insert, got %v", *created.ImageURL)
	}

	if err := repo.UpdateFoodImage(ctx, created.ID, "/static/images/7.jpg"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	refreshed, err := repo.UpsertFood(ctx, FoodDescriptor{MRNFull: "X-7", Name: "Tacos", Description: "corn tortillas"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if refreshed.ImageURL == nil || *refreshed.ImageURL != "/static/images/7.jpg" {
		t.Errorf("reimport overwrote the image url: %v", refreshed.ImageURL)
	}
}

func TestUpdateFoodImageUnknownFood(t *testing.T) {
	repo, _ := newTestRepo(t)

	err := repo.UpdateFoodImage(context.Background(), 999, "/x.jpg")
	if err != ErrFoodNotFound {
		t.Fatalf("expected ErrFoodNotFound, got %v", err)
	}
}

// --------------------------------------------------
// NUTRIENTS
// --------------------------------------------------

func TestUpsertNutrientDistinctUnitsAreDistinct(t *testing.T) {
	repo, database := newTestRepo(t)
	ctx := context.Background()

	kcal, err := repo.UpsertNutrient(ctx, "Calories", strptr("kcal"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kj, err := repo.UpsertNutrient(ctx, "Calories", strptr("kJ"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if kcal.ID == kj.ID {
		t.Errorf("expected distinct nutrients for distinct units")
	}
	if n := countRows(t, database, "nutrients"); n != 2 {
		t.Errorf("expected 2 nutrient rows, got %d", n)
	}
}

func TestUpsertNutrientNullUnitDeduplicates(t *testing.T) {
	repo, database := newTestRepo(t)
	ctx := context.Background()

	first, err := repo.UpsertNutrient(ctx, "Fiber", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := repo.UpsertNutrient(ctx, "Fiber", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("expected one nutrient row for null unit, got ids %d and %d", first.ID, second.ID)
	}
	if n := countRows(t, database, "nutrients"); n != 1 {
		t.Errorf("expected 1 nutrient row, got %d", n)
	}
}

func TestSetFoodNutrientValueReplacesOnConflict(t *testing.T) {
	repo, database := newTestRepo(t)
	ctx := context.Background()

	food, _ := repo.UpsertFood(ctx, FoodDescriptor{MRNFull: "X-1", Name: "Oatmeal"})
	nutrient, _ := repo.UpsertNutrient(ctx, "Calories", strptr("kcal"))

	v1 := 150.0
	if err := repo.SetFoodNutrientValue(ctx, food.ID, nutrient.ID, &v1, strptr("150")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v2 := 165.0
	if err := repo.SetFoodNutrientValue(ctx, food.ID, nutrient.ID, &v2, strptr("165")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := countRows(t, database, "food_nutrients"); n != 1 {
		t.Fatalf("expected 1 food_nutrient row, got %d", n)
	}

	_, values, err := repo.NutrientsForFood(ctx, food.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(values) != 1 || values[0].ValueNumeric == nil || *values[0].ValueNumeric != 165.0 {
		t.Errorf("expected replaced numeric value 165, got %+v", values)
	}
}

// --------------------------------------------------
// MENU OCCURRENCES
// --------------------------------------------------

func seedOccurrenceParents(t *testing.T, repo *SQLiteRepository) (int64, int64, int64, int64) {
	t.Helper()
	ctx := context.Background()

	loc, err := repo.CreateLocation(ctx, "loc-1", nil)
	if err != nil {
		t.Fatalf("seed location: %v", err)
	}
	period, err := repo.FindOrCreatePeriod(ctx, strptr("p1"), "Lunch")
	if err != nil {
		t.Fatalf("seed period: %v", err)
	}
	category, err := repo.UpsertCategory(ctx, "c1", "Grill", intptr(1))
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
	food, err := repo.UpsertFood(ctx, FoodDescriptor{MRNFull: "X-100", Name: "Cheeseburger"})
	if err != nil {
		t.Fatalf("seed food: %v", err)
	}

	return loc.ID, period.ID, category.ID, food.ID
}

func TestRecordMenuOccurrenceIgnoresDuplicates(t *testing.T) {
	repo, database := newTestRepo(t)
	ctx := context.Background()

	locID, periodID, catID, foodID := seedOccurrenceParents(t, repo)

	if err := repo.RecordMenuOccurrence(ctx, "2025-11-21", locID, periodID, catID, foodID, intptr(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Duplicate entry in the feed: silently skipped, sort order kept.
	if err := repo.RecordMenuOccurrence(ctx, "2025-11-21", locID, periodID, catID, foodID, intptr(9)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if n := countRows(t, database, "menu_items"); n != 1 {
		t.Fatalf("expected 1 menu item row, got %d", n)
	}

	var sortOrder int
	if err := database.QueryRow(`SELECT sort_order FROM menu_items`).Scan(&sortOrder); err != nil {
		t.Fatalf("scan sort order: %v", err)
	}
	if sortOrder != 1 {
		t.Errorf("duplicate insert updated sort order to %d", sortOrder)
	}
}

func TestListMenuDatesDescending(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	locID, periodID, catID, foodID := seedOccurrenceParents(t, repo)
	for _, d := range []string{"2025-11-20", "2025-11-22", "2025-11-21"} {
		if err := repo.RecordMenuOccurrence(ctx, d, locID, periodID, catID, foodID, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	dates, err := repo.ListMenuDates(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"2025-11-22", "2025-11-21", "2025-11-20"}
	if len(dates) != len(want) {
		t.Fatalf("expected %d dates, got %d", len(want), len(dates))
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("dates[%d] = %s, want %s", i, dates[i], want[i])
		}
	}
}

// --------------------------------------------------
// ROLLUPS
// --------------------------------------------------

func TestMenuForDateFeedbackRollup(t *testing.T) {
	repo, database := newTestRepo(t)
	ctx := context.Background()

	locID, periodID, catID, foodID := seedOccurrenceParents(t, repo)
	if err := repo.RecordMenuOccurrence(ctx, "2025-11-21", locID, periodID, catID, foodID, intptr(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, rating := range []int{1, 1, -1, 0} {
		if _, err := database.Exec(
			`INSERT INTO feedback (food_id, rating, created_at) VALUES (?, ?, datetime('now'))`,
			foodID, rating,
		); err != nil {
			t.Fatalf("insert feedback: %v", err)
		}
	}

	rows, err := repo.MenuForDate(ctx, "2025-11-21")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 menu row, got %d", len(rows))
	}

	got := rows[0].Rollup
	if got.Up != 2 || got.Down != 1 || got.NotTried != 1 || got.Total != 4 {
		t.Errorf("expected rollup up=2 down=1 notried=1 total=4, got %+v", got)
	}
}

func TestMenuForDateNoDataIsEmpty(t *testing.T) {
	repo, _ := newTestRepo(t)

	rows, err := repo.MenuForDate(context.Background(), "1999-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty result for date with no menu, got %d rows", len(rows))
	}
}

func TestNutrientsForFoodUnknownIsEmpty(t *testing.T) {
	repo, _ := newTestRepo(t)

	name, values, err := repo.NutrientsForFood(context.Background(), 12345)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "" || len(values) != 0 {
		t.Fatalf("expected empty nutrition for unknown food, got %q %+v", name, values)
	}
}
