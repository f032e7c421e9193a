package menu

// Location is a cafeteria identified by a stable feed ID.
// Created on first sighting during import, never deleted.
type Location struct {
	ID         int64   `json:"id"`
	ExternalID string  `json:"external_id"`
	Name       *string `json:"name"`
}

// Period is a meal slot (Breakfast/Lunch/Dinner).
type Period struct {
	ID         int64   `json:"id"`
	ExternalID *string `json:"external_id"`
	Name       string  `json:"name"`
}

// Category is a station/grouping within a period (Grill, Homestyle, ...).
// Name and sort order are refreshed on every reimport.
type Category struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	SortOrder  *int   `json:"sort_order"`
}

// Food is the master catalog entry for a distinct dish,
// independent of when or where it is served.
type Food struct {
	ID                int64   `json:"id"`
	MRN               *int64  `json:"mrn"`
	MRNFull           *string `json:"mrn_full"`
	Name              string  `json:"name"`
	Description       string  `json:"description"`
	Portion           string  `json:"portion"`
	Qty               *string `json:"qty"`
	Ingredients       string  `json:"ingredients"`
	ImageURL          *string `json:"image_url"`
	NutritionSourceID *string `json:"nutrition_source_id"`
}

// FoodDescriptor is the upsert input for a food. An empty MRNFull
// means the feed provided no recipe code and the food is matched
// by (name, portion) instead.
type FoodDescriptor struct {
	MRN         *int64
	MRNFull     string
	Name        string
	Description string
	Portion     string
	Qty         *string
	Ingredients string
}

// Nutrient is a (name, unit) pair. Distinct units for the same
// name are distinct nutrients.
type Nutrient struct {
	ID   int64   `json:"id"`
	Name string  `json:"name"`
	Unit *string `json:"unit"`
}

// NutrientValue is one nutrition row for a food.
type NutrientValue struct {
	Name         string   `json:"name"`
	Unit         *string  `json:"unit"`
	ValueNumeric *float64 `json:"value_numeric"`
	ValueRaw     *string  `json:"value_raw"`
}

// Rollup holds the aggregate vote counts for a food,
// computed from feedback rows at read time.
type Rollup struct {
	Up       int `json:"up"`
	Down     int `json:"down"`
	NotTried int `json:"not_tried"`
	Total    int `json:"total"`
}

// MenuRow is one joined row of the menu-for-date query,
// ordered period, category sort, item sort.
type MenuRow struct {
	MenuDate     string
	PeriodName   string
	CategoryName string
	CategorySort *int
	FoodID       int64
	FoodName     string
	NutritionID  *string
	Ingredients  *string
	ImageURL     *string
	Rollup       Rollup
}
