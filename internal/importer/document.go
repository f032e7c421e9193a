package importer

// Document is one menu feed file: a single location, date, and
// period block as delivered by the upstream menu service.
type Document struct {
	LocationID string      `json:"locationId"`
	Date       string      `json:"date"`
	Period     PeriodBlock `json:"period"`
}

type PeriodBlock struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Categories []CategoryBlock `json:"categories"`
}

type CategoryBlock struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	SortOrder *int        `json:"sortOrder"`
	Items     []ItemEntry `json:"items"`
}

type ItemEntry struct {
	Name        string          `json:"name"`
	MRN         *int64          `json:"mrn"`
	MRNFull     string          `json:"mrnFull"`
	Desc        string          `json:"desc"`
	Portion     string          `json:"portion"`
	Qty         *string         `json:"qty"`
	Ingredients string          `json:"ingredients"`
	SortOrder   *int            `json:"sortOrder"`
	Nutrients   []NutrientEntry `json:"nutrients"`
}

// NutrientEntry carries both the feed's numeric field and its raw
// display text. Either may be a sentinel like "-" when the value is
// not applicable.
type NutrientEntry struct {
	Name         string  `json:"name"`
	UOM          string  `json:"uom"`
	ValueNumeric string  `json:"valueNumeric"`
	Value        *string `json:"value"`
}
