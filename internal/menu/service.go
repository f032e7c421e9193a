package menu

import (
	"context"
	"errors"
)

// MenuEntry is one food on the rendered menu.
type MenuEntry struct {
	FoodID      int64    `json:"food_id"`
	FoodName    string   `json:"food_name"`
	NutritionID *string  `json:"nutrition_id"`
	Ingredients *string  `json:"ingredients"`
	ImageURL    *string  `json:"image_url"`
	AllergyTags []string `json:"allergy_tags"`
	Rollup      Rollup   `json:"rollup"`
}

// CategoryMenu groups entries under one station, in feed order.
type CategoryMenu struct {
	Name  string      `json:"name"`
	Items []MenuEntry `json:"items"`
}

// PeriodMenu groups categories under one meal slot.
type PeriodMenu struct {
	Name       string         `json:"name"`
	Categories []CategoryMenu `json:"categories"`
}

// MenuPage is the full menu for one date.
type MenuPage struct {
	Dates        []string     `json:"dates"`
	SelectedDate string       `json:"selected_date"`
	Periods      []PeriodMenu `json:"periods"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// --------------------------------------------------
// MENU FOR DATE
// --------------------------------------------------

// MenuForDate resolves the display date and returns the menu grouped
// by period then category. Preference: the requested date when it has
// menu rows, else today, else the newest date with data.
func (s *Service) MenuForDate(ctx context.Context, requestedDate string) (*MenuPage, error) {
	dates, err := s.repo.ListMenuDates(ctx)
	if err != nil {
		return nil, err
	}

	selected := pickDate(dates, requestedDate)

	rows, err := s.repo.MenuForDate(ctx, selected)
	if err != nil {
		return nil, err
	}

	page := &MenuPage{
		Dates:        dates,
		SelectedDate: selected,
	}

	// Rows arrive ordered by period, category sort, item sort;
	// grouping preserves that order.
	for _, row := range rows {
		entry := MenuEntry{
			FoodID:      row.FoodID,
			FoodName:    row.FoodName,
			NutritionID: row.NutritionID,
			Ingredients: row.Ingredients,
			ImageURL:    row.ImageURL,
			Rollup:      row.Rollup,
		}
		if row.Ingredients != nil {
			entry.AllergyTags = AllergenTags(*row.Ingredients)
		}

		if len(page.Periods) == 0 || page.Periods[len(page.Periods)-1].Name != row.PeriodName {
			page.Periods = append(page.Periods, PeriodMenu{Name: row.PeriodName})
		}
		period := &page.Periods[len(page.Periods)-1]

		if len(period.Categories) == 0 || period.Categories[len(period.Categories)-1].Name != row.CategoryName {
			period.Categories = append(period.Categories, CategoryMenu{Name: row.CategoryName})
		}
		category := &period.Categories[len(period.Categories)-1]

		category.Items = append(category.Items, entry)
	}

	return page, nil
}

func pickDate(dates []string, requested string) string {
	today := Today()

	if requested != "" && contains(dates, requested) {
		return requested
	}
	if contains(dates, today) {
		return today
	}
	if len(dates) > 0 {
		return dates[0]
	}
	return today
}

func contains(dates []string, d string) bool {
	for _, v := range dates {
		if v == d {
			return true
		}
	}
	return false
}

// --------------------------------------------------
// NUTRITION LOOKUP
// --------------------------------------------------

// NutritionInfo is the nutrition panel for one food. FoodName is nil
// when the food has no nutrition rows (an expected condition, not an
// error).
type NutritionInfo struct {
	FoodName  *string         `json:"foodName"`
	Nutrients []NutrientValue `json:"nutrients"`
}

func (s *Service) Nutrition(ctx context.Context, foodID int64) (*NutritionInfo, error) {
	name, values, err := s.repo.NutrientsForFood(ctx, foodID)
	if err != nil {
		return nil, err
	}

	info := &NutritionInfo{Nutrients: []NutrientValue{}}
	if len(values) > 0 {
		info.FoodName = &name
		info.Nutrients = values
	}
	return info, nil
}

// --------------------------------------------------
// FOOD IMAGE
// --------------------------------------------------

var ErrEmptyImageURL = errors.New("image_url is required")

// SetFoodImage is called by the upload/enrichment side. The importer
// never writes image URLs.
func (s *Service) SetFoodImage(ctx context.Context, foodID int64, imageURL string) error {
	if imageURL == "" {
		return ErrEmptyImageURL
	}
	return s.repo.UpdateFoodImage(ctx, foodID, imageURL)
}

// ListDates exposes the distinct menu dates, newest first.
func (s *Service) ListDates(ctx context.Context) ([]string, error) {
	return s.repo.ListMenuDates(ctx)
}
