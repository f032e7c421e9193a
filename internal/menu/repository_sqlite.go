package menu

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// --------------------------------------------------
// LOCATIONS
// --------------------------------------------------

func (r *SQLiteRepository) FindLocation(ctx context.Context, externalID string) (*Location, error) {
	loc := &Location{}

	err := r.db.QueryRowContext(ctx, `
		SELECT id, external_id, name
		FROM locations
		WHERE external_id = ?
	`, externalID).Scan(&loc.ID, &loc.ExternalID, &loc.Name)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find location: %w", err)
	}

	return loc, nil
}

func (r *SQLiteRepository) CreateLocation(ctx context.Context, externalID string, name *string) (*Location, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO locations (external_id, name)
		VALUES (?, ?)
	`, externalID, name)
	if err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create location: %w", err)
	}

	return &Location{ID: id, ExternalID: externalID, Name: name}, nil
}

// --------------------------------------------------
// PERIODS
// --------------------------------------------------

func (r *SQLiteRepository) FindOrCreatePeriod(ctx context.Context, externalID *string, name string) (*Period, error) {
	p := &Period{}

	// Feeds may omit the period ID for standard meal slots,
	// in which case the name is the lookup key.
	var err error
	if externalID != nil {
		err = r.db.QueryRowContext(ctx, `
			SELECT id, external_id, name
			FROM periods
			WHERE external_id = ?
		`, *externalID).Scan(&p.ID, &p.ExternalID, &p.Name)
	} else {
		err = r.db.QueryRowContext(ctx, `
			SELECT id, external_id, name
			FROM periods
			WHERE external_id IS NULL AND name = ?
		`, name).Scan(&p.ID, &p.ExternalID, &p.Name)
	}

	if err == nil {
		return p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find period: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO periods (external_id, name)
		VALUES (?, ?)
	`, externalID, name)
	if err != nil {
		return nil, fmt.Errorf("create period: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create period: %w", err)
	}

	return &Period{ID: id, ExternalID: externalID, Name: name}, nil
}

// --------------------------------------------------
// CATEGORIES
// --------------------------------------------------

func (r *SQLiteRepository) UpsertCategory(ctx context.Context, externalID, name string, sortOrder *int) (*Category, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (external_id, name, sort_order)
		VALUES (?, ?, ?)
		ON CONFLICT(external_id)
		DO UPDATE SET name = excluded.name,
		              sort_order = excluded.sort_order
	`, externalID, name, sortOrder)
	if err != nil {
		return nil, fmt.Errorf("upsert category: %w", err)
	}

	c := &Category{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, external_id, name, sort_order
		FROM categories
		WHERE external_id = ?
	`, externalID).Scan(&c.ID, &c.ExternalID, &c.Name, &c.SortOrder)
	if err != nil {
		return nil, fmt.Errorf("upsert category: %w", err)
	}

	return c, nil
}

// --------------------------------------------------
// FOODS
// --------------------------------------------------

func (r *SQLiteRepository) UpsertFood(ctx context.Context, d FoodDescriptor) (*Food, error) {
	if d.MRNFull != "" {
		return r.upsertFoodByCode(ctx, d)
	}
	return r.upsertFoodByNamePortion(ctx, d)
}

// upsertFoodByCode uses the unique mrn_full constraint so the
// existence check and the write are a single statement. image_url
// is deliberately absent from the update list.
func (r *SQLiteRepository) upsertFoodByCode(ctx context.Context, d FoodDescriptor) (*Food, error) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO foods (mrn, mrn_full, name, description, portion, qty, ingredients, image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, NULL)
		ON CONFLICT(mrn_full)
		DO UPDATE SET name        = excluded.name,
		              description = excluded.description,
		              portion     = excluded.portion,
		              qty         = excluded.qty,
		              ingredients = excluded.ingredients
	`, d.MRN, d.MRNFull, d.Name, d.Description, d.Portion, d.Qty, d.Ingredients)
	if err != nil {
		return nil, fmt.Errorf("upsert food: %w", err)
	}

	return r.findFood(ctx, `mrn_full = ?`, d.MRNFull)
}

// upsertFoodByNamePortion is the fallback for items with no recipe
// code. Two feed entries sharing a name and portion collapse into
// one food row.
func (r *SQLiteRepository) upsertFoodByNamePortion(ctx context.Context, d FoodDescriptor) (*Food, error) {
	existing, err := r.findFood(ctx, `name = ? AND portion = ?`, d.Name, d.Portion)
	if err == nil {
		_, err = r.db.ExecContext(ctx, `
			UPDATE foods
			SET description = ?, qty = ?, ingredients = ?
			WHERE id = ?
		`, d.Description, d.Qty, d.Ingredients, existing.ID)
		if err != nil {
			return nil, fmt.Errorf("refresh food: %w", err)
		}
		existing.Description = d.Description
		existing.Qty = d.Qty
		existing.Ingredients = d.Ingredients
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO foods (mrn, mrn_full, name, description, portion, qty, ingredients, image_url)
		VALUES (?, NULL, ?, ?, ?, ?, ?, NULL)
	`, d.MRN, d.Name, d.Description, d.Portion, d.Qty, d.Ingredients)
	if err != nil {
		return nil, fmt.Errorf("create food: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create food: %w", err)
	}

	return &Food{
		ID:          id,
		MRN:         d.MRN,
		Name:        d.Name,
		Description: d.Description,
		Portion:     d.Portion,
		Qty:         d.Qty,
		Ingredients: d.Ingredients,
	}, nil
}

func (r *SQLiteRepository) findFood(ctx context.Context, where string, args ...interface{}) (*Food, error) {
	f := &Food{}
	var description, portion, ingredients sql.NullString

	err := r.db.QueryRowContext(ctx, `
		SELECT id, mrn, mrn_full, name, description, portion, qty, ingredients, image_url, nutrition_source_id
		FROM foods
		WHERE `+where,
		args...,
	).Scan(&f.ID, &f.MRN, &f.MRNFull, &f.Name, &description, &portion,
		&f.Qty, &ingredients, &f.ImageURL, &f.NutritionSourceID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("find food: %w", err)
	}

	f.Description = description.String
	f.Portion = portion.String
	f.Ingredients = ingredients.String
	return f, nil
}

// --------------------------------------------------
// NUTRIENTS
// --------------------------------------------------

func (r *SQLiteRepository) UpsertNutrient(ctx context.Context, name string, unit *string) (*Nutrient, error) {
	n := &Nutrient{}

	// The UNIQUE(name, unit) constraint does not catch duplicate
	// NULL units, so the lookup uses the null-safe IS operator.
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, unit
		FROM nutrients
		WHERE name = ? AND unit IS ?
	`, name, unit).Scan(&n.ID, &n.Name, &n.Unit)

	if err == nil {
		return n, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find nutrient: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO nutrients (name, unit)
		VALUES (?, ?)
	`, name, unit)
	if err != nil {
		return nil, fmt.Errorf("create nutrient: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create nutrient: %w", err)
	}

	return &Nutrient{ID: id, Name: name, Unit: unit}, nil
}

func (r *SQLiteRepository) SetFoodNutrientValue(ctx context.Context, foodID, nutrientID int64, numeric *float64, raw *string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO food_nutrients (food_id, nutrient_id, value_numeric, value_raw)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(food_id, nutrient_id)
		DO UPDATE SET value_numeric = excluded.value_numeric,
		              value_raw     = excluded.value_raw
	`, foodID, nutrientID, numeric, raw)
	if err != nil {
		return fmt.Errorf("set food nutrient: %w", err)
	}
	return nil
}

// --------------------------------------------------
// MENU OCCURRENCES
// --------------------------------------------------

func (r *SQLiteRepository) RecordMenuOccurrence(ctx context.Context, menuDate string, locationID, periodID, categoryID, foodID int64, sortOrder *int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO menu_items (menu_date, location_id, period_id, category_id, food_id, sort_order)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(menu_date, location_id, period_id, category_id, food_id)
		DO NOTHING
	`, menuDate, locationID, periodID, categoryID, foodID, sortOrder)
	if err != nil {
		return fmt.Errorf("record menu occurrence: %w", err)
	}
	return nil
}

// --------------------------------------------------
// FOOD IMAGE (presentation seam, not used by the importer)
// --------------------------------------------------

func (r *SQLiteRepository) UpdateFoodImage(ctx context.Context, foodID int64, imageURL string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE foods
		SET image_url = ?
		WHERE id = ?
	`, imageURL, foodID)
	if err != nil {
		return fmt.Errorf("update food image: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update food image: %w", err)
	}
	if n == 0 {
		return ErrFoodNotFound
	}
	return nil
}

// --------------------------------------------------
// READS
// --------------------------------------------------

func (r *SQLiteRepository) ListMenuDates(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT menu_date
		FROM menu_items
		ORDER BY menu_date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list menu dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("list menu dates: %w", err)
		}
		dates = append(dates, d)
	}

	return dates, rows.Err()
}

func (r *SQLiteRepository) MenuForDate(ctx context.Context, date string) ([]MenuRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			mi.menu_date,
			p.name AS period_name,
			c.name AS category_name,
			c.sort_order AS category_sort,
			f.id   AS food_id,
			f.name AS food_name,
			f.mrn_full AS nutrition_id,
			f.ingredients AS ingredients,
			f.image_url AS image_url,
			fb.up_count,
			fb.down_count,
			fb.notry_count,
			fb.total_count
		FROM menu_items mi
		JOIN periods p    ON mi.period_id = p.id
		JOIN categories c ON mi.category_id = c.id
		JOIN foods f      ON mi.food_id = f.id
		LEFT JOIN (
			SELECT
				food_id,
				SUM(CASE WHEN rating = 1  THEN 1 ELSE 0 END) AS up_count,
				SUM(CASE WHEN rating = -1 THEN 1 ELSE 0 END) AS down_count,
				SUM(CASE WHEN rating = 0  THEN 1 ELSE 0 END) AS notry_count,
				COUNT(*) AS total_count
			FROM feedback
			GROUP BY food_id
		) fb ON fb.food_id = f.id
		WHERE mi.menu_date = ?
		ORDER BY p.name, c.sort_order, c.name, mi.sort_order, f.name
	`, date)
	if err != nil {
		return nil, fmt.Errorf("menu for date: %w", err)
	}
	defer rows.Close()

	var out []MenuRow
	for rows.Next() {
		var m MenuRow
		var up, down, notry, total sql.NullInt64

		if err := rows.Scan(
			&m.MenuDate,
			&m.PeriodName,
			&m.CategoryName,
			&m.CategorySort,
			&m.FoodID,
			&m.FoodName,
			&m.NutritionID,
			&m.Ingredients,
			&m.ImageURL,
			&up, &down, &notry, &total,
		); err != nil {
			return nil, fmt.Errorf("menu for date: %w", err)
		}

		m.Rollup = Rollup{
			Up:       int(up.Int64),
			Down:     int(down.Int64),
			NotTried: int(notry.Int64),
			Total:    int(total.Int64),
		}
		out = append(out, m)
	}

	return out, rows.Err()
}

func (r *SQLiteRepository) NutrientsForFood(ctx context.Context, foodID int64) (string, []NutrientValue, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			f.name AS food_name,
			n.name AS nutrient_name,
			n.unit AS unit,
			fn.value_numeric,
			fn.value_raw
		FROM food_nutrients fn
		JOIN nutrients n ON n.id = fn.nutrient_id
		JOIN foods f     ON f.id = fn.food_id
		WHERE fn.food_id = ?
		ORDER BY n.name
	`, foodID)
	if err != nil {
		return "", nil, fmt.Errorf("nutrients for food: %w", err)
	}
	defer rows.Close()

	var foodName string
	var values []NutrientValue
	for rows.Next() {
		var v NutrientValue
		if err := rows.Scan(&foodName, &v.Name, &v.Unit, &v.ValueNumeric, &v.ValueRaw); err != nil {
			return "", nil, fmt.Errorf("nutrients for food: %w", err)
		}
		values = append(values, v)
	}

	return foodName, values, rows.Err()
}
