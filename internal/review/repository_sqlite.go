package review

import (
	"context"
	"database/sql"
	"fmt"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) AppendFeedback(ctx context.Context, foodID int64, rating int, userID, comment *string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO feedback (food_id, user_id, rating, comment, created_at)
		VALUES (?, ?, ?, ?, datetime('now'))
	`, foodID, userID, rating, comment)
	if err != nil {
		return fmt.Errorf("append feedback: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ReviewItemsFor(ctx context.Context, date, periodName string) ([]ReviewItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT
			f.id AS food_id,
			f.name AS food_name,
			f.ingredients AS ingredients,
			f.image_url AS image_url
		FROM menu_items mi
		JOIN periods p ON mi.period_id = p.id
		JOIN foods f   ON mi.food_id = f.id
		WHERE mi.menu_date = ?
		  AND p.name = ?
		ORDER BY f.name
	`, date, periodName)
	if err != nil {
		return nil, fmt.Errorf("review items: %w", err)
	}
	defer rows.Close()

	var items []ReviewItem
	for rows.Next() {
		var item ReviewItem
		if err := rows.Scan(&item.FoodID, &item.FoodName, &item.Ingredients, &item.ImageURL); err != nil {
			return nil, fmt.Errorf("review items: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
