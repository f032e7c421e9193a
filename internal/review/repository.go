package review

import "context"

// Repository defines the feedback data-access contract.
type Repository interface {

	// Pure insert with a server-assigned timestamp; feedback rows
	// accumulate without bound and are never mutated.
	AppendFeedback(ctx context.Context, foodID int64, rating int, userID, comment *string) error

	// Distinct foods served on that date in that period, ordered by
	// name. Empty when the date or period has no menu.
	ReviewItemsFor(ctx context.Context, date, periodName string) ([]ReviewItem, error)
}
