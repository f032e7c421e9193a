package review

import (
	"context"
	"errors"

	"cafeteria/internal/menu"
)

var (
	ErrInvalidRating = errors.New("rating must be -1, 0 or 1")
	ErrInvalidFood   = errors.New("food_id is required")
)

// DefaultPeriod is the meal slot the review deck opens on when the
// caller does not pick one.
const DefaultPeriod = "Lunch"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RecordVote appends one feedback row. userID is nil for anonymous
// votes.
func (s *Service) RecordVote(ctx context.Context, foodID int64, rating int, userID, comment *string) error {
	if foodID <= 0 {
		return ErrInvalidFood
	}

	switch rating {
	case RatingDown, RatingNotTried, RatingUp:
	default:
		return ErrInvalidRating
	}

	return s.repo.AppendFeedback(ctx, foodID, rating, userID, comment)
}

// ReviewItems builds the swipe deck for a date and period, both
// defaulted when empty (today, Lunch).
func (s *Service) ReviewItems(ctx context.Context, date, periodName string) ([]ReviewItem, error) {
	if date == "" {
		date = menu.Today()
	}
	if periodName == "" {
		periodName = DefaultPeriod
	}

	items, err := s.repo.ReviewItemsFor(ctx, date, periodName)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].Ingredients != nil {
			items[i].AllergyTags = menu.AllergenTags(*items[i].Ingredients)
		}
	}

	return items, nil
}
