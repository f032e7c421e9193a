package review

// Swipe ratings: right is an upvote, left a downvote, up means the
// reviewer did not try the dish.
const (
	RatingDown     = -1
	RatingNotTried = 0
	RatingUp       = 1
)

// Feedback is one immutable vote record. Never updated or deleted.
type Feedback struct {
	ID        int64   `json:"id"`
	FoodID    int64   `json:"food_id"`
	UserID    *string `json:"user_id"`
	Rating    int     `json:"rating"`
	Comment   *string `json:"comment"`
	CreatedAt string  `json:"created_at"`
}

// ReviewItem is one card in the swipe-review deck.
type ReviewItem struct {
	FoodID      int64    `json:"food_id"`
	FoodName    string   `json:"food_name"`
	Ingredients *string  `json:"ingredients"`
	ImageURL    *string  `json:"image_url"`
	AllergyTags []string `json:"allergy_tags"`
}
