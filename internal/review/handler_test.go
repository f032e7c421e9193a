package review

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupRouter(repo Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(NewService(repo))

	router := gin.New()
	router.POST("/api/reviews", handler.RecordVote)
	router.GET("/api/reviews/items", handler.ReviewItems)
	return router
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRecordVoteEndpoint(t *testing.T) {
	mockRepo := NewMockRepository()
	router := setupRouter(mockRepo)

	w := postJSON(router, "/api/reviews", map[string]any{
		"food_id": 12,
		"rating":  1,
		"comment": "great",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(mockRepo.votes) != 1 {
		t.Fatalf("expected 1 recorded vote, got %d", len(mockRepo.votes))
	}
	if mockRepo.votes[0].userID != nil {
		t.Errorf("vote without a token must be anonymous")
	}
}

func TestRecordVoteEndpointMissingRating(t *testing.T) {
	router := setupRouter(NewMockRepository())

	w := postJSON(router, "/api/reviews", map[string]any{"food_id": 12})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestRecordVoteEndpointInvalidRating(t *testing.T) {
	router := setupRouter(NewMockRepository())

	w := postJSON(router, "/api/reviews", map[string]any{
		"food_id": 12,
		"rating":  3,
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestRecordVoteEndpointZeroRatingIsValid(t *testing.T) {
	mockRepo := NewMockRepository()
	router := setupRouter(mockRepo)

	// Rating 0 ("didn't try") must not be confused with a missing field.
	w := postJSON(router, "/api/reviews", map[string]any{
		"food_id": 12,
		"rating":  0,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(mockRepo.votes) != 1 || mockRepo.votes[0].rating != RatingNotTried {
		t.Fatalf("expected one not-tried vote, got %+v", mockRepo.votes)
	}
}

func TestReviewItemsEndpoint(t *testing.T) {
	mockRepo := NewMockRepository()
	mockRepo.items["2025-11-21/Lunch"] = []ReviewItem{
		{FoodID: 1, FoodName: "Cheeseburger"},
	}
	router := setupRouter(mockRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/reviews/items?date=2025-11-21&period=Lunch", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Items []ReviewItem `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].FoodName != "Cheeseburger" {
		t.Fatalf("unexpected items: %+v", resp.Items)
	}
}

func TestReviewItemsEndpointBadDate(t *testing.T) {
	router := setupRouter(NewMockRepository())

	req := httptest.NewRequest(http.MethodGet, "/api/reviews/items?date=21-11-2025", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestReviewItemsEndpointEmptyDeck(t *testing.T) {
	router := setupRouter(NewMockRepository())

	req := httptest.NewRequest(http.MethodGet, "/api/reviews/items?date=2025-11-21", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Items []ReviewItem `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Items == nil || len(resp.Items) != 0 {
		t.Fatalf("expected an empty items array, got %+v", resp.Items)
	}
}
