package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoprates/ratings-review-api/internal/application"
	"github.com/shoprates/ratings-review-api/internal/domain/entity"
	"github.com/shoprates/ratings-review-api/internal/domain/repository"
	"github.com/shoprates/ratings-review-api/internal/interface/middleware"
	"github.com/shoprates/ratings-review-api/pkg/validation"
)

const (
	testProductID = "a3bb189e-8bf9-3888-9912-ace4e6543002"
	testUserID    = "user-1"
)

// -------- test fakes --------

type stubProductRepo struct {
	repository.ProductRepository
	known map[string]*entity.Product
}

func (s *stubProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if p, ok := s.known[id]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

type stubReviewRepo struct {
	repository.ReviewRepository
	existing  map[string]bool // userID + "|" + productID
	byProduct []entity.Review
}

func (s *stubReviewRepo) FindByUserAndProduct(ctx context.Context, userID, productID string) (*entity.Review, error) {
	if s.existing[userID+"|"+productID] {
		return &entity.Review{ID: "prior"}, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubReviewRepo) Create(ctx context.Context, r *entity.Review) error {
	r.ID = "review-1"
	r.CreatedAt = time.Now()
	return nil
}

func (s *stubReviewRepo) ListByProduct(ctx context.Context, productID string) ([]entity.Review, error) {
	return s.byProduct, nil
}

type stubTagRepo struct {
	repository.TagRepository
	batches  map[string][]string
	byReview map[string][]string
}

func (s *stubTagRepo) CreateBatch(ctx context.Context, reviewID string, values []string) error {
	if s.batches == nil {
		s.batches = map[string][]string{}
	}
	s.batches[reviewID] = values
	return nil
}

func (s *stubTagRepo) ListByReview(ctx context.Context, reviewID string) ([]string, error) {
	return s.byReview[reviewID], nil
}

// -------- harness --------

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func newTestRouter(t *testing.T, reviews *stubReviewRepo, tagRepo *stubTagRepo, products *stubProductRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	svc := application.NewReviewService(reviews, tagRepo, products, nil, logger)
	h := NewReviewHandler(svc, nil, "", logger)

	r := gin.New()
	// stand-in for the auth middleware: inject the user id directly
	authed := func(c *gin.Context) { c.Set(middleware.CtxUserIDKey, testUserID) }
	r.POST("/api/reviews", authed, h.Create)
	r.GET("/api/reviews/product/:productId", h.ListByProduct)
	r.GET("/api/reviews/product/:productId/tags", h.PopularTags)
	return r
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getPath(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func knownProducts() *stubProductRepo {
	return &stubProductRepo{known: map[string]*entity.Product{
		testProductID: {ID: testProductID, Name: "iPhone 15 Pro"},
	}}
}

// -------- tests --------

func TestCreateReview_Success(t *testing.T) {
	reviews := &stubReviewRepo{}
	tagRepo := &stubTagRepo{}
	r := newTestRouter(t, reviews, tagRepo, knownProducts())

	rating := 5
	w := postJSON(r, "/api/reviews", gin.H{
		"product_id":  testProductID,
		"rating":      rating,
		"review_text": "The camera is the best camera",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	env := decode(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, []string{"camera", "best"}, tagRepo.batches["review-1"])
}

func TestCreateReview_InvalidProductID(t *testing.T) {
	r := newTestRouter(t, &stubReviewRepo{}, &stubTagRepo{}, knownProducts())

	w := postJSON(r, "/api/reviews", gin.H{
		"product_id":  "not-a-uuid",
		"review_text": "fine",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Contains(t, string(env.Error), "product_id")
}

func TestCreateReview_Empty(t *testing.T) {
	r := newTestRouter(t, &stubReviewRepo{}, &stubTagRepo{}, knownProducts())

	w := postJSON(r, "/api/reviews", gin.H{"product_id": testProductID})

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.Contains(t, env.Message, "rating or review text")
}

func TestCreateReview_Duplicate(t *testing.T) {
	reviews := &stubReviewRepo{existing: map[string]bool{testUserID + "|" + testProductID: true}}
	r := newTestRouter(t, reviews, &stubTagRepo{}, knownProducts())

	w := postJSON(r, "/api/reviews", gin.H{
		"product_id":  testProductID,
		"review_text": "second attempt",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.Contains(t, env.Message, "already reviewed")
}

func TestCreateReview_UnknownProduct(t *testing.T) {
	r := newTestRouter(t, &stubReviewRepo{}, &stubTagRepo{}, &stubProductRepo{})

	w := postJSON(r, "/api/reviews", gin.H{
		"product_id":  testProductID,
		"review_text": "for a product that does not exist",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListReviews_AttachesTags(t *testing.T) {
	rating := 4
	reviews := &stubReviewRepo{byProduct: []entity.Review{
		{ID: "review-1", Rating: &rating, Text: "fast delivery", Username: "johndoe", CreatedAt: time.Now()},
	}}
	tagRepo := &stubTagRepo{byReview: map[string][]string{"review-1": {"fast", "delivery"}}}
	r := newTestRouter(t, reviews, tagRepo, knownProducts())

	w := getPath(r, "/api/reviews/product/"+testProductID)

	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	var views []application.ReviewView
	require.NoError(t, json.Unmarshal(env.Data, &views))
	require.Len(t, views, 1)
	assert.Equal(t, []string{"fast", "delivery"}, views[0].Tags)
	assert.Equal(t, "johndoe", views[0].Username)
}

func TestListReviews_UnknownProduct(t *testing.T) {
	r := newTestRouter(t, &stubReviewRepo{}, &stubTagRepo{}, &stubProductRepo{})

	w := getPath(r, "/api/reviews/product/"+testProductID)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
