package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shoprates/ratings-review-api/internal/domain/entity"
	"github.com/shoprates/ratings-review-api/internal/domain/repository"
	"github.com/shoprates/ratings-review-api/internal/domain/tags"
	"github.com/shoprates/ratings-review-api/pkg/events"
	"github.com/shoprates/ratings-review-api/pkg/helpers"
)

var (
	// ErrAlreadyReviewed and ErrEmptyReview are separate sentinels on
	// purpose: the caller presents "already reviewed" and "provide a
	// rating or text" as different messages.
	ErrAlreadyReviewed  = errors.New("product already reviewed by this user")
	ErrEmptyReview      = errors.New("review needs a rating or text")
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
	ErrProductNotFound  = errors.New("product not found")
)

type ReviewService struct {
	Reviews  repository.ReviewRepository
	Tags     repository.TagRepository
	Products repository.ProductRepository
	Pub      *helpers.RabbitPublisher
	Logger   *logrus.Logger
}

func NewReviewService(reviews repository.ReviewRepository, tagRepo repository.TagRepository, products repository.ProductRepository, pub *helpers.RabbitPublisher, logger *logrus.Logger) *ReviewService {
	return &ReviewService{Reviews: reviews, Tags: tagRepo, Products: products, Pub: pub, Logger: logger}
}

type CreateReviewInput struct {
	ProductID string
	Rating    *int
	Text      string
	Images    []string
}

// ReviewView is a review shaped for display: reviewer name and derived
// tags attached.
type ReviewView struct {
	ID        string    `json:"id"`
	Rating    *int      `json:"rating"`
	Text      string    `json:"review_text"`
	Images    []string  `json:"images"`
	Tags      []string  `json:"tags"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Create admits and persists a review, then derives and stores its
// tags. Admission rejects a second review from the same user for the
// same product, and a review carrying neither rating nor text. The
// cross-request duplicate race is settled by the store's unique
// constraint, surfaced here as ErrAlreadyReviewed.
func (s *ReviewService) Create(ctx context.Context, userID string, in CreateReviewInput) (*entity.Review, error) {
	text := strings.TrimSpace(in.Text)
	if in.Rating == nil && text == "" {
		return nil, ErrEmptyReview
	}
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		return nil, ErrRatingOutOfRange
	}

	if _, err := s.Products.GetByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if _, err := s.Reviews.FindByUserAndProduct(ctx, userID, in.ProductID); err == nil {
		return nil, ErrAlreadyReviewed
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	review := &entity.Review{
		UserID:    userID,
		ProductID: in.ProductID,
		Rating:    in.Rating,
		Text:      text,
		Images:    in.Images,
	}
	if err := s.Reviews.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	extracted := tags.Extract(review.Text)
	if len(extracted) > 0 {
		if err := s.Tags.CreateBatch(ctx, review.ID, extracted); err != nil {
			return nil, err
		}
	}

	s.publishCreated(ctx, review, extracted)
	return review, nil
}

// publishCreated emits a ReviewCreated event for the search indexer.
// Publishing is best effort: a broker outage must not fail the write.
func (s *ReviewService) publishCreated(ctx context.Context, r *entity.Review, extracted []string) {
	if s.Pub == nil {
		return
	}
	evt := events.ReviewCreated{
		ReviewID:  r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Tags:      extracted,
		CreatedAt: r.CreatedAt,
	}
	if err := s.Pub.PublishJSON(ctx, evt); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("review_id", r.ID).Warn("review event publish failed")
	}
}

// ListByProduct returns a product's reviews newest-first, each with its
// stored tags. Unknown products are a distinct failure so the handler
// can 404.
func (s *ReviewService) ListByProduct(ctx context.Context, productID string) ([]ReviewView, error) {
	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	reviews, err := s.Reviews.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	views := make([]ReviewView, 0, len(reviews))
	for _, r := range reviews {
		tagValues, err := s.Tags.ListByReview(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		if tagValues == nil {
			tagValues = []string{}
		}
		images := r.Images
		if images == nil {
			images = []string{}
		}
		views = append(views, ReviewView{
			ID:        r.ID,
			Rating:    r.Rating,
			Text:      r.Text,
			Images:    images,
			Tags:      tagValues,
			Username:  r.Username,
			CreatedAt: r.CreatedAt,
		})
	}
	return views, nil
}

// PopularTags recomputes a product's ranked tag list from its stored
// tag rows on every call; nothing is cached.
func (s *ReviewService) PopularTags(ctx context.Context, productID string) ([]tags.TagCount, error) {
	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	rows, err := s.Tags.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return tags.Rank(rows), nil
}
