package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/shoprates/ratings-review-api/internal/domain/entity"
	"github.com/shoprates/ratings-review-api/internal/domain/rating"
	"github.com/shoprates/ratings-review-api/internal/domain/repository"
)

type ProductService struct {
	Products repository.ProductRepository
	Reviews  repository.ReviewRepository
	ES       *elasticsearch.Client
	ESIndex  string
	Logger   *logrus.Logger
}

func NewProductService(products repository.ProductRepository, reviews repository.ReviewRepository, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *ProductService {
	return &ProductService{Products: products, Reviews: reviews, ES: es, ESIndex: esIndex, Logger: logger}
}

// ProductView is a product with its recomputed rating summary.
type ProductView struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	ImageURL      string    `json:"image_url"`
	Category      string    `json:"category"`
	CreatedAt     time.Time `json:"created_at"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int       `json:"review_count"`
}

func view(p entity.Product, s rating.Summary) ProductView {
	return ProductView{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		ImageURL:      p.ImageURL,
		Category:      p.Category,
		CreatedAt:     p.CreatedAt,
		AverageRating: s.Average,
		ReviewCount:   s.Count,
	}
}

// List returns the catalog newest-first with a rating summary per
// product. Ratings are fetched in one pass and grouped in memory, so a
// listing costs two queries however large the catalog.
func (s *ProductService) List(ctx context.Context) ([]ProductView, error) {
	products, err := s.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	ratingRows, err := s.Reviews.ListAllRatings(ctx)
	if err != nil {
		return nil, err
	}

	byProduct := make(map[string][]entity.Review, len(products))
	for _, row := range ratingRows {
		byProduct[row.ProductID] = append(byProduct[row.ProductID], row)
	}

	out := make([]ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, view(p, rating.Aggregate(byProduct[p.ID])))
	}
	return out, nil
}

// Get returns one product with its rating summary, recomputed from the
// review rows at call time.
func (s *ProductService) Get(ctx context.Context, id string) (*ProductView, error) {
	p, err := s.Products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	rows, err := s.Reviews.ListRatings(ctx, id)
	if err != nil {
		return nil, err
	}
	v := view(*p, rating.Aggregate(rows))
	return &v, nil
}

// Search runs a multi_match query against the product index. Without a
// configured Elasticsearch client it degrades to an empty result.
func (s *ProductService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "description", "category"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// Index refreshes the product's search document: the summary is
// recomputed from review rows and written to Elasticsearch. Called by
// the indexer worker on ReviewCreated events and by seeding.
func (s *ProductService) Index(ctx context.Context, productID string) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	v, err := s.Get(ctx, productID)
	if err != nil {
		return err
	}

	doc := map[string]any{
		"id":             v.ID,
		"name":           v.Name,
		"description":    v.Description,
		"price":          v.Price,
		"category":       v.Category,
		"average_rating": v.AverageRating,
		"review_count":   v.ReviewCount,
		"created_at":     v.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)

	req := esapi.IndexRequest{
		Index:      s.ESIndex,
		DocumentID: v.ID,
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		if s.Logger != nil {
			s.Logger.WithField("status", res.Status()).WithField("product_id", v.ID).Warn("es index response error")
		}
		return errors.New("es index failed: " + res.Status())
	}
	return nil
}
