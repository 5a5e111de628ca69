package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoprates/ratings-review-api/internal/domain/entity"
)

const (
	phoneID  = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	laptopID = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
)

func TestProductListAggregatesRatings(t *testing.T) {
	four, five := 4, 5
	products := &fakeProductRepo{
		products: map[string]*entity.Product{},
		list: []entity.Product{
			{ID: phoneID, Name: "Phone"},
			{ID: laptopID, Name: "Laptop"},
		},
	}
	reviews := &fakeReviewRepo{allRatings: []entity.Review{
		{ProductID: phoneID, Rating: &five},
		{ProductID: phoneID, Rating: &four},
		{ProductID: phoneID}, // text-only review counts, no rating
	}}
	svc := NewProductService(products, reviews, nil, "", nil)

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, 4.5, views[0].AverageRating)
	assert.Equal(t, 3, views[0].ReviewCount)

	// A product with no reviews is a zero summary, not an error.
	assert.Equal(t, 0.0, views[1].AverageRating)
	assert.Equal(t, 0, views[1].ReviewCount)
}

func TestProductGetRecomputesSummary(t *testing.T) {
	two := 2
	products := &fakeProductRepo{products: map[string]*entity.Product{
		phoneID: {ID: phoneID, Name: "Phone", Price: 499.99},
	}}
	reviews := &fakeReviewRepo{ratings: []entity.Review{
		{ProductID: phoneID, Rating: &two},
		{ProductID: phoneID},
	}}
	svc := NewProductService(products, reviews, nil, "", nil)

	v, err := svc.Get(context.Background(), phoneID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v.AverageRating)
	assert.Equal(t, 2, v.ReviewCount)
	assert.Equal(t, 499.99, v.Price)
}

func TestProductGetNotFound(t *testing.T) {
	svc := NewProductService(&fakeProductRepo{products: map[string]*entity.Product{}}, &fakeReviewRepo{}, nil, "", nil)

	_, err := svc.Get(context.Background(), phoneID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductSearchWithoutESDegrades(t *testing.T) {
	svc := NewProductService(&fakeProductRepo{}, &fakeReviewRepo{}, nil, "", nil)

	hits, err := svc.Search(context.Background(), "headphones", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
