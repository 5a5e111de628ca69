package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/shoprates/ratings-review-api/config"
	"github.com/shoprates/ratings-review-api/internal/domain/tags"
	"github.com/shoprates/ratings-review-api/pkg/helpers"
)

type seedUser struct {
	Username string
	Email    string
}

type seedProduct struct {
	Name        string
	Description string
	Price       float64
	ImageURL    string
	Category    string
}

type seedReview struct {
	UserIdx    int // index into users
	ProductIdx int // index into products
	Rating     int
	Text       string
}

var users = []seedUser{
	{"testuser", "test@example.com"},
	{"johndoe", "john@example.com"},
	{"janedoe", "jane@example.com"},
}

var products = []seedProduct{
	{"iPhone 15 Pro", "Latest Apple smartphone with advanced camera system and A17 Pro chip", 999.99, "https://images.unsplash.com/photo-1592750475338-74b7b21085ab?w=400", "Electronics"},
	{"MacBook Air M2", "Lightweight laptop with M2 chip and all-day battery life", 1199.99, "https://images.unsplash.com/photo-1541807084-5c52b6b3adef?w=400", "Electronics"},
	{"AirPods Pro", "Wireless earbuds with active noise cancellation", 249.99, "https://images.unsplash.com/photo-1606220945770-b5b6c2c55bf1?w=400", "Electronics"},
	{"Nike Air Max", "Comfortable running shoes with excellent cushioning", 129.99, "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=400", "Footwear"},
	{"Samsung Galaxy S24", "Android smartphone with great camera and performance", 899.99, "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=400", "Electronics"},
}

var reviews = []seedReview{
	{0, 0, 5, "Amazing phone! The camera quality is outstanding and battery life is excellent."},
	{1, 0, 4, "Great phone overall, but quite expensive. Camera is the highlight."},
	{0, 1, 5, "Perfect laptop for development work. Fast and reliable."},
	{2, 2, 5, "Best earbuds I have used. Noise cancellation is incredible."},
	{1, 3, 4, "Very comfortable shoes for running. Good value for money."},
}

const (
	insertUserSQL = `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username
		RETURNING id`

	insertProductSQL = `
		INSERT INTO products (name, description, price, image_url, category)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE SET
			description = EXCLUDED.description,
			price       = EXCLUDED.price,
			image_url   = EXCLUDED.image_url,
			category    = EXCLUDED.category
		RETURNING id`

	insertReviewSQL = `
		INSERT INTO reviews (user_id, product_id, rating, review_text)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT reviews_user_product_key DO NOTHING
		RETURNING id`

	insertTagSQL = `INSERT INTO review_tags (review_id, tag) VALUES ($1, $2)`
)

// Seeds the demo dataset. Safe to run repeatedly: users and products are
// upserted by their unique keys, reviews skip conflicts on
// (user_id, product_id), and tags are re-derived from the review text.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	hash, err := helpers.HashPassword("password123")
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	userIDs := make([]string, len(users))
	for i, u := range users {
		if err := db.QueryRow(insertUserSQL, u.Username, u.Email, hash).Scan(&userIDs[i]); err != nil {
			log.Fatalf("failed to seed user %s: %v", u.Email, err)
		}
	}
	fmt.Printf("seeded %d users (password: password123)\n", len(users))

	productIDs := make([]string, len(products))
	for i, p := range products {
		if err := db.QueryRow(insertProductSQL, p.Name, p.Description, p.Price, p.ImageURL, p.Category).Scan(&productIDs[i]); err != nil {
			log.Fatalf("failed to seed product %s: %v", p.Name, err)
		}
	}
	fmt.Printf("seeded %d products\n", len(products))

	seededReviews := 0
	for _, r := range reviews {
		var reviewID string
		err := db.QueryRow(insertReviewSQL, userIDs[r.UserIdx], productIDs[r.ProductIdx], r.Rating, r.Text).Scan(&reviewID)
		if errors.Is(err, sql.ErrNoRows) {
			continue // already seeded
		}
		if err != nil {
			log.Fatalf("failed to seed review: %v", err)
		}
		seededReviews++

		for _, tag := range tags.Extract(r.Text) {
			if _, err := db.Exec(insertTagSQL, reviewID, tag); err != nil {
				log.Fatalf("failed to seed tag %q: %v", tag, err)
			}
		}
	}
	fmt.Printf("seeded %d reviews (existing ones left untouched)\n", seededReviews)
	fmt.Println("test account: test@example.com / password123")
}
