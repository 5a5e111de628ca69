package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shoprates/ratings-review-api/internal/container"
	handlers "github.com/shoprates/ratings-review-api/internal/interface/http"
	"github.com/shoprates/ratings-review-api/internal/interface/middleware"
	"github.com/shoprates/ratings-review-api/pkg/helpers"
)

// ReviewModule wires review routes
// Public: GET /api/reviews/product/:productId, GET /api/reviews/product/:productId/tags
// Protected: POST /api/reviews, POST /api/reviews/images

type ReviewModule struct {
	Handler *handlers.ReviewHandler
	JWT     *helpers.JWTManager
}

func NewReviewModule(h *handlers.ReviewHandler, jwt *helpers.JWTManager) *ReviewModule {
	return &ReviewModule{Handler: h, JWT: jwt}
}

func (m *ReviewModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)

	reviews := rg.Group("/reviews")
	{
		reviews.GET("/product/:productId", readLimiter, m.Handler.ListByProduct)
		reviews.GET("/product/:productId/tags", readLimiter, m.Handler.PopularTags)

		auth := reviews.Group("")
		auth.Use(middleware.Auth(m.JWT))
		auth.Use(middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID(), nil))
		{
			auth.POST("", m.Handler.Create)
			auth.POST("/images", m.Handler.UploadImage)
		}
	}
}
