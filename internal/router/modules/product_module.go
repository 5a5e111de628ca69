package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shoprates/ratings-review-api/internal/container"
	handlers "github.com/shoprates/ratings-review-api/internal/interface/http"
	"github.com/shoprates/ratings-review-api/internal/interface/middleware"
)

// ProductModule exposes the public catalog routes
// GET /api/products, GET /api/products/search, GET /api/products/:id

type ProductModule struct {
	Handler *handlers.ProductHandler
}

func NewProductModule(h *handlers.ProductHandler) *ProductModule {
	return &ProductModule{Handler: h}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil)

	products := rg.Group("/products", rl)
	{
		products.GET("", m.Handler.List)
		// Registered before :id so "search" is not read as a product id.
		products.GET("/search", m.Handler.Search)
		products.GET("/:id", m.Handler.Get)
	}
}
