package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/shoprates/ratings-review-api/internal/application"
	"github.com/shoprates/ratings-review-api/pkg/response"
)

type ProductHandler struct {
	Svc    *application.ProductService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.ProductService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

// List GET /api/products
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("product listing failed")
		response.Error(c, http.StatusInternalServerError, "could not load products", nil)
		return
	}
	response.Success(c, http.StatusOK, products, "products", gin.H{"count": len(products)})
}

// Get GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id := c.Param("id")
	p, err := h.Svc.Get(c.Request.Context(), id)
	switch {
	case errors.Is(err, application.ErrProductNotFound):
		response.Error(c, http.StatusNotFound, "product not found", nil)
		return
	case err != nil:
		h.Logger.WithError(err).WithField("product_id", id).Error("product fetch failed")
		response.Error(c, http.StatusInternalServerError, "could not load product", nil)
		return
	}
	response.Success(c, http.StatusOK, p, "product", nil)
}

// Search GET /api/products/search?q=...&size=...
func (h *ProductHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error(c, http.StatusBadRequest, "query parameter 'q' is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).WithField("query", q).Error("product search failed")
		response.Error(c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", gin.H{"count": len(hits), "query": q})
}
