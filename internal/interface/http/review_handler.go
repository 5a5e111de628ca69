package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/shoprates/ratings-review-api/internal/application"
	"github.com/shoprates/ratings-review-api/internal/interface/middleware"
	"github.com/shoprates/ratings-review-api/pkg/helpers"
	"github.com/shoprates/ratings-review-api/pkg/response"
	"github.com/shoprates/ratings-review-api/pkg/validation"
)

const maxReviewImageBytes = 5 << 20

type ReviewHandler struct {
	Svc    *application.ReviewService
	GCS    *storage.Client
	Bucket string
	Logger *logrus.Logger
}

func NewReviewHandler(svc *application.ReviewService, gcs *storage.Client, bucket string, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{Svc: svc, GCS: gcs, Bucket: bucket, Logger: logger}
}

type createReviewRequest struct {
	ProductID  string   `json:"product_id" binding:"required,uuid"`
	Rating     *int     `json:"rating" binding:"omitempty,min=1,max=5"`
	ReviewText string   `json:"review_text" binding:"omitempty,max=1000"`
	Images     []string `json:"images" binding:"omitempty,max=5,dive,url"`
}

// Create POST /api/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	userID := c.GetString(middleware.CtxUserIDKey)
	review, err := h.Svc.Create(c.Request.Context(), userID, application.CreateReviewInput{
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Text:      req.ReviewText,
		Images:    req.Images,
	})
	switch {
	case errors.Is(err, application.ErrEmptyReview):
		response.Error(c, http.StatusBadRequest, "review must include a rating or review text", nil)
		return
	case errors.Is(err, application.ErrRatingOutOfRange):
		response.Error(c, http.StatusBadRequest, "rating must be between 1 and 5", nil)
		return
	case errors.Is(err, application.ErrAlreadyReviewed):
		response.Error(c, http.StatusBadRequest, "you have already reviewed this product", nil)
		return
	case errors.Is(err, application.ErrProductNotFound):
		response.Error(c, http.StatusNotFound, "product not found", nil)
		return
	case err != nil:
		h.Logger.WithError(err).WithField("product_id", req.ProductID).Error("review creation failed")
		response.Error(c, http.StatusInternalServerError, "could not create review", nil)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"id": review.ID}, "review created", nil)
}

// ListByProduct GET /api/reviews/product/:productId
func (h *ReviewHandler) ListByProduct(c *gin.Context) {
	productID := c.Param("productId")
	views, err := h.Svc.ListByProduct(c.Request.Context(), productID)
	switch {
	case errors.Is(err, application.ErrProductNotFound):
		response.Error(c, http.StatusNotFound, "product not found", nil)
		return
	case err != nil:
		h.Logger.WithError(err).WithField("product_id", productID).Error("review listing failed")
		response.Error(c, http.StatusInternalServerError, "could not load reviews", nil)
		return
	}
	response.Success(c, http.StatusOK, views, "reviews", gin.H{"count": len(views)})
}

// PopularTags GET /api/reviews/product/:productId/tags
func (h *ReviewHandler) PopularTags(c *gin.Context) {
	productID := c.Param("productId")
	ranked, err := h.Svc.PopularTags(c.Request.Context(), productID)
	switch {
	case errors.Is(err, application.ErrProductNotFound):
		response.Error(c, http.StatusNotFound, "product not found", nil)
		return
	case err != nil:
		h.Logger.WithError(err).WithField("product_id", productID).Error("tag ranking failed")
		response.Error(c, http.StatusInternalServerError, "could not load tags", nil)
		return
	}
	response.Success(c, http.StatusOK, ranked, "popular tags", gin.H{"count": len(ranked)})
}

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadImage POST /api/reviews/images (multipart field "image").
// Returns the public URL to reference in a later review payload.
func (h *ReviewHandler) UploadImage(c *gin.Context) {
	if h.GCS == nil || h.Bucket == "" {
		response.Error(c, http.StatusServiceUnavailable, "image uploads are not configured", nil)
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "multipart field 'image' is required", nil)
		return
	}
	if fileHeader.Size > maxReviewImageBytes {
		response.Error(c, http.StatusBadRequest, "image exceeds the 5MB limit", nil)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		response.Error(c, http.StatusBadRequest, "unsupported image type", gin.H{"allowed": []string{"image/jpeg", "image/png", "image/webp"}})
		return
	}
	// Prefer the original extension when it matches the declared type.
	if orig := strings.ToLower(filepath.Ext(fileHeader.Filename)); orig == ".jpeg" && ext == ".jpg" {
		ext = ".jpeg"
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "could not read uploaded file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	userID := c.GetString(middleware.CtxUserIDKey)
	objectPath := fmt.Sprintf("reviews/%s/%s%s", userID, uuid.NewString(), ext)

	url, err := helpers.UploadObject(c.Request.Context(), h.GCS, h.Bucket, objectPath, contentType, f)
	if err != nil {
		h.Logger.WithError(err).WithField("object", objectPath).Error("image upload failed")
		response.Error(c, http.StatusInternalServerError, "upload failed", nil)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"url": url}, "image uploaded", nil)
}
