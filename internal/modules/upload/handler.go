package upload

import (
	"errors"
	"net/http"

	"brandlink/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Handler handles HTTP requests for image uploads. Any authenticated user can upload.
// maxRequestBody leaves room for multipart framing around a MaxFileSize file.
const maxRequestBody = MaxFileSize + 1<<20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload godoc
// @Summary Upload an image
// @Description JPEG, PNG, WebP or GIF up to 5 MB. Returns the public URL and id.
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image to upload"
// @Success 201 {object} map[string]interface{}
// @Failure 400,401,500 {object} map[string]interface{}
// @Router /upload [post]
func (h *Handler) Upload(c *gin.Context) {
	userID := c.GetInt64("user_id")

	if c.Request.ContentLength > maxRequestBody {
		response.Error(c, http.StatusBadRequest, "FILE_TOO_LARGE", "File must be 5MB or smaller")
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBody)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusBadRequest, "FILE_TOO_LARGE", "File must be 5MB or smaller")
			return
		}
		response.Error(c, http.StatusBadRequest, "NO_FILE", "No file provided")
		return
	}

	rec, err := h.service.Upload(c.Request.Context(), userID, fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyFile):
			response.Error(c, http.StatusBadRequest, "EMPTY_FILE", err.Error())
		case errors.Is(err, ErrFileTooLarge):
			response.Error(c, http.StatusBadRequest, "FILE_TOO_LARGE", "File must be 5MB or smaller")
		case errors.Is(err, ErrInvalidMimeType):
			response.Error(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "Only JPEG, PNG, WebP and GIF images are allowed")
		default:
			log.Error().Err(err).Int64("user_id", userID).Msg("upload failed")
			_ = c.Error(err)
			response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Upload failed")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"url":      rec.URL,
		"publicId": rec.PublicID,
	})
}

// ListMy godoc
// @Summary List my uploads
// @Tags Uploads
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /upload [get]
func (h *Handler) ListMy(c *gin.Context) {
	uploads, err := h.service.ListByUser(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list uploads")
		return
	}
	response.Success(c, http.StatusOK, uploads)
}
