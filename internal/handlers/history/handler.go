package history

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mkovalenko-dev/weather-search-api/internal/models"
)

type HistoryServicer interface {
	Save(ctx context.Context, req models.SaveSearchRequest) (int64, error)
	List(ctx context.Context) ([]models.WeatherSearchRecord, error)
	Update(ctx context.Context, id int64, req models.UpdateSearchRequest) error
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	Service HistoryServicer
}

func NewHandler(svc HistoryServicer) *Handler {
	return &Handler{Service: svc}
}

// Save
// @Summary Save a weather search
// @Description Persists a snapshot of fetched weather for later browsing
// @Tags history
// @Accept json
// @Produce json
// @Param request body models.SaveSearchRequest true "Search snapshot"
// @Success 200
// @Failure 400
// @Failure 500
// @Router /weather/history [post]
func (h *Handler) Save(c *gin.Context) {
	var req models.SaveSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	id, err := h.Service.Save(c.Request.Context(), req)
	if err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save weather data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "message": "Weather data saved successfully"})
}

// List
// @Summary List recent searches
// @Description Returns up to the 100 most recent saved searches, newest first
// @Tags history
// @Produce json
// @Success 200 {array} models.WeatherSearchRecord
// @Failure 500
// @Router /weather/history [get]
func (h *Handler) List(c *gin.Context) {
	records, err := h.Service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch weather history"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// Update
// @Summary Update a saved search
// @Description Rewrites the mutable fields of a record; date range and coordinates stay fixed
// @Tags history
// @Accept json
// @Produce json
// @Param id path int true "Record ID"
// @Param request body models.UpdateSearchRequest true "New field values"
// @Success 200
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /weather/history/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID"})
		return
	}

	var req models.UpdateSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.Service.Update(c.Request.Context(), id, req); err != nil {
		var ve *models.ValidationError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Reason})
		case errors.Is(err, models.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Weather record not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update weather data"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Weather data updated successfully"})
}

// Delete
// @Summary Delete a saved search
// @Tags history
// @Produce json
// @Param id path int true "Record ID"
// @Success 200
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /weather/history/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID"})
		return
	}

	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Weather record not found"})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete weather data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Weather data deleted successfully"})
}
