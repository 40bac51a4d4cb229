package export

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkovalenko-dev/weather-search-api/internal/models"
	"github.com/mkovalenko-dev/weather-search-api/internal/services/export"
)

type ExportServicer interface {
	Export(ctx context.Context, format string) (export.Payload, error)
}

type Handler struct {
	Service ExportServicer
}

func NewHandler(svc ExportServicer) *Handler {
	return &Handler{Service: svc}
}

// Export
// @Summary Export the search history
// @Description Streams every saved search as a downloadable json, csv, or xml document
// @Tags export
// @Produce json
// @Produce text/csv
// @Produce application/xml
// @Param format path string true "Export format" Enums(json, csv, xml)
// @Success 200
// @Failure 400
// @Failure 404
// @Failure 500
// @Router /export/{format} [get]
func (h *Handler) Export(c *gin.Context) {
	payload, err := h.Service.Export(c.Request.Context(), c.Param("format"))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUnsupportedFormat):
			c.JSON(http.StatusBadRequest,
				gin.H{"error": "Unsupported export format. Use json, csv, or xml."})
		case errors.Is(err, models.ErrNoData):
			c.JSON(http.StatusNotFound, gin.H{"error": "No data available for export"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export data"})
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", payload.Filename))
	c.Data(http.StatusOK, payload.ContentType, payload.Body)
}
