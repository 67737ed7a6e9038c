package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/prospects/models"
)

// respondError writes err as an ErrorResponse with a status matching its code.
func respondError(c *gin.Context, err error, start time.Time) {
	scrapeErr := models.AsScrapeError(err)

	c.JSON(mapErrorToStatus(scrapeErr), models.ErrorResponse{
		Success: false,
		Error:   scrapeErr.ToDetail(),
		Timing:  timing(start),
	})
}

// badRequest reports a body that failed binding or validation.
func badRequest(c *gin.Context, err error, start time.Time) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Error: &models.ErrorDetail{
			Code:    models.ErrCodeInvalidInput,
			Message: err.Error(),
		},
		Timing: timing(start),
	})
}

// mapErrorToStatus converts a ScrapeError code to an HTTP status code.
func mapErrorToStatus(e *models.ScrapeError) int {
	if e.IsParse() {
		return http.StatusUnprocessableEntity // 422
	}
	switch e.Code {
	case models.ErrCodeFetch:
		return http.StatusBadGateway // 502
	case models.ErrCodeCanceled:
		return http.StatusRequestTimeout // 408
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}

func timing(start time.Time) models.TimingInfo {
	return models.TimingInfo{TotalMs: time.Since(start).Milliseconds()}
}
