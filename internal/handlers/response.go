package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/elouannasse/fleet-management/internal/auth"
	"github.com/elouannasse/fleet-management/internal/db"
	"github.com/elouannasse/fleet-management/internal/maintenance"
	"github.com/elouannasse/fleet-management/internal/models"
	"github.com/elouannasse/fleet-management/internal/trips"
)

// Pagination describes one page of a list response.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int64 `json:"page"`
	Pages int64 `json:"pages"`
	Limit int64 `json:"limit"`
}

func newPagination(page, limit, total int64) Pagination {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return Pagination{Total: total, Page: page, Pages: pages, Limit: limit}
}

// parsePagination reads page and limit query params with sane defaults.
func parsePagination(c *gin.Context) (page, limit int64) {
	page, _ = strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ = strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func respondOK(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func respondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": message,
	})
}

func respondUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
}

// respondError maps domain sentinels to HTTP status codes; everything
// else is a 500.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, db.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, db.ErrDuplicate):
		status = http.StatusConflict
	case errors.Is(err, trips.ErrInvalidTransition),
		errors.Is(err, trips.ErrTripInProgress),
		errors.Is(err, trips.ErrTripCompleted),
		errors.Is(err, trips.ErrOdometerRegression),
		errors.Is(err, maintenance.ErrMaintenanceInProgress),
		errors.Is(err, maintenance.ErrMaintenanceCompleted),
		errors.Is(err, models.ErrRuleNoInterval),
		errors.Is(err, models.ErrRuleThresholdTooBig):
		status = http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrUserInactive),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}

	c.JSON(status, gin.H{
		"success": false,
		"message": err.Error(),
	})
}
