package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elouannasse/fleet-management/internal/reports"
)

// ReportHandler exposes the read-only report endpoints.
type ReportHandler struct {
	service *reports.Service
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service *reports.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

// parseDateRange reads optional from/to query params as RFC 3339 dates.
func parseDateRange(c *gin.Context) (from, to *time.Time, err error) {
	if v := c.Query("from"); v != "" {
		t, parseErr := time.Parse(time.RFC3339, v)
		if parseErr != nil {
			return nil, nil, fmt.Errorf("invalid from date: %w", parseErr)
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, parseErr := time.Parse(time.RFC3339, v)
		if parseErr != nil {
			return nil, nil, fmt.Errorf("invalid to date: %w", parseErr)
		}
		to = &t
	}
	return from, to, nil
}

// Consumption returns the fuel consumption report.
func (h *ReportHandler) Consumption(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	report, err := h.service.Consumption(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"report": report}, "consumption report generated")
}

// Kilometrage returns the truck odometer report.
func (h *ReportHandler) Kilometrage(c *gin.Context) {
	report, err := h.service.Kilometrage(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"report": report}, "kilometrage report generated")
}

// Maintenance returns the maintenance cost report.
func (h *ReportHandler) Maintenance(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	report, err := h.service.MaintenanceCosts(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"report": report}, "maintenance report generated")
}

// Dashboard returns the fleet overview.
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.service.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"dashboard": dashboard}, "dashboard generated")
}

// ExportVehicles streams the fleet as an xlsx workbook.
func (h *ReportHandler) ExportVehicles(c *gin.Context) {
	f, err := h.service.ExportVehicles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("vehicles-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := f.Write(c.Writer); err != nil {
		respondError(c, err)
	}
}
