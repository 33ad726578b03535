package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"storefront-catalog-service/internal/repository"
	"storefront-catalog-service/internal/services"
)

// SyncHandler handles sync trigger and audit endpoints
type SyncHandler struct {
	service  *services.SyncService
	audits   repository.SyncRepositoryInterface
	products repository.ProductRepositoryInterface
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(
	service *services.SyncService,
	audits repository.SyncRepositoryInterface,
	products repository.ProductRepositoryInterface,
) *SyncHandler {
	return &SyncHandler{
		service:  service,
		audits:   audits,
		products: products,
	}
}

// Trigger runs an incremental sync. The run is synchronous and always
// answers with a structured result; callers inspect the success flag.
func (h *SyncHandler) Trigger(c *gin.Context) {
	result := h.service.Run(c.Request.Context())
	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadGateway
	}
	c.JSON(status, result)
}

// TriggerFull runs the destructive full resync (clears the table first)
func (h *SyncHandler) TriggerFull(c *gin.Context) {
	result := h.service.RunFull(c.Request.Context())
	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadGateway
	}
	c.JSON(status, result)
}

// Status returns the most recent sync audit entry
func (h *SyncHandler) Status(c *gin.Context) {
	audit, err := h.audits.LatestAudit(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no sync has run yet"})
		return
	}
	c.JSON(http.StatusOK, audit)
}

// History returns recent sync audit entries, newest first
func (h *SyncHandler) History(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	audits, err := h.audits.ListAudits(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": audits})
}

// AdminStats backs the admin dashboard placeholder: product count plus
// aggregate sync-run statistics.
func (h *SyncHandler) AdminStats(c *gin.Context) {
	productCount, err := h.products.CountAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	stats, err := h.audits.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalProducts": productCount,
		"sync":          stats,
	})
}
