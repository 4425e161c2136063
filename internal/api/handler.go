package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"catalog-service/internal/models"
	"catalog-service/internal/service"
	"catalog-service/internal/store"
	"catalog-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	lifecycle *service.LifecycleService
	guard     *service.DedupGuard
}

// NewHandler creates a new HTTP handler
func NewHandler(lifecycle *service.LifecycleService, guard *service.DedupGuard) *Handler {
	return &Handler{
		lifecycle: lifecycle,
		guard:     guard,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/items", h.submitItem)
		v1.POST("/items/batch", h.submitBatch)
		v1.POST("/items/approve", h.approveItems)
		v1.POST("/items/reject", h.rejectItems)
		v1.POST("/items/resubmit", h.resubmitItems)
		v1.POST("/items/remove", h.removeItems)
		v1.PUT("/items/:id", h.updateItem)

		v1.GET("/supply-labels/missing", h.listMissingSupplyLabel)
		v1.POST("/supply-labels", h.fillSupplyLabels)

		v1.GET("/stores/:store/items", h.listStore)
		v1.GET("/stores/:store/items/:id", h.getItem)
		v1.GET("/removed", h.listRemoved)
		v1.GET("/history", h.history)
		v1.GET("/codes/:code/availability", h.codeAvailability)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// writeError maps the service error taxonomy onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	var (
		val *models.ValidationError
		dup *models.DuplicateCodeError
		nf  *models.NotFoundError
		tr  *models.TransientStoreError
	)
	switch {
	case errors.As(err, &val):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error(), "missing": val.Missing})
	case errors.As(err, &dup):
		c.JSON(http.StatusConflict, gin.H{"error": "duplicate product code", "details": err.Error(), "origin": dup.Origin})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": "items not found", "details": err.Error()})
	case errors.As(err, &tr):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store busy, retry the request", "details": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "details": err.Error()})
	}
}

// SubmitItemRequest is a single registration.
type SubmitItemRequest struct {
	Item  models.CatalogItem `json:"item" binding:"required"`
	Actor models.Actor       `json:"actor" binding:"required"`
}

// SubmitBatchRequest is a bulk registration, usually a parsed spreadsheet.
type SubmitBatchRequest struct {
	Items []models.CatalogItem `json:"items" binding:"required"`
	Actor models.Actor         `json:"actor" binding:"required"`
}

// DecisionRequest carries one approve/reject/remove decision over an id set.
type DecisionRequest struct {
	IDs    []int64      `json:"ids" binding:"required"`
	Actor  models.Actor `json:"actor" binding:"required"`
	Reason string       `json:"reason"`
}

// ResubmitRequest carries per-id field edits for correction records being
// sent back to validation.
type ResubmitRequest struct {
	Edits map[int64]service.FieldEdits `json:"edits" binding:"required"`
	Actor models.Actor                 `json:"actor" binding:"required"`
}

// UpdateItemRequest edits an approved record in place.
type UpdateItemRequest struct {
	Edits service.FieldEdits `json:"edits" binding:"required"`
	Actor models.Actor       `json:"actor" binding:"required"`
}

func (h *Handler) submitItem(c *gin.Context) {
	var req SubmitItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.lifecycle.Submit(c.Request.Context(), &req.Item, req.Actor); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req.Item)
}

func (h *Handler) submitBatch(c *gin.Context) {
	var req SubmitBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	result, err := h.lifecycle.SubmitBatch(c.Request.Context(), req.Items, req.Actor)
	if err != nil {
		writeError(c, err)
		return
	}

	status := http.StatusCreated
	if result.Inserted == 0 && len(result.Failures) > 0 {
		status = http.StatusUnprocessableEntity
	} else if len(result.Failures) > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, result)
}

func (h *Handler) approveItems(c *gin.Context) {
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.lifecycle.Approve(c.Request.Context(), req.IDs, req.Actor, req.Reason); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"approved": len(req.IDs)})
}

func (h *Handler) rejectItems(c *gin.Context) {
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if req.Reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A rejection reason is required"})
		return
	}

	if err := h.lifecycle.Reject(c.Request.Context(), req.IDs, req.Actor, req.Reason); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rejected": len(req.IDs)})
}

func (h *Handler) resubmitItems(c *gin.Context) {
	var req ResubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.lifecycle.EditAndResendToPending(c.Request.Context(), req.Edits, req.Actor); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resubmitted": len(req.Edits)})
}

func (h *Handler) removeItems(c *gin.Context) {
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if req.Reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A removal reason is required"})
		return
	}

	if err := h.lifecycle.Remove(c.Request.Context(), req.IDs, req.Actor, req.Reason); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": len(req.IDs)})
}

func (h *Handler) updateItem(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if err := h.lifecycle.UpdateApproved(c.Request.Context(), id, req.Edits, req.Actor); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": id})
}

// FillSupplyLabelsRequest assigns supply labels to approved items that still
// lack one.
type FillSupplyLabelsRequest struct {
	Labels map[int64]string `json:"labels" binding:"required"`
	Actor  models.Actor     `json:"actor" binding:"required"`
}

func (h *Handler) listMissingSupplyLabel(c *gin.Context) {
	items, err := h.lifecycle.ListMissingSupplyLabel(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *Handler) fillSupplyLabels(c *gin.Context) {
	var req FillSupplyLabelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	filled, err := h.lifecycle.FillSupplyLabels(c.Request.Context(), req.Labels, req.Actor)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"filled": filled, "requested": len(req.Labels)})
}

// storeParam maps the short URL names onto store table names.
var storeParam = map[string]string{
	"pending":    models.StorePending,
	"approved":   models.StoreApproved,
	"correction": models.StoreCorrection,
	"removed":    models.StoreRemoved,
}

func (h *Handler) listStore(c *gin.Context) {
	storeName, ok := storeParam[c.Param("store")]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown store", "store": c.Param("store")})
		return
	}

	f := store.Filter{
		RegisteredBy: c.Query("registered_by"),
		ProductCode:  c.Query("product_code"),
		Keyword:      c.Query("keyword"),
	}
	if cls := c.Query("classification_column"); cls != "" {
		f.Classification = map[string]string{cls: c.Query("classification_value")}
	}

	items, err := h.lifecycle.ListStore(c.Request.Context(), storeName, f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *Handler) getItem(c *gin.Context) {
	storeName, ok := storeParam[c.Param("store")]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown store", "store": c.Param("store")})
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	item, err := h.lifecycle.GetItem(c.Request.Context(), storeName, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) listRemoved(c *gin.Context) {
	items, err := h.lifecycle.ListRemoved(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *Handler) history(c *gin.Context) {
	f := store.HistoryFilter{
		Decision: c.Query("decision"),
		Actor:    c.Query("actor"),
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' timestamp, want RFC3339"})
			return
		}
		f.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' timestamp, want RFC3339"})
			return
		}
		f.To = t
	}

	entries, err := h.lifecycle.History(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

func (h *Handler) codeAvailability(c *gin.Context) {
	exists, origin, err := h.guard.CheckCodeAvailable(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, err)
		return
	}
	resp := gin.H{"code": c.Param("code"), "available": !exists}
	if exists {
		resp["origin"] = origin
	}
	c.JSON(http.StatusOK, resp)
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
