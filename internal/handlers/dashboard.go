package handlers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/forgesight/forgesight/dashboard"
	"github.com/forgesight/forgesight/dataset"
	"github.com/forgesight/forgesight/engine"
)

// SnapshotCache is the optional response cache for dashboard payloads.
type SnapshotCache interface {
	Get(ctx context.Context, criteria engine.Criteria) *dashboard.Snapshot
	Put(ctx context.Context, criteria engine.Criteria, snap *dashboard.Snapshot)
}

// DashboardHandler serves the read-only dashboard API. The dataset is loaded
// once at startup and never mutated, so a single handler instance is safe for
// concurrent requests without locking.
type DashboardHandler struct {
	ds     *dataset.Dataset
	cache  SnapshotCache // nil when caching is disabled
	logger *zap.Logger
}

// NewDashboardHandler creates a handler over an immutable dataset.
// cache may be nil.
func NewDashboardHandler(ds *dataset.Dataset, cache SnapshotCache, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{ds: ds, cache: cache, logger: logger}
}

// Options returns the filter widget option space.
//
// GET /api/v1/options
func (h *DashboardHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, h.ds.Options())
}

// Plants returns the filtered plant records.
//
// GET /api/v1/plants?region=...&country=...&owner=...&min_capacity=...&max_capacity=...
func (h *DashboardHandler) Plants(c *gin.Context) {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	plants, err := engine.Filter(h.ds.Plants(), criteria)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(plants), "plants": plants})
}

// Metrics returns the headline metrics for the filtered set.
//
// GET /api/v1/metrics
func (h *DashboardHandler) Metrics(c *gin.Context) {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filtered, err := engine.Filter(h.ds.Plants(), criteria)
	if err != nil {
		h.fail(c, err)
		return
	}
	metrics, err := engine.Summary(filtered)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// Dashboard returns the full snapshot: metrics, map points, charts, table.
//
// GET /api/v1/dashboard
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.cache != nil {
		if snap := h.cache.Get(c.Request.Context(), criteria); snap != nil {
			c.Header("X-Cache", "hit")
			c.JSON(http.StatusOK, snap)
			return
		}
	}

	snap, err := dashboard.Build(h.ds.Plants(), criteria)
	if err != nil {
		h.fail(c, err)
		return
	}

	if h.cache != nil {
		h.cache.Put(c.Request.Context(), criteria, snap)
	}
	c.JSON(http.StatusOK, snap)
}

func (h *DashboardHandler) fail(c *gin.Context, err error) {
	if errors.Is(err, engine.ErrInvalidArgument) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logger.Error("request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// criteriaFromQuery builds filter criteria from repeatable region/country/
// owner params and the optional capacity bounds. Absent bounds leave the
// capacity range unrestricted.
func criteriaFromQuery(c *gin.Context) (engine.Criteria, error) {
	criteria := engine.Criteria{
		Regions:   c.QueryArray("region"),
		Countries: c.QueryArray("country"),
		Owners:    c.QueryArray("owner"),
	}

	var err error
	criteria.CapacityMin, err = queryFloat(c, "min_capacity")
	if err != nil {
		return engine.Criteria{}, err
	}
	criteria.CapacityMax, err = queryFloat(c, "max_capacity")
	if err != nil {
		return engine.Criteria{}, err
	}

	// Only one bound given: leave the other end open.
	if criteria.CapacityMin != 0 && criteria.CapacityMax == 0 && c.Query("max_capacity") == "" {
		criteria.CapacityMax = math.MaxFloat64
	}

	return criteria, nil
}

func queryFloat(c *gin.Context, name string) (float64, error) {
	s := c.Query(name)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	return v, nil
}
