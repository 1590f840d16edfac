package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sellora/salesboard/backend-go/internal/domain"
	"github.com/sellora/salesboard/backend-go/internal/service"
)

type DashboardHandler struct {
	service *service.DashboardService
}

func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) parseQuery(c *gin.Context) (service.PeriodQuery, bool) {
	compare, _ := strconv.ParseBool(c.DefaultQuery("compare", "false"))

	q, err := service.ParsePeriodQuery(
		c.Query("period"),
		c.Query("start"),
		c.Query("end"),
		compare,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period", "details": err.Error()})
		return service.PeriodQuery{}, false
	}
	return q, true
}

func (h *DashboardHandler) respond(c *gin.Context, data interface{}, err error) {
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidPeriod) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": "failed to build dashboard view", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *DashboardHandler) GetSummary(c *gin.Context) {
	q, ok := h.parseQuery(c)
	if !ok {
		return
	}
	summary, err := h.service.Summary(c.Request.Context(), q)
	h.respond(c, summary, err)
}

func (h *DashboardHandler) GetProducts(c *gin.Context) {
	q, ok := h.parseQuery(c)
	if !ok {
		return
	}
	products, err := h.service.Products(c.Request.Context(), q)
	if products == nil && err == nil {
		products = []domain.ProductRollup{}
	}
	h.respond(c, gin.H{"products": products}, err)
}

func (h *DashboardHandler) GetChannels(c *gin.Context) {
	q, ok := h.parseQuery(c)
	if !ok {
		return
	}
	breakdown, err := h.service.Channels(c.Request.Context(), q)
	h.respond(c, breakdown, err)
}

func (h *DashboardHandler) GetTimeSeries(c *gin.Context) {
	q, ok := h.parseQuery(c)
	if !ok {
		return
	}
	granularity := domain.Granularity(c.DefaultQuery("granularity", "day"))
	buckets, err := h.service.Series(c.Request.Context(), q, granularity)
	h.respond(c, gin.H{"buckets": buckets}, err)
}

func (h *DashboardHandler) GetCohorts(c *gin.Context) {
	q, ok := h.parseQuery(c)
	if !ok {
		return
	}
	cohorts, err := h.service.Cohorts(c.Request.Context(), q)
	h.respond(c, cohorts, err)
}

// Refresh re-derives the working set from the source and reports the
// batch quality counters.
func (h *DashboardHandler) Refresh(c *gin.Context) {
	report, err := h.service.Refresh(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "refresh failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"report":       report,
		"refreshed_at": h.service.LastRefresh(),
	})
}
