package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/pricestats/internal/domain/dto"
	"github.com/guttosm/pricestats/internal/domain/models"
	"github.com/guttosm/pricestats/internal/middleware"
	"github.com/guttosm/pricestats/internal/quandl"
	"github.com/guttosm/pricestats/internal/service"
	"github.com/guttosm/pricestats/internal/stats"
)

// Defaults fill in query parameters the caller omits.
type Defaults struct {
	Dataset string
	Year    int
}

// Handler provides HTTP handlers for the statistics endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters
//   - Delegate fetching and reduction to the service layer
//   - Map domain and upstream errors to HTTP status codes
type Handler struct {
	svc      service.SummaryService
	defaults Defaults
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.SummaryService, defaults Defaults) *Handler {
	return &Handler{svc: svc, defaults: defaults}
}

// GetSummary handles GET /api/v1/summary requests.
//
// GetSummary godoc
// @Summary      Get the yearly summary of a dataset
// @Description  Fetches one calendar year of daily prices and returns every statistic
// @Tags         statistics
// @Produce      json
// @Param        dataset  query     string  false  "Dataset code DATABASE/DATASET" example(HKEX/58538)
// @Param        year     query     int     false  "Calendar year" example(2020)
// @Success      200      {object}  models.Summary     "Success"
// @Failure      400      {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404      {object}  dto.ErrorResponse  "Not Found"
// @Failure      422      {object}  dto.ErrorResponse  "Unprocessable Entity"
// @Failure      502      {object}  dto.ErrorResponse  "Bad Gateway"
// @Failure      500      {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/summary [get]
func (h *Handler) GetSummary(c *gin.Context) {
	q, ok := h.parseQuery(c)
	if !ok {
		return
	}

	sum, err := h.svc.GetSummary(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// GetStatistic handles GET /api/v1/statistics/:name requests.
//
// GetStatistic godoc
// @Summary      Get one statistic of a dataset
// @Description  Computes a single statistic over one calendar year of daily prices
// @Tags         statistics
// @Produce      json
// @Param        name     path      string  true   "Statistic" Enums(highest, lowest, max-intraday-range, max-interday-close-change, average-volume, median-volume)
// @Param        dataset  query     string  false  "Dataset code DATABASE/DATASET" example(HKEX/58538)
// @Param        year     query     int     false  "Calendar year" example(2020)
// @Param        field    query     string  false  "Price field, required for highest and lowest" Enums(open, high, low, close, volume)
// @Success      200      {object}  dto.StatisticResponse  "Success"
// @Failure      400      {object}  dto.ErrorResponse      "Bad Request"
// @Failure      404      {object}  dto.ErrorResponse      "Not Found"
// @Failure      422      {object}  dto.ErrorResponse      "Unprocessable Entity"
// @Failure      502      {object}  dto.ErrorResponse      "Bad Gateway"
// @Failure      500      {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/statistics/{name} [get]
func (h *Handler) GetStatistic(c *gin.Context) {
	stat, err := service.ParseStatistic(c.Param("name"))
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid statistic", err)
		return
	}

	var field models.Field
	if stat.NeedsField() {
		field, err = models.ParseField(strings.ToLower(strings.TrimSpace(c.Query("field"))))
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid field", err)
			return
		}
	}

	q, ok := h.parseQuery(c)
	if !ok {
		return
	}

	value, err := h.svc.GetStatistic(c.Request.Context(), q, stat, field)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatisticResponse{
		Dataset:   strings.ToUpper(q.Dataset),
		Year:      q.Year,
		Statistic: string(stat),
		Field:     string(field),
		Value:     value,
	})
}

func (h *Handler) parseQuery(c *gin.Context) (service.Query, bool) {
	q := service.Query{Dataset: h.defaults.Dataset, Year: h.defaults.Year}

	if s := strings.TrimSpace(c.Query("dataset")); s != "" {
		q.Dataset = s
	}
	if s := strings.TrimSpace(c.Query("year")); s != "" {
		year, err := strconv.Atoi(s)
		if err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid year, expected YYYY", err)
			return q, false
		}
		q.Year = year
	}
	if err := q.Validate(); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query", err)
		return q, false
	}
	return q, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	middleware.AbortWithError(c, status, msg, err)
}

// statusFor maps service errors onto HTTP statuses.
func statusFor(err error) (int, string) {
	var apiErr *quandl.APIError
	switch {
	case errors.Is(err, stats.ErrEmptyDataset):
		return http.StatusNotFound, "no data for the requested year"
	case errors.Is(err, stats.ErrInsufficientData), errors.Is(err, stats.ErrMissingField):
		return http.StatusUnprocessableEntity, "dataset cannot answer this statistic"
	case errors.As(err, &apiErr) && apiErr.NotFound():
		return http.StatusNotFound, "dataset not found"
	case errors.As(err, &apiErr), errors.Is(err, quandl.ErrUpstream):
		return http.StatusBadGateway, "upstream request failed"
	default:
		return http.StatusInternalServerError, "failed to compute statistics"
	}
}
