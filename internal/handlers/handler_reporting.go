package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/treeledger/treeledger/internal/apperrors"
	"github.com/treeledger/treeledger/internal/core/domain"
	portssvc "github.com/treeledger/treeledger/internal/core/ports/services"
	"github.com/treeledger/treeledger/internal/core/services"
	"github.com/treeledger/treeledger/internal/dto"
	"github.com/treeledger/treeledger/internal/middleware"
)

// reportingHandler handles HTTP requests related to ledger reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/balance-evolution", h.getBalanceEvolution)
		reports.GET("/flow-evolution", h.getFlowEvolution)
	}
}

// parseIDList splits a comma-separated query value into non-empty entries.
func parseIDList(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}

// parseDateList parses a comma-separated list of YYYY-MM-DD dates.
func parseDateList(raw string) ([]time.Time, error) {
	var dates []time.Time
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		date, err := time.Parse("2006-01-02", part)
		if err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}
	return dates, nil
}

// parsePeriodList parses a comma-separated list of start:end date pairs.
func parsePeriodList(raw string) ([]domain.Period, error) {
	var periods []domain.Period
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		bounds := strings.SplitN(part, ":", 2)
		if len(bounds) != 2 {
			return nil, errors.New("period must be formatted as start:end")
		}
		start, err := time.Parse("2006-01-02", bounds[0])
		if err != nil {
			return nil, err
		}
		end, err := time.Parse("2006-01-02", bounds[1])
		if err != nil {
			return nil, err
		}
		period, err := domain.NewPeriod(start, end)
		if err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}
	return periods, nil
}

// targetCurrencyParam returns the optional target currency query value.
func targetCurrencyParam(c *gin.Context) *string {
	if code := c.Query("currency"); code != "" {
		return &code
	}
	return nil
}

// getBalanceEvolution returns cumulative subtree balances at each requested date.
func (h *reportingHandler) getBalanceEvolution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountIDs := parseIDList(c.Query("accountIDs"))
	if len(accountIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "accountIDs query parameter is required"})
		return
	}
	dates, err := parseDateList(c.Query("dates"))
	if err != nil {
		logger.Warn("Invalid dates for balance evolution", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dates format. Use comma-separated YYYY-MM-DD"})
		return
	}
	if len(dates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates query parameter is required"})
		return
	}
	targetCurrency := targetCurrencyParam(c)

	logger.Info("Received request for balance evolution report",
		slog.Int("account_count", len(accountIDs)),
		slog.Int("date_count", len(dates)))

	rows, err := h.reportingService.BalanceEvolution(c.Request.Context(), accountIDs, dates, targetCurrency)
	if err != nil {
		h.respondReportError(c, logger, err, "balance evolution")
		return
	}

	logger.Info("Balance evolution report generated successfully", slog.Int("row_count", len(rows)))
	c.JSON(http.StatusOK, dto.ToBalanceEvolutionResponse(rows))
}

// getFlowEvolution returns the non-cumulative net flow per account and period.
func (h *reportingHandler) getFlowEvolution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountIDs := parseIDList(c.Query("accountIDs"))
	if len(accountIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "accountIDs query parameter is required"})
		return
	}
	periods, err := parsePeriodList(c.Query("periods"))
	if err != nil {
		logger.Warn("Invalid periods for flow evolution", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid periods format. Use comma-separated YYYY-MM-DD:YYYY-MM-DD"})
		return
	}
	if len(periods) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "periods query parameter is required"})
		return
	}
	targetCurrency := targetCurrencyParam(c)

	logger.Info("Received request for flow evolution report",
		slog.Int("account_count", len(accountIDs)),
		slog.Int("period_count", len(periods)))

	flows, err := h.reportingService.FlowEvolution(c.Request.Context(), accountIDs, periods, targetCurrency)
	if err != nil {
		h.respondReportError(c, logger, err, "flow evolution")
		return
	}

	logger.Info("Flow evolution report generated successfully", slog.Int("account_count", len(flows)))
	c.JSON(http.StatusOK, dto.ToFlowEvolutionResponse(flows))
}

// respondReportError maps report generation failures to HTTP responses.
func (h *reportingHandler) respondReportError(c *gin.Context, logger *slog.Logger, err error, report string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound), errors.Is(err, services.ErrAccountNotFound):
		logger.Warn("Report references unknown account", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotEnoughData), errors.Is(err, services.ErrUnknownCurrency), errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Report request rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to generate "+report+" report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate " + report + " report"})
	}
}
