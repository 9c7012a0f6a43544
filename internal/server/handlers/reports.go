package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"washpoint-system/internal/database/models"
	"washpoint-system/internal/export"
	"washpoint-system/internal/report"
)

// ReportHandler serves the derived views computed from payment snapshots:
// the dashboard summary, commission breakdowns and shift reports.
type ReportHandler struct {
	db    *gorm.DB
	redis *redis.Client
	loc   *time.Location
}

func NewReportHandler(db *gorm.DB, redisClient *redis.Client, loc *time.Location) *ReportHandler {
	return &ReportHandler{
		db:    db,
		redis: redisClient,
		loc:   loc,
	}
}

type ShiftReportQuery struct {
	StartDate string `form:"start_date" binding:"required"`
	EndDate   string `form:"end_date" binding:"required"`
	Shift     string `form:"shift,omitempty"`
}

type CommissionsQuery struct {
	From   string `form:"from,omitempty"`
	To     string `form:"to,omitempty"`
	Search string `form:"search,omitempty"`
	Limit  int    `form:"limit,default=0"`
}

// loadRecords fetches payment rows in insertion order and flattens them
// into the engine's snapshot form. Range narrowing at the SQL level is an
// optimization only; the fold re-checks the window per record.
func (h *ReportHandler) loadRecords(rng report.DateRange) ([]report.PaymentRecord, error) {
	q := h.db.Model(&models.Payment{})
	if !rng.Start.IsZero() {
		q = q.Where("created_at >= ?", rng.Start.AddDate(0, 0, -1).Unix())
	}
	if !rng.End.IsZero() {
		q = q.Where("created_at < ?", rng.End.AddDate(0, 0, 2).Unix())
	}

	var payments []models.Payment
	if err := q.Order("created_at ASC, id ASC").Find(&payments).Error; err != nil {
		return nil, err
	}

	records := make([]report.PaymentRecord, 0, len(payments))
	for _, p := range payments {
		records = append(records, p.ToRecord())
	}
	return records, nil
}

func (h *ReportHandler) parseRange(from, to string) (report.DateRange, error) {
	var rng report.DateRange
	if from != "" {
		start, err := time.ParseInLocation(time.DateOnly, from, h.loc)
		if err != nil {
			return rng, fmt.Errorf("invalid start date %q: %w", from, err)
		}
		rng.Start = start
	}
	if to != "" {
		end, err := time.ParseInLocation(time.DateOnly, to, h.loc)
		if err != nil {
			return rng, fmt.Errorf("invalid end date %q: %w", to, err)
		}
		rng.End = end
	}
	return rng, nil
}

type dashboardSummary struct {
	Date         string                  `json:"date"`
	TotalSales   string                  `json:"total_sales"`
	Transactions int                     `json:"transactions"`
	UnpaidCount  int64                   `json:"unpaid_count"`
	TodayTotal   string                  `json:"today_total"`
	Shift1       shiftSummary            `json:"shift1"`
	Shift2       shiftSummary            `json:"shift2"`
	TopServices  []report.FrequencyCount `json:"top_services"`
	TopCustomers []report.FrequencyCount `json:"top_customers"`
	Counts       entityCounts            `json:"counts"`
}

type entityCounts struct {
	Employees        int64 `json:"employees"`
	Services         int64 `json:"services"`
	LoyaltyCustomers int64 `json:"loyalty_customers"`
}

type shiftSummary struct {
	Total        string `json:"total"`
	Transactions int    `json:"transactions"`
}

// DashboardSummary reports the all-time paid total and top-3 services and
// customers, plus today's per-shift breakdown. The computed view is cached
// briefly; any payment mutation invalidates it.
func (h *ReportHandler) DashboardSummary(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, ok := h.cacheGet(ctx, DASHBOARD_SUMMARY_CACHE_KEY); ok {
		var summary dashboardSummary
		if json.Unmarshal(cached, &summary) == nil {
			c.JSON(http.StatusOK, successResponse("Dashboard summary retrieved successfully", summary))
			return
		}
	}

	records, err := h.loadRecords(report.DateRange{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to load payments"))
		return
	}

	// Overall metrics run over every paid record; the shift breakdown is
	// scoped to today's business day.
	overall := report.Aggregate(records, report.DateRange{}, h.loc)

	today := time.Now().In(h.loc)
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, h.loc)
	todayAgg := report.Aggregate(records, report.DateRange{Start: day, End: day}, h.loc)

	var unpaid int64
	h.db.Model(&models.Payment{}).Where("paid = ?", false).Count(&unpaid)

	var counts entityCounts
	h.db.Model(&models.Employee{}).Where("is_active = ?", true).Count(&counts.Employees)
	h.db.Model(&models.Service{}).Where("is_active = ?", true).Count(&counts.Services)
	h.db.Model(&models.LoyaltyCustomer{}).Count(&counts.LoyaltyCustomers)

	summary := dashboardSummary{
		Date:         day.Format(time.DateOnly),
		TotalSales:   overall.Total.StringFixed(2),
		Transactions: overall.Shift1.Count + overall.Shift2.Count,
		UnpaidCount:  unpaid,
		TodayTotal:   todayAgg.Total.StringFixed(2),
		Shift1: shiftSummary{
			Total:        todayAgg.Shift1.Total.StringFixed(2),
			Transactions: todayAgg.Shift1.Count,
		},
		Shift2: shiftSummary{
			Total:        todayAgg.Shift2.Total.StringFixed(2),
			Transactions: todayAgg.Shift2.Count,
		},
		TopServices:  report.TopFrequencies(overall.Services, report.DefaultTopN),
		TopCustomers: report.TopFrequencies(overall.Customers, report.DefaultTopN),
		Counts:       counts,
	}

	h.cacheSet(ctx, DASHBOARD_SUMMARY_CACHE_KEY, summary, CACHE_TTL_SHORT)

	c.JSON(http.StatusOK, successResponse("Dashboard summary retrieved successfully", summary))
}

type commissionView struct {
	EmployeeID   string `json:"employee_id"`
	Name         string `json:"name"`
	Labor        string `json:"labor"`
	Referrer     string `json:"referrer"`
	Total        string `json:"total"`
	Transactions int    `json:"transactions"`
}

// Commissions lists per-employee earnings over an optional date range,
// optionally filtered by name and truncated to the top earners.
func (h *ReportHandler) Commissions(c *gin.Context) {
	var query CommissionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("Invalid query parameters"))
		return
	}

	rng, err := h.parseRange(query.From, query.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	records, err := h.loadRecords(rng)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to load payments"))
		return
	}

	ledger := report.SplitCommissions(records, rng, h.loc)

	entries := report.FilterCommissions(ledger.Entries, query.Search)
	entries = report.RankCommissions(entries, query.Limit)

	views := make([]commissionView, 0, len(entries))
	for _, e := range entries {
		views = append(views, commissionView{
			EmployeeID:   e.EmployeeID,
			Name:         e.Name,
			Labor:        e.Labor.StringFixed(2),
			Referrer:     e.Referrer.StringFixed(2),
			Total:        e.Total.StringFixed(2),
			Transactions: e.Transactions,
		})
	}

	c.JSON(http.StatusOK, successWithMetaResponse("Commissions retrieved successfully", views, map[string]interface{}{
		"skipped": ledger.Skipped,
	}))
}

// ShiftReport assembles the shift sales report for an inclusive date range.
func (h *ReportHandler) ShiftReport(c *gin.Context) {
	rep, ok := h.buildShiftReport(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, successResponse("Shift report generated successfully", rep))
}

// ShiftReportExport streams the same report as an xlsx workbook.
func (h *ReportHandler) ShiftReportExport(c *gin.Context) {
	rep, ok := h.buildShiftReport(c)
	if !ok {
		return
	}

	workbook, err := export.ShiftReportWorkbook(rep)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to render workbook"))
		return
	}
	defer workbook.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(rep)))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to stream workbook"))
		return
	}
}

func (h *ReportHandler) buildShiftReport(c *gin.Context) (*report.ShiftReport, bool) {
	var query ShiftReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("start_date and end_date are required"))
		return nil, false
	}

	rng, err := h.parseRange(query.StartDate, query.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return nil, false
	}

	sel, err := report.ParseShiftSelection(query.Shift)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return nil, false
	}

	ctx := c.Request.Context()
	cacheKey := fmt.Sprintf("%s%s:%s:%s", SHIFT_REPORT_CACHE_PREFIX, query.StartDate, query.EndDate, sel)
	if cached, ok := h.cacheGet(ctx, cacheKey); ok {
		var rep report.ShiftReport
		if json.Unmarshal(cached, &rep) == nil {
			return &rep, true
		}
	}

	records, err := h.loadRecords(rng)
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to load payments"))
		return nil, false
	}

	rep, err := report.BuildShiftReport(records, rng, sel, h.loc)
	if err != nil {
		if errors.Is(err, report.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, errorResponse("Failed to build report"))
		return nil, false
	}

	h.cacheSet(ctx, cacheKey, rep, CACHE_TTL_MEDIUM)

	return rep, true
}

func (h *ReportHandler) cacheGet(ctx context.Context, key string) ([]byte, bool) {
	if h.redis == nil {
		return nil, false
	}
	val, err := h.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (h *ReportHandler) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if h.redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = h.redis.Set(ctx, key, data, ttl)
}
