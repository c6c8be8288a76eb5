package report

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sitekhata/backend/internal/domain/report"
	"go.uber.org/zap"
)

// summaryCacheKey is the cache key for the dashboard financial summary
const summaryCacheKey = "report:financial_summary"

// summaryCacheTTL keeps the dashboard snappy without serving stale figures
// for long; every mutation path simply waits out the TTL.
const summaryCacheTTL = 30 * time.Second

// Cache is the minimal byte cache the report service needs. The redis
// client satisfies it in production; tests use an in-memory map.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// DashboardResponse bundles the figures the dashboard renders in one call
type DashboardResponse struct {
	Summary      *report.FinancialSummary    `json:"summary"`
	VendorLedger []report.VendorLedgerRow    `json:"vendor_ledger"`
	RecentDays   []report.DateWiseExpenseRow `json:"recent_days"`
	TopItems     []report.ItemWiseRow        `json:"top_items"`
	PaymentModes []report.PaymentModeRow     `json:"payment_modes"`
}

// ReportService provides application-level report operations
type ReportService struct {
	reportRepo report.ReportRepository
	cache      Cache
	logger     *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo report.ReportRepository, cache Cache, logger *zap.Logger) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		cache:      cache,
		logger:     logger,
	}
}

// GetFinancialSummary returns the project-level summary, served from cache
// when fresh
func (s *ReportService) GetFinancialSummary(ctx context.Context) (*report.FinancialSummary, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, summaryCacheKey); err == nil && len(raw) > 0 {
			var cached report.FinancialSummary
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	summary, err := s.reportRepo.GetFinancialSummary(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(summary); err == nil {
			if err := s.cache.Set(ctx, summaryCacheKey, raw, summaryCacheTTL); err != nil {
				s.logger.Warn("Failed to cache financial summary", zap.Error(err))
			}
		}
	}

	return summary, nil
}

// InvalidateSummary drops the cached summary; called after bulk imports and
// reconciliation runs where waiting out the TTL would show stale totals
func (s *ReportService) InvalidateSummary(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, summaryCacheKey); err != nil {
		s.logger.Warn("Failed to invalidate summary cache", zap.Error(err))
	}
}

// GetVendorLedger returns per-vendor billed/paid/due/advance rows
func (s *ReportService) GetVendorLedger(ctx context.Context, filter report.ExpenseReportFilter) ([]report.VendorLedgerRow, error) {
	return s.reportRepo.GetVendorLedger(ctx, filter)
}

// GetVendorLedgerRow returns the ledger row for one vendor
func (s *ReportService) GetVendorLedgerRow(ctx context.Context, vendorID uuid.UUID) (*report.VendorLedgerRow, error) {
	return s.reportRepo.GetVendorLedgerRow(ctx, vendorID)
}

// GetDateWiseExpenses returns per-day expense totals
func (s *ReportService) GetDateWiseExpenses(ctx context.Context, filter report.ExpenseReportFilter) ([]report.DateWiseExpenseRow, error) {
	return s.reportRepo.GetDateWiseExpenses(ctx, filter)
}

// GetItemWiseExpenses returns per-item cost and quantity totals
func (s *ReportService) GetItemWiseExpenses(ctx context.Context, filter report.ExpenseReportFilter) ([]report.ItemWiseRow, error) {
	return s.reportRepo.GetItemWiseExpenses(ctx, filter)
}

// GetMonthlyExpenses returns per-month expense totals
func (s *ReportService) GetMonthlyExpenses(ctx context.Context, filter report.ExpenseReportFilter) ([]report.MonthlyExpenseRow, error) {
	return s.reportRepo.GetMonthlyExpenses(ctx, filter)
}

// GetDashboard assembles the dashboard payload
func (s *ReportService) GetDashboard(ctx context.Context) (*DashboardResponse, error) {
	summary, err := s.GetFinancialSummary(ctx)
	if err != nil {
		return nil, err
	}

	ledger, err := s.reportRepo.GetVendorLedger(ctx, report.ExpenseReportFilter{})
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -30)
	recentDays, err := s.reportRepo.GetDateWiseExpenses(ctx, report.ExpenseReportFilter{StartDate: &since})
	if err != nil {
		return nil, err
	}

	topItems, err := s.reportRepo.GetItemWiseExpenses(ctx, report.ExpenseReportFilter{TopN: 10})
	if err != nil {
		return nil, err
	}

	modes, err := s.reportRepo.GetPaymentModeBreakdown(ctx, report.ExpenseReportFilter{})
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		Summary:      summary,
		VendorLedger: ledger,
		RecentDays:   recentDays,
		TopItems:     topItems,
		PaymentModes: modes,
	}, nil
}
