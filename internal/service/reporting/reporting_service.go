package reporting

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/poultrydash/internal/domain/models"
	repo "github.com/mamadbah2/poultrydash/internal/repository/sheets"
	"github.com/mamadbah2/poultrydash/internal/service/analytics"
	"github.com/mamadbah2/poultrydash/internal/service/dashboard"
)

const (
	dateLayout       = "2006-01-02"
	historyDataRange = "History!A:F"
	reportsDataRange = "Reports!A:L"
)

var historyHeader = []interface{}{"Batch ID", "Batch", "Status", "Expenses", "Sales", "Net Income"}

// Service turns dashboard snapshots into WhatsApp summaries and spreadsheet
// rows.
type Service struct {
	repo   repo.Repository
	logger *zap.Logger
}

// NewService wires a new reporting service instance. A nil repository
// disables the spreadsheet exports.
func NewService(repository repo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, logger: logger}
}

// ExportEnabled reports whether a spreadsheet is attached.
func (s *Service) ExportEnabled() bool {
	return s.repo != nil
}

// DailySummary formats the manager's end-of-day message for a view.
func (s *Service) DailySummary(view dashboard.View) string {
	date := view.GeneratedAt.Format(dateLayout)
	if !view.HasBatch {
		return fmt.Sprintf("Daily report %s: no active batch.", date)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Daily report %s - %s", date, view.BatchName)
	if view.DayResolved && view.Day > 0 {
		fmt.Fprintf(&b, " (day %d)", view.Day)
	}
	b.WriteString("\n")

	feed := view.Feed
	if feed.CoveragePct != nil {
		fmt.Fprintf(&b, "Feed: %.2f kg of %.2f kg %s (%d%%)\n",
			feed.ActualKg, feed.RecommendedKg, feed.FeedType, int(math.Round(*feed.CoveragePct)))
		fmt.Fprintf(&b, "AM %.2f kg / PM %.2f kg\n", feed.AMActualKg, feed.PMActualKg)
	} else {
		fmt.Fprintf(&b, "Feed: %.2f kg logged, no target available\n", feed.ActualKg)
	}

	fmt.Fprintf(&b, "Progress: %d%% (%d days remaining)\n", view.ProgressPct, view.DaysRemaining)
	fmt.Fprintf(&b, "Sales %.2f | Expenses %.2f | Net %.2f",
		view.Financials.Sales, view.Financials.Expenses, view.Financials.NetIncome)

	for _, w := range view.Warnings {
		fmt.Fprintf(&b, "\n! %s", w)
	}

	return b.String()
}

// ExportHistory rewrites the history sheet with the given series.
func (s *Service) ExportHistory(ctx context.Context, points []analytics.HistoryPoint) error {
	if s.repo == nil {
		s.logger.Debug("history export skipped, no spreadsheet configured")
		return nil
	}

	rows := make([][]interface{}, 0, len(points)+1)
	rows = append(rows, historyHeader)
	for _, p := range points {
		rows = append(rows, []interface{}{p.BatchID, p.Name, string(p.Status), p.Expenses, p.Sales, p.NetIncome})
	}

	if err := s.repo.ReplaceRange(ctx, historyDataRange, rows); err != nil {
		return fmt.Errorf("export history: %w", err)
	}
	s.logger.Info("history exported", zap.Int("batches", len(points)))
	return nil
}

// AppendReport adds a saved daily report to the reports sheet.
func (s *Service) AppendReport(ctx context.Context, report models.DashboardReport) error {
	if s.repo == nil {
		s.logger.Debug("report export skipped, no spreadsheet configured")
		return nil
	}

	row := []interface{}{
		report.Date.Format(dateLayout),
		report.BatchID,
		report.BatchName,
		report.Day,
		string(report.FeedType),
		report.RecommendedKg,
		report.ActualKg,
		report.FeedConsumedKg,
		report.SalesAmount,
		report.Expenses,
		report.Profit,
		report.ID,
	}

	if err := s.repo.AppendRows(ctx, reportsDataRange, [][]interface{}{row}); err != nil {
		return fmt.Errorf("append report %s: %w", report.ID, err)
	}
	return nil
}
