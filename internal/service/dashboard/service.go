package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/poultrydash/internal/domain/models"
	"github.com/mamadbah2/poultrydash/internal/service/analytics"
)

// ErrForecastUnavailable is returned when a forecast was requested directly
// and the source could not provide it.
var ErrForecastUnavailable = errors.New("forecast unavailable")

// BatchStore is the slice of the batch repository the dashboard needs.
type BatchStore interface {
	ListBatches(ctx context.Context) ([]models.Batch, error)
	GetBatch(ctx context.Context, id string) (models.Batch, error)
	UpdateBatchStatus(ctx context.Context, id string, status models.BatchStatus) error
	SaveDashboardReport(ctx context.Context, report models.DashboardReport) error
}

// ForecastSource provides the planned feed sequence for a batch.
type ForecastSource interface {
	Forecast(ctx context.Context, batchID string) (models.Forecast, error)
}

// Service assembles dashboard views from store snapshots and forecasts.
type Service struct {
	store         BatchStore
	forecasts     ForecastSource
	loc           *time.Location
	historyWindow int
	logger        *zap.Logger
	now           func() time.Time
}

// NewService wires a dashboard service. Dates are interpreted in loc, and
// the history series keeps historyWindow batches (0 keeps all).
func NewService(store BatchStore, forecasts ForecastSource, loc *time.Location, historyWindow int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		store:         store,
		forecasts:     forecasts,
		loc:           loc,
		historyWindow: historyWindow,
		logger:        logger,
		now:           time.Now,
	}
}

// ActiveDashboard builds the view for the running batch. When no batch is
// active the view only carries the history series.
func (s *Service) ActiveDashboard(ctx context.Context) (View, error) {
	batches, err := s.store.ListBatches(ctx)
	if err != nil {
		return View{}, fmt.Errorf("list batches: %w", err)
	}

	sel := analytics.SelectActive(batches)
	var warnings []string
	if len(sel.Conflicts) > 0 {
		s.logger.Warn("more than one active batch",
			zap.String("selected_batch_id", sel.Batch.ID),
			zap.Strings("conflicting_batch_ids", sel.Conflicts))
		warnings = append(warnings, fmt.Sprintf("multiple active batches; showing %s, also active: %v", sel.Batch.ID, sel.Conflicts))
	}

	if !sel.Found {
		return View{
			History:     analytics.HistoryWindow(batches, s.historyWindow),
			Warnings:    warnings,
			GeneratedAt: s.now().In(s.loc),
		}, nil
	}

	forecast, ok := s.fetchForecast(ctx, sel.Batch.ID)
	view := s.compose(sel.Batch, forecast, ok, batches)
	view.Warnings = append(warnings, view.Warnings...)
	return view, nil
}

// BatchDashboard builds the view for a specific batch. The batch, the batch
// list and the forecast are fetched concurrently; a failed forecast only
// zeroes the targets.
func (s *Service) BatchDashboard(ctx context.Context, batchID string) (View, error) {
	var (
		batch     models.Batch
		batches   []models.Batch
		forecast  models.Forecast
		available bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := s.store.GetBatch(gctx, batchID)
		if err != nil {
			return fmt.Errorf("get batch %s: %w", batchID, err)
		}
		batch = b
		return nil
	})
	g.Go(func() error {
		list, err := s.store.ListBatches(gctx)
		if err != nil {
			return fmt.Errorf("list batches: %w", err)
		}
		batches = list
		return nil
	})
	g.Go(func() error {
		forecast, available = s.fetchForecast(gctx, batchID)
		return nil
	})

	if err := g.Wait(); err != nil {
		return View{}, err
	}

	return s.compose(batch, forecast, available, batches), nil
}

// History returns the cross-batch comparison. all bypasses the window.
func (s *Service) History(ctx context.Context, all bool) ([]analytics.HistoryPoint, error) {
	batches, err := s.store.ListBatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	if all {
		return analytics.FullHistory(batches), nil
	}
	return analytics.HistoryWindow(batches, s.historyWindow), nil
}

// Stats aggregates population, harvest and financials. An empty batchID
// covers every batch.
func (s *Service) Stats(ctx context.Context, batchID string) (analytics.Stats, error) {
	if batchID != "" {
		b, err := s.store.GetBatch(ctx, batchID)
		if err != nil {
			return analytics.Stats{}, fmt.Errorf("get batch %s: %w", batchID, err)
		}
		return analytics.BatchStats(b), nil
	}

	batches, err := s.store.ListBatches(ctx)
	if err != nil {
		return analytics.Stats{}, fmt.Errorf("list batches: %w", err)
	}
	return analytics.BatchStats(batches...), nil
}

// Forecast returns the forecast for a batch as served by the configured
// source.
func (s *Service) Forecast(ctx context.Context, batchID string) (models.Forecast, error) {
	if s.forecasts == nil {
		return models.Forecast{}, ErrForecastUnavailable
	}
	fc, err := s.forecasts.Forecast(ctx, batchID)
	if err != nil {
		if errors.Is(err, models.ErrBatchNotFound) {
			return models.Forecast{}, err
		}
		return models.Forecast{}, fmt.Errorf("%w: %v", ErrForecastUnavailable, err)
	}
	return fc, nil
}

// AutoCompleteExpired moves active batches past their expected completion
// date to completed and returns the IDs it updated. Failures on one batch do
// not stop the others.
func (s *Service) AutoCompleteExpired(ctx context.Context) ([]string, error) {
	batches, err := s.store.ListBatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}

	today := s.now().In(s.loc)
	var (
		completed []string
		errs      []error
	)
	for _, b := range batches {
		if !analytics.ShouldAutoComplete(b, today) {
			continue
		}
		if err := s.store.UpdateBatchStatus(ctx, b.ID, models.BatchCompleted); err != nil {
			s.logger.Error("auto-complete failed", zap.String("batch_id", b.ID), zap.Error(err))
			errs = append(errs, fmt.Errorf("complete batch %s: %w", b.ID, err))
			continue
		}
		s.logger.Info("batch auto-completed", zap.String("batch_id", b.ID), zap.String("batch_name", b.Name))
		completed = append(completed, b.ID)
	}

	return completed, errors.Join(errs...)
}

// SaveDailyReport persists a snapshot of the active batch's view. The
// report is nil when no batch is active.
func (s *Service) SaveDailyReport(ctx context.Context) (View, *models.DashboardReport, error) {
	view, err := s.ActiveDashboard(ctx)
	if err != nil {
		return View{}, nil, err
	}
	if !view.HasBatch {
		return view, nil, nil
	}

	now := s.now().In(s.loc)
	report := &models.DashboardReport{
		ID:             uuid.NewString(),
		Date:           analytics.Midnight(now),
		BatchID:        view.BatchID,
		BatchName:      view.BatchName,
		Day:            view.Day,
		FeedType:       view.Feed.FeedType,
		RecommendedKg:  view.Feed.RecommendedKg,
		ActualKg:       view.Feed.ActualKg,
		FeedConsumedKg: view.Feed.TotalKg,
		SalesAmount:    view.Financials.Sales,
		Expenses:       view.Financials.Expenses,
		Profit:         view.Financials.NetIncome,
		CreatedAt:      now.UTC(),
	}

	if err := s.store.SaveDashboardReport(ctx, *report); err != nil {
		return view, nil, fmt.Errorf("save dashboard report: %w", err)
	}
	return view, report, nil
}

func (s *Service) fetchForecast(ctx context.Context, batchID string) (models.Forecast, bool) {
	if s.forecasts == nil {
		return models.Forecast{}, false
	}
	fc, err := s.forecasts.Forecast(ctx, batchID)
	if err != nil {
		s.logger.Warn("forecast unavailable", zap.String("batch_id", batchID), zap.Error(err))
		return models.Forecast{}, false
	}
	return fc, true
}
