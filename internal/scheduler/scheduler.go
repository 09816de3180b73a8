package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/poultrydash/internal/config"
	"github.com/mamadbah2/poultrydash/internal/domain/models"
	"github.com/mamadbah2/poultrydash/internal/service/analytics"
	"github.com/mamadbah2/poultrydash/internal/service/dashboard"
	"github.com/mamadbah2/poultrydash/internal/service/reporting"
	"github.com/mamadbah2/poultrydash/internal/service/whatsapp"
)

const jobTimeout = 2 * time.Minute

// Jobs is the dashboard work the scheduler triggers.
type Jobs interface {
	AutoCompleteExpired(ctx context.Context) ([]string, error)
	SaveDailyReport(ctx context.Context) (dashboard.View, *models.DashboardReport, error)
	History(ctx context.Context, all bool) ([]analytics.HistoryPoint, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron         *cron.Cron
	jobs         Jobs
	reportingSvc *reporting.Service
	messagingSvc whatsapp.MessagingService
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. Schedules fire in loc.
// messagingSvc may be nil, in which case no summary is sent.
func NewScheduler(cfg config.Config, loc *time.Location, jobs Jobs, reportingSvc *reporting.Service, messagingSvc whatsapp.MessagingService, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		jobs:         jobs,
		reportingSvc: reportingSvc,
		messagingSvc: messagingSvc,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.Reporting.AutoCompleteSchedule, s.wrap("auto-complete", s.RunAutoComplete)); err != nil {
		return fmt.Errorf("schedule auto-complete %q: %w", s.cfg.Reporting.AutoCompleteSchedule, err)
	}
	if _, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.wrap("daily report", s.RunDailyReport)); err != nil {
		return fmt.Errorf("schedule daily report %q: %w", s.cfg.Reporting.CronSchedule, err)
	}

	s.logger.Info("starting scheduler",
		zap.String("auto_complete_schedule", s.cfg.Reporting.AutoCompleteSchedule),
		zap.String("report_schedule", s.cfg.Reporting.CronSchedule))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// RunAutoComplete completes every active batch past its expected end date.
func (s *Scheduler) RunAutoComplete(ctx context.Context) error {
	completed, err := s.jobs.AutoCompleteExpired(ctx)
	if len(completed) > 0 {
		s.logger.Info("batches auto-completed", zap.Strings("batch_ids", completed))
	}
	return err
}

// RunDailyReport saves the day's snapshot, sends the summary to the manager
// and refreshes the spreadsheet export. Each step runs even if an earlier
// delivery step failed.
func (s *Scheduler) RunDailyReport(ctx context.Context) error {
	view, report, err := s.jobs.SaveDailyReport(ctx)
	if err != nil {
		return fmt.Errorf("save daily report: %w", err)
	}

	var errs []error

	if s.messagingSvc != nil && s.cfg.WhatsApp.ManagerID != "" {
		req := models.OutboundMessageRequest{
			To:      s.cfg.WhatsApp.ManagerID,
			Message: s.reportingSvc.DailySummary(view),
		}
		if err := s.messagingSvc.SendOutbound(ctx, req); err != nil {
			errs = append(errs, fmt.Errorf("send daily summary: %w", err))
		} else {
			s.logger.Info("daily summary sent")
		}
	}

	if s.reportingSvc.ExportEnabled() {
		if report != nil {
			if err := s.reportingSvc.AppendReport(ctx, *report); err != nil {
				errs = append(errs, err)
			}
		}
		points, err := s.jobs.History(ctx, true)
		if err != nil {
			errs = append(errs, fmt.Errorf("load history: %w", err))
		} else if err := s.reportingSvc.ExportHistory(ctx, points); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (s *Scheduler) wrap(name string, job func(context.Context) error) func() {
	return func() {
		s.logger.Info("job started", zap.String("job", name))
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if err := job(ctx); err != nil {
			s.logger.Error("job failed", zap.String("job", name), zap.Error(err))
			return
		}
		s.logger.Info("job finished", zap.String("job", name))
	}
}
