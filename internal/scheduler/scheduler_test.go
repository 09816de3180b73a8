package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mamadbah2/poultrydash/internal/config"
	"github.com/mamadbah2/poultrydash/internal/domain/models"
	"github.com/mamadbah2/poultrydash/internal/service/analytics"
	"github.com/mamadbah2/poultrydash/internal/service/dashboard"
	"github.com/mamadbah2/poultrydash/internal/service/reporting"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeJobs struct {
	completed   []string
	completeErr error
	view        dashboard.View
	report      *models.DashboardReport
	saveErr     error
	history     []analytics.HistoryPoint
}

func (f *fakeJobs) AutoCompleteExpired(context.Context) ([]string, error) {
	return f.completed, f.completeErr
}

func (f *fakeJobs) SaveDailyReport(context.Context) (dashboard.View, *models.DashboardReport, error) {
	return f.view, f.report, f.saveErr
}

func (f *fakeJobs) History(context.Context, bool) ([]analytics.HistoryPoint, error) {
	return f.history, nil
}

type fakeMessenger struct {
	sent []models.OutboundMessageRequest
	err  error
}

func (f *fakeMessenger) SendOutbound(_ context.Context, req models.OutboundMessageRequest) error {
	f.sent = append(f.sent, req)
	return f.err
}

type fakeSheet struct {
	appends  int
	replaces int
}

func (f *fakeSheet) AppendRows(context.Context, string, [][]interface{}) error {
	f.appends++
	return nil
}

func (f *fakeSheet) ReplaceRange(context.Context, string, [][]interface{}) error {
	f.replaces++
	return nil
}

func testConfig() config.Config {
	return config.Config{
		WhatsApp: config.WhatsAppConfig{ManagerID: "15550001111"},
		Reporting: config.ReportingConfig{
			CronSchedule:         "0 20 * * *",
			AutoCompleteSchedule: "5 0 * * *",
		},
	}
}

func TestRunDailyReport(t *testing.T) {
	jobs := &fakeJobs{
		view:    dashboard.View{HasBatch: true, BatchName: "Batch 2"},
		report:  &models.DashboardReport{ID: "r1"},
		history: []analytics.HistoryPoint{{BatchID: "b1"}},
	}
	messenger := &fakeMessenger{}
	sheet := &fakeSheet{}

	s := NewScheduler(testConfig(), nil, jobs, reporting.NewService(sheet, nil), messenger, nil)
	require.NoError(t, s.RunDailyReport(context.Background()))

	require.Len(t, messenger.sent, 1)
	assert.Equal(t, "15550001111", messenger.sent[0].To)
	assert.Contains(t, messenger.sent[0].Message, "Batch 2")
	assert.Equal(t, 1, sheet.appends)
	assert.Equal(t, 1, sheet.replaces)
}

func TestRunDailyReportContinuesAfterSendFailure(t *testing.T) {
	jobs := &fakeJobs{view: dashboard.View{}}
	messenger := &fakeMessenger{err: errors.New("rate limited")}
	sheet := &fakeSheet{}

	s := NewScheduler(testConfig(), nil, jobs, reporting.NewService(sheet, nil), messenger, nil)
	err := s.RunDailyReport(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
	assert.Zero(t, sheet.appends, "no report row without an active batch")
	assert.Equal(t, 1, sheet.replaces)
}

func TestRunDailyReportWithoutDelivery(t *testing.T) {
	jobs := &fakeJobs{report: &models.DashboardReport{ID: "r1"}}

	s := NewScheduler(testConfig(), nil, jobs, reporting.NewService(nil, nil), nil, nil)
	assert.NoError(t, s.RunDailyReport(context.Background()))
}

func TestRunDailyReportSaveError(t *testing.T) {
	jobs := &fakeJobs{saveErr: errors.New("mongo down")}
	messenger := &fakeMessenger{}

	s := NewScheduler(testConfig(), nil, jobs, reporting.NewService(nil, nil), messenger, nil)
	assert.ErrorContains(t, s.RunDailyReport(context.Background()), "mongo down")
	assert.Empty(t, messenger.sent)
}

func TestRunAutoComplete(t *testing.T) {
	jobs := &fakeJobs{completed: []string{"b1"}, completeErr: errors.New("complete batch b2: timeout")}

	s := NewScheduler(testConfig(), nil, jobs, reporting.NewService(nil, nil), nil, nil)
	assert.ErrorContains(t, s.RunAutoComplete(context.Background()), "b2")
}

func TestStartRejectsBadSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.Reporting.CronSchedule = "every evening"

	s := NewScheduler(cfg, nil, &fakeJobs{}, reporting.NewService(nil, nil), nil, nil)
	assert.Error(t, s.Start())
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(testConfig(), nil, &fakeJobs{}, reporting.NewService(nil, nil), nil, nil)
	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 2)
	s.Stop()
}
