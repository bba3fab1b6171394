package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/fueldepot/internal/domain/models"
)

type fakeArchiver struct {
	dates []time.Time
	err   error
}

func (f *fakeArchiver) ArchiveDay(_ context.Context, date time.Time) (models.DailyReport, error) {
	if f.err != nil {
		return models.DailyReport{}, f.err
	}
	f.dates = append(f.dates, date)
	return models.DailyReport{Date: date, Employees: []string{"Ivanov"}}, nil
}

type fakeNotifier struct {
	reports []models.DailyReport
}

func (f *fakeNotifier) SendDailySummary(_ context.Context, r models.DailyReport) error {
	f.reports = append(f.reports, r)
	return nil
}

func TestRunDaily(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	archiver := &fakeArchiver{}
	notifier := &fakeNotifier{}
	s := NewScheduler("0 23 * * *", loc, archiver, notifier, nil)
	s.now = func() time.Time { return time.Date(2024, time.March, 5, 21, 30, 0, 0, time.UTC) }

	require.NoError(t, s.RunDaily(context.Background()))

	require.Len(t, archiver.dates, 1)
	assert.Equal(t, 6, archiver.dates[0].Day())
	require.Len(t, notifier.reports, 1)
	assert.Equal(t, []string{"Ivanov"}, notifier.reports[0].Employees)
}

func TestRunDailyWithoutNotifier(t *testing.T) {
	archiver := &fakeArchiver{}
	s := NewScheduler("0 23 * * *", nil, archiver, nil, nil)

	require.NoError(t, s.RunDaily(context.Background()))
	assert.Len(t, archiver.dates, 1)
}

func TestRunDailyArchiveFailure(t *testing.T) {
	notifier := &fakeNotifier{}
	s := NewScheduler("0 23 * * *", nil, &fakeArchiver{err: errors.New("mongo down")}, notifier, nil)

	assert.Error(t, s.RunDaily(context.Background()))
	assert.Empty(t, notifier.reports)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler("every evening", nil, &fakeArchiver{}, nil, nil)
	assert.Error(t, s.Start())
}
