package depot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/fueldepot/internal/calibration"
	"github.com/mamadbah2/fueldepot/internal/domain/models"
	"github.com/mamadbah2/fueldepot/internal/service/measurement"
	"github.com/mamadbah2/fueldepot/internal/service/shift"
	"github.com/mamadbah2/fueldepot/internal/workbook"
)

type memoryStore struct {
	raw     []byte
	saves   int
	saveErr error
}

func (m *memoryStore) Load(context.Context) (*workbook.Document, error) {
	if m.raw == nil {
		return nil, nil
	}
	return workbook.Unmarshal(m.raw)
}

func (m *memoryStore) Save(_ context.Context, doc *workbook.Document) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	raw, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	m.raw = raw
	m.saves++
	return nil
}

type memoryArchive struct {
	reports []models.DailyReport
}

func (m *memoryArchive) SaveDailyReport(_ context.Context, r models.DailyReport) error {
	m.reports = append(m.reports, r)
	return nil
}

var errNotArchived = errors.New("not archived")

func (m *memoryArchive) FindDailyReport(_ context.Context, date time.Time) (models.DailyReport, error) {
	for i := len(m.reports) - 1; i >= 0; i-- {
		if m.reports[i].Date.Equal(date) {
			return m.reports[i], nil
		}
	}
	return models.DailyReport{}, errNotArchived
}

var clock = time.Date(2024, time.March, 5, 10, 15, 0, 0, time.UTC)

func newService(t *testing.T, store *memoryStore, opts ...Option) *Service {
	t.Helper()
	reg, err := calibration.Load()
	require.NoError(t, err)
	opts = append([]Option{WithClock(func() time.Time { return clock })}, opts...)
	svc, err := NewService(context.Background(), reg, store, nil, opts...)
	require.NoError(t, err)
	return svc
}

func TestNewServiceCreatesDocument(t *testing.T) {
	store := &memoryStore{}
	newService(t, store)

	assert.Equal(t, 1, store.saves)
	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	_, ok := doc.Lookup(workbook.SheetShifts)
	assert.True(t, ok)
}

func TestNewServiceRejectsMalformedDocument(t *testing.T) {
	reg, err := calibration.Load()
	require.NoError(t, err)

	_, err = NewService(context.Background(), reg, &memoryStore{raw: []byte("{not json")}, nil)
	assert.ErrorIs(t, err, workbook.ErrMalformedDocument)
}

func TestDataEntryNeedsOpenShift(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{}
	svc := newService(t, store)

	_, err := svc.RecordTankMeasurement(ctx, "RGS-50 #1", models.MeasurementInput{M1: "500", M2: "500", M3: "500"})
	assert.ErrorIs(t, err, ErrNoActiveShift)
	_, err = svc.RecordReceipt(ctx, models.ReceiptInput{Tank: "RGS-50 #1", CounterEnd: "10"})
	assert.ErrorIs(t, err, ErrNoActiveShift)
	_, err = svc.RecordRailTankerMeasurement(ctx, models.RailTankerInput{CarType: "72", CarNumber: "1"})
	assert.ErrorIs(t, err, ErrNoActiveShift)
	assert.Equal(t, 1, store.saves)
}

func TestShiftWorkflow(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{}
	svc := newService(t, store)

	entry, resumed, err := svc.OpenShift(ctx, "Ivanov")
	require.NoError(t, err)
	assert.False(t, resumed)

	_, _, err = svc.OpenShift(ctx, "Petrov")
	var conflict *shift.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "Ivanov", conflict.Employee)

	_, err = svc.RecordTankMeasurement(ctx, "RGS-50 #1", models.MeasurementInput{M1: "500", M2: "500", M3: "500", Density: "0.74", Temperature: "15"})
	require.NoError(t, err)
	rec, err := svc.RecordReceipt(ctx, models.ReceiptInput{Tank: "RGS-50 #1", CounterStart: "1000", CounterEnd: "1500"})
	require.NoError(t, err)
	assert.Equal(t, 370.0, rec.Kg)

	active, ok := svc.ActiveShift()
	require.True(t, ok)
	assert.Equal(t, entry.Row, active.Row)
	assert.Equal(t, 500.0, active.Totals.ReceivedL)

	closed, err := svc.CloseShift(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ShiftClosed, closed.Status)

	_, err = svc.CloseShift(ctx)
	assert.ErrorIs(t, err, ErrNoActiveShift)
}

func TestMutationsSurviveReload(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{}
	svc := newService(t, store)

	_, _, err := svc.OpenShift(ctx, "Ivanov")
	require.NoError(t, err)
	_, err = svc.RecordTankMeasurement(ctx, "RGS-100 #1", models.MeasurementInput{M1: "500", M2: "500", M3: "500", Density: "0.8"})
	require.NoError(t, err)

	reloaded := newService(t, store)
	report, err := reloaded.BuildBalanceReport([]string{"RGS-100 #1"}, "")
	require.NoError(t, err)
	assert.Equal(t, 9802.15, report.Totals.Volume)
	assert.Equal(t, 0.8, report.Totals.AvgDensity)

	_, ok := reloaded.ActiveShift()
	assert.True(t, ok)
}

func TestFailedSaveLeavesDocumentUntouched(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{}
	svc := newService(t, store)

	_, _, err := svc.OpenShift(ctx, "Ivanov")
	require.NoError(t, err)

	store.saveErr = errors.New("disk full")
	_, err = svc.RecordReceipt(ctx, models.ReceiptInput{Tank: "RGS-50 #1", CounterStart: "0", CounterEnd: "100"})
	require.Error(t, err)

	report, err := svc.BuildDateRangeReport(models.ReportReceipts, []time.Time{clock})
	require.NoError(t, err)
	assert.Empty(t, report.Rows)
}

func TestUnknownTankIsNotSaved(t *testing.T) {
	ctx := context.Background()
	store := &memoryStore{}
	svc := newService(t, store)
	_, _, err := svc.OpenShift(ctx, "Ivanov")
	require.NoError(t, err)
	saves := store.saves

	_, err = svc.RecordTankMeasurement(ctx, "RGS-75 #1", models.MeasurementInput{M1: "1"})
	assert.ErrorIs(t, err, measurement.ErrUnknownTank)
	assert.Equal(t, saves, store.saves)
}

func TestBalanceReportByGroup(t *testing.T) {
	svc := newService(t, &memoryStore{})

	report, err := svc.BuildBalanceReport(nil, calibration.GroupRGS100)
	require.NoError(t, err)
	assert.Len(t, report.Tanks, 4)

	_, err = svc.BuildBalanceReport(nil, "all75")
	assert.ErrorIs(t, err, calibration.ErrUnknownGroup)
}

func TestArchiveDay(t *testing.T) {
	ctx := context.Background()
	archive := &memoryArchive{}
	svc := newService(t, &memoryStore{}, WithArchive(archive))

	_, _, err := svc.OpenShift(ctx, "Ivanov")
	require.NoError(t, err)
	_, err = svc.RecordAircraftIssue(ctx, models.AircraftIssueInput{Truck: "TZ-1", Coupon: "C-1", CounterStart: "0", CounterEnd: "100", Density: "0.8"})
	require.NoError(t, err)

	report, err := svc.ArchiveDay(ctx, clock)
	require.NoError(t, err)
	require.Len(t, archive.reports, 1)
	assert.Equal(t, report, archive.reports[0])
	assert.Equal(t, []string{"Ivanov"}, report.Employees)
	assert.Equal(t, 80.0, report.Totals.IssuedAirKg)
	assert.Equal(t, clock, report.CreatedAt)
}

func TestArchivedDay(t *testing.T) {
	ctx := context.Background()
	archive := &memoryArchive{}
	svc := newService(t, &memoryStore{}, WithArchive(archive))

	_, err := svc.ArchivedDay(ctx, clock)
	assert.ErrorIs(t, err, errNotArchived)

	saved, err := svc.ArchiveDay(ctx, clock)
	require.NoError(t, err)
	found, err := svc.ArchivedDay(ctx, clock.Add(5*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, saved, found)

	_, err = newService(t, &memoryStore{}).ArchivedDay(ctx, clock)
	assert.ErrorIs(t, err, ErrArchiveDisabled)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	svc := newService(t, &memoryStore{})
	_, _, err := svc.OpenShift(ctx, "Ivanov")
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx))
	_, ok := svc.ActiveShift()
	assert.False(t, ok)
}
