package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/fueldepot/internal/calibration"
	"github.com/mamadbah2/fueldepot/internal/domain/models"
	"github.com/mamadbah2/fueldepot/internal/repository/mongodb"
	"github.com/mamadbah2/fueldepot/internal/service/depot"
	"github.com/mamadbah2/fueldepot/internal/service/measurement"
	"github.com/mamadbah2/fueldepot/internal/service/reporting"
	"github.com/mamadbah2/fueldepot/internal/service/shift"
	"github.com/mamadbah2/fueldepot/internal/workbook"
)

// DepotService is the engine surface the HTTP layer drives.
type DepotService interface {
	Registry() *calibration.Registry
	Location() *time.Location
	Now() time.Time

	RecordTankMeasurement(ctx context.Context, tank string, in models.MeasurementInput) (models.MeasurementResult, error)
	RecordInventoryMeasurement(ctx context.Context, tank string, in models.MeasurementInput) (models.MeasurementResult, error)
	RecordDrainMeasurement(ctx context.Context, level int) (models.DrainResult, error)
	RecordReceipt(ctx context.Context, in models.ReceiptInput) (models.FlowRecord, error)
	RecordTruckIssue(ctx context.Context, in models.TruckIssueInput) (models.FlowRecord, error)
	RecordAircraftIssue(ctx context.Context, in models.AircraftIssueInput) (models.FlowRecord, error)
	RecordRailTankerMeasurement(ctx context.Context, in models.RailTankerInput) (models.RailTankerRecord, error)

	OpenShift(ctx context.Context, employee string) (models.ShiftEntry, bool, error)
	CloseShift(ctx context.Context) (models.ShiftEntry, error)
	DeleteShift(ctx context.Context, row int) error
	ActiveShift() (models.ShiftEntry, bool)

	BuildBalanceReport(tanks []string, group string) (models.BalanceReport, error)
	BuildDateRangeReport(kind models.ReportKind, dates []time.Time) (models.DateRangeReport, error)
	BuildInventoryReport() (models.InventoryReport, error)
	ArchiveDay(ctx context.Context, date time.Time) (models.DailyReport, error)
	ArchivedDay(ctx context.Context, date time.Time) (models.DailyReport, error)
	Reset(ctx context.Context) error
}

// Notifier sends messages on behalf of the depot. It is optional.
type Notifier interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
	SendDailySummary(ctx context.Context, report models.DailyReport) error
}

// DepotHandler exposes the depot operations over HTTP.
type DepotHandler struct {
	svc      DepotService
	notifier Notifier
	logger   *zap.Logger
}

// NewDepotHandler constructs the HTTP handler adapter. notifier may be nil.
func NewDepotHandler(svc DepotService, notifier Notifier, logger *zap.Logger) *DepotHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepotHandler{svc: svc, notifier: notifier, logger: logger}
}

type openShiftRequest struct {
	Employee string `json:"employee" binding:"required"`
}

type drainRequest struct {
	Level *int `json:"level" binding:"required"`
}

type balanceRequest struct {
	Tanks []string `json:"tanks"`
	Group string   `json:"group"`
}

type dateRangeRequest struct {
	Dates []string `json:"dates"`
}

type archiveRequest struct {
	Date   string `json:"date"`
	Notify bool   `json:"notify"`
}

// Catalog lists the tanks, groups and rail car types.
func (h *DepotHandler) Catalog(c *gin.Context) {
	reg := h.svc.Registry()
	c.JSON(http.StatusOK, gin.H{
		"tanks":     reg.Tanks(),
		"groups":    []string{calibration.GroupAll, calibration.GroupRGS50, calibration.GroupRGS100},
		"car_types": reg.CarTypes(),
	})
}

// OpenShift starts or resumes a shift.
func (h *DepotHandler) OpenShift(c *gin.Context) {
	var req openShiftRequest
	if !h.bind(c, &req) {
		return
	}
	entry, resumed, err := h.svc.OpenShift(c.Request.Context(), req.Employee)
	if err != nil {
		h.fail(c, err)
		return
	}
	status := http.StatusCreated
	if resumed {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"shift": entry, "resumed": resumed})
}

// CloseShift ends the open shift.
func (h *DepotHandler) CloseShift(c *gin.Context) {
	entry, err := h.svc.CloseShift(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shift": entry})
}

// DeleteShift voids a journal row.
func (h *DepotHandler) DeleteShift(c *gin.Context) {
	row, err := strconv.Atoi(c.Param("row"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "row must be a number"})
		return
	}
	if err := h.svc.DeleteShift(c.Request.Context(), row); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ActiveShift returns the open shift.
func (h *DepotHandler) ActiveShift(c *gin.Context) {
	entry, ok := h.svc.ActiveShift()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": shift.ErrNoActiveShift.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shift": entry})
}

// TankMeasurement records a dip on the live balance sheet.
func (h *DepotHandler) TankMeasurement(c *gin.Context) {
	h.measure(c, h.svc.RecordTankMeasurement)
}

// InventoryMeasurement records a dip on the inventory sheet.
func (h *DepotHandler) InventoryMeasurement(c *gin.Context) {
	h.measure(c, h.svc.RecordInventoryMeasurement)
}

func (h *DepotHandler) measure(c *gin.Context, record func(context.Context, string, models.MeasurementInput) (models.MeasurementResult, error)) {
	var in models.MeasurementInput
	if !h.bind(c, &in) {
		return
	}
	res, err := record(c.Request.Context(), strings.TrimSpace(c.Param("tank")), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DrainMeasurement records the RK-1 level.
func (h *DepotHandler) DrainMeasurement(c *gin.Context) {
	var req drainRequest
	if !h.bind(c, &req) {
		return
	}
	res, err := h.svc.RecordDrainMeasurement(c.Request.Context(), *req.Level)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Receipt journals a delivery.
func (h *DepotHandler) Receipt(c *gin.Context) {
	var in models.ReceiptInput
	if !h.bind(c, &in) {
		return
	}
	rec, err := h.svc.RecordReceipt(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// TruckIssue journals a transfer into a refueler truck.
func (h *DepotHandler) TruckIssue(c *gin.Context) {
	var in models.TruckIssueInput
	if !h.bind(c, &in) {
		return
	}
	rec, err := h.svc.RecordTruckIssue(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// AircraftIssue journals an aircraft fueling.
func (h *DepotHandler) AircraftIssue(c *gin.Context) {
	var in models.AircraftIssueInput
	if !h.bind(c, &in) {
		return
	}
	rec, err := h.svc.RecordAircraftIssue(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// RailTanker journals a rail tank car dip.
func (h *DepotHandler) RailTanker(c *gin.Context) {
	var in models.RailTankerInput
	if !h.bind(c, &in) {
		return
	}
	rec, err := h.svc.RecordRailTankerMeasurement(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// BalanceReport reports the live balance of a tank selection or group.
func (h *DepotHandler) BalanceReport(c *gin.Context) {
	var req balanceRequest
	if !h.bind(c, &req) {
		return
	}
	report, err := h.svc.BuildBalanceReport(req.Tanks, req.Group)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// DateRangeReport filters a journal by calendar days.
func (h *DepotHandler) DateRangeReport(c *gin.Context) {
	kind, err := reporting.ParseKind(c.Param("kind"))
	if err != nil {
		h.fail(c, err)
		return
	}
	var req dateRangeRequest
	if !h.bind(c, &req) {
		return
	}
	dates := make([]time.Time, 0, len(req.Dates))
	for _, raw := range req.Dates {
		d, err := time.ParseInLocation(workbook.DateLayout, strings.TrimSpace(raw), h.svc.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be formatted as " + workbook.DateLayout})
			return
		}
		dates = append(dates, d)
	}
	report, err := h.svc.BuildDateRangeReport(kind, dates)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// InventoryReport reports the inventory recount.
func (h *DepotHandler) InventoryReport(c *gin.Context) {
	report, err := h.svc.BuildInventoryReport()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Archive builds, stores and optionally sends the summary of a day.
func (h *DepotHandler) Archive(c *gin.Context) {
	var req archiveRequest
	if c.Request.ContentLength > 0 && !h.bind(c, &req) {
		return
	}
	date := h.svc.Now()
	if req.Date != "" {
		d, err := time.ParseInLocation(workbook.DateLayout, req.Date, h.svc.Location())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as " + workbook.DateLayout})
			return
		}
		date = d
	}

	report, err := h.svc.ArchiveDay(c.Request.Context(), date)
	if err != nil {
		h.fail(c, err)
		return
	}
	sent := false
	if req.Notify && h.notifier != nil {
		if err := h.notifier.SendDailySummary(c.Request.Context(), report); err != nil {
			h.logger.Error("failed sending daily summary", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "summary archived but not sent", "report": report})
			return
		}
		sent = true
	}
	c.JSON(http.StatusOK, gin.H{"report": report, "sent": sent})
}

// ArchivedReport returns the summary archived for the :date path parameter.
func (h *DepotHandler) ArchivedReport(c *gin.Context) {
	date, err := time.ParseInLocation(workbook.DateLayout, c.Param("date"), h.svc.Location())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as " + workbook.DateLayout})
		return
	}
	report, err := h.svc.ArchivedDay(c.Request.Context(), date)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// Reset replaces the depot document with a blank one.
func (h *DepotHandler) Reset(c *gin.Context) {
	if err := h.svc.Reset(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SendMessage sends a manual outbound message.
func (h *DepotHandler) SendMessage(c *gin.Context) {
	if h.notifier == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "messaging is not configured"})
		return
	}
	var req models.OutboundMessageRequest
	if !h.bind(c, &req) {
		return
	}
	if err := h.notifier.SendOutbound(c.Request.Context(), req); err != nil {
		h.logger.Error("failed sending outbound", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to send message"})
		return
	}
	c.Status(http.StatusAccepted)
}

func (h *DepotHandler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.logger.Warn("invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

func (h *DepotHandler) fail(c *gin.Context, err error) {
	var conflict *shift.ConflictError
	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":    err.Error(),
			"employee": conflict.Employee,
			"since":    conflict.Date.Format(workbook.DateLayout),
		})
	case errors.Is(err, shift.ErrNoActiveShift):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, measurement.ErrUnknownTank), errors.Is(err, shift.ErrShiftNotFound),
		errors.Is(err, mongodb.ErrReportNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, depot.ErrArchiveDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, reporting.ErrUnknownReportKind), errors.Is(err, calibration.ErrUnknownGroup),
		errors.Is(err, shift.ErrEmployeeRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("depot operation failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
