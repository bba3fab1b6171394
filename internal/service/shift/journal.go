// Package shift keeps the shift journal: who is on duty, and what the
// three flow journals add up to for each calendar day.
package shift

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mamadbah2/fueldepot/internal/domain/models"
	"github.com/mamadbah2/fueldepot/internal/workbook"
	"github.com/mamadbah2/fueldepot/pkg/rounding"
)

// NoEmployee is reported for dates without a journal entry.
const NoEmployee = "not found"

var (
	ErrShiftConflict    = errors.New("another employee has an open shift")
	ErrNoActiveShift    = errors.New("no open shift")
	ErrShiftNotFound    = errors.New("shift entry not found")
	ErrEmployeeRequired = errors.New("employee is required")
)

// ConflictError names the employee holding the open shift.
type ConflictError struct {
	Employee string
	Date     time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("shift of %s opened %s is still open", e.Employee, e.Date.Format(workbook.DateLayout))
}

// Is lets errors.Is match ErrShiftConflict.
func (e *ConflictError) Is(target error) bool { return target == ErrShiftConflict }

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Open starts a shift for employee on the day of at with zero totals. When
// the same employee already holds the open shift it is resumed and resumed
// is true.
func Open(doc *workbook.Document, employee string, at time.Time) (entry models.ShiftEntry, resumed bool, err error) {
	employee = strings.TrimSpace(employee)
	if employee == "" {
		return models.ShiftEntry{}, false, ErrEmployeeRequired
	}

	if active, ok := Active(doc, at.Location()); ok {
		if active.Employee != employee {
			return models.ShiftEntry{}, false, &ConflictError{Employee: active.Employee, Date: active.Date}
		}
		return active, true, nil
	}

	date := Day(at)
	s := doc.Section(workbook.SheetShifts)
	row := s.AppendRow(workbook.StyleNormal,
		workbook.Date(date),
		workbook.Text(employee),
		workbook.Int(0), workbook.Int(0),
		workbook.Int(0), workbook.Int(0),
		workbook.Int(0), workbook.Int(0),
		workbook.Text(workbook.StatusOpen),
	)

	return models.ShiftEntry{
		Row:      row,
		Date:     date,
		Employee: employee,
		Status:   models.ShiftOpen,
	}, false, nil
}

// Close recomputes the open entry one last time and marks it closed.
func Close(doc *workbook.Document, loc *time.Location) (models.ShiftEntry, error) {
	active, ok := Active(doc, loc)
	if !ok {
		return models.ShiftEntry{}, ErrNoActiveShift
	}

	s := doc.Section(workbook.SheetShifts)
	active.Totals = Totals(doc, active.Date)
	writeTotals(s, active.Row, active.Totals)
	s.SetAt(workbook.ColShiftStatus, active.Row, workbook.Text(workbook.StatusClosed), workbook.StyleNone)
	active.Status = models.ShiftClosed
	return active, nil
}

// Delete clears a journal row entirely.
func Delete(doc *workbook.Document, row int) error {
	s := doc.Section(workbook.SheetShifts)
	if row < workbook.FirstDataRow || s.RowIsBlank(row) {
		return fmt.Errorf("row %d: %w", row, ErrShiftNotFound)
	}
	s.ClearRow(row)
	return nil
}

// Active returns the open entry, if any.
func Active(doc *workbook.Document, loc *time.Location) (models.ShiftEntry, bool) {
	s, ok := doc.Lookup(workbook.SheetShifts)
	if !ok {
		return models.ShiftEntry{}, false
	}
	for _, r := range s.Rows(workbook.FirstDataRow) {
		if strings.TrimSpace(r.Cell(workbook.ColShiftStatus).String()) == workbook.StatusOpen {
			return entryFromRow(r, loc), true
		}
	}
	return models.ShiftEntry{}, false
}

// Entries lists every journal row in row order.
func Entries(doc *workbook.Document, loc *time.Location) []models.ShiftEntry {
	s, ok := doc.Lookup(workbook.SheetShifts)
	if !ok {
		return nil
	}
	rows := s.Rows(workbook.FirstDataRow)
	out := make([]models.ShiftEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, entryFromRow(r, loc))
	}
	return out
}

// EmployeeFor returns the employee of the last journal entry dated on the
// day of date, or NoEmployee.
func EmployeeFor(doc *workbook.Document, date time.Time) string {
	row, ok := lastRowFor(doc, date)
	if !ok {
		return NoEmployee
	}
	name := strings.TrimSpace(doc.Section(workbook.SheetShifts).At(workbook.ColShiftEmployee, row).String())
	if name == "" {
		return NoEmployee
	}
	return name
}

// Recalculate overwrites the totals of the last journal entry of date with
// a fresh sum of the flow journals. Nothing is written when the date has no
// entry. It reports whether an entry was updated.
func Recalculate(doc *workbook.Document, date time.Time) bool {
	row, ok := lastRowFor(doc, date)
	if !ok {
		return false
	}
	writeTotals(doc.Section(workbook.SheetShifts), row, Totals(doc, date))
	return true
}

// Totals sums the receipt, truck and aircraft journals for the day of date.
func Totals(doc *workbook.Document, date time.Time) models.ShiftTotals {
	var t models.ShiftTotals
	t.ReceivedL, t.ReceivedKg = sumFlows(doc, workbook.SheetReceipts, workbook.ColReceiptDate, workbook.ColReceiptLiters, workbook.ColReceiptKg, date)
	t.IssuedTruckL, t.IssuedTruckKg = sumFlows(doc, workbook.SheetTruckIssues, workbook.ColTruckDate, workbook.ColTruckLiters, workbook.ColTruckKg, date)
	t.IssuedAirL, t.IssuedAirKg = sumFlows(doc, workbook.SheetAircraftIssues, workbook.ColAircraftDate, workbook.ColAircraftLiters, workbook.ColAircraftKg, date)
	return RoundTotals(t)
}

// RoundTotals rounds every field to two decimals.
func RoundTotals(t models.ShiftTotals) models.ShiftTotals {
	return models.ShiftTotals{
		ReceivedL:     rounding.Liters(t.ReceivedL),
		ReceivedKg:    rounding.Kilograms(t.ReceivedKg),
		IssuedTruckL:  rounding.Liters(t.IssuedTruckL),
		IssuedTruckKg: rounding.Kilograms(t.IssuedTruckKg),
		IssuedAirL:    rounding.Liters(t.IssuedAirL),
		IssuedAirKg:   rounding.Kilograms(t.IssuedAirKg),
	}
}

// SameDay compares calendar days, ignoring time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// TotalsFromRow reads the six totals of a journal row.
func TotalsFromRow(r workbook.Row) models.ShiftTotals {
	return models.ShiftTotals{
		ReceivedL:     r.Cell(workbook.ColShiftReceivedL).FloatOrZero(),
		ReceivedKg:    r.Cell(workbook.ColShiftReceivedKg).FloatOrZero(),
		IssuedTruckL:  r.Cell(workbook.ColShiftTruckL).FloatOrZero(),
		IssuedTruckKg: r.Cell(workbook.ColShiftTruckKg).FloatOrZero(),
		IssuedAirL:    r.Cell(workbook.ColShiftAircraftL).FloatOrZero(),
		IssuedAirKg:   r.Cell(workbook.ColShiftAircraftKg).FloatOrZero(),
	}
}

func sumFlows(doc *workbook.Document, sheet string, dateCol, litersCol, kgCol int, date time.Time) (liters, kg float64) {
	s, ok := doc.Lookup(sheet)
	if !ok {
		return 0, 0
	}
	for _, r := range s.Rows(workbook.FirstDataRow) {
		d, ok := r.Cell(dateCol).Date(date.Location())
		if !ok || !SameDay(d, date) {
			continue
		}
		liters += r.Cell(litersCol).FloatOrZero()
		kg += r.Cell(kgCol).FloatOrZero()
	}
	return liters, kg
}

func lastRowFor(doc *workbook.Document, date time.Time) (int, bool) {
	s, ok := doc.Lookup(workbook.SheetShifts)
	if !ok {
		return 0, false
	}
	found := 0
	for _, r := range s.Rows(workbook.FirstDataRow) {
		if d, ok := r.Cell(workbook.ColShiftDate).Date(date.Location()); ok && SameDay(d, date) {
			found = r.Number
		}
	}
	return found, found != 0
}

func writeTotals(s *workbook.Section, row int, t models.ShiftTotals) {
	s.SetAt(workbook.ColShiftReceivedL, row, workbook.Number(t.ReceivedL), workbook.StyleNone)
	s.SetAt(workbook.ColShiftReceivedKg, row, workbook.Number(t.ReceivedKg), workbook.StyleNone)
	s.SetAt(workbook.ColShiftTruckL, row, workbook.Number(t.IssuedTruckL), workbook.StyleNone)
	s.SetAt(workbook.ColShiftTruckKg, row, workbook.Number(t.IssuedTruckKg), workbook.StyleNone)
	s.SetAt(workbook.ColShiftAircraftL, row, workbook.Number(t.IssuedAirL), workbook.StyleNone)
	s.SetAt(workbook.ColShiftAircraftKg, row, workbook.Number(t.IssuedAirKg), workbook.StyleNone)
}

func entryFromRow(r workbook.Row, loc *time.Location) models.ShiftEntry {
	if loc == nil {
		loc = time.UTC
	}
	date, _ := r.Cell(workbook.ColShiftDate).Date(loc)
	status := models.ShiftClosed
	if strings.TrimSpace(r.Cell(workbook.ColShiftStatus).String()) == workbook.StatusOpen {
		status = models.ShiftOpen
	}
	return models.ShiftEntry{
		Row:      r.Number,
		Date:     date,
		Employee: strings.TrimSpace(r.Cell(workbook.ColShiftEmployee).String()),
		Status:   status,
		Totals:   TotalsFromRow(r),
	}
}
