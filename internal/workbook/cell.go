package workbook

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the storage format of calendar dates.
const DateLayout = "2006-01-02"

// CellKind tags the value held by a Cell.
type CellKind uint8

const (
	KindEmpty CellKind = iota
	KindNumber
	KindText
)

// Cell is a tagged value: empty, a number or free text.
type Cell struct {
	kind CellKind
	num  float64
	text string
}

// Empty returns a blank cell.
func Empty() Cell { return Cell{} }

// Number wraps a numeric value. NaN and infinities become blank cells.
func Number(v float64) Cell {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Cell{}
	}
	return Cell{kind: KindNumber, num: v}
}

// Int wraps an integer value.
func Int(v int) Cell { return Number(float64(v)) }

// Text wraps a string. The empty string is a blank cell.
func Text(s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{kind: KindText, text: s}
}

// Date stores the calendar day of t.
func Date(t time.Time) Cell { return Text(t.Format(DateLayout)) }

// Parse classifies raw operator input: blank, a number, or text kept verbatim.
func Parse(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Cell{}
	}
	if v, ok := ParseNumber(trimmed); ok {
		return Number(v)
	}
	return Cell{kind: KindText, text: raw}
}

// FromValue converts values coming back from a storage backend.
func FromValue(v interface{}) Cell {
	switch val := v.(type) {
	case nil:
		return Cell{}
	case float64:
		return Number(val)
	case float32:
		return Number(float64(val))
	case int:
		return Int(val)
	case int64:
		return Number(float64(val))
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return Number(f)
		}
		return Text(val.String())
	case bool:
		return Text(strconv.FormatBool(val))
	case string:
		return Text(val)
	default:
		return Text(fmt.Sprint(val))
	}
}

// Kind reports the tag of the cell.
func (c Cell) Kind() CellKind { return c.kind }

// IsEmpty reports whether the cell is blank.
func (c Cell) IsEmpty() bool { return c.kind == KindEmpty }

// IsNumber reports whether the cell holds a number.
func (c Cell) IsNumber() bool { return c.kind == KindNumber }

// Float returns the numeric reading of the cell. Text is parsed; blanks and
// unparsable text report false.
func (c Cell) Float() (float64, bool) {
	switch c.kind {
	case KindNumber:
		return c.num, true
	case KindText:
		return ParseNumber(c.text)
	default:
		return 0, false
	}
}

// FloatOrZero is Float with 0 for anything non-numeric.
func (c Cell) FloatOrZero() float64 {
	v, _ := c.Float()
	return v
}

// NumberOrZero only honors cells stored as numbers; numeric-looking text
// counts as 0.
func (c Cell) NumberOrZero() float64 {
	if c.kind == KindNumber {
		return c.num
	}
	return 0
}

// Date reads a calendar day stored either as 2006-01-02 (optionally with a
// time suffix) or as 02.01.2006.
func (c Cell) Date(loc *time.Location) (time.Time, bool) {
	if c.kind != KindText {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	s := strings.TrimSpace(c.text)
	if len(s) >= len(DateLayout) {
		if t, err := time.ParseInLocation(DateLayout, s[:len(DateLayout)], loc); err == nil {
			return t, true
		}
	}
	if t, err := time.ParseInLocation("02.01.2006", s, loc); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// String renders the cell the way an operator typed it.
func (c Cell) String() string {
	switch c.kind {
	case KindNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	case KindText:
		return c.text
	default:
		return ""
	}
}

// Value returns the cell as a plain value for storage backends.
func (c Cell) Value() interface{} {
	switch c.kind {
	case KindNumber:
		return c.num
	case KindText:
		return c.text
	default:
		return ""
	}
}

// MarshalJSON encodes numbers as JSON numbers, text as strings and blanks as null.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case KindNumber:
		return json.Marshal(c.num)
	case KindText:
		return json.Marshal(c.text)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var raw interface{}
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*c = Cell{}
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return fmt.Errorf("cell number %q: %w", v, err)
		}
		*c = Number(f)
	case string:
		*c = Cell{kind: KindText, text: v}
	default:
		return fmt.Errorf("unsupported cell value %s", string(data))
	}
	return nil
}

// ParseNumber accepts decimal input with either '.' or ',' as separator.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ParseCounter reads a meter counter. Fractions are truncated and anything
// unreadable counts as 0.
func ParseCounter(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if v, ok := ParseNumber(s); ok {
		return int(v)
	}
	return 0
}
