package models

import "time"

// ShiftStatus is the state of a journal entry.
type ShiftStatus string

const (
	ShiftOpen   ShiftStatus = "Open"
	ShiftClosed ShiftStatus = "Closed"
)

// ShiftTotals are the per-day sums of the three flow journals.
type ShiftTotals struct {
	ReceivedL     float64 `json:"received_l" bson:"received_l"`
	ReceivedKg    float64 `json:"received_kg" bson:"received_kg"`
	IssuedTruckL  float64 `json:"issued_truck_l" bson:"issued_truck_l"`
	IssuedTruckKg float64 `json:"issued_truck_kg" bson:"issued_truck_kg"`
	IssuedAirL    float64 `json:"issued_aircraft_l" bson:"issued_aircraft_l"`
	IssuedAirKg   float64 `json:"issued_aircraft_kg" bson:"issued_aircraft_kg"`
}

// Add returns the field-wise sum.
func (t ShiftTotals) Add(o ShiftTotals) ShiftTotals {
	return ShiftTotals{
		ReceivedL:     t.ReceivedL + o.ReceivedL,
		ReceivedKg:    t.ReceivedKg + o.ReceivedKg,
		IssuedTruckL:  t.IssuedTruckL + o.IssuedTruckL,
		IssuedTruckKg: t.IssuedTruckKg + o.IssuedTruckKg,
		IssuedAirL:    t.IssuedAirL + o.IssuedAirL,
		IssuedAirKg:   t.IssuedAirKg + o.IssuedAirKg,
	}
}

// ShiftEntry is one row of the shift journal.
type ShiftEntry struct {
	Row      int         `json:"row"`
	Date     time.Time   `json:"date"`
	Employee string      `json:"employee"`
	Status   ShiftStatus `json:"status"`
	Totals   ShiftTotals `json:"totals"`
}
