package workbook

// FirstDataRow is the first row below the title and header rows.
const FirstDataRow = 3

// Section names.
const (
	SheetMeasurements   = "Measurements"
	SheetInventory      = "Inventory"
	SheetReceipts       = "Receipts"
	SheetTruckIssues    = "TruckIssues"
	SheetAircraftIssues = "AircraftIssues"
	SheetRailTankers    = "RailTankers"
	SheetShifts         = "Shifts"
)

// SectionNames lists the sections of a depot document in layout order.
func SectionNames() []string {
	return []string{
		SheetMeasurements,
		SheetInventory,
		SheetReceipts,
		SheetTruckIssues,
		SheetAircraftIssues,
		SheetRailTankers,
		SheetShifts,
	}
}

// Tank snapshot columns shared by the measurement and inventory sheets.
const (
	ColTankName = iota + 1
	ColTankM1
	ColTankM2
	ColTankM3
	ColTankAverage
	ColTankDensity
	ColTankTemp
	ColTankVolume
	ColTankMass
)

// Drain collector (RK-1) cells of the inventory sheet.
const (
	DrainLevelAddr  = "K3"
	DrainVolumeAddr = "L3"
	DrainMassAddr   = "M3"
)

// Receipt log columns.
const (
	ColReceiptDate = iota + 1
	ColReceiptTank
	ColReceiptStart
	ColReceiptEnd
	ColReceiptLiters
	ColReceiptKg
)

// Truck issue log columns.
const (
	ColTruckDate = iota + 1
	ColTruckNumber
	ColTruckTank
	ColTruckStart
	ColTruckEnd
	ColTruckLiters
	ColTruckKg
)

// Aircraft issue log columns.
const (
	ColAircraftDate = iota + 1
	ColAircraftTruck
	ColAircraftCoupon
	ColAircraftStart
	ColAircraftEnd
	ColAircraftDensity
	ColAircraftLiters
	ColAircraftKg
)

// Rail tanker log columns.
const (
	ColRailDate = iota + 1
	ColRailTime
	ColRailType
	ColRailNumber
	ColRailM1
	ColRailM2
	ColRailM3
	ColRailAverage
	ColRailDensity
	ColRailTemp
	ColRailVolume
	ColRailMass
)

// Shift journal columns.
const (
	ColShiftDate = iota + 1
	ColShiftEmployee
	ColShiftReceivedL
	ColShiftReceivedKg
	ColShiftTruckL
	ColShiftTruckKg
	ColShiftAircraftL
	ColShiftAircraftKg
	ColShiftStatus
)

// Shift status values stored in the journal.
const (
	StatusOpen   = "Open"
	StatusClosed = "Closed"
)

type sheetTemplate struct {
	name    string
	title   string
	headers []string
}

var logTemplates = []sheetTemplate{
	{SheetReceipts, "Fuel receipt journal", []string{"Date", "Tank", "Counter start", "Counter end", "Received (L)", "Received (kg)"}},
	{SheetTruckIssues, "Refueler truck issue journal", []string{"Date", "Truck", "Tank", "Counter start", "Counter end", "Issued (L)", "Issued (kg)"}},
	{SheetAircraftIssues, "Aircraft issue journal", []string{"Date", "Truck", "Coupon", "Counter start", "Counter end", "Density", "Issued (L)", "Issued (kg)"}},
	{SheetRailTankers, "Rail tanker measurement journal", []string{"Date", "Time", "Car type", "Car number", "Level 1 (mm)", "Level 2 (mm)", "Level 3 (mm)", "Average (mm)", "Density", "Temperature", "Volume (L)", "Mass (kg)"}},
	{SheetShifts, "Shift journal", []string{"Date", "Employee", "Received (L)", "Received (kg)", "Truck issue (L)", "Truck issue (kg)", "Aircraft issue (L)", "Aircraft issue (kg)", "Status"}},
}

var tankHeaders = []string{"Tank", "Level 1 (mm)", "Level 2 (mm)", "Level 3 (mm)", "Average (mm)", "Density", "Temperature", "Volume (L)", "Mass (kg)"}

// New builds a blank depot document with a snapshot row for every tank.
func New(tanks []string) *Document {
	d := NewDocument()

	d.initTankSheet(SheetMeasurements, "Tank measurements (balance)", tanks)
	inv := d.initTankSheet(SheetInventory, "Inventory measurements", tanks)
	inv.SetAt(11, 2, Text("RK-1 level (mm)"), StyleHeader)
	inv.SetAt(12, 2, Text("RK-1 volume (L)"), StyleHeader)
	inv.SetAt(13, 2, Text("RK-1 mass (kg)"), StyleHeader)

	for _, tpl := range logTemplates {
		s := d.Section(tpl.name)
		s.SetAt(1, 1, Text(tpl.title), StyleTitle)
		for i, h := range tpl.headers {
			s.SetAt(i+1, 2, Text(h), StyleHeader)
		}
	}
	return d
}

// EnsureLayout adds any section missing from an older document and reports
// whether something was added.
func EnsureLayout(d *Document, tanks []string) bool {
	template := New(tanks)
	added := false
	for _, s := range template.Sections() {
		if _, ok := d.Lookup(s.Name()); ok {
			continue
		}
		target := d.Section(s.Name())
		for key, c := range s.cells {
			target.SetAt(key.col, key.row, c, s.styles[key])
		}
		added = true
	}
	return added
}

// TankRow is the snapshot row of the tank at catalog index i.
func TankRow(i int) int { return FirstDataRow + i }

func (d *Document) initTankSheet(name, title string, tanks []string) *Section {
	s := d.Section(name)
	s.SetAt(1, 1, Text(title), StyleTitle)
	for i, h := range tankHeaders {
		s.SetAt(i+1, 2, Text(h), StyleHeader)
	}
	for i, tank := range tanks {
		s.SetAt(ColTankName, TankRow(i), Text(tank), StyleNormal)
	}
	return s
}
