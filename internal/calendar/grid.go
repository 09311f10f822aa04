package calendar

import "time"

// GridSize is the fixed number of cells in a month view: six weeks of seven
// days, so every month renders with the same height.
const GridSize = 42

// DayCell is one cell of the month grid.
type DayCell struct {
	Date           time.Time
	DayOfMonth     int
	IsCurrentMonth bool
}

// BuildMonthGrid produces the 42-cell grid for the month containing ref.
// Leading cells come from the tail of the previous month (one per weekday
// before the 1st, Sunday first), then every day of the month, then days from
// the next month until the grid is full. The day-of-month of ref is ignored.
func BuildMonthGrid(ref time.Time) []DayCell {
	year, month, _ := ref.Date()
	loc := ref.Location()

	firstDay := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	leadCount := int(firstDay.Weekday())

	// Day zero of the next month is the last day of this one.
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()

	cells := make([]DayCell, 0, GridSize)

	for i := leadCount; i > 0; i-- {
		date := firstDay.AddDate(0, 0, -i)
		cells = append(cells, DayCell{Date: date, DayOfMonth: date.Day()})
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, loc)
		cells = append(cells, DayCell{Date: date, DayOfMonth: day, IsCurrentMonth: true})
	}

	for day := 1; len(cells) < GridSize; day++ {
		date := time.Date(year, month+1, day, 0, 0, 0, 0, loc)
		cells = append(cells, DayCell{Date: date, DayOfMonth: day})
	}

	return cells
}
