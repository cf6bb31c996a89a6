package climate

// daysInMonth is a non-leap calendar year, January first.
var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// MonthNames maps month index (0-11) to its English name.
var MonthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// DayToMonthMap maps each simulation day (0-based) to a month index (0-11),
// walking calendar months from startMonth (1-based) and wrapping December
// into January.
func DayToMonthMap(startMonth, durationDays int) []int {
	if startMonth < 1 {
		startMonth = 1
	}
	if startMonth > 12 {
		startMonth = 12
	}

	out := make([]int, 0, durationDays)
	month := startMonth // 1-based
	dayInMonth := 0

	for day := 0; day < durationDays; day++ {
		out = append(out, month-1)
		dayInMonth++
		if dayInMonth >= daysInMonth[month-1] {
			dayInMonth = 0
			month = month%12 + 1
		}
	}

	return out
}
