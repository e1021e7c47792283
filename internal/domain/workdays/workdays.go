// Package workdays implements working-day deadline arithmetic.
// Saturdays and Sundays do not count toward resolution windows.
package workdays

import "time"

// Add returns t advanced by n working days. Weekend days are skipped,
// so a Friday deadline of one working day lands on Monday.
func Add(t time.Time, n int) time.Time {
	if n <= 0 {
		return t
	}
	result := t
	for remaining := n; remaining > 0; {
		result = result.AddDate(0, 0, 1)
		if isWeekend(result) {
			continue
		}
		remaining--
	}
	return result
}

func isWeekend(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return false
}
