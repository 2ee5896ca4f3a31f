package schedule

import "fmt"

// DefaultInterval is the slot width in minutes.
const DefaultInterval = 30

// Slots returns the ordered candidate time labels for one day: HH:MM
// strings from startHour:00 stepping by intervalMinutes. The final hour
// contributes only its on-the-hour mark, so a 9-17 window ends at 17:00.
// Pure function; startHour == endHour yields exactly one slot.
func Slots(startHour, endHour, intervalMinutes int) []string {
	if intervalMinutes <= 0 {
		intervalMinutes = DefaultInterval
	}
	var slots []string
	for h := startHour; h <= endHour; h++ {
		for m := 0; m < 60; m += intervalMinutes {
			if h == endHour && m > 0 {
				continue
			}
			slots = append(slots, fmt.Sprintf("%02d:%02d", h, m))
		}
	}
	return slots
}
