package domain

import (
	"sort"
	"time"
)

// DefaultPickupHours are the local hours at which donations can be collected.
var DefaultPickupHours = []int{9, 13}

// PickupSchedule computes pickup slots in a fixed location.
type PickupSchedule struct {
	Hours    []int
	Location *time.Location
}

// NewPickupSchedule returns a schedule for the given hours in loc. Nil or
// empty arguments fall back to DefaultPickupHours and UTC.
func NewPickupSchedule(hours []int, loc *time.Location) PickupSchedule {
	if len(hours) == 0 {
		hours = DefaultPickupHours
	}
	if loc == nil {
		loc = time.UTC
	}
	sorted := append([]int(nil), hours...)
	sort.Ints(sorted)
	return PickupSchedule{Hours: sorted, Location: loc}
}

// NextSlots returns up to n upcoming slots strictly after now, drawn from
// today's and tomorrow's pickup hours. Returned times are in UTC.
func (s PickupSchedule) NextSlots(now time.Time, n int) []time.Time {
	local := now.In(s.Location)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.Location)

	slots := make([]time.Time, 0, n)
	for day := 0; day < 2 && len(slots) < n; day++ {
		base := today.AddDate(0, 0, day)
		for _, h := range s.Hours {
			slot := base.Add(time.Duration(h) * time.Hour)
			if !slot.After(now) {
				continue
			}
			slots = append(slots, slot.UTC())
			if len(slots) == n {
				break
			}
		}
	}
	return slots
}

// CurrentSlot returns the nearest upcoming slot, or false if none exists.
func (s PickupSchedule) CurrentSlot(now time.Time) (time.Time, bool) {
	slots := s.NextSlots(now, 1)
	if len(slots) == 0 {
		return time.Time{}, false
	}
	return slots[0], true
}
