package domain

import "strconv"

// ProgressState records which dates and drills a user has completed against
// the active plan. DrillProgress inner maps are keyed by the drill's index
// within its day entry, as a decimal string (document stores cannot key
// maps by integers).
type ProgressState struct {
	CompletedDates []string                   `bson:"completedDates" json:"completedDates"`
	DrillProgress  map[string]map[string]bool `bson:"drillProgress" json:"drillProgress"`
}

// NewProgressState returns an empty, non-nil progress record.
func NewProgressState() ProgressState {
	return ProgressState{
		CompletedDates: []string{},
		DrillProgress:  map[string]map[string]bool{},
	}
}

// IsCompleted reports whether the date is recorded as fully done.
func (s *ProgressState) IsCompleted(date string) bool {
	for _, d := range s.CompletedDates {
		if d == date {
			return true
		}
	}
	return false
}

// HasProgress reports whether any day or drill completion has been recorded.
func (s *ProgressState) HasProgress() bool {
	return len(s.CompletedDates) > 0 || len(s.DrillProgress) > 0
}

// DrillDone reports the completion flag for one drill slot.
func (s *ProgressState) DrillDone(date string, idx int) bool {
	return s.DrillProgress[date][strconv.Itoa(idx)]
}

// SetDrillDone sets the completion flag for one drill slot.
func (s *ProgressState) SetDrillDone(date string, idx int, done bool) {
	if s.DrillProgress == nil {
		s.DrillProgress = map[string]map[string]bool{}
	}
	day, ok := s.DrillProgress[date]
	if !ok {
		day = map[string]bool{}
		s.DrillProgress[date] = day
	}
	day[strconv.Itoa(idx)] = done
}

// AllDrillsDone reports whether every index in [0, count) is flagged done.
func (s *ProgressState) AllDrillsDone(date string, count int) bool {
	day := s.DrillProgress[date]
	if len(day) == 0 || count == 0 {
		return count == 0
	}
	for i := 0; i < count; i++ {
		if !day[strconv.Itoa(i)] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy, so snapshots handed out by the service cannot
// be mutated behind its back.
func (s *ProgressState) Clone() ProgressState {
	out := ProgressState{
		CompletedDates: make([]string, len(s.CompletedDates)),
		DrillProgress:  make(map[string]map[string]bool, len(s.DrillProgress)),
	}
	copy(out.CompletedDates, s.CompletedDates)
	for date, day := range s.DrillProgress {
		dayCopy := make(map[string]bool, len(day))
		for k, v := range day {
			dayCopy[k] = v
		}
		out.DrillProgress[date] = dayCopy
	}
	return out
}
