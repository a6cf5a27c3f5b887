package progress

import (
	"math"
	"sort"

	"hooplogs/workout-service/internal/domain"
)

// CompletedDay is one row of the workout history view.
type CompletedDay struct {
	Date          string `json:"date"`
	CategoryTitle string `json:"categoryTitle"`
	Day           int    `json:"day"`
}

// Store owns the mutable progress state for one active plan. A day moves
// Scheduled -> InProgress -> Complete; Complete is terminal for that date,
// resetting requires replacing the whole plan. Not safe for concurrent use;
// the service serializes access per session.
type Store struct {
	plan  *domain.Plan
	state domain.ProgressState
}

func NewStore(plan *domain.Plan, state domain.ProgressState) *Store {
	if state.CompletedDates == nil {
		state.CompletedDates = []string{}
	}
	if state.DrillProgress == nil {
		state.DrillProgress = map[string]map[string]bool{}
	}
	return &Store{plan: plan, state: state}
}

// Plan returns the active plan, nil when no focus has been selected.
func (s *Store) Plan() *domain.Plan {
	return s.plan
}

// State returns a deep copy of the progress record.
func (s *Store) State() domain.ProgressState {
	return s.state.Clone()
}

// ToggleDrill flips the completion flag for one drill slot. Requests
// against a date with no entry, an out-of-range index, or an already
// completed day are stale UI state and absorbed as no-ops. When the flip
// leaves every drill of the day done, the date is recorded as completed in
// the same step. Returns whether anything changed.
func (s *Store) ToggleDrill(date string, idx int) bool {
	if s.plan == nil {
		return false
	}
	entry, ok := s.plan.Entry(date)
	if !ok || idx < 0 || idx >= len(entry.Drills) {
		return false
	}
	if s.state.IsCompleted(date) {
		return false
	}
	s.state.SetDrillDone(date, idx, !s.state.DrillDone(date, idx))
	if s.state.AllDrillsDone(date, len(entry.Drills)) {
		s.markComplete(date)
	}
	return true
}

// MarkDayComplete records the date as done directly, bypassing per-drill
// toggling. Idempotent; dates outside the schedule are ignored.
func (s *Store) MarkDayComplete(date string) bool {
	if s.plan == nil {
		return false
	}
	if _, ok := s.plan.Entry(date); !ok {
		return false
	}
	if s.state.IsCompleted(date) {
		return false
	}
	s.markComplete(date)
	return true
}

func (s *Store) markComplete(date string) {
	s.state.CompletedDates = append(s.state.CompletedDates, date)
}

// ProgressPercent reports plan completion, counting only completed dates
// that exist in the active schedule.
func (s *Store) ProgressPercent() int {
	if s.plan == nil || s.plan.Days == 0 {
		return 0
	}
	done := 0
	for _, d := range s.state.CompletedDates {
		if _, ok := s.plan.Entry(d); ok {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(s.plan.Days) * 100))
}

// EntryFor returns the schedule entry for a date, nil when none exists
// (rest day or no plan).
func (s *Store) EntryFor(date string) *domain.DayEntry {
	if s.plan == nil {
		return nil
	}
	entry, ok := s.plan.Entry(date)
	if !ok {
		return nil
	}
	return &entry
}

// History lists completed days present in the active schedule, ascending
// by date.
func (s *Store) History() []CompletedDay {
	if s.plan == nil {
		return nil
	}
	var items []CompletedDay
	for _, d := range s.state.CompletedDates {
		entry, ok := s.plan.Entry(d)
		if !ok {
			continue
		}
		items = append(items, CompletedDay{
			Date:          d,
			CategoryTitle: entry.CategoryTitle,
			Day:           entry.Day,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Date < items[j].Date })
	return items
}
