package progress_test

import (
	"testing"

	"hooplogs/workout-service/internal/domain"
	"hooplogs/workout-service/internal/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan() *domain.Plan {
	return &domain.Plan{
		FocusKey:  "shooting",
		StartDate: "2024-01-01",
		Days:      30,
		Schedule: map[string]domain.DayEntry{
			"2024-01-01": {
				Day:           1,
				CategoryKey:   "shooting",
				CategoryTitle: "Shooting Drills",
				Drills: []domain.DrillDefinition{
					{Name: "Form Close‑Range (40 makes)"},
					{Name: "Free Throw Routine (30 makes)"},
				},
			},
			"2024-01-02": {
				Day:           2,
				CategoryKey:   "shooting",
				CategoryTitle: "Shooting Drills",
				Drills: []domain.DrillDefinition{
					{Name: "1‑Dribble Pull-Ups (20 total)"},
					{Name: "Catch & Shoot 5 Spots (25 makes)"},
					{Name: "Spin Out Midrange (20 makes)"},
				},
			},
		},
	}
}

func TestToggleDrill_FlipsAndUnflips(t *testing.T) {
	store := progress.NewStore(testPlan(), domain.NewProgressState())

	require.True(t, store.ToggleDrill("2024-01-01", 0))
	state := store.State()
	assert.True(t, state.DrillDone("2024-01-01", 0))
	assert.False(t, state.IsCompleted("2024-01-01"))

	require.True(t, store.ToggleDrill("2024-01-01", 0))
	state = store.State()
	assert.False(t, state.DrillDone("2024-01-01", 0))
}

func TestToggleDrill_CompletingAllDrillsCompletesDay(t *testing.T) {
	store := progress.NewStore(testPlan(), domain.NewProgressState())

	require.True(t, store.ToggleDrill("2024-01-01", 0))
	assert.False(t, store.State().IsCompleted("2024-01-01"))

	require.True(t, store.ToggleDrill("2024-01-01", 1))
	assert.True(t, store.State().IsCompleted("2024-01-01"))
}

func TestToggleDrill_CompletedDayIsImmutable(t *testing.T) {
	store := progress.NewStore(testPlan(), domain.NewProgressState())
	store.ToggleDrill("2024-01-01", 0)
	store.ToggleDrill("2024-01-01", 1)
	require.True(t, store.State().IsCompleted("2024-01-01"))

	before := store.State()
	assert.False(t, store.ToggleDrill("2024-01-01", 0))
	assert.Equal(t, before, store.State())
}

func TestToggleDrill_StaleRequestsAreNoOps(t *testing.T) {
	store := progress.NewStore(testPlan(), domain.NewProgressState())

	assert.False(t, store.ToggleDrill("2024-02-15", 0), "unknown date")
	assert.False(t, store.ToggleDrill("2024-01-01", 2), "index out of range")
	assert.False(t, store.ToggleDrill("2024-01-01", -1), "negative index")
	assert.Equal(t, domain.NewProgressState(), store.State())
}

func TestToggleDrill_NoPlan(t *testing.T) {
	store := progress.NewStore(nil, domain.NewProgressState())
	assert.False(t, store.ToggleDrill("2024-01-01", 0))
}

func TestMarkDayComplete_Idempotent(t *testing.T) {
	store := progress.NewStore(testPlan(), domain.NewProgressState())

	require.True(t, store.MarkDayComplete("2024-01-01"))
	assert.False(t, store.MarkDayComplete("2024-01-01"))

	state := store.State()
	assert.Equal(t, []string{"2024-01-01"}, state.CompletedDates)
}

func TestMarkDayComplete_UnknownDate(t *testing.T) {
	store := progress.NewStore(testPlan(), domain.NewProgressState())
	assert.False(t, store.MarkDayComplete("2024-03-01"))
	assert.Empty(t, store.State().CompletedDates)
}

func TestProgressPercent(t *testing.T) {
	store := progress.NewStore(testPlan(), domain.NewProgressState())
	assert.Equal(t, 0, store.ProgressPercent())

	store.MarkDayComplete("2024-01-01")
	// round(100 * 1/30) = 3
	assert.Equal(t, 3, store.ProgressPercent())

	store.MarkDayComplete("2024-01-02")
	// round(100 * 2/30) = 7
	assert.Equal(t, 7, store.ProgressPercent())
}

func TestProgressPercent_IgnoresDatesOutsideSchedule(t *testing.T) {
	state := domain.NewProgressState()
	state.CompletedDates = []string{"2023-12-25", "2024-01-01"}
	store := progress.NewStore(testPlan(), state)

	assert.Equal(t, 3, store.ProgressPercent())
}

func TestEntryFor(t *testing.T) {
	store := progress.NewStore(testPlan(), domain.NewProgressState())

	entry := store.EntryFor("2024-01-02")
	require.NotNil(t, entry)
	assert.Equal(t, 2, entry.Day)

	assert.Nil(t, store.EntryFor("2024-02-01"))
}

func TestHistory_SortedAndFiltered(t *testing.T) {
	state := domain.NewProgressState()
	// Out of order, with one stray date not in the schedule.
	state.CompletedDates = []string{"2024-01-02", "2023-11-11", "2024-01-01"}
	store := progress.NewStore(testPlan(), state)

	items := store.History()
	require.Len(t, items, 2)
	assert.Equal(t, "2024-01-01", items[0].Date)
	assert.Equal(t, 1, items[0].Day)
	assert.Equal(t, "Shooting Drills", items[0].CategoryTitle)
	assert.Equal(t, "2024-01-02", items[1].Date)
}
