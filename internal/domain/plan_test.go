package domain_test

import (
	"encoding/json"
	"testing"

	"hooplogs/workout-service/internal/catalog"
	"hooplogs/workout-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// Persisted drills drift between bare name strings (legacy) and structured
// objects; both decode into the canonical shape.
func TestDrillDefinition_JSONDrift(t *testing.T) {
	raw := `["Suicides x4", {"name": "Pound Series 3x30s", "summary": "s", "steps": ["a", "b"]}]`

	var drills []domain.DrillDefinition
	require.NoError(t, json.Unmarshal([]byte(raw), &drills))
	require.Len(t, drills, 2)

	assert.Equal(t, "Suicides x4", drills[0].Name)
	assert.Empty(t, drills[0].Summary)
	assert.Empty(t, drills[0].Steps)

	assert.Equal(t, "Pound Series 3x30s", drills[1].Name)
	assert.Equal(t, "s", drills[1].Summary)
	assert.Equal(t, []string{"a", "b"}, drills[1].Steps)
}

func TestDrillDefinition_BSONDrift(t *testing.T) {
	doc := bson.M{
		"drills": bson.A{
			"Suicides x4",
			bson.M{"name": "Pound Series 3x30s", "summary": "s", "steps": bson.A{"a"}},
		},
	}
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var decoded struct {
		Drills []domain.DrillDefinition `bson:"drills"`
	}
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Drills, 2)

	assert.Equal(t, "Suicides x4", decoded.Drills[0].Name)
	assert.Empty(t, decoded.Drills[0].Summary)

	assert.Equal(t, "Pound Series 3x30s", decoded.Drills[1].Name)
	assert.Equal(t, "s", decoded.Drills[1].Summary)
	assert.Equal(t, []string{"a"}, decoded.Drills[1].Steps)
}

func TestNormalizeSchedule(t *testing.T) {
	cat := catalog.New()
	schedule := map[string]domain.DayEntry{
		"2024-01-01": {
			Day:           1,
			CategoryKey:   "conditioning",
			CategoryTitle: "Conditioning Drills",
			Drills: []domain.DrillDefinition{
				{Name: "Suicides x4"},
				{Name: "Jump Rope 3x2min", Summary: "kept as-is", Steps: []string{"x"}},
			},
		},
	}

	domain.NormalizeSchedule(schedule, cat)

	drills := schedule["2024-01-01"].Drills
	assert.Contains(t, drills[0].Summary, "Suicides x4")
	assert.Contains(t, drills[0].Summary, "🔥")
	require.Len(t, drills[0].Steps, 3)

	// Already-structured drills keep what they carry.
	assert.Equal(t, "kept as-is", drills[1].Summary)
	assert.Equal(t, []string{"x"}, drills[1].Steps)
}

func TestDates(t *testing.T) {
	assert.Equal(t, "2024-01-31", domain.AddDays("2024-01-01", 30))
	assert.Equal(t, "2023-12-31", domain.AddDays("2024-01-01", -1))
	// Garbage in, garbage back (stale-data guard).
	assert.Equal(t, "not-a-date", domain.AddDays("not-a-date", 3))
}

func TestPlan_Covers(t *testing.T) {
	plan := &domain.Plan{StartDate: "2024-01-01", Days: 30}

	assert.True(t, plan.Covers("2024-01-01"))
	assert.True(t, plan.Covers("2024-01-30"))
	assert.False(t, plan.Covers("2024-01-31"))
	assert.False(t, plan.Covers("2023-12-31"))

	empty := &domain.Plan{}
	assert.False(t, empty.Covers("2024-01-01"))
}

func TestDocument_PlanStateRoundTrip(t *testing.T) {
	plan := &domain.Plan{
		FocusKey:  "mental",
		StartDate: "2024-01-01",
		Days:      30,
		Schedule: map[string]domain.DayEntry{
			"2024-01-01": {Day: 1, CategoryKey: "mental", CategoryTitle: "Mental & Strategy"},
		},
	}
	state := domain.NewProgressState()
	state.CompletedDates = []string{"2024-01-01"}
	state.SetDrillDone("2024-01-01", 0, true)

	doc := domain.NewDocument("user-1", plan, state)
	assert.Equal(t, "user-1", doc.UserID)

	gotPlan, gotState := doc.PlanState()
	require.NotNil(t, gotPlan)
	assert.Equal(t, plan.FocusKey, gotPlan.FocusKey)
	assert.Equal(t, plan.Schedule, gotPlan.Schedule)
	assert.Equal(t, state.CompletedDates, gotState.CompletedDates)
	assert.True(t, gotState.DrillDone("2024-01-01", 0))
}

func TestDocument_NoFocusMeansNoPlan(t *testing.T) {
	doc := &domain.WorkoutPlanDocument{UserID: "user-1", Days: 30}
	plan, state := doc.PlanState()
	assert.Nil(t, plan)
	assert.NotNil(t, state.CompletedDates)
	assert.NotNil(t, state.DrillProgress)
}

func TestProgressState_AllDrillsDone(t *testing.T) {
	state := domain.NewProgressState()
	state.SetDrillDone("2024-01-01", 0, true)
	state.SetDrillDone("2024-01-01", 1, true)

	assert.True(t, state.AllDrillsDone("2024-01-01", 2))
	assert.False(t, state.AllDrillsDone("2024-01-01", 3))
	assert.False(t, state.AllDrillsDone("2024-01-02", 2))
}
