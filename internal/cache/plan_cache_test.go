package cache_test

import (
	"context"
	"encoding/json"
	"testing"

	"hooplogs/workout-service/internal/cache"
	"hooplogs/workout-service/internal/domain"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetState_UserScopedKeys(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := cache.NewPlanCache(rdb)

	// Legacy payloads may carry bare-string drills.
	planJSON := `{
		"focusKey": "shooting",
		"startDate": "2024-01-01",
		"days": 30,
		"plan": {
			"2024-01-01": {
				"day": 1,
				"categoryKey": "shooting",
				"categoryTitle": "Shooting Drills",
				"drills": ["Suicides x4", {"name": "Free Throw Routine (30 makes)", "summary": "s", "steps": ["a"]}]
			}
		}
	}`
	mock.ExpectGet("hl_schedule_v2:user-1").SetVal(planJSON)
	mock.ExpectGet("hl_completed_v2:user-1").SetVal(`["2024-01-01"]`)
	mock.ExpectGet("hl_drill_progress_v1:user-1").SetVal(`{"2024-01-01": {"0": true}}`)

	doc, ok := c.GetState(context.Background(), "user-1")
	require.True(t, ok)
	assert.Equal(t, "user-1", doc.UserID)
	assert.Equal(t, "shooting", doc.FocusKey)
	assert.Equal(t, []string{"2024-01-01"}, doc.CompletedDates)
	assert.True(t, doc.DrillProgress["2024-01-01"]["0"])

	entry := doc.Plan["2024-01-01"]
	require.Len(t, entry.Drills, 2)
	assert.Equal(t, "Suicides x4", entry.Drills[0].Name)
	assert.Equal(t, "s", entry.Drills[1].Summary)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetState_AbsentPlanKey(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := cache.NewPlanCache(rdb)

	mock.ExpectGet("hl_schedule_v2:user-1").RedisNil()

	_, ok := c.GetState(context.Background(), "user-1")
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetState_MissingProgressKeysAreOptional(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := cache.NewPlanCache(rdb)

	mock.ExpectGet("hl_schedule_v2:user-1").SetVal(`{"focusKey": "mental", "startDate": "2024-01-01", "days": 30, "plan": {}}`)
	mock.ExpectGet("hl_completed_v2:user-1").RedisNil()
	mock.ExpectGet("hl_drill_progress_v1:user-1").RedisNil()

	doc, ok := c.GetState(context.Background(), "user-1")
	require.True(t, ok)
	assert.Empty(t, doc.CompletedDates)
	assert.Empty(t, doc.DrillProgress)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetState_MirrorsAllThreeKeys(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := cache.NewPlanCache(rdb)

	doc := &domain.WorkoutPlanDocument{
		UserID:    "user-1",
		FocusKey:  "vertical",
		StartDate: "2024-01-01",
		Days:      30,
		Plan: map[string]domain.DayEntry{
			"2024-01-01": {Day: 1, CategoryKey: "vertical", CategoryTitle: "Vertical / Dunk Training"},
		},
		CompletedDates: []string{"2024-01-01"},
		DrillProgress:  map[string]map[string]bool{"2024-01-01": {"0": true}},
	}

	planRaw, err := json.Marshal(struct {
		FocusKey  string                     `json:"focusKey"`
		StartDate string                     `json:"startDate"`
		Days      int                        `json:"days"`
		Plan      map[string]domain.DayEntry `json:"plan"`
	}{doc.FocusKey, doc.StartDate, doc.Days, doc.Plan})
	require.NoError(t, err)
	doneRaw, err := json.Marshal(doc.CompletedDates)
	require.NoError(t, err)
	progRaw, err := json.Marshal(doc.DrillProgress)
	require.NoError(t, err)

	mock.ExpectSet("hl_schedule_v2:user-1", planRaw, 0).SetVal("OK")
	mock.ExpectSet("hl_completed_v2:user-1", doneRaw, 0).SetVal("OK")
	mock.ExpectSet("hl_drill_progress_v1:user-1", progRaw, 0).SetVal("OK")

	c.SetState(context.Background(), doc)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLegacyState_ReadsUnscopedKeys(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := cache.NewPlanCache(rdb)

	mock.ExpectGet("hl_schedule_v2").SetVal(`{"focusKey": "shooting", "startDate": "2024-01-01", "days": 30, "plan": {}}`)
	mock.ExpectGet("hl_completed_v2").RedisNil()
	mock.ExpectGet("hl_drill_progress_v1").RedisNil()

	doc, ok := c.LegacyState(context.Background())
	require.True(t, ok)
	assert.Equal(t, "shooting", doc.FocusKey)
	assert.Empty(t, doc.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLegacyState_NothingToMigrate(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := cache.NewPlanCache(rdb)

	mock.ExpectGet("hl_schedule_v2").RedisNil()

	_, ok := c.LegacyState(context.Background())
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClearLegacy(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := cache.NewPlanCache(rdb)

	mock.ExpectDel("hl_schedule_v2", "hl_completed_v2", "hl_drill_progress_v1").SetVal(3)

	c.ClearLegacy(context.Background())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClear_UserScopedKeys(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	c := cache.NewPlanCache(rdb)

	mock.ExpectDel("hl_schedule_v2:user-1", "hl_completed_v2:user-1", "hl_drill_progress_v1:user-1").SetVal(3)

	c.Clear(context.Background(), "user-1")
	require.NoError(t, mock.ExpectationsWereMet())
}
