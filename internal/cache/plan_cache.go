package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"hooplogs/workout-service/internal/domain"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

// Base key names. The user-scoped variants are derived by appending the
// user id; the bare names are the recognized legacy (pre-user-scoping)
// entries, read only during one-time migration.
const (
	planKeyBase     = "hl_schedule_v2"
	doneKeyBase     = "hl_completed_v2"
	progressKeyBase = "hl_drill_progress_v1"
)

func userKey(base, userID string) string {
	return fmt.Sprintf("%s:%s", base, userID)
}

// legacyPlan mirrors the legacy plan payload: the plan shell without
// progress. Drills inside may be bare strings; domain.DrillDefinition
// decoding absorbs that.
type legacyPlan struct {
	FocusKey  string                     `json:"focusKey"`
	StartDate string                     `json:"startDate"`
	Days      int                        `json:"days"`
	Plan      map[string]domain.DayEntry `json:"plan"`
}

// PlanCache is the fast local tier: a disposable, user-scoped copy of the
// remote document, stored in Redis under the same three-key layout the
// legacy client used. Failures here are logged and never propagated as
// hard errors; the remote store stays authoritative.
type PlanCache struct {
	rdb *redis.Client
}

func NewPlanCache(rdb *redis.Client) *PlanCache {
	return &PlanCache{rdb: rdb}
}

// GetState reads the user-scoped cached copy. Returns (nil, false) when the
// plan key is absent or unreadable.
func (c *PlanCache) GetState(ctx context.Context, userID string) (*domain.WorkoutPlanDocument, bool) {
	doc, ok := c.readKeys(ctx,
		userKey(planKeyBase, userID),
		userKey(doneKeyBase, userID),
		userKey(progressKeyBase, userID),
	)
	if !ok {
		return nil, false
	}
	doc.UserID = userID
	return doc, true
}

// SetState mirrors the full document into the user-scoped keys.
func (c *PlanCache) SetState(ctx context.Context, doc *domain.WorkoutPlanDocument) {
	planRaw, err := json.Marshal(legacyPlan{
		FocusKey:  doc.FocusKey,
		StartDate: doc.StartDate,
		Days:      doc.Days,
		Plan:      doc.Plan,
	})
	if err != nil {
		log.Warnf("plan cache: marshal plan for %s: %s", doc.UserID, err)
		return
	}
	doneRaw, err := json.Marshal(doc.CompletedDates)
	if err != nil {
		log.Warnf("plan cache: marshal completed dates for %s: %s", doc.UserID, err)
		return
	}
	progRaw, err := json.Marshal(doc.DrillProgress)
	if err != nil {
		log.Warnf("plan cache: marshal drill progress for %s: %s", doc.UserID, err)
		return
	}

	pipe := c.rdb.Pipeline()
	pipe.Set(ctx, userKey(planKeyBase, doc.UserID), planRaw, 0)
	pipe.Set(ctx, userKey(doneKeyBase, doc.UserID), doneRaw, 0)
	pipe.Set(ctx, userKey(progressKeyBase, doc.UserID), progRaw, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Warnf("plan cache: mirror state for %s: %s", doc.UserID, err)
	}
}

// Clear drops the user-scoped cached copy.
func (c *PlanCache) Clear(ctx context.Context, userID string) {
	err := c.rdb.Del(ctx,
		userKey(planKeyBase, userID),
		userKey(doneKeyBase, userID),
		userKey(progressKeyBase, userID),
	).Err()
	if err != nil {
		log.Warnf("plan cache: clear state for %s: %s", userID, err)
	}
}

// LegacyState reads the unscoped legacy keys. Returns (nil, false) when no
// legacy plan exists; completed dates and drill progress are optional.
func (c *PlanCache) LegacyState(ctx context.Context) (*domain.WorkoutPlanDocument, bool) {
	return c.readKeys(ctx, planKeyBase, doneKeyBase, progressKeyBase)
}

// ClearLegacy removes the legacy keys once migration has happened (or when
// a remote document made them obsolete).
func (c *PlanCache) ClearLegacy(ctx context.Context) {
	if err := c.rdb.Del(ctx, planKeyBase, doneKeyBase, progressKeyBase).Err(); err != nil {
		log.Warnf("plan cache: clear legacy keys: %s", err)
	}
}

func (c *PlanCache) readKeys(ctx context.Context, planKey, doneKey, progKey string) (*domain.WorkoutPlanDocument, bool) {
	rawPlan, err := c.rdb.Get(ctx, planKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warnf("plan cache: read %s: %s", planKey, err)
		}
		return nil, false
	}

	var lp legacyPlan
	if err := json.Unmarshal([]byte(rawPlan), &lp); err != nil {
		log.Warnf("plan cache: decode %s: %s", planKey, err)
		return nil, false
	}

	doc := &domain.WorkoutPlanDocument{
		FocusKey:       lp.FocusKey,
		StartDate:      lp.StartDate,
		Days:           lp.Days,
		Plan:           lp.Plan,
		CompletedDates: []string{},
		DrillProgress:  map[string]map[string]bool{},
	}
	if doc.Plan == nil {
		doc.Plan = map[string]domain.DayEntry{}
	}

	if rawDone, err := c.rdb.Get(ctx, doneKey).Result(); err == nil {
		if err := json.Unmarshal([]byte(rawDone), &doc.CompletedDates); err != nil {
			log.Warnf("plan cache: decode %s: %s", doneKey, err)
		}
	} else if !errors.Is(err, redis.Nil) {
		log.Warnf("plan cache: read %s: %s", doneKey, err)
	}

	if rawProg, err := c.rdb.Get(ctx, progKey).Result(); err == nil {
		if err := json.Unmarshal([]byte(rawProg), &doc.DrillProgress); err != nil {
			log.Warnf("plan cache: decode %s: %s", progKey, err)
		}
	} else if !errors.Is(err, redis.Nil) {
		log.Warnf("plan cache: read %s: %s", progKey, err)
	}

	return doc, true
}
