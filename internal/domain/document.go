package domain

import "time"

// WorkoutPlanDocument is the composite per-user remote document: the active
// plan and its progress, stored as a single entry in the workout_plans
// collection keyed by user id. Remote state is authoritative across
// sessions; the cache tier holds a disposable copy of the same shape.
type WorkoutPlanDocument struct {
	UserID         string                     `bson:"_id" json:"userId"`
	FocusKey       string                     `bson:"focusKey" json:"focusKey"`
	StartDate      string                     `bson:"startDate" json:"startDate"`
	Days           int                        `bson:"days" json:"days"`
	Plan           map[string]DayEntry        `bson:"plan" json:"plan"`
	CompletedDates []string                   `bson:"completedDates" json:"completedDates"`
	DrillProgress  map[string]map[string]bool `bson:"drillProgress" json:"drillProgress"`
	UpdatedAt      time.Time                  `bson:"updatedAt" json:"updatedAt"`
}

// NewDocument assembles the remote document from a plan and its progress.
func NewDocument(userID string, plan *Plan, state ProgressState) *WorkoutPlanDocument {
	doc := &WorkoutPlanDocument{
		UserID:         userID,
		Days:           plan.Days,
		Plan:           plan.Schedule,
		CompletedDates: state.CompletedDates,
		DrillProgress:  state.DrillProgress,
	}
	doc.FocusKey = plan.FocusKey
	doc.StartDate = plan.StartDate
	if doc.Plan == nil {
		doc.Plan = map[string]DayEntry{}
	}
	if doc.CompletedDates == nil {
		doc.CompletedDates = []string{}
	}
	if doc.DrillProgress == nil {
		doc.DrillProgress = map[string]map[string]bool{}
	}
	return doc
}

// PlanState splits the document back into a plan and progress pair.
// A document without a focus key has no active plan.
func (d *WorkoutPlanDocument) PlanState() (*Plan, ProgressState) {
	state := ProgressState{
		CompletedDates: d.CompletedDates,
		DrillProgress:  d.DrillProgress,
	}
	if state.CompletedDates == nil {
		state.CompletedDates = []string{}
	}
	if state.DrillProgress == nil {
		state.DrillProgress = map[string]map[string]bool{}
	}
	if d.FocusKey == "" {
		return nil, state
	}
	schedule := d.Plan
	if schedule == nil {
		schedule = map[string]DayEntry{}
	}
	return &Plan{
		FocusKey:  d.FocusKey,
		StartDate: d.StartDate,
		Days:      d.Days,
		Schedule:  schedule,
	}, state
}
