package domain

import (
	"encoding/json"
	"fmt"

	"hooplogs/workout-service/internal/catalog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// DrillDefinition is the canonical drill shape: a name, a one-line summary
// (emoji + coaching hint) and an ordered step script.
//
// Historical documents stored drills as bare name strings; both the JSON and
// BSON decoders below accept either representation so that drift never
// leaks past the load boundary. Missing summaries/steps are filled in by
// NormalizeSchedule.
type DrillDefinition struct {
	Name    string   `bson:"name" json:"name"`
	Summary string   `bson:"summary,omitempty" json:"summary,omitempty"`
	Steps   []string `bson:"steps,omitempty" json:"steps,omitempty"`
}

func (d *DrillDefinition) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*d = DrillDefinition{Name: name}
		return nil
	}
	type alias DrillDefinition
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*d = DrillDefinition(a)
	return nil
}

func (d *DrillDefinition) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	if t == bsontype.String {
		name, _, ok := bsoncore.ReadString(data)
		if !ok {
			return fmt.Errorf("invalid bson string value for drill")
		}
		*d = DrillDefinition{Name: name}
		return nil
	}
	type alias DrillDefinition
	var a alias
	if err := bson.Unmarshal(data, &a); err != nil {
		return err
	}
	*d = DrillDefinition(a)
	return nil
}

// DayEntry is the drill set assigned to one calendar date. Immutable after
// generation; completion status lives in ProgressState.
type DayEntry struct {
	Day           int               `bson:"day" json:"day"`
	CategoryKey   string            `bson:"categoryKey" json:"categoryKey"`
	CategoryTitle string            `bson:"categoryTitle" json:"categoryTitle"`
	Drills        []DrillDefinition `bson:"drills" json:"drills"`
}

// Plan is the full 30-day schedule for one focus selection, keyed by ISO
// date (yyyy-mm-dd).
type Plan struct {
	FocusKey  string              `bson:"focusKey" json:"focusKey"`
	StartDate string              `bson:"startDate" json:"startDate"`
	Days      int                 `bson:"days" json:"days"`
	Schedule  map[string]DayEntry `bson:"plan" json:"plan"`
}

// Entry returns the day entry for a date, if scheduled.
func (p *Plan) Entry(date string) (DayEntry, bool) {
	entry, ok := p.Schedule[date]
	return entry, ok
}

// Covers reports whether the date falls within [StartDate, StartDate+Days).
func (p *Plan) Covers(date string) bool {
	if p.StartDate == "" {
		return false
	}
	return date >= p.StartDate && date < AddDays(p.StartDate, p.Days)
}

// NormalizeSchedule canonicalizes every drill in the schedule: legacy bare
// names get a summary and guide steps from the catalog, structured drills
// keep what they carry and have gaps filled. Safe to run repeatedly.
func NormalizeSchedule(schedule map[string]DayEntry, cat *catalog.Catalog) {
	for date, entry := range schedule {
		for i := range entry.Drills {
			dr := &entry.Drills[i]
			if dr.Summary == "" {
				dr.Summary = cat.BuildInstruction(entry.CategoryKey, dr.Name)
			}
			if len(dr.Steps) == 0 {
				dr.Steps = cat.GuideSteps(dr.Name)
			}
		}
		schedule[date] = entry
	}
}
