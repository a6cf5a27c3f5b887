package catalog

import "fmt"

// Category is one workout track: a fixed, ordered list of drills plus
// display metadata. The catalog is static and never mutated after init.
type Category struct {
	Key    string   `json:"key"`
	Title  string   `json:"title"`
	Emoji  string   `json:"emoji"`
	Blurb  string   `json:"blurb"`
	Drills []string `json:"drills"`
}

var categories = []Category{
	{
		Key:   "conditioning",
		Title: "Conditioning Drills",
		Emoji: "🔥",
		Blurb: "Cardio + movement endurance & repeat sprint capacity.",
		Drills: []string{
			"Shuttle Sprints 10x",
			"Suicides x4",
			"Full Court Push Pace x8",
			"Lane Agility Repeat 6x",
			"Jump Rope 3x2min",
			"Defensive Slides Corners x6",
			"Jog to Sprint Change x10",
		},
	},
	{
		Key:   "shooting",
		Title: "Shooting Drills",
		Emoji: "🎯",
		Blurb: "Form, rhythm, range & pressure composure.",
		Drills: []string{
			"Form Close‑Range (40 makes)",
			"1‑Dribble Pull-Ups (20 total)",
			"Catch & Shoot 5 Spots (25 makes)",
			"Free Throw Routine (30 makes)",
			"Game-Speed Transition 3s (20 reps)",
			"Corner to Wing Relocation (20 makes)",
			"Spin Out Midrange (20 makes)",
		},
	},
	{
		Key:   "vertical",
		Title: "Vertical / Dunk Training",
		Emoji: "🦘",
		Blurb: "Elasticity + approach mechanics for explosion.",
		Drills: []string{
			"Approach Jump Technique (8 reps)",
			"Depth Jumps (3x6)",
			"Loaded Squat Jumps (3x6)",
			"Broad Jump to Sprint 4x",
			"Single Leg Bounds 3x10m",
			"Calf / Tibialis Raises 3x15",
			"Hip Extension Bridges 3x12",
		},
	},
	{
		Key:   "ballhandling",
		Title: "Ball Handling",
		Emoji: "🤹‍♂️",
		Blurb: "Control, pace & deception layers.",
		Drills: []string{
			"Pound Series 3x30s",
			"In/Out Cross Series 3x20",
			"Cone Change of Direction 4x",
			"Retreat & Re-attack 3x10",
			"Weak-Hand Only Circuit 3x30s",
		},
	},
	{
		Key:   "strength",
		Title: "Strength & Mobility",
		Emoji: "💪",
		Blurb: "Movement quality & joint integrity foundation.",
		Drills: []string{
			"Split Squats 3x10/leg",
			"Push / Pull Superset 3x10",
			"Pallof Press 3x12",
			"Glute Bridge / Ham Raise 3x12",
			"Ankle & Hip Mobility Flow 6min",
			"Plank Variations 3x40s",
		},
	},
	{
		Key:   "recovery",
		Title: "Recovery & Flexibility",
		Emoji: "🧘‍♂️",
		Blurb: "Restore tissues & reduce system load.",
		Drills: []string{
			"Full Body Foam Roll 6min",
			"90/90 Hip Flow 3x",
			"Hamstring Floss 2x12/leg",
			"Thoracic Openers 2x10",
			"Guided Breath 5min",
		},
	},
	{
		Key:   "mental",
		Title: "Mental & Strategy",
		Emoji: "🧠",
		Blurb: "Game IQ, visualization & composure.",
		Drills: []string{
			"Visualization Script 5min",
			"Film Breakdown 10min",
			"Set Play Recall 10 reps",
			"Shot Routine Mental Reps 15",
			"Gratitude + Focus Journal",
		},
	},
}

// coachingHints are appended to a drill's summary line, per category.
var coachingHints = map[string]string{
	"shooting":     "Track makes & attempts; balanced mechanics.",
	"conditioning": "Control pacing early; smooth turns.",
	"vertical":     "Full recovery between power sets (60–90s).",
	"ballhandling": "Eyes up; sharp rhythm + foot timing.",
	"strength":     "Quality movement over load.",
	"recovery":     "Breathe slow; ease into range.",
	"mental":       "Single-task attention; no distractions.",
}

// genericSteps is the fallback guide for drills without a dedicated script.
var genericSteps = []string{
	"Maintain quality form.",
	"Log honest effort.",
	"Hydrate and recover.",
}

// DefaultEmoji is used when composing instructions for drills whose
// category can no longer be resolved (legacy data).
const DefaultEmoji = "🏀"

// Catalog is the read-only registry of workout categories and drill guides.
// Safe for concurrent readers.
type Catalog struct {
	byKey map[string]*Category
}

func New() *Catalog {
	byKey := make(map[string]*Category, len(categories))
	for i := range categories {
		byKey[categories[i].Key] = &categories[i]
	}
	return &Catalog{byKey: byKey}
}

// Categories returns all categories in their fixed display order.
func (c *Catalog) Categories() []Category {
	return categories
}

// Get resolves a category by key.
func (c *Catalog) Get(key string) (Category, bool) {
	cat, ok := c.byKey[key]
	if !ok {
		return Category{}, false
	}
	return *cat, true
}

// BuildInstruction composes the drill summary shown to the user:
// the category emoji, the drill name, and a category coaching hint.
// Unknown categories get the default emoji and an empty hint.
func (c *Catalog) BuildInstruction(categoryKey, drillName string) string {
	emoji := DefaultEmoji
	if cat, ok := c.byKey[categoryKey]; ok {
		emoji = cat.Emoji
	}
	return fmt.Sprintf("%s %s\n%s", emoji, drillName, coachingHints[categoryKey])
}

// GuideSteps returns the instructional script for a drill, or the generic
// three-step fallback when the drill has no dedicated guide.
func (c *Catalog) GuideSteps(drillName string) []string {
	if steps, ok := drillGuides[drillName]; ok {
		return steps
	}
	return genericSteps
}
