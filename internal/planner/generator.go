package planner

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"hooplogs/workout-service/internal/catalog"
	"hooplogs/workout-service/internal/domain"
)

// Distribution policy for a generated plan.
const (
	PlanDays            = 30
	FirstWeekDays       = 7
	DrillsPerDayMin     = 6
	DrillsPerDayMax     = 10
	FocusRatioAfterWeek = 0.7 // 70% focus drills, 30% cross-training
)

var ErrInvalidFocus = errors.New("unknown focus category")

// Generator builds 30-day plans from the drill catalog. The per-day drill
// count is random; everything else (rotation order, category cycling, the
// first-week/70-30 split) is deterministic given the drawn counts, so tests
// inject a seeded source via NewWithRand and assert structural invariants.
type Generator struct {
	catalog *catalog.Catalog
	rng     *rand.Rand
}

func New(cat *catalog.Catalog) *Generator {
	return NewWithRand(cat, rand.New(rand.NewSource(time.Now().UnixNano())))
}

func NewWithRand(cat *catalog.Catalog, rng *rand.Rand) *Generator {
	return &Generator{catalog: cat, rng: rng}
}

// Generate produces a fresh plan for the focus category, one day entry per
// date in [start, start+PlanDays). Week one draws exclusively from the
// focus category; afterwards each day gets max(1, round(0.7*count)) focus
// drills and the remainder round-robin across the other categories. Drills
// within a category rotate through its list with wraparound so that long
// runs cover every drill instead of repeating the head of the list.
func (g *Generator) Generate(focusKey string, start time.Time) (*domain.Plan, error) {
	focusCat, ok := g.catalog.Get(focusKey)
	if !ok {
		return nil, ErrInvalidFocus
	}
	var others []catalog.Category
	for _, cat := range g.catalog.Categories() {
		if cat.Key != focusKey {
			others = append(others, cat)
		}
	}

	run := &generation{catalog: g.catalog, cursors: map[string]int{}}
	startDate := domain.FormatDate(start)
	schedule := make(map[string]domain.DayEntry, PlanDays)

	for i := 0; i < PlanDays; i++ {
		date := domain.AddDays(startDate, i)
		drillCount := DrillsPerDayMin + g.rng.Intn(DrillsPerDayMax-DrillsPerDayMin+1)

		var drills []domain.DrillDefinition
		if i < FirstWeekDays {
			drills = run.pickFromCategory(focusCat, drillCount)
		} else {
			focusNeeded := int(math.Round(float64(drillCount) * FocusRatioAfterWeek))
			if focusNeeded < 1 {
				focusNeeded = 1
			}
			otherNeeded := drillCount - focusNeeded
			if otherNeeded < 0 {
				otherNeeded = 0
			}
			drills = run.pickFromCategory(focusCat, focusNeeded)
			drills = append(drills, run.pickFromOthers(others, otherNeeded)...)
		}

		schedule[date] = domain.DayEntry{
			Day:           i + 1,
			CategoryKey:   focusCat.Key,
			CategoryTitle: focusCat.Title,
			Drills:        drills,
		}
	}

	return &domain.Plan{
		FocusKey:  focusKey,
		StartDate: startDate,
		Days:      PlanDays,
		Schedule:  schedule,
	}, nil
}

// generation holds the per-call rotation cursors; they persist across days
// within one Generate call and reset on the next.
type generation struct {
	catalog *catalog.Catalog
	cursors map[string]int
}

func (r *generation) pickFromCategory(cat catalog.Category, count int) []domain.DrillDefinition {
	out := make([]domain.DrillDefinition, 0, count)
	for k := 0; k < count; k++ {
		idx := r.cursors[cat.Key] % len(cat.Drills)
		name := cat.Drills[idx]
		out = append(out, domain.DrillDefinition{
			Name:    name,
			Summary: r.catalog.BuildInstruction(cat.Key, name),
			Steps:   r.catalog.GuideSteps(name),
		})
		r.cursors[cat.Key] = (r.cursors[cat.Key] + 1) % len(cat.Drills)
	}
	return out
}

// pickFromOthers draws count drills round-robin across the non-focus
// categories, one category per slot, in catalog order.
func (r *generation) pickFromOthers(cats []catalog.Category, count int) []domain.DrillDefinition {
	if count == 0 || len(cats) == 0 {
		return nil
	}
	out := make([]domain.DrillDefinition, 0, count)
	for k := 0; k < count; k++ {
		out = append(out, r.pickFromCategory(cats[k%len(cats)], 1)...)
	}
	return out
}
