package catalog_test

import (
	"testing"

	"hooplogs/workout-service/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories_UniqueKeysAndDrills(t *testing.T) {
	cat := catalog.New()
	cats := cat.Categories()
	require.Len(t, cats, 7)

	seenKeys := map[string]bool{}
	for _, c := range cats {
		assert.False(t, seenKeys[c.Key], "duplicate category key %s", c.Key)
		seenKeys[c.Key] = true

		assert.NotEmpty(t, c.Title)
		assert.NotEmpty(t, c.Emoji)
		assert.NotEmpty(t, c.Drills)

		seenDrills := map[string]bool{}
		for _, d := range c.Drills {
			assert.False(t, seenDrills[d], "duplicate drill %q in category %s", d, c.Key)
			seenDrills[d] = true
		}
	}
}

func TestGet(t *testing.T) {
	cat := catalog.New()

	shooting, ok := cat.Get("shooting")
	require.True(t, ok)
	assert.Equal(t, "Shooting Drills", shooting.Title)
	assert.Len(t, shooting.Drills, 7)

	_, ok = cat.Get("swimming")
	assert.False(t, ok)
}

func TestBuildInstruction(t *testing.T) {
	cat := catalog.New()

	instr := cat.BuildInstruction("shooting", "Free Throw Routine (30 makes)")
	assert.Contains(t, instr, "🎯")
	assert.Contains(t, instr, "Free Throw Routine (30 makes)")
	assert.Contains(t, instr, "Track makes & attempts")

	// Unknown category: default emoji, empty hint.
	instr = cat.BuildInstruction("nope", "Some Drill")
	assert.Contains(t, instr, catalog.DefaultEmoji)
	assert.Contains(t, instr, "Some Drill")
}

func TestGuideSteps(t *testing.T) {
	cat := catalog.New()

	steps := cat.GuideSteps("Suicides x4")
	require.Len(t, steps, 3)
	assert.Contains(t, steps[0], "Baseline to FT")

	fallback := cat.GuideSteps("Unknown Drill 9000")
	require.Len(t, fallback, 3)
	assert.Equal(t, "Maintain quality form.", fallback[0])
	assert.Equal(t, "Log honest effort.", fallback[1])
	assert.Equal(t, "Hydrate and recover.", fallback[2])
}
