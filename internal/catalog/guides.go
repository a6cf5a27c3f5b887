package catalog

// drillGuides maps a drill name to its step-by-step script. Drills missing
// from this table fall back to genericSteps.
var drillGuides = map[string][]string{
	"Shuttle Sprints 10x": {
		"Markers at FT line, half, opposite baseline.",
		"Sprint to each marker & back (short->long).",
		"Relax shoulders on return jog.",
	},
	"Suicides x4": {
		"Baseline to FT, back; half, back; opposite FT, back; full, back.",
		"pace 1-2 at 80%, 3-4 push 90%+.",
		"Deep nasal in / mouth out.",
	},
	"Full Court Push Pace x8": {
		"Down & back continuous.",
		"Maintain upright posture.",
		"Target even splits.",
	},
	"Jump Rope 3x2min": {
		"Light feet, neutral wrists.",
		"30s rest between rounds.",
		"Stay tall, no tucking.",
	},
	"Form Close‑Range (40 makes)": {
		"One-hand form early reps.",
		"Hold follow-through 1s.",
		"Arc + soft rim touch.",
	},
	"1‑Dribble Pull-Ups (20 total)": {
		"Alternate directions.",
		"Plant inside foot stable.",
		"Rise vertical, stay square.",
	},
	"Catch & Shoot 5 Spots (25 makes)": {
		"5 spots baseline–baseline.",
		"Game-speed footwork.",
		"Track makes/attempts.",
	},
	"Free Throw Routine (30 makes)": {
		"Rep exact routine.",
		"Deep breath before shot.",
		"Track streak best.",
	},
	"Approach Jump Technique (8 reps)": {
		"Controlled 2–3 step build.",
		"Full extension upward.",
		"Stick landing softly.",
	},
	"Depth Jumps (3x6)": {
		"Step off (don’t jump).",
		"Absorb then explode fast.",
		"60–90s rest sets.",
	},
	"Loaded Squat Jumps (3x6)": {
		"Light load only.",
		"Explosive concentric.",
		"Reset stance each rep.",
	},
	"Split Squats 3x10/leg": {
		"Front shin vertical.",
		"2s lower, drive up.",
		"No knee cave.",
	},
	"Pallof Press 3x12": {
		"Band/cable chest height.",
		"Press, resist rotation.",
		"Exhale on press.",
	},
	"Plank Variations 3x40s": {
		"Glutes + core braced.",
		"Neutral neck line.",
		"No hip sag/pike.",
	},
}
