package availability

import (
	"testing"

	"github.com/Waleed-420/E-Clinical/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildGrid(t *testing.T) {
	t.Run("Half-Open Interval", func(t *testing.T) {
		groups := BuildGrid([]models.ScheduleInterval{{Start: "09:00", End: "10:00"}}, GridStepMinutes)

		assert.Len(t, groups, 1)
		assert.Equal(t, []string{"09:00", "09:30"}, groups[0].Slots, "10:00 must be excluded")
	})

	t.Run("Interval Shorter Than Step", func(t *testing.T) {
		groups := BuildGrid([]models.ScheduleInterval{{Start: "09:00", End: "09:15"}}, GridStepMinutes)

		assert.Len(t, groups, 1)
		assert.Empty(t, groups[0].Slots)
	})

	t.Run("Partial Trailing Slot Dropped", func(t *testing.T) {
		groups := BuildGrid([]models.ScheduleInterval{{Start: "09:00", End: "10:15"}}, GridStepMinutes)

		assert.Equal(t, []string{"09:00", "09:30"}, groups[0].Slots, "the 10:00 slot would overrun the interval end")
	})

	t.Run("Two Hour Interval", func(t *testing.T) {
		groups := BuildGrid([]models.ScheduleInterval{{Start: "09:00", End: "11:00"}}, GridStepMinutes)

		assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, groups[0].Slots)
	})

	t.Run("Malformed Interval Skipped", func(t *testing.T) {
		groups := BuildGrid([]models.ScheduleInterval{
			{Start: "bogus", End: "10:00"},
			{Start: "14:00", End: "15:00"},
		}, GridStepMinutes)

		assert.Len(t, groups, 1, "bad interval must not abort the rest")
		assert.Equal(t, []string{"14:00", "14:30"}, groups[0].Slots)
	})

	t.Run("Inverted Interval Skipped", func(t *testing.T) {
		groups := BuildGrid([]models.ScheduleInterval{
			{Start: "16:00", End: "12:00"},
			{Start: "09:00", End: "09:00"},
			{Start: "10:00", End: "11:00"},
		}, GridStepMinutes)

		assert.Len(t, groups, 1)
		assert.Equal(t, "10:00", groups[0].Start)
	})

	t.Run("Groups Preserve Interval Order", func(t *testing.T) {
		groups := BuildGrid([]models.ScheduleInterval{
			{Start: "14:00", End: "15:00"},
			{Start: "09:00", End: "10:00"},
		}, GridStepMinutes)

		assert.Len(t, groups, 2)
		assert.Equal(t, "14:00", groups[0].Start)
		assert.Equal(t, "09:00", groups[1].Start)
	})
}

func TestFlatten(t *testing.T) {
	t.Run("Deduplicates Overlapping Intervals", func(t *testing.T) {
		groups := BuildGrid([]models.ScheduleInterval{
			{Start: "09:00", End: "10:30"},
			{Start: "10:00", End: "11:00"},
		}, GridStepMinutes)

		flat := Flatten(groups)
		assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, flat, "10:00 appears in both intervals but is reported once")
	})

	t.Run("Ascending Order", func(t *testing.T) {
		groups := BuildGrid([]models.ScheduleInterval{
			{Start: "14:00", End: "15:00"},
			{Start: "09:00", End: "10:00"},
		}, GridStepMinutes)

		assert.Equal(t, []string{"09:00", "09:30", "14:00", "14:30"}, Flatten(groups))
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, Flatten(nil))
	})
}
