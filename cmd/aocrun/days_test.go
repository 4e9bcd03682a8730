package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/aocrun/day"
	"github.com/verte-zerg/aocrun/internal/example"
)

func TestSampleDaysPassTheirExamples(t *testing.T) {
	for _, d := range []day.Day{day01(), day02()} {
		out, err := example.NewRunner(nil).Run(d)
		require.NoError(t, err, "day %d", d.Number())
		assert.False(t, out.Skipped, "day %d", d.Number())
		assert.NoError(t, out.Mismatch(), "day %d", d.Number())
	}
}

func TestDay01RejectsMalformedInput(t *testing.T) {
	_, _, err := day.RunPart1(day01(), "1 2\n3\n")
	var execErr *day.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Contains(t, err.Error(), "line 2")
}

func TestSafeDampened(t *testing.T) {
	assert.True(t, safeDampened([]int{1, 3, 2, 4, 5}))
	assert.False(t, safeDampened([]int{1, 2, 7, 8, 9}))
	assert.True(t, safeDampened([]int{9, 1, 2, 3}))
}
