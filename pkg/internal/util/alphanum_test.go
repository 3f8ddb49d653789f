package util

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlphanumCompare(t *testing.T) {
	require.Negative(t, AlphanumCompare("Week 2", "Week 10"))
	require.Positive(t, AlphanumCompare("Week 10", "Week 2"))
	require.Zero(t, AlphanumCompare("rodeo", "Rodeo"))
	require.Negative(t, AlphanumCompare("rodeo", "rodeo 1"))
	require.Negative(t, AlphanumCompare("a1b", "a1c"))

	names := []string{"Week 10", "week 1", "Final", "Week 2"}
	slices.SortFunc(names, AlphanumCompare)
	require.Equal(t, []string{"Final", "week 1", "Week 2", "Week 10"}, names)
}
