package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffParks(t *testing.T) {
	tests := []struct {
		name       string
		current    []int64
		desired    []int64
		wantAdd    []int64
		wantRemove []int64
	}{
		{name: "from empty", current: nil, desired: []int64{1, 2}, wantAdd: []int64{1, 2}},
		{name: "unchanged", current: []int64{1, 2}, desired: []int64{2, 1}},
		{name: "replace one", current: []int64{1, 2}, desired: []int64{2, 3}, wantAdd: []int64{3}, wantRemove: []int64{1}},
		{name: "drop all but one", current: []int64{1, 2, 3}, desired: []int64{3}, wantRemove: []int64{1, 2}},
		{name: "duplicates in payload", current: []int64{1}, desired: []int64{4, 4, 1}, wantAdd: []int64{4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			add, remove := diffParks(tt.current, tt.desired)
			assert.ElementsMatch(t, tt.wantAdd, add)
			assert.ElementsMatch(t, tt.wantRemove, remove)
		})
	}
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%feria%", containsPattern("feria"))
	assert.Equal(t, `%100\%%`, containsPattern("100%"))
	assert.Equal(t, `%a\_b%`, containsPattern("a_b"))
	assert.Equal(t, `%c:\\temp%`, containsPattern(`c:\temp`))
}
