package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idilsaglam/todoterm/internal/model"
)

func TestRunUsageErrors(t *testing.T) {
	assert.Equal(t, 2, Run(nil, Options{}))
	assert.Equal(t, 2, Run([]string{"bogus"}, Options{}))
	assert.Equal(t, 2, Run([]string{"add"}, Options{}))
	assert.Equal(t, 2, Run([]string{"rm"}, Options{}))
	assert.Equal(t, 2, Run([]string{"rm", "notanumber"}, Options{}))
	assert.Equal(t, 2, Run([]string{"auth"}, Options{}))
	assert.Equal(t, 0, Run([]string{"help"}, Options{}))
}

func TestStats(t *testing.T) {
	d, p := stats([]model.Item{
		{ID: 1, Done: true},
		{ID: 2},
		{ID: 3},
	})
	assert.Equal(t, 1, d)
	assert.Equal(t, 2, p)
}

func TestFlatLinesEmpty(t *testing.T) {
	lines := flatLines(nil)
	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], "no items")
}

func TestGroupLinesSplitsByDone(t *testing.T) {
	lines := groupLines([]model.Item{
		{ID: 1, Title: "open"},
		{ID: 2, Title: "closed", Done: true},
	})
	joined := ""
	for _, l := range lines {
		joined += l + "\n"
	}
	assert.Contains(t, joined, "Pending")
	assert.Contains(t, joined, "open")
	assert.Contains(t, joined, "Done")
	assert.Contains(t, joined, "closed")
}
