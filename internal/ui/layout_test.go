package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitWidths(t *testing.T) {
	grid, panel := NewLayout(150, 40).SplitWidths()
	assert.Equal(t, 100, grid)
	assert.Equal(t, 50, panel)

	grid, panel = NewLayout(60, 40).SplitWidths()
	assert.Equal(t, 32, grid)
	assert.Equal(t, minPanelWidth, panel)
}

func TestContentHeight(t *testing.T) {
	assert.Equal(t, 38, NewLayout(100, 40).ContentHeight())
}
