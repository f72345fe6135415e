package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", Truncate("harbor", 0))
	assert.Equal(t, "harbor", Truncate("harbor", 6))
	assert.Equal(t, "har", Truncate("harbor", 3))
	assert.Equal(t, "hé...", Truncate("héllo wörld", 5))
}

func TestPartStyle(t *testing.T) {
	assert.Equal(t, MatchHighlightStyle, partStyle(RowPart{Highlight: true}, false))
	assert.Equal(t, MatchHighlightSelectedStyle, partStyle(RowPart{Highlight: true}, true))
	assert.Equal(t, DimItemStyle, partStyle(RowPart{Dim: true}, false))
	assert.Equal(t, DimSelectedItemStyle, partStyle(RowPart{Dim: true}, true))
	assert.Equal(t, NormalItemStyle, partStyle(RowPart{}, false))
	assert.Equal(t, SelectedItemStyle, partStyle(RowPart{}, true))
}

func TestRenderListRowFillsWidth(t *testing.T) {
	parts := []RowPart{{Text: "ha", Highlight: true}, {Text: "rbor"}, {Text: " @me", Dim: true}}

	for _, selected := range []bool{false, true} {
		row := RenderListRow(parts, selected, 30)
		assert.Equal(t, 30, lipgloss.Width(row))
		assert.Contains(t, row, "rbor")
	}
}
