package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoiceforge/internal/domain"
	"invoiceforge/internal/layout"
)

func TestDefaultGeometry(t *testing.T) {
	g := layout.DefaultGeometry()
	require.NoError(t, g.Validate())
	assert.Equal(t, 600.0, g.Width)
	assert.Equal(t, 800.0, g.Height)
	assert.Equal(t, 750.0, g.Top())
	assert.Equal(t, 700.0, g.Usable())
	assert.Equal(t, 15.0, g.LineHeight)
	assert.Equal(t, 12.0, g.FontSize)
}

func TestGeometry_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*layout.PageGeometry)
	}{
		{"zero_width", func(g *layout.PageGeometry) { g.Width = 0 }},
		{"zero_line_height", func(g *layout.PageGeometry) { g.LineHeight = 0 }},
		{"negative_margin", func(g *layout.PageGeometry) { g.LeftMargin = -1 }},
		{"margins_swallow_page", func(g *layout.PageGeometry) { g.TopMargin, g.BottomMargin = 400, 390 }},
		{"header_band_too_tall", func(g *layout.PageGeometry) { g.MetadataOffset = 900 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := layout.DefaultGeometry()
			tt.mutate(&g)
			assert.ErrorIs(t, g.Validate(), domain.ErrInvalidGeometry)
		})
	}
}

func TestLookupPaper(t *testing.T) {
	p, err := layout.LookupPaper(" A4 ")
	require.NoError(t, err)
	assert.Equal(t, "a4", p.Name)
	assert.InDelta(t, 595.28, p.Width, 1e-9)

	_, err = layout.LookupPaper("tabloid")
	assert.ErrorIs(t, err, domain.ErrInvalidGeometry)
}

func TestGeometry_WithPaperKeepsRightColumnsOnPage(t *testing.T) {
	letter, err := layout.LookupPaper("letter")
	require.NoError(t, err)

	g := layout.DefaultGeometry().WithPaper(letter)
	require.NoError(t, g.Validate())
	assert.Equal(t, 612.0, g.Width)
	assert.Equal(t, 792.0, g.Height)
	assert.Equal(t, 462.0, g.AmountX)
	assert.Equal(t, 462.0, g.TotalsValueX)
	// Left-hand columns do not move.
	assert.Equal(t, 50.0, g.QtyX)
	assert.Equal(t, 100.0, g.DescriptionX)
}
