package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursor_ResyncTakesLowerColumn(t *testing.T) {
	c := newCursor(750)
	c.advance(100)
	c.startMetadata(640)
	c.advanceMetadata(60)
	c.resync()
	assert.Equal(t, 580.0, c.main)

	c = newCursor(750)
	c.advance(300)
	c.startMetadata(640)
	c.resync()
	assert.Equal(t, 450.0, c.main)
}

func TestCursor_SignatureAnchorIndependentOfMain(t *testing.T) {
	c := newCursor(750)
	c.advance(200)
	c.anchorSignature(c.main)
	c.advance(40)

	assert.True(t, c.anchored)
	assert.Equal(t, 550.0, c.signatureAnchor)
	assert.Equal(t, 510.0, c.main)

	c.below(600)
	assert.Equal(t, 510.0, c.main)
	c.below(400)
	assert.Equal(t, 400.0, c.main)
}

func TestCursor_ResetClearsAnchor(t *testing.T) {
	c := newCursor(750)
	c.advance(500)
	c.anchorSignature(250)
	c.reset(750)

	assert.Equal(t, newCursor(750), c)
	assert.False(t, c.anchored)
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(""))
	assert.Nil(t, splitLines("  \n  "))
	assert.Equal(t, []string{"a", "b", ""}, splitLines("a\r\nb\r\n"))
	assert.Equal(t, []string{"a", ""}, splitLines("a\n"))
	assert.Equal(t, []string{"a", "", "b"}, splitLines("a\n\nb"))
	assert.Equal(t, []string{"one line, no wrapping applied"}, splitLines("one line, no wrapping applied"))
}

func TestTaxLabel(t *testing.T) {
	assert.Equal(t, "Tax (0.00%):", taxLabel(nil, 0))
}
