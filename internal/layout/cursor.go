package layout

import "math"

// cursor tracks the three vertical positions the layout moves through.
//
// main is the shared flow position used by every full-width section.
// metadata runs down the right-hand column in parallel with the sender
// block and is folded back into main by resync. signatureAnchor records the
// baseline of the last totals line so the signature hangs off the totals
// block rather than off whatever the main flow did afterwards.
type cursor struct {
	main            float64
	metadata        float64
	signatureAnchor float64
	anchored        bool
}

func newCursor(top float64) cursor {
	return cursor{main: top, metadata: top}
}

func (c *cursor) advance(dy float64) {
	c.main -= dy
}

// startMetadata anchors the right-hand column at the given y.
func (c *cursor) startMetadata(y float64) {
	c.metadata = y
}

func (c *cursor) advanceMetadata(dy float64) {
	c.metadata -= dy
}

// resync moves main below whichever column reached further down the page.
func (c *cursor) resync() {
	c.main = math.Min(c.main, c.metadata)
}

func (c *cursor) anchorSignature(y float64) {
	c.signatureAnchor = y
	c.anchored = true
}

// below lowers main to y when y is further down the page.
func (c *cursor) below(y float64) {
	c.main = math.Min(c.main, y)
}

// reset puts every position back at the top of a new page. The signature
// anchor is dropped since it refers to the previous page.
func (c *cursor) reset(top float64) {
	*c = newCursor(top)
}
