// Package clockx implements the CLOCK (second-chance) page replacement
// algorithm over a fixed set of frame ids.
package clockx

// Clock tracks which frames are currently unpinned and eligible for
// eviction, and approximates LRU by sweeping a clock hand over them.
//
// A frame only occupies a slot in the clock while it is unpinned
// (in the replacer). Pin removes it from consideration; Unpin re-admits
// it with its reference bit set, giving it one free pass before it can
// be chosen as a victim.
type Clock struct {
	inReplacer []bool
	refBit     []bool
	hand       int
	size       int // number of frames currently in the replacer
}

// New creates a Clock sized for frame ids in [0, numFrames).
func New(numFrames int) *Clock {
	if numFrames <= 0 {
		numFrames = 1
	}
	return &Clock{
		inReplacer: make([]bool, numFrames),
		refBit:     make([]bool, numFrames),
	}
}

// Size returns the number of frames currently trackable as victims.
func (c *Clock) Size() int { return c.size }

// Pin removes frameID from the replacer. Called when a frame's pin
// count goes from 0 to 1: it is no longer a candidate for eviction.
func (c *Clock) Pin(frameID int) {
	if !c.inBounds(frameID) || !c.inReplacer[frameID] {
		return
	}
	c.inReplacer[frameID] = false
	c.refBit[frameID] = false
	c.size--
}

// Unpin adds frameID to the replacer. Called when a frame's pin count
// drops to 0. The frame starts with its reference bit set, so it
// survives at least one sweep of the clock hand before eviction.
func (c *Clock) Unpin(frameID int) {
	if !c.inBounds(frameID) || c.inReplacer[frameID] {
		return
	}
	c.inReplacer[frameID] = true
	c.refBit[frameID] = true
	c.size++
}

// Victim sweeps the clock hand looking for a frame with its reference
// bit clear, clearing ref bits of frames it passes over along the way.
// It returns false if no frame is currently evictable.
func (c *Clock) Victim() (frameID int, ok bool) {
	n := len(c.inReplacer)
	if n == 0 || c.size == 0 {
		return 0, false
	}

	// At most two full sweeps: the first clears ref bits, the second
	// is guaranteed to find a frame with its bit already cleared.
	for range 2 * n {
		idx := c.hand
		c.hand = (c.hand + 1) % n

		if !c.inReplacer[idx] {
			continue
		}
		if c.refBit[idx] {
			c.refBit[idx] = false
			continue
		}

		c.inReplacer[idx] = false
		c.size--
		return idx, true
	}

	return 0, false
}

func (c *Clock) inBounds(frameID int) bool {
	return frameID >= 0 && frameID < len(c.inReplacer)
}
