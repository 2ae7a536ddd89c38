package carousel

import (
	"github.com/Carmen-Shannon/oxy-tour/common"
)

// carousel is the implementation of the Carousel interface.
type carousel struct {
	length  int
	visible int
	index   int
}

// Carousel tracks the first visible item of a fixed-size window sliding over an ordered list.
// The window never wraps around: the start index stays inside [0, max(0, length-visible)].
type Carousel interface {
	// Index returns the start index of the visible window.
	//
	// Returns:
	//   - int: the first visible item index
	Index() int

	// Window returns the half-open range [start, end) of visible item indices.
	//
	// Returns:
	//   - start, end: the visible range
	Window() (start, end int)

	// Next slides the window forward by one item, stopping at the last full window.
	//
	// Returns:
	//   - bool: true if the window moved
	Next() bool

	// Prev slides the window back by one item, stopping at zero.
	//
	// Returns:
	//   - bool: true if the window moved
	Prev() bool

	// CanNext reports whether Next would move the window.
	CanNext() bool

	// CanPrev reports whether Prev would move the window.
	CanPrev() bool

	// Reveal slides the window the minimum distance needed to make item i visible.
	// Out-of-range indices are ignored.
	//
	// Parameters:
	//   - i: the item index to reveal
	Reveal(i int)

	// SetLength updates the list length and re-clamps the window.
	//
	// Parameters:
	//   - length: the new number of items
	SetLength(length int)

	// Visible returns the window size.
	//
	// Returns:
	//   - int: the number of items shown at once
	Visible() int
}

var _ Carousel = &carousel{}

// NewCarousel creates a carousel over length items showing visible items at a time.
// A non-positive visible size is treated as 1.
//
// Parameters:
//   - length: the number of items in the list
//   - visible: the window size
//
// Returns:
//   - Carousel: the carousel with its window at index 0
func NewCarousel(length, visible int) Carousel {
	if visible < 1 {
		visible = 1
	}
	if length < 0 {
		length = 0
	}
	return &carousel{length: length, visible: visible}
}

func (c *carousel) Index() int {
	return c.index
}

func (c *carousel) Window() (start, end int) {
	end = c.index + c.visible
	if end > c.length {
		end = c.length
	}
	return c.index, end
}

func (c *carousel) Next() bool {
	return c.move(c.index + 1)
}

func (c *carousel) Prev() bool {
	return c.move(c.index - 1)
}

func (c *carousel) CanNext() bool {
	return c.index < c.maxIndex()
}

func (c *carousel) CanPrev() bool {
	return c.index > 0
}

func (c *carousel) Reveal(i int) {
	if i < 0 || i >= c.length {
		return
	}
	switch {
	case i < c.index:
		c.move(i)
	case i >= c.index+c.visible:
		c.move(i - c.visible + 1)
	}
}

func (c *carousel) SetLength(length int) {
	if length < 0 {
		length = 0
	}
	c.length = length
	c.move(c.index)
}

func (c *carousel) Visible() int {
	return c.visible
}

func (c *carousel) maxIndex() int {
	return max(0, c.length-c.visible)
}

func (c *carousel) move(to int) bool {
	to = common.Clamp(to, 0, c.maxIndex())
	moved := to != c.index
	c.index = to
	return moved
}
