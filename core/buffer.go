package core

// Point represents a 2D coordinate
type Point struct {
	X, Y int
}

// Buffer is a 2D grid of colors at terminal cell resolution
// Used as an accumulation surface: writes blend into existing content
type Buffer struct {
	width  int
	height int
	fill   RGB
	lines  [][]RGB
}

// NewBuffer creates a buffer with every cell set to fill
func NewBuffer(width, height int, fill RGB) *Buffer {
	b := &Buffer{fill: fill}
	b.lines = b.alloc(width, height)
	b.width = max(width, 0)
	b.height = max(height, 0)
	return b
}

func (b *Buffer) alloc(width, height int) [][]RGB {
	width = max(width, 0)
	height = max(height, 0)
	lines := make([][]RGB, height)
	for y := 0; y < height; y++ {
		lines[y] = make([]RGB, width)
		for x := 0; x < width; x++ {
			lines[y][x] = b.fill
		}
	}
	return lines
}

// Width returns the buffer width
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height
func (b *Buffer) Height() int {
	return b.height
}

// Fill returns the color cells are cleared to
func (b *Buffer) Fill() RGB {
	return b.fill
}

// Resize resizes the buffer, preserving existing content where possible
func (b *Buffer) Resize(newWidth, newHeight int) {
	newLines := b.alloc(newWidth, newHeight)
	for y := 0; y < len(newLines) && y < b.height; y++ {
		copy(newLines[y], b.lines[y])
	}
	b.width = max(newWidth, 0)
	b.height = max(newHeight, 0)
	b.lines = newLines
}

// Get returns the color at the given position
func (b *Buffer) Get(x, y int) (RGB, bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return RGB{}, false
	}
	return b.lines[y][x], true
}

// Set overwrites the color at the given position
func (b *Buffer) Set(x, y int, c RGB) bool {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return false
	}
	b.lines[y][x] = c
	return true
}

// Blend alpha-blends src into the cell at the given position
func (b *Buffer) Blend(x, y int, src RGB, alpha float64) bool {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return false
	}
	b.lines[y][x] = b.lines[y][x].Blend(src, alpha)
	return true
}

// BlendAll blends every cell toward src
func (b *Buffer) BlendAll(src RGB, alpha float64) {
	if alpha <= 0 {
		return
	}
	for y := range b.lines {
		line := b.lines[y]
		for x := range line {
			line[x] = line[x].Blend(src, alpha)
		}
	}
}

// Clear resets every cell to the fill color
func (b *Buffer) Clear() {
	for y := range b.lines {
		line := b.lines[y]
		for x := range line {
			line[x] = b.fill
		}
	}
}
