package oracle

import (
	"fmt"
	"image/png"
	"io"
	"os"

	"github.com/disintegration/imaging"

	"github.com/jkwang1992/rrdtplan/spatial"
)

// ImageOracle is the `engine=image` collision oracle: a grayscale
// occupancy grid where white (value 1 after normalization) is free space.
type ImageOracle struct {
	free [][]bool // free[x][y], x in [0,w), y in [0,h)
	w, h int
}

// LoadImageOracle decodes a PNG from r, normalizes it to grayscale via
// imaging.Grayscale, and thresholds it to a free/occupied grid: pixels at
// or above 255/2 are free.
func LoadImageOracle(r io.Reader) (*ImageOracle, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding map image: %w", err)
	}
	gray := imaging.Grayscale(img)
	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	free := make([][]bool, w)
	for x := 0; x < w; x++ {
		free[x] = make([]bool, h)
		for y := 0; y < h; y++ {
			c := gray.At(bounds.Min.X+x, bounds.Min.Y+y)
			r16, _, _, _ := c.RGBA()
			free[x][y] = r16 >= 0x8000
		}
	}
	return &ImageOracle{free: free, w: w, h: h}, nil
}

// LoadImageOracleFile opens path and decodes it via LoadImageOracle.
func LoadImageOracleFile(path string) (*ImageOracle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening map image %s: %w", path, err)
	}
	defer f.Close()
	return LoadImageOracle(f)
}

// NewImageOracleFromGrid builds an oracle directly from a free/occupied
// grid, primarily for tests that want to avoid encoding a PNG.
func NewImageOracleFromGrid(free [][]bool) *ImageOracle {
	w := len(free)
	h := 0
	if w > 0 {
		h = len(free[0])
	}
	return &ImageOracle{free: free, w: w, h: h}
}

// Dim implements CollisionOracle.
func (o *ImageOracle) Dim() int { return 2 }

// Bounds implements CollisionOracle.
func (o *ImageOracle) Bounds() (low, high spatial.Config) {
	return spatial.Config{0, 0}, spatial.Config{float64(o.w), float64(o.h)}
}

// ImageShape implements CollisionOracle.
func (o *ImageOracle) ImageShape() (int, int, bool) {
	return o.w, o.h, true
}

// Feasible implements CollisionOracle: q is feasible iff the pixel at
// (floor(q0), floor(q1)) is free and within bounds.
func (o *ImageOracle) Feasible(q spatial.Config) (bool, error) {
	x, y := int(q[0]), int(q[1])
	if x < 0 || y < 0 || x >= o.w || y >= o.h {
		return false, nil
	}
	return o.free[x][y], nil
}

// Visible implements CollisionOracle: rasterizes the segment qa->qb via
// Bresenham's line algorithm and requires every traversed pixel to be
// feasible.
func (o *ImageOracle) Visible(qa, qb spatial.Config) (bool, error) {
	for _, p := range bresenhamLine(int(qa[0]), int(qa[1]), int(qb[0]), int(qb[1])) {
		feasible, err := o.Feasible(spatial.Config{float64(p[0]), float64(p[1])})
		if err != nil {
			return false, err
		}
		if !feasible {
			return false, nil
		}
	}
	return true, nil
}

// bresenhamLine returns the integer pixel coordinates on the segment from
// (x1,y1) to (x2,y2), inclusive of both endpoints.
func bresenhamLine(x1, y1, x2, y2 int) [][2]int {
	dx := x2 - x1
	dy := y2 - y1

	steep := abs(dy) > abs(dx)
	if steep {
		x1, y1 = y1, x1
		x2, y2 = y2, x2
	}

	swapped := false
	if x1 > x2 {
		x1, x2 = x2, x1
		y1, y2 = y2, y1
		swapped = true
	}

	dx = x2 - x1
	dy = y2 - y1

	errAcc := dx / 2
	ystep := 1
	if y1 >= y2 {
		ystep = -1
	}

	y := y1
	var points [][2]int
	for x := x1; x <= x2; x++ {
		if steep {
			points = append(points, [2]int{y, x})
		} else {
			points = append(points, [2]int{x, y})
		}
		errAcc -= abs(dy)
		if errAcc < 0 {
			y += ystep
			errAcc += dx
		}
	}
	if swapped {
		for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
			points[i], points[j] = points[j], points[i]
		}
	}
	return points
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
