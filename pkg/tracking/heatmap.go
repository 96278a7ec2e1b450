package tracking

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/chenBenjamin97/court-tracker/pkg/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//ErrInvalidFrameSize is returned when asked to render a heatmap for a frame without pixels
var ErrInvalidFrameSize = errors.New("invalid frame size")

//WindowSource gives the most recent positions of a player, Store implements it
type WindowSource interface {
	Recent(id Identity, window int) []image.Point
}

//HeatmapConfig holds the parameters of the density map
type HeatmapConfig struct {
	Window     int //recent positions per player
	Radius     int //radius of the disc stamped around every position
	KernelSize int //gaussian kernel size, odd
}

//DefaultHeatmapConfig returns the window, disc radius and kernel size used for the live overlay
func DefaultHeatmapConfig() HeatmapConfig {
	return HeatmapConfig{
		Window:     utils.HeatmapWindow,
		Radius:     utils.HeatmapRadius,
		KernelSize: utils.HeatmapKernel,
	}
}

//HeatmapRenderer builds density maps out of the recent positions of both players
type HeatmapRenderer struct {
	cfg    HeatmapConfig
	kernel []float64
}

//NewHeatmapRenderer validates given config and precomputes the smoothing kernel
func NewHeatmapRenderer(cfg HeatmapConfig) (*HeatmapRenderer, error) {
	if cfg.Window <= 0 {
		return nil, fmt.Errorf("NewHeatmapRenderer: window must be positive, got %d", cfg.Window)
	}

	if cfg.Radius < 0 {
		return nil, fmt.Errorf("NewHeatmapRenderer: radius must not be negative, got %d", cfg.Radius)
	}

	if cfg.KernelSize <= 0 || cfg.KernelSize%2 == 0 {
		return nil, fmt.Errorf("NewHeatmapRenderer: kernel size must be positive and odd, got %d", cfg.KernelSize)
	}

	return &HeatmapRenderer{cfg: cfg, kernel: GaussianKernel(cfg.KernelSize)}, nil
}

//Render builds a fresh density map of width x height: discs around the recent positions of every player,
//smoothed and normalized to [0,1]. It only reads from src.
func (r *HeatmapRenderer) Render(width, height int, src WindowSource) (*DensityMap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("Render: %dx%d: %w", width, height, ErrInvalidFrameSize)
	}

	grid := mat.NewDense(height, width, nil)

	stamped := 0
	for _, id := range Identities {
		stamped += StampDiscs(grid, src.Recent(id, r.cfg.Window), r.cfg.Radius)
	}

	//blurring and normalizing an all-zero grid leaves it all-zero
	if stamped == 0 {
		return &DensityMap{grid: grid}, nil
	}

	grid = GaussianBlur(grid, r.kernel)
	Normalize(grid)

	return &DensityMap{grid: grid}, nil
}

//StampDiscs sets every cell within radius of each position to 1.0. Overlapping discs do not add up.
//Positions outside of the grid are skipped, discs crossing the border are clipped.
//Returns how many positions were stamped.
func StampDiscs(grid *mat.Dense, points []image.Point, radius int) int {
	rows, cols := grid.Dims()
	r2 := radius * radius

	stamped := 0
	for _, p := range points {
		if p.X < 0 || p.X >= cols || p.Y < 0 || p.Y >= rows {
			continue
		}
		stamped++

		for dy := -radius; dy <= radius; dy++ {
			y := p.Y + dy
			if y < 0 || y >= rows {
				continue
			}

			//half width of the disc on this row
			dx := int(math.Sqrt(float64(r2 - dy*dy)))
			x0, x1 := p.X-dx, p.X+dx
			if x0 < 0 {
				x0 = 0
			}
			if x1 >= cols {
				x1 = cols - 1
			}

			row := grid.RawRowView(y)
			for x := x0; x <= x1; x++ {
				row[x] = 1
			}
		}
	}

	return stamped
}

//GaussianKernel returns a normalized 1D gaussian kernel of given odd size.
//Sigma is derived from the size the same way OpenCV does when no sigma is given (size 31 => sigma 5).
func GaussianKernel(size int) []float64 {
	sigma := 0.3*((float64(size)-1)*0.5-1) + 0.8
	scale := -0.5 / (sigma * sigma)
	center := float64(size-1) * 0.5

	kernel := make([]float64, size)
	for i := range kernel {
		x := float64(i) - center
		kernel[i] = math.Exp(scale * x * x)
	}

	floats.Scale(1/floats.Sum(kernel), kernel)
	return kernel
}

//GaussianBlur convolves given grid with kernel along rows and then along columns, reflecting at the borders
//(dcb|abcd|cba). Returns a new grid, given one is not modified.
func GaussianBlur(grid *mat.Dense, kernel []float64) *mat.Dense {
	rows, cols := grid.Dims()
	half := len(kernel) / 2

	//horizontal pass
	horizontal := mat.NewDense(rows, cols, nil)
	padded := make([]float64, cols+2*half)
	for y := 0; y < rows; y++ {
		src := grid.RawRowView(y)
		for i := range padded {
			padded[i] = src[reflect101(i-half, cols)]
		}

		dst := horizontal.RawRowView(y)
		for k, w := range kernel {
			floats.AddScaled(dst, w, padded[k:k+cols])
		}
	}

	//vertical pass, whole rows at a time
	blurred := mat.NewDense(rows, cols, nil)
	for y := 0; y < rows; y++ {
		dst := blurred.RawRowView(y)
		for k, w := range kernel {
			floats.AddScaled(dst, w, horizontal.RawRowView(reflect101(y+k-half, rows)))
		}
	}

	return blurred
}

//Normalize divides every cell by the grid's maximum so the maximum becomes exactly 1.
//An all-zero grid is left untouched.
func Normalize(grid *mat.Dense) {
	rows, _ := grid.Dims()

	peak := 0.0
	for y := 0; y < rows; y++ {
		if m := floats.Max(grid.RawRowView(y)); m > peak {
			peak = m
		}
	}

	if peak <= 0 {
		return
	}

	for y := 0; y < rows; y++ {
		row := grid.RawRowView(y)
		for x := range row {
			row[x] /= peak
		}
	}
}

//reflect101 maps an out of range index back into [0,n) mirroring around the edge cells
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}

	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		} else {
			i = 2*(n-1) - i
		}
	}

	return i
}

//DensityMap is a height x width grid of values in [0,1]
type DensityMap struct {
	grid *mat.Dense
}

//Width returns the number of columns
func (d *DensityMap) Width() int {
	_, cols := d.grid.Dims()
	return cols
}

//Height returns the number of rows
func (d *DensityMap) Height() int {
	rows, _ := d.grid.Dims()
	return rows
}

//At returns the value of the cell at column x, row y
func (d *DensityMap) At(x, y int) float64 {
	return d.grid.At(y, x)
}

//Max returns the highest value of the map, 1 unless the map is all-zero
func (d *DensityMap) Max() float64 {
	return mat.Max(d.grid)
}

//Grid returns a copy of the map, rows first
func (d *DensityMap) Grid() *mat.Dense {
	return mat.DenseCopyOf(d.grid)
}

//Gray8 returns the map scaled to [0,255] as a row major byte slice, values are truncated
func (d *DensityMap) Gray8() []byte {
	rows, cols := d.grid.Dims()
	out := make([]byte, 0, rows*cols)
	for y := 0; y < rows; y++ {
		for _, v := range d.grid.RawRowView(y) {
			out = append(out, byte(v*255))
		}
	}

	return out
}
