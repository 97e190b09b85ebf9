package tacmap

import "fmt"

// Isometric projection constants: a 2:1 skew with elevation expressed as a
// vertical pixel offset. All three are multiplied by the grid cell size.
const (
	IsoKx = 0.5 // horizontal half-width per logical step
	IsoKy = 1.0 // vertical depth per logical step
	IsoKz = 0.5 // vertical lift per elevation level
)

// Project converts a logical grid position to map pixels.
//
// Orthogonal: (x*cs, y*cs); elevation has no effect.
// Isometric:  ((x-y)*Kx*cs, (x+y)*Ky*cs - elevation*Kz*cs).
//
// A non-positive cellSize collapses everything to the origin; callers check
// the cell size before relying on the result.
func Project(x, y float64, elevation int, cellSize float64, mode Projection) (sx, sy float64) {
	switch checkProjection(mode) {
	case ProjectionIsometric:
		sx = (x - y) * IsoKx * cellSize
		sy = (x+y)*IsoKy*cellSize - float64(elevation)*IsoKz*cellSize
	default:
		sx = x * cellSize
		sy = y * cellSize
	}
	return sx, sy
}

// ProjectSize converts a logical extent to map pixels. Both modes scale the
// extent by the cell size; the isometric footprint is not sheared.
func ProjectSize(width, height, cellSize float64, mode Projection) (sw, sh float64) {
	checkProjection(mode)
	return width * cellSize, height * cellSize
}

// Unproject converts map pixels back to a logical grid position assuming the
// given elevation. ok is false, and no division happens, when cellSize <= 0.
//
// The isometric solve is exact only while elevation stays constant for the
// interaction that produced (sx, sy).
func Unproject(sx, sy float64, elevation int, cellSize float64, mode Projection) (x, y float64, ok bool) {
	if cellSize <= 0 {
		return 0, 0, false
	}
	switch checkProjection(mode) {
	case ProjectionIsometric:
		groundY := sy + float64(elevation)*IsoKz*cellSize
		sum := groundY / (IsoKy * cellSize) // x + y
		diff := sx / (IsoKx * cellSize)     // x - y
		x = (sum + diff) / 2
		y = (sum - diff) / 2
	default:
		x = sx / cellSize
		y = sy / cellSize
	}
	return x, y, true
}

// checkProjection returns mode if it is known. An unknown mode panics in
// debug mode and falls back to ProjectionOrthogonal otherwise.
func checkProjection(mode Projection) Projection {
	switch mode {
	case ProjectionOrthogonal, ProjectionIsometric:
		return mode
	}
	if globalDebug {
		panic(fmt.Sprintf("tacmap debug: unknown projection mode %d", mode))
	}
	return ProjectionOrthogonal
}
