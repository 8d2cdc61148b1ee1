package grid

import "math"

// NewRaster allocates a rows×cols cell grid, with a one-node rim, every field zeroed
func NewRaster(rows, cols int, cellsize float64) *State {
	s := &State{Rows: rows, Cols: cols, CellSize: cellsize}
	if rows <= 0 || cols <= 0 {
		return s
	}
	nc := s.NumCells()
	for _, f := range Fields() {
		if f == PlantFunctionalType {
			s.PFT = make([]int, nc)
			continue
		}
		*s.ref(f) = make([]float64, s.size(f))
	}
	return s
}

// Valley assigns the idealised saddle-shaped valley elevation to the nodes
func (s *State) Valley() {
	nr, nc := s.Rows+2, s.Cols+2
	cx, cy := float64(nc-3)/2., float64(nr-3)/2.
	for y := 0; y < nr; y++ {
		for x := 0; x < nc; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			s.Elevation[y*nc+x] = .02*dx*dx - .02*dy*dy + 60. // [m]
		}
	}
}

// SlopeAspect returns the gradient (tangent of slope) and the downslope
// aspect [rad, clockwise from north] of cell c from its neighbouring nodes.
// Node rows increase northward.
func (s *State) SlopeAspect(c int) (tanSlope, aspect float64) {
	nc, n := s.Cols+2, s.CellNode(c)
	h := s.CellSize
	if h <= 0. {
		h = 1.
	}
	gx := (s.Elevation[n+1] - s.Elevation[n-1]) / 2. / h
	gy := (s.Elevation[n+nc] - s.Elevation[n-nc]) / 2. / h
	tanSlope = math.Hypot(gx, gy)
	if tanSlope == 0. {
		return 0., 0.
	}
	aspect = math.Atan2(-gx, -gy)
	if aspect < 0. {
		aspect += 2. * math.Pi
	}
	return
}
