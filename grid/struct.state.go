package grid

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnknownField = errors.New("unknown grid field")
	ErrFieldShape   = errors.New("grid field has wrong size")
	ErrCellIndex    = errors.New("cell index out of range")
)

// State is the grid state store. Cell fields are row-major over the
// interior cells, elevation is row-major over the nodes (cells plus a one-node rim).
type State struct {
	Rows, Cols int     // interior cells
	CellSize   float64 // [m]

	Elevation []float64 // [node]

	InitialSaturation, Saturation  []float64
	RainfallDepth                  []float64
	CoverFraction, LiveLAI         []float64
	PFT                            []int
	LiveBiomass, WaterStress       []float64
	Evapotranspiration, PET, PET30 []float64
	SoilHealth                     []float64
	RadiationRatio, Shortwave      []float64
	Runoff, Leakage                []float64
}

// NumCells number of interior cells
func (s *State) NumCells() int { return s.Rows * s.Cols }

// NumNodes number of nodes, rim included
func (s *State) NumNodes() int { return (s.Rows + 2) * (s.Cols + 2) }

// CellNode returns the node index at the centre of cell c
func (s *State) CellNode(c int) int {
	i, j := c/s.Cols, c%s.Cols
	return (i+1)*(s.Cols+2) + j + 1
}

func (s *State) ref(f Field) *[]float64 {
	switch f {
	case Elevation:
		return &s.Elevation
	case InitialSaturation:
		return &s.InitialSaturation
	case Saturation:
		return &s.Saturation
	case RainfallDepth:
		return &s.RainfallDepth
	case CoverFraction:
		return &s.CoverFraction
	case LiveLAI:
		return &s.LiveLAI
	case LiveBiomass:
		return &s.LiveBiomass
	case WaterStress:
		return &s.WaterStress
	case Evapotranspiration:
		return &s.Evapotranspiration
	case PET:
		return &s.PET
	case PET30:
		return &s.PET30
	case SoilHealth:
		return &s.SoilHealth
	case RadiationRatio:
		return &s.RadiationRatio
	case Shortwave:
		return &s.Shortwave
	case Runoff:
		return &s.Runoff
	case Leakage:
		return &s.Leakage
	}
	return nil // PlantFunctionalType is integer-valued
}

func (s *State) size(f Field) int {
	if f == Elevation {
		return s.NumNodes()
	}
	return s.NumCells()
}

// Get returns a copy of the named field
func (s *State) Get(f Field) ([]float64, error) {
	if f == PlantFunctionalType {
		o := make([]float64, len(s.PFT))
		for i, v := range s.PFT {
			o[i] = float64(v)
		}
		return o, nil
	}
	p := s.ref(f)
	if p == nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownField, f)
	}
	o := make([]float64, len(*p))
	copy(o, *p)
	return o, nil
}

// Set replaces the named field; v must be dimensioned to the field's element count.
func (s *State) Set(f Field, v []float64) error {
	if n := s.size(f); len(v) != n {
		return fmt.Errorf("%w: %v has %d values, want %d", ErrFieldShape, f, len(v), n)
	}
	if f == PlantFunctionalType {
		for i, x := range v {
			s.PFT[i] = int(math.Round(x))
		}
		return nil
	}
	p := s.ref(f)
	if p == nil {
		return fmt.Errorf("%w: %v", ErrUnknownField, f)
	}
	if len(*p) != len(v) {
		*p = make([]float64, len(v))
	}
	copy(*p, v)
	return nil
}

// SetPFT assigns the functional type of every cell
func (s *State) SetPFT(v []int) error {
	if len(v) != s.NumCells() {
		return fmt.Errorf("%w: %v has %d values, want %d", ErrFieldShape, PlantFunctionalType, len(v), s.NumCells())
	}
	copy(s.PFT, v)
	return nil
}

// At returns a single cell value
func (s *State) At(f Field, c int) (float64, error) {
	if c < 0 || c >= s.size(f) {
		return 0., fmt.Errorf("%w: %d", ErrCellIndex, c)
	}
	if f == PlantFunctionalType {
		return float64(s.PFT[c]), nil
	}
	p := s.ref(f)
	if p == nil {
		return 0., fmt.Errorf("%w: %v", ErrUnknownField, f)
	}
	return (*p)[c], nil
}

// SetAt assigns a single cell value
func (s *State) SetAt(f Field, c int, v float64) error {
	if c < 0 || c >= s.size(f) {
		return fmt.Errorf("%w: %d", ErrCellIndex, c)
	}
	if f == PlantFunctionalType {
		s.PFT[c] = int(math.Round(v))
		return nil
	}
	p := s.ref(f)
	if p == nil {
		return fmt.Errorf("%w: %v", ErrUnknownField, f)
	}
	(*p)[c] = v
	return nil
}

// Fill assigns v to every element of the field
func (s *State) Fill(f Field, v float64) error {
	if f == PlantFunctionalType {
		for i := range s.PFT {
			s.PFT[i] = int(math.Round(v))
		}
		return nil
	}
	p := s.ref(f)
	if p == nil {
		return fmt.Errorf("%w: %v", ErrUnknownField, f)
	}
	for i := range *p {
		(*p)[i] = v
	}
	return nil
}

// Validate checks every field is dimensioned to its element count
func (s *State) Validate() error {
	if s.Rows <= 0 || s.Cols <= 0 {
		return fmt.Errorf("%w: %dx%d grid", ErrFieldShape, s.Rows, s.Cols)
	}
	for _, f := range Fields() {
		n := 0
		if f == PlantFunctionalType {
			n = len(s.PFT)
		} else {
			n = len(*s.ref(f))
		}
		if want := s.size(f); n != want {
			return fmt.Errorf("%w: %v has %d values, want %d", ErrFieldShape, f, n, want)
		}
	}
	return nil
}

// Clone returns a deep copy
func (s *State) Clone() *State {
	o := &State{Rows: s.Rows, Cols: s.Cols, CellSize: s.CellSize}
	for _, f := range Fields() {
		if f == PlantFunctionalType {
			o.PFT = append([]int(nil), s.PFT...)
			continue
		}
		*o.ref(f) = append([]float64(nil), *s.ref(f)...)
	}
	return o
}
