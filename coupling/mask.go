package coupling

import (
	"errors"
	"fmt"

	"github.com/WylieMabel/TreesAndThat/social"
)

var ErrPlotMissing = errors.New("no plot at grid position")

type pos struct{ x, y int }

func index(fields []social.Field) map[pos]int {
	m := make(map[pos]int, len(fields))
	for i, f := range fields {
		m[pos{f.Xcor, f.Ycor}] = i
	}
	return m
}

// cell row i sits at ycor rows/2-i, column j at xcor j-cols/2
func plotAt(ix map[pos]int, i, j, rows, cols int) (int, error) {
	k, ok := ix[pos{j - cols/2, rows/2 - i}]
	if !ok {
		return -1, fmt.Errorf("%w: row %d col %d (xcor %d, ycor %d)", ErrPlotMissing, i, j, j-cols/2, rows/2-i)
	}
	return k, nil
}

// Mask returns the row-major adoption mask of a rows×cols grid from plot positions
func Mask(fields []social.Field, rows, cols int) ([]bool, error) {
	ix, o := index(fields), make([]bool, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			k, err := plotAt(ix, i, j, rows, cols)
			if err != nil {
				return nil, err
			}
			o[i*cols+j] = fields[k].ImplementsWSA
		}
	}
	return o, nil
}

// Yields scales row-major cell biomass onto the plots, keyed by Who
func Yields(fields []social.Field, biomass []float64, rows, cols int, factor float64) (map[int]float64, error) {
	if len(biomass) != rows*cols {
		return nil, fmt.Errorf("coupling.Yields: %d biomass values for %d×%d cells", len(biomass), rows, cols)
	}
	ix, o := index(fields), make(map[int]float64, len(biomass))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			k, err := plotAt(ix, i, j, rows, cols)
			if err != nil {
				return nil, err
			}
			o[fields[k].Who] = biomass[i*cols+j] * factor
		}
	}
	return o, nil
}
