package grid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/maseology/mmio"
)

// Definition georeferences a uniform raster
type Definition struct {
	Easting, Northing, Rotation float64 // origin [m], [deg]
	Rows, Cols                  int
	CellSize                    float64 // [m]
}

// ReadGDEF imports a grid definition file: origin easting, origin northing,
// rotation, rows, columns and a 'U'-prefixed uniform cell size, one per line.
func ReadGDEF(fp string) (Definition, error) {
	var gd Definition
	if _, ok := mmio.FileExists(fp); !ok {
		return gd, fmt.Errorf("ReadGDEF: %s not found", fp)
	}
	a, err := mmio.ReadTextLines(fp)
	if err != nil {
		return gd, fmt.Errorf("ReadGDEF: %v", err)
	}
	stErr := make([]string, 0)
	if len(a) < 6 {
		return gd, fmt.Errorf("ReadGDEF: %s has %d lines, want at least 6", fp, len(a))
	}
	errfunc := func(v string, err error) {
		stErr = append(stErr, fmt.Sprintf("failed to read '%v': %v", v, err))
	}
	for i := range a {
		a[i] = strings.TrimSpace(a[i])
	}

	if gd.Easting, err = strconv.ParseFloat(a[0], 64); err != nil {
		errfunc("OE", err)
	}
	if gd.Northing, err = strconv.ParseFloat(a[1], 64); err != nil {
		errfunc("ON", err)
	}
	if gd.Rotation, err = strconv.ParseFloat(a[2], 64); err != nil {
		errfunc("ROT", err)
	}
	nr, err := strconv.ParseInt(a[3], 10, 32)
	if err != nil {
		errfunc("NR", err)
	}
	nc, err := strconv.ParseInt(a[4], 10, 32)
	if err != nil {
		errfunc("NC", err)
	}
	gd.Rows, gd.Cols = int(nr), int(nc)
	switch {
	case len(a[5]) > 1 && a[5][0] == 85: // 85 = acsii code for 'U'
		if gd.CellSize, err = strconv.ParseFloat(a[5][1:], 64); err != nil {
			errfunc("CS", err)
		}
	default:
		stErr = append(stErr, "non-uniform grids currently not supported")
	}

	if len(stErr) > 0 {
		return gd, fmt.Errorf("ReadGDEF: %s", strings.Join(stErr, "; "))
	}
	if gd.Rows <= 0 || gd.Cols <= 0 || gd.CellSize <= 0. {
		return gd, fmt.Errorf("ReadGDEF: invalid dimensions %dx%d, cell size %f", gd.Rows, gd.Cols, gd.CellSize)
	}
	return gd, nil
}

// Centre of the raster [m], taking the origin as the upper-left corner
func (gd Definition) Centre() (float64, float64) {
	return gd.Easting + float64(gd.Cols)*gd.CellSize/2., gd.Northing - float64(gd.Rows)*gd.CellSize/2.
}

// Raster builds an empty grid state from the definition
func (gd Definition) Raster() *State {
	return NewRaster(gd.Rows, gd.Cols, gd.CellSize)
}
