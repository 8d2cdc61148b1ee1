// Package radiation distributes incoming shortwave radiation over the grid
// cells according to their slope and aspect.
package radiation

import (
	"fmt"
	"math"

	"github.com/im7mortal/UTM"
	"github.com/maseology/goHydro/solirrad"

	"github.com/WylieMabel/TreesAndThat/grid"
	"github.com/WylieMabel/TreesAndThat/season"
)

// cell holds the daily tables of one cell's solirrad.SolIrad; the full
// struct is dropped once built
type cell struct {
	f   [366]float64 // slope to horizontal irradiation ratio
	psi [366]float64 // potential irradiation on the slope [MJ/m²]
}

// Radiation computes, per cell, the daily ratio of slope to flat-surface
// irradiation and the potential shortwave flux for the day of its clock
type Radiation struct {
	t, lat float64
	cells  []cell
}

// New builds the slope-aspect corrections of every cell
func New(g *grid.State, latitude, t0 float64) *Radiation {
	r := &Radiation{t: t0, lat: latitude, cells: make([]cell, g.NumCells())}
	for c := range r.cells {
		s, a := g.SlopeAspect(c)
		si := solirrad.New(latitude, math.Atan(s), a)
		r.cells[c].f = si.PSIfactor
		for d := 0; d < 366; d++ {
			r.cells[c].psi[d] = si.PSIdaily(d + 1)
		}
	}
	return r
}

// SetTime moves the component clock [yr]
func (r *Radiation) SetTime(t float64) { r.t = t }

// Time component clock [yr]
func (r *Radiation) Time() float64 { return r.t }

// Latitude [deg]
func (r *Radiation) Latitude() float64 { return r.lat }

// Update writes the radiation ratio and shortwave flux for the current day
func (r *Radiation) Update(g *grid.State) {
	doy := season.Julian(r.t)
	for c := range r.cells {
		g.RadiationRatio[c] = finite(r.cells[c].f[doy])
		g.Shortwave[c] = finite(r.cells[c].psi[doy]) // [MJ/m²/day]
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || v < 0. {
		return 0.
	}
	return v
}

// Latitude converts a UTM position to latitude [deg]
func Latitude(easting, northing float64, zone int, northern bool) (float64, error) {
	lat, _, err := UTM.ToLatLon(easting, northing, zone, "", northern)
	if err != nil {
		return 0., fmt.Errorf("radiation.Latitude: %v -- (x,y)=(%f, %f) zone %d", err, easting, northing, zone)
	}
	return lat, nil
}
