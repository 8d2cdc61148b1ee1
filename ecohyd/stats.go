package ecohyd

import (
	"math"

	"github.com/WylieMabel/TreesAndThat/grid"
	"github.com/WylieMabel/TreesAndThat/season"
)

// Split a daily mean over adopting (WSA) and non-adopting plots; NaN for an empty group
type Split struct {
	WSA, NoWSA float64
}

// DayRecord the state of one day of the annual loop, taken after vegetation update
type DayRecord struct {
	Year   int
	Day    int     // loop index 0..364
	Julian int     //
	Time   float64 // [yr] clock at the start of the day
	Regime season.Regime
	Phase  season.Phase
	Rain   float64 // [mm/day]

	Saturation Split
	Biomass    Split
	PET30      Split
	Rainfall   Split
	PFT        [grid.NumPFT]int // cell count per functional type
}

// YearStats yearly accumulators
type YearStats struct {
	WaterStress []float64   // [cell] cumulative daily water stress
	Days        []DayRecord // one per day of the loop
	Rainfall    float64     // [mm] year total
}

// Harvest the result of one annual loop
type Harvest struct {
	Year         int
	Biomass      []float64 // [cell] live biomass at the canicula start, before the harvest
	SoilMoisture []float64 // [cell] saturation at the canicula end
	Stats        YearStats
}

func split(v []float64, mask []bool) Split {
	var sw, sn, nw, nn float64
	for c, x := range v {
		if mask[c] {
			sw += x
			nw++
		} else {
			sn += x
			nn++
		}
	}
	s := Split{WSA: math.NaN(), NoWSA: math.NaN()}
	if nw > 0 {
		s.WSA = sw / nw
	}
	if nn > 0 {
		s.NoWSA = sn / nn
	}
	return s
}

func (m *Model) record(h *Harvest, day, julian int, t0, rain float64, r season.Regime, mask []bool) {
	g := m.g
	for c, w := range g.WaterStress {
		h.Stats.WaterStress[c] += w // daily step
	}
	h.Stats.Rainfall += rain
	d := DayRecord{
		Year:       m.year,
		Day:        day,
		Julian:     julian,
		Time:       t0,
		Regime:     r,
		Phase:      m.sch.Phase(),
		Rain:       rain,
		Saturation: split(g.Saturation, mask),
		Biomass:    split(g.LiveBiomass, mask),
		PET30:      split(g.PET30, mask),
		Rainfall:   split(g.RainfallDepth, mask),
	}
	for _, t := range g.PFT {
		if t >= 0 && t < grid.NumPFT {
			d.PFT[t]++
		}
	}
	h.Stats.Days = append(h.Stats.Days, d)
	m.hist = append(m.hist, d)
}
