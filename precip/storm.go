// Package precip generates stochastic daily rainfall from a Poisson storm
// arrival process, one process per precipitation regime.
package precip

import (
	"math/rand"

	mrg63k3a "github.com/maseology/pnrg/MRG63k3a"
	"github.com/rs/zerolog"

	"github.com/WylieMabel/TreesAndThat/season"
)

const minDuration = 1. // [hr] floor applied to degenerate storm/interstorm means

// Storm a single rain event, in hours from the start of the year
type Storm struct {
	Start, End float64 // [hr]
	Intensity  float64 // [mm/hr]
}

// Depth total event rainfall [mm]
func (s Storm) Depth() float64 { return (s.End - s.Start) * s.Intensity }

// NewRand returns a seeded MRG63k3a generator
func NewRand(seed int64) *rand.Rand {
	rng := rand.New(mrg63k3a.New())
	rng.Seed(seed)
	return rng
}

// Distribution an exponential storm/interstorm duration and depth process
type Distribution struct {
	p       season.Storms
	rng     *rand.Rand
	raining bool
	left    float64 // [hr] remaining in the current storm or interstorm
	inten   float64 // [mm/hr]
	Flagged int     // count of degenerate parameters clamped
}

// NewDistribution builds the process; non-positive duration means are
// degenerate: they are logged, counted and clamped to one hour.
func NewDistribution(p season.Storms, rng *rand.Rand, log zerolog.Logger) *Distribution {
	d := &Distribution{p: p, rng: rng}
	if p.MeanStorm <= 0. {
		log.Warn().Float64("mean_storm", p.MeanStorm).Msg("non-positive mean storm duration, clamped")
		d.p.MeanStorm = minDuration
		d.Flagged++
	}
	if p.MeanInterstorm <= 0. {
		log.Warn().Float64("mean_interstorm", p.MeanInterstorm).Msg("non-positive mean interstorm duration, clamped")
		d.p.MeanInterstorm = minDuration
		d.Flagged++
	}
	if p.MeanDepth < 0. {
		log.Warn().Float64("mean_depth", p.MeanDepth).Msg("negative mean storm depth, set to zero")
		d.p.MeanDepth = 0.
		d.Flagged++
	}
	d.left = d.draw(d.p.MeanInterstorm)
	return d
}

func (d *Distribution) draw(mean float64) float64 {
	x := d.rng.ExpFloat64() * mean
	if x < 1e-3 {
		return 1e-3
	}
	return x
}

func (d *Distribution) newStorm() (dur, inten float64) {
	dur = d.draw(d.p.MeanStorm)
	inten = d.rng.ExpFloat64() * d.p.MeanDepth / dur
	return
}

// Storms draws the sequence of events over totalHours, beginning in an interstorm
func (d *Distribution) Storms(totalHours float64) []Storm {
	var o []Storm
	t := 0.
	for {
		t += d.draw(d.p.MeanInterstorm)
		if t >= totalHours {
			return o
		}
		dur, inten := d.newStorm()
		o = append(o, Storm{Start: t, End: t + dur, Intensity: inten})
		t += dur
	}
}

// Advance moves the process forward by the given hours and returns the rainfall depth [mm]
func (d *Distribution) Advance(hours float64) float64 {
	y := 0.
	for hours > 0. {
		dt := hours
		if d.left < dt {
			dt = d.left
		}
		if d.raining {
			y += d.inten * dt
		}
		d.left -= dt
		hours -= dt
		if d.left <= 0. {
			if d.raining {
				d.raining, d.left = false, d.draw(d.p.MeanInterstorm)
			} else {
				d.raining = true
				d.left, d.inten = d.newStorm()
			}
		}
	}
	return y
}
