package evap

import (
	"testing"

	"github.com/maseology/goHydro/pet"
	"github.com/maseology/goHydro/solirrad"
	"github.com/stretchr/testify/assert"

	"github.com/WylieMabel/TreesAndThat/grid"
)

func flat(n int) *grid.State {
	g := grid.NewRaster(1, n, 1.)
	_ = g.Fill(grid.RadiationRatio, 1.)
	return g
}

func TestRate(t *testing.T) {
	assert.InDelta(t, pet.Makkink(15., 23., pressure, alpha, beta)*1000., Rate(15., 23.), 1e-12)
	assert.InDelta(t, 2.5, Rate(15., 23.), 1.) // [mm/day]
	assert.Zero(t, Rate(0., 23.))
	assert.Zero(t, Rate(15., -5.))
}

func TestGlobal(t *testing.T) {
	g := flat(1)
	p := New(g, 14., 100./365., 23., 26., 20.)
	si := solirrad.New(14., 0., 0.)
	assert.InDelta(t, si.GlobalFromPotential(26., 20., bcA, bcB, bcC, 101), p.Global(26., 20.), 1e-12)
	assert.Less(t, p.Global(26., 20.), si.PSIdaily(101))
	assert.Zero(t, p.Global(20., 26.)) // inverted range
	assert.Less(t, p.Global(26., 20.), p.Global(32., 20.))
}

func TestNew_SeedsThirtyDayMean(t *testing.T) {
	g := flat(4)
	New(g, 14., 0., 23., 26., 20.)
	for c := range g.PET {
		assert.Greater(t, g.PET[c], 0.)
		assert.Equal(t, g.PET[c], g.PET30[c])
	}
}

func TestUpdate_SlopeCorrection(t *testing.T) {
	g := flat(2)
	g.RadiationRatio[1] = .5
	p := New(g, 14., 0., 23., 26., 20.)
	kg := p.Global(26., 20.)
	assert.InDelta(t, Rate(kg, 23.), g.PET[0], 1e-12)
	assert.InDelta(t, Rate(kg*.5, 23.), g.PET[1], 1e-12)
}

func TestUpdate_RunningMeanOverThirtyDays(t *testing.T) {
	g := flat(1)
	p := New(g, 14., 0., 23., 26., 20.)
	hi := g.PET[0]

	_ = g.Fill(grid.RadiationRatio, 0.)
	p.Update(g, 23., 26., 20.)
	assert.Zero(t, g.PET[0])
	assert.InDelta(t, hi/2., g.PET30[0], 1e-12)

	for i := 0; i < 29; i++ {
		p.Update(g, 23., 26., 20.)
	}
	assert.Zero(t, g.PET30[0]) // the seeded value has left the window
}

func TestUpdate_FollowsOwnClock(t *testing.T) {
	g := flat(1)
	p := New(g, 45., 10./365., 15., 20., 10.)
	winter := g.PET[0]

	p.Update(g, 15., 20., 10.) // clock not moved: same day again
	assert.Equal(t, winter, g.PET[0])

	p.SetTime(180. / 365.)
	p.Update(g, 15., 20., 10.)
	assert.Greater(t, g.PET[0], winter)
}

func TestSetTime(t *testing.T) {
	g := flat(1)
	p := New(g, 14., 0., 23., 26., 20.)
	p.SetTime(1.5)
	assert.Equal(t, 1.5, p.Time())
	assert.Equal(t, 182, p.Julian())
}
