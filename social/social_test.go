package social

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVillage(t *testing.T, rows, cols, lead int) *Village {
	t.Helper()
	p := DefaultParams()
	p.Rows, p.Cols, p.LeadFarmers = rows, cols, lead
	v, err := NewVillage(p, zerolog.Nop())
	require.NoError(t, err)
	return v
}

func farmYields(v *Village, y ...float64) map[int]float64 {
	o := make(map[int]float64)
	for k, f := range v.farmers {
		for _, w := range f.plots {
			o[w] = y[k]
		}
	}
	return o
}

func TestNewVillage_Layout(t *testing.T) {
	v := newVillage(t, 6, 6, 0)
	fs := v.Fields()
	require.Len(t, fs, 36)
	assert.Len(t, v.farmers, 4)
	assert.Equal(t, Field{Who: 0, Xcor: -3, Ycor: 3, OwnerID: 0}, fs[0])
	assert.Equal(t, 2, fs[35].Xcor)
	assert.Equal(t, -2, fs[35].Ycor)
	assert.Equal(t, 3, fs[35].OwnerID)
	assert.Equal(t, 1, fs[3].OwnerID)
	assert.ElementsMatch(t, []int{1, 2}, v.farmers[0].nbrs)
	for _, f := range v.farmers {
		assert.Len(t, f.plots, 9)
	}
}

func TestNewVillage_LeadFarmers(t *testing.T) {
	v := newVillage(t, 6, 6, 1)
	n := 0
	for _, f := range v.Fields() {
		if f.ImplementsWSA {
			assert.True(t, f.OwnerKnowsWSA)
			n++
		}
	}
	assert.Equal(t, 9, n)

	w := newVillage(t, 6, 6, 1)
	assert.Equal(t, v.Fields(), w.Fields()) // same seed, same lead farm

	x := newVillage(t, 3, 3, 5) // capped at the number of farms
	assert.True(t, x.farmers[0].lead)
}

func TestParams_Validate(t *testing.T) {
	p := DefaultParams()
	require.NoError(t, p.Validate())
	p.FarmSize = 0
	assert.ErrorIs(t, p.Validate(), ErrParams)
	p = DefaultParams()
	p.Contact = 1.5
	assert.ErrorIs(t, p.Validate(), ErrParams)
}

func TestSetYields(t *testing.T) {
	v := newVillage(t, 3, 3, 0)
	require.NoError(t, v.SetYields(map[int]float64{4: 2.5}))
	assert.Equal(t, 2.5, v.Fields()[4].Yield)
	assert.ErrorIs(t, v.SetYields(map[int]float64{9: 1.}), ErrUnknownWho)
}

func TestStep_ContactAndJealousy(t *testing.T) {
	v := newVillage(t, 3, 6, 0)
	v.p.Contact = 1.
	v.farmers[0].lead, v.farmers[0].knows, v.farmers[0].practises = true, true, true
	require.NoError(t, v.SetYields(farmYields(v, 10., 5.)))
	require.NoError(t, v.Step())
	fs := v.Fields()
	assert.True(t, fs[3].OwnerKnowsWSA)
	assert.True(t, fs[3].ImplementsWSA)
}

func TestStep_KnowledgeWithoutEnvy(t *testing.T) {
	v := newVillage(t, 3, 6, 0)
	v.p.Contact = 1.
	v.farmers[0].lead, v.farmers[0].knows, v.farmers[0].practises = true, true, true
	require.NoError(t, v.SetYields(farmYields(v, 5., 5.)))
	require.NoError(t, v.Step())
	assert.True(t, v.farmers[1].knows)
	assert.False(t, v.farmers[1].practises)
}

func TestStep_Desperation(t *testing.T) {
	v := newVillage(t, 3, 3, 0)
	v.farmers[0].knows = true
	require.NoError(t, v.SetYields(farmYields(v, 10.)))
	require.NoError(t, v.Step())
	assert.False(t, v.farmers[0].practises)
	require.NoError(t, v.SetYields(farmYields(v, 5.)))
	require.NoError(t, v.Step())
	assert.True(t, v.farmers[0].practises)
}

func TestStep_GraceThenAbandon(t *testing.T) {
	v := newVillage(t, 3, 6, 0)
	v.farmers[0].knows, v.farmers[0].practises = true, true
	require.NoError(t, v.SetYields(farmYields(v, 4., 5.)))
	for yr := 0; yr < v.p.Grace; yr++ {
		require.NoError(t, v.Step())
		assert.True(t, v.farmers[0].practises, "year %d", yr)
	}
	require.NoError(t, v.Step())
	assert.False(t, v.farmers[0].practises)
	assert.True(t, v.farmers[0].knows)
	assert.False(t, v.Fields()[0].ImplementsWSA)
}

func TestStep_LeadFarmerPersists(t *testing.T) {
	v := newVillage(t, 3, 6, 0)
	v.farmers[0].lead, v.farmers[0].knows, v.farmers[0].practises = true, true, true
	require.NoError(t, v.SetYields(farmYields(v, 1., 5.)))
	for yr := 0; yr < 5; yr++ {
		require.NoError(t, v.Step())
	}
	assert.True(t, v.farmers[0].practises)
}
