package veg

import "github.com/WylieMabel/TreesAndThat/grid"

// Params growth properties of one plant functional type
type Params struct {
	WUE          float64 `yaml:"wue"`           // water use efficiency [g/m² per mm]
	Cb           float64 `yaml:"cb"`            // specific leaf area [LAI per g/m²]
	LAImax       float64 `yaml:"lai_max"`       //
	Binit        float64 `yaml:"b_init"`        // biomass after (re)initialisation [g/m²]
	Kws          float64 `yaml:"kws"`           // water stress decay [1/day]
	Kdd          float64 `yaml:"kdd"`           // dormancy decay [1/day]
	PETThreshold float64 `yaml:"pet_threshold"` // 30-day mean PET opening the growing season [mm/day]
}

// DefaultParams per plant functional type
func DefaultParams() [grid.NumPFT]Params {
	var p [grid.NumPFT]Params
	p[grid.Grass] = Params{WUE: 3., Cb: .012, LAImax: 2.5, Binit: 100., Kws: .02, Kdd: .01, PETThreshold: 2.}
	p[grid.Shrub] = Params{WUE: 2., Cb: .004, LAImax: 2., Binit: 300., Kws: .005, Kdd: .002, PETThreshold: 2.}
	p[grid.Tree] = Params{WUE: 1.5, Cb: .002, LAImax: 4., Binit: 1000., Kws: .002, Kdd: .001, PETThreshold: 1.5}
	p[grid.ShrubSeedling] = Params{WUE: 2., Cb: .004, LAImax: 1., Binit: 30., Kws: .01, Kdd: .004, PETThreshold: 2.}
	p[grid.TreeSeedling] = Params{WUE: 1.5, Cb: .002, LAImax: 1., Binit: 50., Kws: .01, Kdd: .004, PETThreshold: 1.5}
	p[grid.CoverCrop] = Params{WUE: 2.5, Cb: .015, LAImax: 2., Binit: 20., Kws: .02, Kdd: .01}
	return p // bare soil carries no vegetation
}
