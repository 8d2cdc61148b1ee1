package soil

import "github.com/WylieMabel/TreesAndThat/grid"

// Params soil and root-zone properties seen by one plant functional type
type Params struct {
	Porosity float64 `yaml:"porosity"`
	Zr       float64 `yaml:"root_depth"` // [mm]
	Ks       float64 `yaml:"ks"`         // saturated hydraulic conductivity [mm/day]
	Beta     float64 `yaml:"beta"`       // leakage curve shape
	Sfc      float64 `yaml:"sfc"`        // field capacity
	Sstar    float64 `yaml:"sstar"`      // onset of stomatal closure
	Sw       float64 `yaml:"sw"`         // wilting point
	Sh       float64 `yaml:"sh"`         // hygroscopic point
	Q        float64 `yaml:"q"`          // water stress shape
	Fbare    float64 `yaml:"fbare"`      // bare soil evaporation fraction of PET
}

// DefaultParams per plant functional type, loam soil
func DefaultParams() [grid.NumPFT]Params {
	base := Params{Porosity: .43, Zr: 300., Ks: 200., Beta: 13.8, Sfc: .56, Sstar: .33, Sw: .13, Sh: .1, Q: 2., Fbare: .7}
	var p [grid.NumPFT]Params
	for i := range p {
		p[i] = base
	}
	p[grid.Shrub].Zr, p[grid.ShrubSeedling].Zr = 500., 300.
	p[grid.Tree].Zr, p[grid.TreeSeedling].Zr = 1300., 400.
	p[grid.Tree].Sstar, p[grid.Tree].Sw = .31, .11
	p[grid.Bare].Zr = 200.
	p[grid.CoverCrop].Zr = 250.
	p[grid.CoverCrop].Fbare = .35 // residue mulch
	return p
}
