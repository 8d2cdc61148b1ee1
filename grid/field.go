package grid

import "fmt"

// Field enumerates the named quantities held on the grid
type Field int

const (
	Elevation Field = iota // [m] at nodes
	InitialSaturation
	Saturation
	RainfallDepth // [mm/day]
	CoverFraction
	LiveLAI
	PlantFunctionalType
	LiveBiomass // [g/m²]
	WaterStress
	Evapotranspiration // [mm/day]
	PET                // [mm/day]
	PET30              // [mm/day]
	SoilHealth
	RadiationRatio
	Shortwave // [MJ/m²/day]
	Runoff    // [mm/day]
	Leakage   // [mm/day]
	nFields
)

var fieldNames = [nFields]string{
	"topographic__elevation",
	"soil_moisture__initial_saturation_fraction",
	"soil_moisture__saturation_fraction",
	"rainfall__daily_depth",
	"vegetation__cover_fraction",
	"vegetation__live_leaf_area_index",
	"vegetation__plant_functional_type",
	"vegetation__live_biomass",
	"vegetation__water_stress",
	"surface__evapotranspiration",
	"surface__potential_evapotranspiration_rate",
	"surface__potential_evapotranspiration_30day_mean",
	"surface__WSA_soilhealth",
	"radiation__ratio_to_flat_surface",
	"radiation__incoming_shortwave_flux",
	"surface__runoff",
	"soil_moisture__root_zone_leakage",
}

func (f Field) String() string {
	if f < 0 || f >= nFields {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// Fields returns every field of the schema
func Fields() []Field {
	o := make([]Field, nFields)
	for i := range o {
		o[i] = Field(i)
	}
	return o
}

// ParseField returns the field carrying the given wire name
func ParseField(name string) (Field, error) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// plant functional types
const (
	Grass = iota
	Shrub
	Tree
	Bare
	ShrubSeedling
	TreeSeedling
	CoverCrop
	NumPFT
)
