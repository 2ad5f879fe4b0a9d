package valuation

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// TypologyAnchor pins a building typology to a per-sqm rate corridor.
type TypologyAnchor struct {
	Class   string   `yaml:"class" mapstructure:"class"`
	Base    float64  `yaml:"base" mapstructure:"base"`
	Max     float64  `yaml:"max" mapstructure:"max"`
	Basis   string   `yaml:"basis,omitempty" mapstructure:"basis"`
	Aliases []string `yaml:"aliases" mapstructure:"aliases"`
}

// RateBand is a base/max per-sqm corridor used for class fallbacks.
type RateBand struct {
	Base float64 `yaml:"base" mapstructure:"base"`
	Max  float64 `yaml:"max" mapstructure:"max"`
}

// LocationSignals holds the ordered substring tiers for location pricing.
type LocationSignals struct {
	UltraPrime []string `yaml:"ultra_prime" mapstructure:"ultra_prime"`
	Prime      []string `yaml:"prime" mapstructure:"prime"`
	Budget     []string `yaml:"budget" mapstructure:"budget"`
}

// Weights blends the six A-F rate modifiers into one.
type Weights struct {
	ComparableAnchor float64 `yaml:"comparable_anchor" mapstructure:"comparable_anchor"`
	MicroMarket      float64 `yaml:"micro_market" mapstructure:"micro_market"`
	Geo              float64 `yaml:"geo" mapstructure:"geo"`
	PolicyZoning     float64 `yaml:"policy_zoning" mapstructure:"policy_zoning"`
	AgeResale        float64 `yaml:"age_resale" mapstructure:"age_resale"`
	Liquidity        float64 `yaml:"liquidity" mapstructure:"liquidity"`
}

// ConfidenceTuning holds the additive confidence model constants.
type ConfidenceTuning struct {
	Base                   float64 `yaml:"base" mapstructure:"base"`
	MissingLocationPenalty float64 `yaml:"missing_location_penalty" mapstructure:"missing_location_penalty"`
	MissingGpsPenalty      float64 `yaml:"missing_gps_penalty" mapstructure:"missing_gps_penalty"`
	NoComparablesPenalty   float64 `yaml:"no_comparables_penalty" mapstructure:"no_comparables_penalty"`
	FewComparablesPenalty  float64 `yaml:"few_comparables_penalty" mapstructure:"few_comparables_penalty"`
	StrongComparablesBonus float64 `yaml:"strong_comparables_bonus" mapstructure:"strong_comparables_bonus"`
	ZoneMismatchPenalty    float64 `yaml:"zone_mismatch_penalty" mapstructure:"zone_mismatch_penalty"`
	ClearZoneFitBonus      float64 `yaml:"clear_zone_fit_bonus" mapstructure:"clear_zone_fit_bonus"`
	HighHazardPenalty      float64 `yaml:"high_hazard_penalty" mapstructure:"high_hazard_penalty"`
	LowHazardBonus         float64 `yaml:"low_hazard_bonus" mapstructure:"low_hazard_bonus"`
	PolicyUncertainPenalty float64 `yaml:"policy_uncertain_penalty" mapstructure:"policy_uncertain_penalty"`
	StableGrowthBonus      float64 `yaml:"stable_growth_bonus" mapstructure:"stable_growth_bonus"`
}

// Haircuts holds the asymmetric band widening constants. The low side is
// shrunk further than the high side is stretched: the model treats downside
// surprises as more likely.
type Haircuts struct {
	LowSideExtra               float64 `yaml:"low_side_extra" mapstructure:"low_side_extra"`
	HighSideExtra              float64 `yaml:"high_side_extra" mapstructure:"high_side_extra"`
	FallbackNoCompsExtraSpread float64 `yaml:"fallback_no_comps_extra_spread" mapstructure:"fallback_no_comps_extra_spread"`
	HazardExtraSpread          float64 `yaml:"hazard_extra_spread" mapstructure:"hazard_extra_spread"`
}

// Limits holds the global bounds of the model.
type Limits struct {
	MinValue                float64 `yaml:"min_value" mapstructure:"min_value"`
	MaxValue                float64 `yaml:"max_value" mapstructure:"max_value"`
	MinConfidence           float64 `yaml:"min_confidence" mapstructure:"min_confidence"`
	MaxConfidence           float64 `yaml:"max_confidence" mapstructure:"max_confidence"`
	MinComparablesForAnchor int     `yaml:"min_comparables_for_anchor" mapstructure:"min_comparables_for_anchor"`
	StrongComparables       int     `yaml:"strong_comparables" mapstructure:"strong_comparables"`
	MaxWarningsForSpread    int     `yaml:"max_warnings_for_spread" mapstructure:"max_warnings_for_spread"`
}

// SpreadStep maps a minimum confidence to a band spread. Steps are evaluated
// highest threshold first.
type SpreadStep struct {
	Min    float64 `yaml:"min" mapstructure:"min"`
	Spread float64 `yaml:"spread" mapstructure:"spread"`
}

// Tuning is the full coefficient set of the valuation model. It is supplied
// at engine construction and treated as immutable afterwards.
type Tuning struct {
	TypologyAnchorsUSDPerSqm  map[string]TypologyAnchor     `yaml:"typology_anchors_usd_per_sqm" mapstructure:"typology_anchors_usd_per_sqm"`
	ClassFallbackUSDPerSqm    map[string]RateBand           `yaml:"typology_class_fallback_usd_per_sqm" mapstructure:"typology_class_fallback_usd_per_sqm"`
	BuiltAreaSqmDefaults      map[string]map[string]float64 `yaml:"built_area_sqm_defaults" mapstructure:"built_area_sqm_defaults"`
	LocationSignals           LocationSignals               `yaml:"location_signals" mapstructure:"location_signals"`
	LandAreaMultiplierByScale map[string]float64            `yaml:"land_area_multiplier_by_scale" mapstructure:"land_area_multiplier_by_scale"`
	LandRateMultiplierByType  map[string]float64            `yaml:"land_rate_multiplier_by_type" mapstructure:"land_rate_multiplier_by_type"`
	CompletionByStage         map[string]float64            `yaml:"completion_by_stage" mapstructure:"completion_by_stage"`
	Weights                   Weights                       `yaml:"weights" mapstructure:"weights"`
	Confidence                ConfidenceTuning              `yaml:"confidence" mapstructure:"confidence"`
	Haircuts                  Haircuts                      `yaml:"haircuts" mapstructure:"haircuts"`
	Limits                    Limits                        `yaml:"limits" mapstructure:"limits"`
	SpreadByConfidence        []SpreadStep                  `yaml:"spread_by_confidence" mapstructure:"spread_by_confidence"`
}

// DefaultTuning returns the shipped coefficient set.
func DefaultTuning() Tuning {
	return Tuning{
		TypologyAnchorsUSDPerSqm: map[string]TypologyAnchor{
			"apartment_tower": {
				Class: "Residential", Base: 520, Max: 2100,
				Aliases: []string{"apartment", "apartment tower", "residential tower", "condominium", "flats", "housing block"},
			},
			"independent_house": {
				Class: "Residential", Base: 420, Max: 1800,
				Aliases: []string{"bungalow", "villa", "independent house", "row house", "duplex"},
			},
			"plotted_land": {
				Class: "Residential", Base: 90, Max: 950, Basis: BasisLandOnly,
				Aliases: []string{"plot", "vacant plot", "raw land", "land parcel", "plotted development"},
			},
			"office_block": {
				Class: "Commercial", Base: 750, Max: 3200,
				Aliases: []string{"office", "office block", "corporate park", "business park", "it park"},
			},
			"retail_mall": {
				Class: "Commercial", Base: 820, Max: 3600,
				Aliases: []string{"mall", "shopping mall", "retail", "showroom", "high street retail"},
			},
			"hotel": {
				Class: "Commercial", Base: 900, Max: 4200,
				Aliases: []string{"hotel", "resort", "serviced apartments"},
			},
			"warehouse": {
				Class: "Industrial", Base: 280, Max: 1150,
				Aliases: []string{"warehouse", "godown", "logistics park", "distribution center"},
			},
			"factory": {
				Class: "Industrial", Base: 340, Max: 1400,
				Aliases: []string{"factory", "manufacturing plant", "industrial shed", "processing unit"},
			},
			"farmland": {
				Class: "Agricultural", Base: 6, Max: 85, Basis: BasisLandOnly,
				Aliases: []string{"farmland", "agricultural land", "farm plot", "orchard", "paddy field"},
			},
			"farmhouse": {
				Class: "Agricultural", Base: 180, Max: 900,
				Aliases: []string{"farmhouse", "barn", "silo"},
			},
			"stadium": {
				Class: "Recreational/Cultural", Base: 650, Max: 2800,
				Aliases: []string{"stadium", "sports complex", "arena"},
			},
			"museum": {
				Class: "Recreational/Cultural", Base: 700, Max: 3000,
				Aliases: []string{"museum", "auditorium", "cultural center", "theatre"},
			},
			"school": {
				Class: "Institutional", Base: 380, Max: 1600,
				Aliases: []string{"school", "college", "university", "campus"},
			},
			"hospital": {
				Class: "Institutional", Base: 620, Max: 2600,
				Aliases: []string{"hospital", "clinic", "medical center"},
			},
			"mixed_use_block": {
				Class: "Mixed-use", Base: 680, Max: 3000,
				Aliases: []string{"mixed use", "mixed-use", "residential-commercial"},
			},
			"transit_hub": {
				Class: "Infrastructure", Base: 800, Max: 3400,
				Aliases: []string{"metro station", "bus terminal", "transit hub", "toll plaza", "substation"},
			},
		},
		ClassFallbackUSDPerSqm: map[string]RateBand{
			"Residential":           {Base: 450, Max: 2200},
			"Commercial":            {Base: 700, Max: 3400},
			"Industrial":            {Base: 300, Max: 1400},
			"Agricultural":          {Base: 60, Max: 700},
			"Recreational/Cultural": {Base: 550, Max: 2800},
			"Institutional":         {Base: 420, Max: 2200},
			"Mixed-use":             {Base: 600, Max: 2900},
			"Infrastructure":        {Base: 700, Max: 3200},
		},
		BuiltAreaSqmDefaults: map[string]map[string]float64{
			"Residential":           {"Low-rise": 180, "Mid-rise": 1400, "High-rise": 9000, "Large-site": 16000},
			"Commercial":            {"Low-rise": 420, "Mid-rise": 2600, "High-rise": 14000, "Large-site": 26000},
			"Industrial":            {"Low-rise": 900, "Mid-rise": 3200, "High-rise": 9000, "Large-site": 30000},
			"Agricultural":          {"Low-rise": 260, "Mid-rise": 900, "High-rise": 1600, "Large-site": 6000},
			"Recreational/Cultural": {"Low-rise": 600, "Mid-rise": 2400, "High-rise": 8000, "Large-site": 20000},
			"Institutional":         {"Low-rise": 700, "Mid-rise": 3000, "High-rise": 12000, "Large-site": 22000},
			"Mixed-use":             {"Low-rise": 380, "Mid-rise": 2200, "High-rise": 12000, "Large-site": 24000},
			"Infrastructure":        {"Low-rise": 1200, "Mid-rise": 4000, "High-rise": 10000, "Large-site": 40000},
		},
		LocationSignals: LocationSignals{
			UltraPrime: []string{
				"marine drive", "south mumbai", "bandra", "manhattan", "mayfair",
				"knightsbridge", "beverly hills", "orchard road", "palm jumeirah", "golf course road",
			},
			Prime: []string{
				"downtown", "cbd", "city centre", "city center", "financial district",
				"sea view", "waterfront", "lutyens", "koramangala", "indiranagar", "whitefield",
			},
			Budget: []string{
				"outskirt", "peripheral", "industrial belt", "tier-3", "village",
				"rural", "resettlement", "unauthorized colony",
			},
		},
		LandAreaMultiplierByScale: map[string]float64{
			"Low-rise": 1.6, "Mid-rise": 1.1, "High-rise": 0.7, "Large-site": 2.4,
		},
		LandRateMultiplierByType: map[string]float64{
			"Residential":           0.5,
			"Commercial":            0.6,
			"Industrial":            0.45,
			"Agricultural":          0.8,
			"Recreational/Cultural": 0.55,
			"Institutional":         0.5,
			"Mixed-use":             0.55,
			"Infrastructure":        0.6,
		},
		CompletionByStage: map[string]float64{
			"Planning": 0.06, "Foundation": 0.18, "Structure": 0.45,
			"Services": 0.68, "Finishing": 0.86, "Completed": 1,
		},
		Weights: Weights{
			ComparableAnchor: 0.30,
			MicroMarket:      0.18,
			Geo:              0.14,
			PolicyZoning:     0.12,
			AgeResale:        0.14,
			Liquidity:        0.12,
		},
		Confidence: ConfidenceTuning{
			Base:                   62,
			MissingLocationPenalty: 9,
			MissingGpsPenalty:      7,
			NoComparablesPenalty:   11,
			FewComparablesPenalty:  6,
			StrongComparablesBonus: 7,
			ZoneMismatchPenalty:    9,
			ClearZoneFitBonus:      4,
			HighHazardPenalty:      7,
			LowHazardBonus:         3,
			PolicyUncertainPenalty: 6,
			StableGrowthBonus:      5,
		},
		Haircuts: Haircuts{
			LowSideExtra:               0.05,
			HighSideExtra:              0.02,
			FallbackNoCompsExtraSpread: 0.05,
			HazardExtraSpread:          0.04,
		},
		Limits: Limits{
			MinValue:                20_000,
			MaxValue:                4_000_000_000,
			MinConfidence:           18,
			MaxConfidence:           92,
			MinComparablesForAnchor: 6,
			StrongComparables:       24,
			MaxWarningsForSpread:    6,
		},
		SpreadByConfidence: []SpreadStep{
			{Min: 80, Spread: 0.14},
			{Min: 70, Spread: 0.18},
			{Min: 60, Spread: 0.22},
			{Min: 50, Spread: 0.26},
			{Min: 40, Spread: 0.30},
			{Min: 30, Spread: 0.35},
			{Min: 0, Spread: 0.40},
		},
	}
}

// Validate checks that a Tuning is internally consistent.
func (t Tuning) Validate() error {
	var errs []string

	for key, anchor := range t.TypologyAnchorsUSDPerSqm {
		if anchor.Base < 0 || (anchor.Max > 0 && anchor.Max <= anchor.Base) {
			errs = append(errs, fmt.Sprintf("anchor %s: max must exceed base", key))
		}
		if anchor.Basis != "" && anchor.Basis != BasisBuiltUp && anchor.Basis != BasisLandOnly {
			errs = append(errs, fmt.Sprintf("anchor %s: unknown basis %q", key, anchor.Basis))
		}
		if len(anchor.Aliases) == 0 {
			errs = append(errs, fmt.Sprintf("anchor %s: needs at least one alias", key))
		}
	}

	weights := map[string]float64{
		"comparable_anchor": t.Weights.ComparableAnchor,
		"micro_market":      t.Weights.MicroMarket,
		"geo":               t.Weights.Geo,
		"policy_zoning":     t.Weights.PolicyZoning,
		"age_resale":        t.Weights.AgeResale,
		"liquidity":         t.Weights.Liquidity,
	}
	var weightSum float64
	for name, w := range weights {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("weight %s must be >= 0", name))
		}
		weightSum += w
	}
	if weightSum <= 0 {
		errs = append(errs, "weight sum must be > 0")
	}

	if t.Limits.MinValue < 0 || t.Limits.MaxValue <= t.Limits.MinValue {
		errs = append(errs, "limits: max_value must exceed min_value")
	}
	if t.Limits.MinConfidence < 0 || t.Limits.MaxConfidence > 100 || t.Limits.MaxConfidence <= t.Limits.MinConfidence {
		errs = append(errs, "limits: confidence range must sit inside [0,100]")
	}
	if t.Limits.MinComparablesForAnchor <= 0 {
		errs = append(errs, "limits: min_comparables_for_anchor must be > 0")
	}
	if t.Limits.StrongComparables < t.Limits.MinComparablesForAnchor {
		errs = append(errs, "limits: strong_comparables must be >= min_comparables_for_anchor")
	}

	if t.Haircuts.LowSideExtra < 0 || t.Haircuts.HighSideExtra < 0 {
		errs = append(errs, "haircuts must be >= 0")
	}

	if len(t.SpreadByConfidence) == 0 {
		errs = append(errs, "spread_by_confidence must have at least one step")
	}
	for i, step := range t.SpreadByConfidence {
		if step.Spread <= 0 {
			errs = append(errs, fmt.Sprintf("spread_by_confidence[%d]: spread must be > 0", i))
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("valuation: tuning validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
