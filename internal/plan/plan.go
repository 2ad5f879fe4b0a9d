// Package plan derives itemized labor, machinery, material, and paint
// requirements for a construction site from a structured site description.
//
// The engine is a pure function of its input: no I/O, no clock, no shared
// state. Every lookup has an explicit fallback, so Build never fails.
package plan

import (
	"math"
	"strings"
)

// Stage is one of the six ordered construction phases.
type Stage string

// Construction stages, ordered from Planning to Completed.
const (
	StagePlanning   Stage = "Planning"
	StageFoundation Stage = "Foundation"
	StageStructure  Stage = "Structure"
	StageServices   Stage = "Services"
	StageFinishing  Stage = "Finishing"
	StageCompleted  Stage = "Completed"
)

// Status describes the overall project state reported upstream.
type Status string

// Project statuses.
const (
	StatusCompleted         Status = "Completed"
	StatusUnderConstruction Status = "Under Construction"
	StatusUnknown           Status = "Unknown"
)

// Availability is an ordinal supply level: Low < Medium < High.
type Availability string

// Availability levels.
const (
	AvailabilityLow    Availability = "Low"
	AvailabilityMedium Availability = "Medium"
	AvailabilityHigh   Availability = "High"
)

// ProcurementStatus marks whether a paint lot is already on site.
type ProcurementStatus string

// Paint procurement states.
const (
	PaintAcquired  ProcurementStatus = "Acquired"
	PaintToProcure ProcurementStatus = "To Procure"
)

// CategoryRow carries the classification strings attached to the site.
type CategoryRow struct {
	Typology           string `json:"typology,omitempty"`
	Style              string `json:"style,omitempty"`
	RoofType           string `json:"roof_type,omitempty"`
	MaterialUsed       string `json:"material_used,omitempty"`
	AdditionalFeatures string `json:"additional_features,omitempty"`
}

// GeoFactors carries the qualitative geography signals for the site.
type GeoFactors struct {
	Terrain           string `json:"terrain,omitempty"`
	SoilCondition     string `json:"soil_condition,omitempty"`
	ClimateZone       string `json:"climate_zone,omitempty"`
	PopulationDensity string `json:"population_density,omitempty"`
}

// Input is the site description the planner consumes. Missing optional
// fields degrade to documented defaults; Build never rejects an Input.
type Input struct {
	Status           Status       `json:"status"`
	Stage            Stage        `json:"stage"`
	ProgressValue    float64      `json:"progress_value"`
	ProjectType      string       `json:"project_type"`
	Scale            string       `json:"scale"`
	ConstructionType string       `json:"construction_type"`
	Location         string       `json:"location"`
	Note             string       `json:"note"`
	Category         *CategoryRow `json:"category,omitempty"`
	Geo              *GeoFactors  `json:"geo,omitempty"`

	// AdvancedRecommendations carries prior-round advisory strings that are
	// folded into the construction insights.
	AdvancedRecommendations []string `json:"advanced_recommendations,omitempty"`
}

// LaborRequirement is one row of the fixed 8-role labor table.
type LaborRequirement struct {
	Role          string       `json:"role"`
	Required      int          `json:"required"`
	Availability  Availability `json:"availability"`
	DailyRateUSD  float64      `json:"daily_rate_usd"`
	EstimatedDays int          `json:"estimated_days"`
	TotalCostUSD  float64      `json:"total_cost_usd"`
}

// MachineryRequirement is one row of the fixed 7-machine table.
type MachineryRequirement struct {
	Machine        string       `json:"machine"`
	Units          int          `json:"units"`
	Availability   Availability `json:"availability"`
	HourlyRateUSD  float64      `json:"hourly_rate_usd"`
	EstimatedHours int          `json:"estimated_hours"`
	TotalCostUSD   float64      `json:"total_cost_usd"`
}

// MaterialRequirement is one row of the fixed 12-item materials table.
type MaterialRequirement struct {
	Item         string       `json:"item"`
	Quantity     int          `json:"quantity"`
	Unit         string       `json:"unit"`
	Availability Availability `json:"availability"`
	UnitCostUSD  float64      `json:"unit_cost_usd"`
	TotalCostUSD float64      `json:"total_cost_usd"`
}

// PaintRequirement is one zone of the fixed 4-zone paint palette.
type PaintRequirement struct {
	Zone      string            `json:"zone"`
	Shade     string            `json:"shade"`
	ColorCode string            `json:"color_code"`
	Liters    int               `json:"liters"`
	Status    ProcurementStatus `json:"status"`
}

// Output aggregates every requirement table plus the qualitative guidance
// lists, each capped at four deduplicated entries.
type Output struct {
	ProgressValue     float64                `json:"progress_value"`
	LaborAvailability Availability           `json:"labor_availability"`
	LocationCostIndex float64                `json:"location_cost_index"`
	Labor             []LaborRequirement     `json:"labor"`
	Machinery         []MachineryRequirement `json:"machinery"`
	Materials         []MaterialRequirement  `json:"materials"`
	Paints            []PaintRequirement     `json:"paints"`

	Components           []string `json:"components"`
	Techniques           []string `json:"techniques"`
	SpecialRequirements  []string `json:"special_requirements"`
	VernacularMaterials  []string `json:"vernacular_materials"`
	ConstructionInsights []string `json:"construction_insights"`
	ProcurementInsights  []string `json:"procurement_insights"`
	CompletionInsights   []string `json:"completion_insights"`
}

// Build computes the full resource plan for the given site description.
func Build(input Input) Output {
	stage := normalizedStage(input.Stage)

	scaleFactor := scaleFactorFor(input.Scale)
	remainingShare := remainingWorkShare(input.Status, input.ProgressValue)
	pressure := stagePressure[stage]
	intensity := clamp(scaleFactor*(remainingShare*0.85+pressure*0.4), 0.6, 6)

	locationCostIndex := locationCostIndexFor(input.Location)

	var density, terrain, climate, soil string
	if input.Geo != nil {
		density = input.Geo.PopulationDensity
		terrain = input.Geo.Terrain
		climate = input.Geo.ClimateZone
		soil = input.Geo.SoilCondition
	}
	laborAvailability := detectLaborAvailability(density, terrain, climate, input.Location)

	labor := make([]LaborRequirement, 0, len(laborSpecs))
	for _, spec := range laborSpecs {
		factor := stageRoleFactor[spec.key][stage]
		required := maxInt(1, round(float64(spec.base)*intensity*factor))
		estimatedDays := maxInt(3, round(8+factor*18*remainingShare*(scaleFactor*0.85)))
		total := float64(required) * spec.dailyRateUSD * float64(estimatedDays) * locationCostIndex
		labor = append(labor, LaborRequirement{
			Role:          spec.role,
			Required:      required,
			Availability:  specializedAvailability(laborAvailability, spec.role),
			DailyRateUSD:  round2(spec.dailyRateUSD * locationCostIndex),
			EstimatedDays: estimatedDays,
			TotalCostUSD:  round2(total),
		})
	}

	bucket := stageBucket(stage)
	machinery := make([]MachineryRequirement, 0, len(machinerySpecs))
	for _, spec := range machinerySpecs {
		boost := bucketBoost(spec.stageKey, bucket)
		units := maxInt(1, round(float64(spec.baseUnits)*clamp(scaleFactor*boost, 1, 4)))
		hours := maxInt(24, round(60*remainingShare*pressure*scaleFactor*boost))
		total := float64(units) * float64(hours) * spec.hourlyRateUSD * locationCostIndex
		availability := laborAvailability
		if strings.Contains(spec.machine, "Crane") {
			// Heavy lifting equipment is scarcer than general plant.
			availability = shiftAvailability(availability, -1)
		}
		machinery = append(machinery, MachineryRequirement{
			Machine:        spec.machine,
			Units:          units,
			Availability:   availability,
			HourlyRateUSD:  round2(spec.hourlyRateUSD * locationCostIndex),
			EstimatedHours: hours,
			TotalCostUSD:   round2(total),
		})
	}

	materials := make([]MaterialRequirement, 0, len(materialSpecs))
	for _, spec := range materialSpecs {
		floor := 10
		if spec.unit == "ton" {
			floor = 1
		}
		quantity := maxInt(floor, round(spec.baseQuantity*scaleFactor*remainingShare))
		unitCost := spec.unitCostUSD * locationCostIndex
		materials = append(materials, MaterialRequirement{
			Item:         spec.item,
			Quantity:     quantity,
			Unit:         spec.unit,
			Availability: materialAvailability(laborAvailability, spec.item, input.Location),
			UnitCostUSD:  round3(unitCost),
			TotalCostUSD: round2(float64(quantity) * unitCost),
		})
	}

	paints := paintPalette(climate, input.ProgressValue, scaleFactor)

	return Output{
		ProgressValue:     input.ProgressValue,
		LaborAvailability: laborAvailability,
		LocationCostIndex: locationCostIndex,
		Labor:             labor,
		Machinery:         machinery,
		Materials:         materials,
		Paints:            paints,

		Components:           buildComponents(climate, terrain, soil),
		Techniques:           buildTechniques(input.Scale, stage, climate),
		SpecialRequirements:  buildSpecialRequirements(input, locationCostIndex),
		VernacularMaterials:  vernacularByLocation(input.Location, climate),
		ConstructionInsights: buildConstructionInsights(input, stage, labor, climate, terrain, soil),
		ProcurementInsights:  buildProcurementInsights(input, materials, laborAvailability),
		CompletionInsights:   buildCompletionInsights(input, stage, climate, paints, locationCostIndex),
	}
}

// remainingWorkShare returns the fraction of work left. Completed projects
// keep a fixed 0.08 residual for finishing touches.
func remainingWorkShare(status Status, progress float64) float64 {
	if status == StatusCompleted {
		return 0.08
	}
	return clamp((100-progress)/100, 0.08, 1)
}

// normalizedStage folds unrecognized stage labels onto Structure, the
// mid-point of the lookup matrices.
func normalizedStage(stage Stage) Stage {
	if _, ok := stagePressure[stage]; ok {
		return stage
	}
	return StageStructure
}

// scaleFactorFor maps a scale label to its quantity multiplier; unknown
// labels fall back to Low-rise.
func scaleFactorFor(scale string) float64 {
	if f, ok := scaleFactor[scale]; ok {
		return f
	}
	return 1
}

// locationCostIndexFor buckets the location text into a cost tier, checked
// ultra-high, then high, then low; first match wins.
func locationCostIndexFor(location string) float64 {
	l := normalize(location)
	if containsAny(l, ultraHighCostTerms) {
		return 1.26
	}
	if containsAny(l, highCostTerms) {
		return 1.14
	}
	if containsAny(l, lowCostTerms) {
		return 0.86
	}
	return 1
}

// detectLaborAvailability derives the base labor supply level from the
// population-density text, then downgrades one level when terrain or
// climate text carries risk terms.
func detectLaborAvailability(densityText, terrainText, climateText, location string) Availability {
	density := normalize(densityText)
	availability := AvailabilityMedium
	if strings.Contains(density, "high") || strings.Contains(density, "metro") || strings.Contains(density, "city") {
		availability = AvailabilityHigh
	}
	loc := normalize(location)
	if strings.Contains(density, "low") || strings.Contains(loc, "rural") || strings.Contains(loc, "village") {
		availability = AvailabilityLow
	}

	terrainRisk := containsAny(normalize(terrainText), riskyTerrainTerms)
	climateRisk := containsAny(normalize(climateText), extremeClimateTerms)
	if terrainRisk || climateRisk {
		availability = shiftAvailability(availability, -1)
	}
	return availability
}

// specializedAvailability downgrades electricians and plumbers one level on
// the specialist-scarcity assumption; design roles keep the base level.
func specializedAvailability(base Availability, role string) Availability {
	switch role {
	case "Architect", "Site Engineer":
		return base
	case "Electricians", "Plumbers":
		return shiftAvailability(base, -1)
	}
	return base
}

// materialAvailability downgrades long-lead items and upgrades everything
// near ports and metros.
func materialAvailability(base Availability, item, location string) Availability {
	next := base
	if item == "Windows" || item == "Joint Sealant" {
		next = shiftAvailability(next, -1)
	}
	l := normalize(location)
	if strings.Contains(l, "port") || strings.Contains(l, "metro") || strings.Contains(l, "city") {
		next = shiftAvailability(next, 1)
	}
	return next
}

// shiftAvailability moves the ordinal level by delta, clamped at the ends.
func shiftAvailability(availability Availability, delta int) Availability {
	levels := []Availability{AvailabilityLow, AvailabilityMedium, AvailabilityHigh}
	idx := 1
	for i, level := range levels {
		if level == availability {
			idx = i
			break
		}
	}
	idx = int(clamp(float64(idx+delta), 0, float64(len(levels)-1)))
	return levels[idx]
}

// stageBucket folds the six stages onto the four machinery buckets.
func stageBucket(stage Stage) string {
	switch stage {
	case StagePlanning, StageFoundation:
		return "foundation"
	case StageStructure:
		return "structure"
	case StageServices:
		return "services"
	}
	return "finishing"
}

// bucketBoost returns the utilization boost for a machine whose stage tag is
// compared with the current bucket. Structure plant keeps partial use during
// services; everything else idles at 0.45.
func bucketBoost(stageKey, bucket string) float64 {
	if stageKey == bucket {
		return 1
	}
	if stageKey == "structure" && bucket == "services" {
		return 0.6
	}
	return 0.45
}

// paintPalette builds the fixed 4-zone palette. The exterior shade follows
// the climate text; later zones flip to Acquired at lower progress because
// front-loaded zones finish last.
func paintPalette(climateText string, progress, scaleFactor float64) []PaintRequirement {
	climate := normalize(climateText)
	coastal := strings.Contains(climate, "coastal") || strings.Contains(climate, "humid")
	hot := strings.Contains(climate, "hot") || strings.Contains(climate, "arid") || strings.Contains(climate, "desert")
	cold := strings.Contains(climate, "cold") || strings.Contains(climate, "snow")

	exteriorShade, exteriorCode := "Stone Beige", "#D5C3A5"
	switch {
	case coastal:
		exteriorShade, exteriorCode = "Salt Mist Grey", "#B7C0C8"
	case hot:
		exteriorShade, exteriorCode = "Solar Reflect White", "#F5F2E8"
	case cold:
		exteriorShade, exteriorCode = "Thermal Taupe", "#B29B88"
	}

	panel := []PaintRequirement{
		{Zone: "Exterior", Shade: exteriorShade, ColorCode: exteriorCode, Liters: round(240 * scaleFactor)},
		{Zone: "Interior Walls", Shade: "Warm Off-White", ColorCode: "#F3EEE2", Liters: round(190 * scaleFactor)},
		{Zone: "Utility Areas", Shade: "Service Grey", ColorCode: "#9CA3AF", Liters: round(90 * scaleFactor)},
		{Zone: "Metalworks", Shade: "Anti-Rust Red Oxide", ColorCode: "#7E3A32", Liters: round(55 * scaleFactor)},
	}
	for i := range panel {
		if progress >= float64(70-i*8) {
			panel[i].Status = PaintAcquired
		} else {
			panel[i].Status = PaintToProcure
		}
	}
	return panel
}

// normalize lowercases and collapses whitespace.
func normalize(value string) string {
	return strings.Join(strings.Fields(strings.ToLower(value)), " ")
}

func containsAny(source string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(source, term) {
			return true
		}
	}
	return false
}

func clamp(value, min, max float64) float64 {
	return math.Min(max, math.Max(min, value))
}

func round(value float64) int {
	return int(math.Round(value))
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func round3(value float64) float64 {
	return math.Round(value*1000) / 1000
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
