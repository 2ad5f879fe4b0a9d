// Package valuation estimates property, land, and project worth bands for a
// construction site from a structured description and market metrics.
//
// The engine is a pure function of its input and tuning: no I/O, no clock,
// no shared state. Degraded inputs surface as advisory warning codes, never
// as errors.
package valuation

import (
	"math"
	"strings"
)

// GeoStatus records how the site location was acquired.
type GeoStatus string

// Geolocation acquisition methods.
const (
	GeoExif   GeoStatus = "exif"
	GeoGPS    GeoStatus = "gps"
	GeoManual GeoStatus = "manual"
	GeoDenied GeoStatus = "denied"
	GeoNone   GeoStatus = "none"
)

// CategoryRow carries the classification strings attached to the site.
type CategoryRow struct {
	Category           string `json:"category,omitempty"`
	Typology           string `json:"typology,omitempty"`
	Style              string `json:"style,omitempty"`
	AdditionalFeatures string `json:"additional_features,omitempty"`
	Exterior           string `json:"exterior,omitempty"`
}

// GeoFactors carries the market context for the site. Numeric metrics are
// pointers so a missing metric is distinguishable from zero.
type GeoFactors struct {
	Terrain            string `json:"terrain,omitempty"`
	SoilCondition      string `json:"soil_condition,omitempty"`
	ClimateZone        string `json:"climate_zone,omitempty"`
	PopulationDensity  string `json:"population_density,omitempty"`
	MasterPlanZone     string `json:"master_plan_zone,omitempty"`
	PolicyPosture      string `json:"policy_posture,omitempty"`
	PolicyFocus        string `json:"policy_focus,omitempty"`
	ComparableActivity string `json:"comparable_activity,omitempty"`

	ComparableCount   *float64 `json:"comparable_properties_count,omitempty"`
	CityGrowthPct     *float64 `json:"city_growth_5y_percent,omitempty"`
	PropertyGrowthPct *float64 `json:"property_growth_percent,omitempty"`
	LandGrowthPct     *float64 `json:"land_growth_percent,omitempty"`
	PropertyAgeYears  *float64 `json:"property_age_years,omitempty"`
	ResaleValuePct    *float64 `json:"resale_value_percent,omitempty"`
	ROIPct            *float64 `json:"investment_roi_percent,omitempty"`
}

// Input is the site description the valuation engine consumes.
type Input struct {
	ProjectType   string       `json:"project_type"`
	Scale         string       `json:"scale"`
	Status        string       `json:"status"`
	StageLabel    string       `json:"stage_label"`
	ProgressValue float64      `json:"progress_value"`
	Location      string       `json:"location"`
	Note          string       `json:"note"`
	GeoStatus     GeoStatus    `json:"geo_status"`
	Category      *CategoryRow `json:"category,omitempty"`
	Geo           *GeoFactors  `json:"geo,omitempty"`
}

// Band is a valuation range in USD. low <= base <= high always holds.
type Band struct {
	Base float64 `json:"base"`
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Metrics echoes the six normalized market metrics actually used.
type Metrics struct {
	CityGrowthPct     float64 `json:"city_growth_pct"`
	PropertyGrowthPct float64 `json:"property_growth_pct"`
	LandGrowthPct     float64 `json:"land_growth_pct"`
	PropertyAgeYears  float64 `json:"property_age_years"`
	ResaleValuePct    float64 `json:"resale_value_pct"`
	ROIPct            float64 `json:"roi_pct"`
	ComparableCount   int     `json:"comparable_count"`
}

// Result is the full valuation output.
type Result struct {
	Property   Band             `json:"property"`
	Land       Band             `json:"land"`
	Project    Band             `json:"project"`
	Confidence float64          `json:"confidence"`
	Spread     float64          `json:"spread"`
	Typology   ResolvedTypology `json:"typology"`
	Warnings   []string         `json:"warnings"`
	Metrics    Metrics          `json:"metrics"`
}

// Engine evaluates valuation inputs against an immutable tuning set. A
// single Engine is safe for concurrent use.
type Engine struct {
	tuning Tuning
}

// New creates an Engine with the given tuning.
func New(tuning Tuning) *Engine {
	return &Engine{tuning: tuning}
}

// warningSet collects advisory codes, deduplicated in first-seen order.
type warningSet struct {
	seen  map[string]struct{}
	codes []string
}

func newWarningSet() *warningSet {
	return &warningSet{seen: make(map[string]struct{})}
}

func (w *warningSet) add(code string) {
	if _, ok := w.seen[code]; ok {
		return
	}
	w.seen[code] = struct{}{}
	w.codes = append(w.codes, code)
}

func (w *warningSet) missingCount() int {
	n := 0
	for _, code := range w.codes {
		if strings.HasSuffix(code, ":missing") {
			n++
		}
	}
	return n
}

// readMetric normalizes one numeric metric: missing values take the
// fallback with a "<name>:missing" warning, out-of-range values are clamped
// with a "<name>:clamped" warning.
func readMetric(name string, value *float64, fallback, min, max float64, warnings *warningSet) float64 {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		warnings.add(name + ":missing")
		return fallback
	}
	if *value < min || *value > max {
		warnings.add(name + ":clamped")
	}
	return clamp(*value, min, max)
}

// densityBandFromText buckets population-density text into low/medium/high.
func densityBandFromText(value string) string {
	text := strings.ToLower(value)
	if strings.Contains(text, "high") {
		return "high"
	}
	if strings.Contains(text, "low") {
		return "low"
	}
	return "medium"
}

// zoneLooksCompatible checks the stated project type against the master
// plan zone text. An empty zone is treated as compatible.
func zoneLooksCompatible(projectType, zoneText string) bool {
	typ := strings.ToLower(projectType)
	zone := strings.ToLower(zoneText)
	if strings.TrimSpace(zone) == "" {
		return true
	}
	switch {
	case strings.Contains(typ, "residential"):
		return strings.Contains(zone, "residential") || strings.Contains(zone, "mixed")
	case strings.Contains(typ, "commercial"):
		return strings.Contains(zone, "commercial") || strings.Contains(zone, "mixed") || strings.Contains(zone, "business")
	case strings.Contains(typ, "industrial"):
		return strings.Contains(zone, "industrial") || strings.Contains(zone, "logistics") || strings.Contains(zone, "mixed")
	case strings.Contains(typ, "mixed"):
		return strings.Contains(zone, "mixed") || strings.Contains(zone, "commercial") || strings.Contains(zone, "residential")
	case strings.Contains(typ, "infrastructure"):
		return strings.Contains(zone, "infrastructure") || strings.Contains(zone, "corridor") || strings.Contains(zone, "industrial")
	}
	return true
}

// hazardTerms flag physical risk in any of the context text fields.
var hazardTerms = []string{"flood", "coast", "coastal", "seismic", "fault", "landslide", "swamp", "marsh", "erosion", "cyclone"}

var (
	softSoilTerms       = []string{"soft", "expansive", "black cotton", "clay"}
	steepTerrainTerms   = []string{"slope", "steep", "hill"}
	severeClimateTerms  = []string{"extreme heat", "extreme cold", "storm", "cyclone", "hurricane"}
	complianceRiskTerms = []string{"unauthori", "non-compliant", "violation", "litigation"}
	accessPositiveTerms = []string{"metro", "transit", "highway", "arterial", "corner", "frontage", "wide road", "main road"}
	accessNegativeTerms = []string{"narrow", "landlocked", "inner lane", "encroach", "bottleneck"}
)

// Compute runs the full valuation pipeline. It is total: every missing or
// out-of-range input degrades to a documented default.
func (e *Engine) Compute(input Input) Result {
	warnings := newWarningSet()

	geo := GeoFactors{}
	if input.Geo != nil {
		geo = *input.Geo
	}

	cityGrowthPct := readMetric("city_growth_5y_percent", geo.CityGrowthPct, 8, -20, 55, warnings)
	propertyGrowthPct := readMetric("property_growth_percent", geo.PropertyGrowthPct, 9, -25, 70, warnings)
	landGrowthPct := readMetric("land_growth_percent", geo.LandGrowthPct, 10, -25, 85, warnings)
	propertyAgeYears := readMetric("property_age_years", geo.PropertyAgeYears, 8, 0, 120, warnings)
	resaleValuePct := readMetric("resale_value_percent", geo.ResaleValuePct, 100, 40, 220, warnings)
	roiPct := readMetric("investment_roi_percent", geo.ROIPct, 8, -20, 45, warnings)
	comparableCount := int(math.Round(readMetric("comparable_properties_count", geo.ComparableCount, 0, 0, 200, warnings)))

	densityBand := densityBandFromText(geo.PopulationDensity)
	projectType := input.ProjectType
	if projectType == "" {
		projectType = string(ClassResidential)
	}
	scale := input.Scale
	if scale == "" {
		scale = "Low-rise"
	}
	projectClass := normalizeMarketClass(projectType)

	var category CategoryRow
	if input.Category != nil {
		category = *input.Category
	}
	typology := e.resolveTypology(typologyQuery{
		typology:    category.Typology,
		category:    category.Category,
		projectType: projectType,
		note:        input.Note,
	}, warnings)

	builtArea := e.builtAreaSqm(typology.MarketClass, projectClass, scale, warnings)

	context := strings.ToLower(strings.Join([]string{
		input.Location, input.Note, category.Typology, category.Style,
		category.Exterior, category.AdditionalFeatures,
		geo.Terrain, geo.SoilCondition, geo.ClimateZone,
	}, " "))

	// Location tier: first matching tier wins, checked ultra-prime down.
	locationFactor, locationPositionShift := 1.0, 0.0
	switch {
	case containsAny(context, e.tuning.LocationSignals.UltraPrime):
		locationFactor, locationPositionShift = 1.22, 0.22
	case containsAny(context, e.tuning.LocationSignals.Prime):
		locationFactor, locationPositionShift = 1.12, 0.11
	case containsAny(context, e.tuning.LocationSignals.Budget):
		locationFactor, locationPositionShift = 0.9, -0.12
	case densityBand == "high":
		locationFactor, locationPositionShift = 1.06, 0.05
	case densityBand == "low":
		locationFactor, locationPositionShift = 0.95, -0.04
	}

	typologyBand := math.Max(1, typology.MaxRate-typology.BaseRate)

	densityPosition := 0.5
	if densityBand == "high" {
		densityPosition = 0.72
	} else if densityBand == "low" {
		densityPosition = 0.28
	}
	growthPositionShift := clamp((cityGrowthPct*0.35+propertyGrowthPct*0.45+landGrowthPct*0.2)/480, -0.14, 0.16)
	preModifierPosition := clamp(densityPosition+locationPositionShift+growthPositionShift, 0.02, 0.98)

	// The pre-modifier rate always sits inside the typology corridor.
	baseRateWithinBand := clamp(typology.BaseRate+typologyBand*preModifierPosition, typology.BaseRate, typology.MaxRate)

	// A: comparable anchor. Blends recorded comparable activity with the
	// log-scaled sample depth; thin samples interpolate toward a city-band
	// fallback derived from growth and density.
	comparableActivityText := strings.ToLower(geo.ComparableActivity)
	if comparableActivityText == "" {
		comparableActivityText = "moderate"
	}
	comparableActivityFactor := 1.0
	if strings.Contains(comparableActivityText, "high") {
		comparableActivityFactor = 1.06
	} else if strings.Contains(comparableActivityText, "low") || strings.Contains(comparableActivityText, "thin") {
		comparableActivityFactor = 0.93
	}

	minComps := e.tuning.Limits.MinComparablesForAnchor
	comparableDepthFactor := clamp(0.9+math.Log1p(float64(comparableCount))*0.085, 0.88, 1.22)
	comparableSignal := clamp(comparableActivityFactor*comparableDepthFactor, 0.82, 1.26)
	densityNudge := 0.0
	if densityBand == "high" {
		densityNudge = 0.03
	} else if densityBand == "low" {
		densityNudge = -0.03
	}
	cityBandFallback := clamp(0.94+cityGrowthPct/420+densityNudge, 0.84, 1.14)

	comparableFactor := cityBandFallback
	switch {
	case comparableCount >= minComps:
		comparableFactor = comparableSignal
	case comparableCount > 0:
		blend := float64(comparableCount) / float64(minComps)
		comparableFactor = clamp(cityBandFallback*(1-blend)+comparableSignal*blend, 0.84, 1.2)
		warnings.add("comparables:thin_sample")
	default:
		warnings.add("comparables:none_fallback_city_band")
	}

	// B: micro-market access and neighborhood.
	microAccessFactor := clamp(
		1+float64(countMatches(context, accessPositiveTerms))*0.015-float64(countMatches(context, accessNegativeTerms))*0.03,
		0.84, 1.16)
	neighborhoodFactor := 1.0
	if densityBand == "high" {
		neighborhoodFactor = 1.04
	} else if densityBand == "low" {
		neighborhoodFactor = 0.96
	}
	microFactor := clamp(microAccessFactor*neighborhoodFactor*locationFactor, 0.8, 1.22)

	// C: geo hazard.
	hazardCount := countMatches(context, hazardTerms)
	soilPenalty := 0.0
	if containsAny(context, softSoilTerms) {
		soilPenalty = 0.05
	}
	terrainPenalty := 0.0
	if containsAny(context, steepTerrainTerms) {
		terrainPenalty = 0.04
	}
	climatePenalty := 0.0
	if containsAny(context, severeClimateTerms) {
		climatePenalty = 0.03
	}
	geoFactor := clamp(1-float64(hazardCount)*0.03-soilPenalty-terrainPenalty-climatePenalty, 0.72, 1.06)

	// D: policy and zoning.
	policyText := strings.ToLower(geo.PolicyPosture)
	if policyText == "" {
		policyText = "balanced"
	}
	zoneText := strings.ToLower(geo.MasterPlanZone)
	zoneFit := zoneLooksCompatible(projectType, zoneText)

	policyFactor := policyAlignmentFactor(policyText, typology.MarketClass)
	zoneFactor := 1.03
	if !zoneFit {
		zoneFactor = 0.86
	}
	policyZoningFactor := clamp(policyFactor*zoneFactor, 0.78, 1.16)

	// E: age decay, resale ratio, compliance.
	ageFactor := clamp(1-math.Max(0, propertyAgeYears-2)*0.011, 0.5, 1.04)
	resaleFactor := clamp(resaleValuePct/100, 0.62, 1.45)
	complianceFactor := 1.0
	if containsAny(context, complianceRiskTerms) {
		complianceFactor = 0.84
	}
	ageResaleFactor := clamp(ageFactor*resaleFactor*complianceFactor, 0.5, 1.24)

	// F: liquidity.
	growthMomentum := clamp(1+(cityGrowthPct*0.25+propertyGrowthPct*0.45+landGrowthPct*0.3)/280, 0.78, 1.32)
	liquidityDepth := clamp(0.9+float64(comparableCount)/140, 0.9, 1.2)
	liquidityFactor := clamp(growthMomentum*comparableActivityFactor*liquidityDepth, 0.78, 1.3)

	w := e.tuning.Weights
	weightedRateModifier := clamp(
		1+
			(comparableFactor-1)*w.ComparableAnchor+
			(microFactor-1)*w.MicroMarket+
			(geoFactor-1)*w.Geo+
			(policyZoningFactor-1)*w.PolicyZoning+
			(ageResaleFactor-1)*w.AgeResale+
			(liquidityFactor-1)*w.Liquidity,
		0.72, 1.34)

	// Apply the A-F modifiers, then cap back into the typology corridor.
	rawUnitRate := baseRateWithinBand * weightedRateModifier
	finalUnitRate := clamp(rawUnitRate, typology.BaseRate, typology.MaxRate)
	if math.Abs(finalUnitRate-rawUnitRate) > 0.5 {
		warnings.add("unit_rate:typology_clamped")
	}

	limits := e.tuning.Limits
	builtBase := clamp(finalUnitRate*builtArea, limits.MinValue, limits.MaxValue)

	landAreaMultiplier := lookupOr(e.tuning.LandAreaMultiplierByScale, scale, lookupOr(e.tuning.LandAreaMultiplierByScale, "Low-rise", 1.6))
	landRateMultiplier := lookupOr(e.tuning.LandRateMultiplierByType, string(typology.MarketClass),
		lookupOr(e.tuning.LandRateMultiplierByType, string(projectClass),
			lookupOr(e.tuning.LandRateMultiplierByType, string(ClassResidential), 0.5)))

	landAnchor := builtArea * landAreaMultiplier * finalUnitRate * landRateMultiplier
	landGrowthFactor := clamp(1+landGrowthPct/230, 0.76, 1.4)
	landBase := clamp(landAnchor*landGrowthFactor*zoneFactor*policyFactor, limits.MinValue, limits.MaxValue)

	// Land is capped relative to built value unless the typology is priced
	// on land alone.
	if typology.Basis != BasisLandOnly {
		maxLandRatio := 0.9
		switch typology.MarketClass {
		case ClassAgricultural:
			maxLandRatio = 1.25
		case ClassInfra:
			maxLandRatio = 1.15
		}
		if landCap := builtBase * maxLandRatio; landBase > landCap {
			landBase = landCap
			warnings.add("land:share_capped")
		}
	}

	clampToCorridor := func(value float64, warnKey string) float64 {
		unitRate := value / math.Max(1, builtArea)
		clamped := clamp(unitRate, typology.BaseRate, typology.MaxRate)
		if math.Abs(unitRate-clamped) > 0.5 {
			warnings.add(warnKey)
		}
		return clamp(clamped*builtArea, limits.MinValue, limits.MaxValue)
	}

	propertyBase := builtBase
	if typology.Basis == BasisLandOnly {
		propertyBase = clampToCorridor(landBase, "property:typology_clamped")
	}

	completionByStage := lookupOr(e.tuning.CompletionByStage, input.StageLabel, 0.45)
	completionShare := 1.0
	if input.Status != "Completed" {
		completionShare = clamp((completionByStage+input.ProgressValue/100)/2, 0.08, 0.98)
	}
	rawProjectBase := landBase
	if typology.Basis != BasisLandOnly {
		rawProjectBase = landBase + builtBase*completionShare
	}
	projectBase := clampToCorridor(rawProjectBase, "project:typology_clamped")

	// Confidence: additive penalties and bonuses over the tuned base.
	conf := e.tuning.Confidence
	confidence := conf.Base
	if strings.TrimSpace(input.Location) == "" {
		confidence -= conf.MissingLocationPenalty
	}
	if input.GeoStatus == GeoNone || input.GeoStatus == GeoDenied {
		confidence -= conf.MissingGpsPenalty
	}
	switch {
	case comparableCount == 0:
		confidence -= conf.NoComparablesPenalty
	case comparableCount < minComps:
		confidence -= conf.FewComparablesPenalty
	case comparableCount >= limits.StrongComparables:
		confidence += conf.StrongComparablesBonus
	}
	if zoneFit {
		confidence += conf.ClearZoneFitBonus
	} else {
		confidence -= conf.ZoneMismatchPenalty
	}
	if hazardCount >= 2 {
		confidence -= conf.HighHazardPenalty
	} else {
		confidence += conf.LowHazardBonus
	}
	if strings.Contains(policyText, "unpredict") {
		confidence -= conf.PolicyUncertainPenalty
	}
	if math.Abs(propertyGrowthPct-landGrowthPct) < 8 && math.Abs(cityGrowthPct-propertyGrowthPct) < 10 {
		confidence += conf.StableGrowthBonus
	}
	if category.Typology == "" {
		confidence -= 8
	}
	if typology.Source == SourceClassFallback {
		confidence -= 10
	}

	classMismatch := typology.MarketClass != projectClass &&
		projectClass != ClassMixedUse && typology.MarketClass != ClassMixedUse
	if classMismatch {
		confidence -= 12
		warnings.add("class:signal_mismatch")
	}

	confidence -= math.Min(10, float64(warnings.missingCount())*2)
	confidence = clamp(confidence, limits.MinConfidence, limits.MaxConfidence)

	spread := e.spreadFromConfidence(confidence)
	if comparableCount < minComps {
		spread += e.tuning.Haircuts.FallbackNoCompsExtraSpread
	}
	if hazardCount >= 2 {
		spread += e.tuning.Haircuts.HazardExtraSpread
	}
	if typology.Source == SourceClassFallback {
		spread += 0.04
	}
	if classMismatch {
		spread += 0.03
	}
	spread += math.Min(float64(len(warnings.codes)), float64(limits.MaxWarningsForSpread)) * 0.01
	spread = clamp(spread, 0.1, 0.58)

	projectSpread := clamp(spread+0.04, 0.1, 0.62)
	if input.Status == "Completed" {
		projectSpread = clamp(spread-0.03, 0.1, 0.62)
	}
	landSpread := clamp(spread-0.03, 0.08, 0.5)

	return Result{
		Property:   e.makeBand(propertyBase, spread),
		Land:       e.makeBand(landBase, landSpread),
		Project:    e.makeBand(projectBase, projectSpread),
		Confidence: confidence,
		Spread:     spread,
		Typology:   typology,
		Warnings:   warnings.codes,
		Metrics: Metrics{
			CityGrowthPct:     cityGrowthPct,
			PropertyGrowthPct: propertyGrowthPct,
			LandGrowthPct:     landGrowthPct,
			PropertyAgeYears:  propertyAgeYears,
			ResaleValuePct:    resaleValuePct,
			ROIPct:            roiPct,
			ComparableCount:   comparableCount,
		},
	}
}

// builtAreaSqm resolves the default built area for a market class and
// scale, falling back class -> project class -> Residential, then scale ->
// Low-rise -> hardcoded default, warning on each degradation.
func (e *Engine) builtAreaSqm(marketClass, projectClass MarketClass, scale string, warnings *warningSet) float64 {
	const defaultArea = 180

	classTable, ok := e.tuning.BuiltAreaSqmDefaults[string(marketClass)]
	if !ok {
		classTable, ok = e.tuning.BuiltAreaSqmDefaults[string(projectClass)]
	}
	if !ok {
		classTable, ok = e.tuning.BuiltAreaSqmDefaults[string(ClassResidential)]
	}
	if !ok {
		warnings.add("built_area:fallback")
		return defaultArea
	}

	if area, found := classTable[scale]; found && area > 0 {
		return clamp(area, 20, 2_500_000)
	}

	warnings.add("built_area:scale_fallback")
	if area, found := classTable["Low-rise"]; found && area > 0 {
		return clamp(area, 20, 2_500_000)
	}

	warnings.add("built_area:default")
	return defaultArea
}

// policyAlignmentFactor rewards policy postures aligned with the resolved
// market class and penalizes unpredictable regimes.
func policyAlignmentFactor(policyText string, class MarketClass) float64 {
	switch {
	case strings.Contains(policyText, "unpredict"):
		return 0.9
	case strings.Contains(policyText, "pro-industry") && class == ClassIndustrial:
		return 1.08
	case strings.Contains(policyText, "pro-commerce") && class == ClassCommercial:
		return 1.08
	case strings.Contains(policyText, "pro-residential") && class == ClassResidential:
		return 1.06
	case strings.Contains(policyText, "pro-infrastructure") && class == ClassInfra:
		return 1.07
	case strings.Contains(policyText, "pro-institutions") && class == ClassInstitutional:
		return 1.06
	case strings.Contains(policyText, "mixed"):
		return 1.02
	}
	return 1
}

// spreadFromConfidence walks the descending confidence thresholds and
// returns the first matching spread.
func (e *Engine) spreadFromConfidence(confidence float64) float64 {
	steps := make([]SpreadStep, len(e.tuning.SpreadByConfidence))
	copy(steps, e.tuning.SpreadByConfidence)
	for i := 1; i < len(steps); i++ {
		for j := i; j > 0 && steps[j].Min > steps[j-1].Min; j-- {
			steps[j], steps[j-1] = steps[j-1], steps[j]
		}
	}
	for _, step := range steps {
		if confidence >= step.Min {
			return step.Spread
		}
	}
	return 0.32
}

// makeBand expands a base value into a low/high band using the
// magnitude-dependent rounding step and the asymmetric haircuts.
func (e *Engine) makeBand(baseValue, spread float64) Band {
	step := roundStep(baseValue)
	low := roundTo(baseValue*(1-spread-e.tuning.Haircuts.LowSideExtra), step)
	high := roundTo(baseValue*(1+spread+e.tuning.Haircuts.HighSideExtra), step)
	return Band{
		Base: roundTo(baseValue, step),
		Low:  math.Max(e.tuning.Limits.MinValue, math.Min(low, high-step)),
		High: math.Min(e.tuning.Limits.MaxValue, math.Max(high, low+step)),
	}
}

// roundStep picks the display rounding step for a value's magnitude.
func roundStep(value float64) float64 {
	switch {
	case value >= 1_000_000_000:
		return 5_000_000
	case value >= 100_000_000:
		return 1_000_000
	case value >= 10_000_000:
		return 100_000
	case value >= 1_000_000:
		return 25_000
	}
	return 5_000
}

func roundTo(value, step float64) float64 {
	return math.Round(value/step) * step
}

func lookupOr(table map[string]float64, key string, fallback float64) float64 {
	if v, ok := table[key]; ok {
		return v
	}
	return fallback
}

func containsAny(source string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(source, term) {
			return true
		}
	}
	return false
}

func countMatches(source string, terms []string) int {
	n := 0
	for _, term := range terms {
		if strings.Contains(source, term) {
			n++
		}
	}
	return n
}

func clamp(value, min, max float64) float64 {
	return math.Min(max, math.Max(min, value))
}
