package plan

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// midriseMumbai is a mid-construction tower in a high-cost metro.
func midriseMumbai() Input {
	return Input{
		Status:        StatusUnderConstruction,
		Stage:         StageStructure,
		ProgressValue: 45,
		Scale:         "Mid-rise",
		Location:      "Andheri East, Mumbai",
	}
}

func TestBuildDeterministic(t *testing.T) {
	input := midriseMumbai()
	first := Build(input)
	second := Build(input)
	assert.True(t, reflect.DeepEqual(first, second))
}

func TestBuildTableCardinalities(t *testing.T) {
	out := Build(midriseMumbai())

	assert.Len(t, out.Labor, 8)
	assert.Len(t, out.Machinery, 7)
	assert.Len(t, out.Materials, 12)
	assert.Len(t, out.Paints, 4)
}

func TestBuildLaborRow(t *testing.T) {
	out := Build(midriseMumbai())

	// remainingShare = 0.55, intensity = 1.8*(0.55*0.85+0.8*0.4) = 1.4175,
	// location index 1.14 (Mumbai).
	assert.InDelta(t, 1.14, out.LocationCostIndex, 1e-9)

	masons := out.Labor[2]
	require.Equal(t, "Masons", masons.Role)
	// required = round(8*1.4175) = 11
	assert.Equal(t, 11, masons.Required)
	// days = round(8 + 1*18*0.55*(1.8*0.85)) = round(23.147) = 23
	assert.Equal(t, 23, masons.EstimatedDays)
	// rate = 45 * 1.14
	assert.InDelta(t, 51.3, masons.DailyRateUSD, 1e-9)
	// total = 11*45*23*1.14
	assert.InDelta(t, 12978.9, masons.TotalCostUSD, 0.01)

	architect := out.Labor[0]
	require.Equal(t, "Architect", architect.Role)
	// round(1*1.4175*0.6) = 1
	assert.Equal(t, 1, architect.Required)
	assert.InDelta(t, 4263.6, architect.TotalCostUSD, 0.01)
}

func TestBuildLaborFloors(t *testing.T) {
	// A completed low-rise leaves the 0.08 residual and bottoms out every
	// minimum: at least one worker, at least three days.
	out := Build(Input{
		Status:        StatusCompleted,
		Stage:         StageCompleted,
		ProgressValue: 100,
		Scale:         "Low-rise",
	})

	for _, l := range out.Labor {
		assert.GreaterOrEqual(t, l.Required, 1, l.Role)
		assert.GreaterOrEqual(t, l.EstimatedDays, 3, l.Role)
	}
	for _, m := range out.Machinery {
		assert.GreaterOrEqual(t, m.Units, 1, m.Machine)
		assert.GreaterOrEqual(t, m.EstimatedHours, 24, m.Machine)
	}
}

func TestBuildMachineryRows(t *testing.T) {
	out := Build(midriseMumbai())

	excavator := out.Machinery[0]
	require.Equal(t, "Excavator", excavator.Machine)
	// Off-bucket boost 0.45: hours = round(60*0.55*0.8*1.8*0.45) = 21, floored to 24.
	assert.Equal(t, 1, excavator.Units)
	assert.Equal(t, 24, excavator.EstimatedHours)
	assert.InDelta(t, 2599.2, excavator.TotalCostUSD, 0.01)

	crane := out.Machinery[2]
	require.Equal(t, "Tower Crane / Hoist", crane.Machine)
	// In-bucket boost 1: units = round(clamp(1.8,1,4)) = 2, hours = round(47.52) = 48.
	assert.Equal(t, 2, crane.Units)
	assert.Equal(t, 48, crane.EstimatedHours)
	// Crane availability downgraded one level below the general Medium.
	assert.Equal(t, AvailabilityLow, crane.Availability)
	assert.InDelta(t, 19699.2, crane.TotalCostUSD, 0.01)
}

func TestBuildMaterialRows(t *testing.T) {
	out := Build(midriseMumbai())

	cement := out.Materials[0]
	require.Equal(t, "Cement", cement.Item)
	// quantity = round(900*1.8*0.55) = 891, unit cost = 7.4*1.14 = 8.436
	assert.Equal(t, 891, cement.Quantity)
	assert.InDelta(t, 8.436, cement.UnitCostUSD, 1e-9)
	assert.InDelta(t, 7516.48, cement.TotalCostUSD, 0.01)

	steel := out.Materials[2]
	require.Equal(t, "Steel (TMT/Rebar)", steel.Item)
	assert.Equal(t, "ton", steel.Unit)
	assert.Equal(t, 61, steel.Quantity)

	// Long-lead items sit one availability level below the base.
	windows := out.Materials[8]
	require.Equal(t, "Windows", windows.Item)
	assert.Equal(t, AvailabilityLow, windows.Availability)
}

func TestBuildMaterialFloors(t *testing.T) {
	out := Build(Input{
		Status:        StatusCompleted,
		Stage:         StageCompleted,
		ProgressValue: 100,
		Scale:         "Low-rise",
	})

	for _, m := range out.Materials {
		floor := 10
		if m.Unit == "ton" {
			floor = 1
		}
		assert.GreaterOrEqual(t, m.Quantity, floor, m.Item)
	}
}

func TestRemainingWorkShare(t *testing.T) {
	// Completed keeps the fixed residual regardless of progress.
	assert.InDelta(t, 0.08, remainingWorkShare(StatusCompleted, 30), 1e-9)
	assert.InDelta(t, 0.55, remainingWorkShare(StatusUnderConstruction, 45), 1e-9)
	// Clamped at both ends.
	assert.InDelta(t, 0.08, remainingWorkShare(StatusUnderConstruction, 99), 1e-9)
	assert.InDelta(t, 1, remainingWorkShare(StatusUnderConstruction, -20), 1e-9)
}

func TestNormalizedStageFallback(t *testing.T) {
	assert.Equal(t, StageStructure, normalizedStage(Stage("Demolition")))
	assert.Equal(t, StageFinishing, normalizedStage(StageFinishing))
}

func TestLocationCostIndexTiers(t *testing.T) {
	assert.InDelta(t, 1.26, locationCostIndexFor("Lower Manhattan, New York"), 1e-9)
	assert.InDelta(t, 1.14, locationCostIndexFor("Whitefield, Bengaluru"), 1e-9)
	assert.InDelta(t, 0.86, locationCostIndexFor("remote village site"), 1e-9)
	assert.InDelta(t, 1.0, locationCostIndexFor("Pune"), 1e-9)
	// Ultra-high wins over low when both match.
	assert.InDelta(t, 1.26, locationCostIndexFor("village near new york"), 1e-9)
}

func TestDetectLaborAvailability(t *testing.T) {
	assert.Equal(t, AvailabilityMedium, detectLaborAvailability("", "", "", ""))
	assert.Equal(t, AvailabilityHigh, detectLaborAvailability("high density metro", "", "", ""))
	assert.Equal(t, AvailabilityLow, detectLaborAvailability("low", "", "", ""))
	assert.Equal(t, AvailabilityLow, detectLaborAvailability("", "", "", "rural taluk"))
	// Risk terms shift one level down.
	assert.Equal(t, AvailabilityMedium, detectLaborAvailability("metro", "steep slope", "", ""))
	assert.Equal(t, AvailabilityLow, detectLaborAvailability("", "", "cyclone belt", ""))
	// Already at the bottom, stays there.
	assert.Equal(t, AvailabilityLow, detectLaborAvailability("low", "landslide zone", "", ""))
}

func TestSpecializedAvailability(t *testing.T) {
	assert.Equal(t, AvailabilityHigh, specializedAvailability(AvailabilityHigh, "Architect"))
	assert.Equal(t, AvailabilityMedium, specializedAvailability(AvailabilityHigh, "Electricians"))
	assert.Equal(t, AvailabilityMedium, specializedAvailability(AvailabilityHigh, "Plumbers"))
	assert.Equal(t, AvailabilityHigh, specializedAvailability(AvailabilityHigh, "Masons"))
}

func TestShiftAvailabilityClamps(t *testing.T) {
	assert.Equal(t, AvailabilityLow, shiftAvailability(AvailabilityLow, -1))
	assert.Equal(t, AvailabilityHigh, shiftAvailability(AvailabilityHigh, 1))
	assert.Equal(t, AvailabilityHigh, shiftAvailability(AvailabilityMedium, 1))
}

func TestPaintPaletteClimateShade(t *testing.T) {
	coastal := paintPalette("humid coastal", 0, 1)
	assert.Equal(t, "Salt Mist Grey", coastal[0].Shade)

	hot := paintPalette("hot arid", 0, 1)
	assert.Equal(t, "Solar Reflect White", hot[0].Shade)

	cold := paintPalette("cold snow zone", 0, 1)
	assert.Equal(t, "Thermal Taupe", cold[0].Shade)

	neutral := paintPalette("", 0, 1)
	assert.Equal(t, "Stone Beige", neutral[0].Shade)
}

func TestPaintPaletteProcurementThresholds(t *testing.T) {
	// Thresholds are 70, 62, 54, 46 per zone.
	panel := paintPalette("", 60, 1)
	assert.Equal(t, PaintToProcure, panel[0].Status)
	assert.Equal(t, PaintToProcure, panel[1].Status)
	assert.Equal(t, PaintAcquired, panel[2].Status)
	assert.Equal(t, PaintAcquired, panel[3].Status)

	done := paintPalette("", 100, 1)
	for _, p := range done {
		assert.Equal(t, PaintAcquired, p.Status)
	}
}

func TestPaintPaletteLitersScale(t *testing.T) {
	panel := paintPalette("", 45, 1.8)
	assert.Equal(t, 432, panel[0].Liters) // 240*1.8
	assert.Equal(t, 342, panel[1].Liters) // 190*1.8
	assert.Equal(t, 162, panel[2].Liters) // 90*1.8
	assert.Equal(t, 99, panel[3].Liters)  // 55*1.8
}

func TestBuildInsightListsCapped(t *testing.T) {
	input := midriseMumbai()
	input.Geo = &GeoFactors{
		Terrain:           "steep slope",
		SoilCondition:     "soft clay",
		ClimateZone:       "humid coastal",
		PopulationDensity: "high",
	}
	input.AdvancedRecommendations = []string{
		"Stage deliveries weekly", "Stage deliveries weekly", " ",
		"Add a second QC engineer", "Pre-book crane slots", "Extra one", "Extra two",
	}
	out := Build(input)

	lists := map[string][]string{
		"components":            out.Components,
		"techniques":            out.Techniques,
		"special_requirements":  out.SpecialRequirements,
		"vernacular_materials":  out.VernacularMaterials,
		"construction_insights": out.ConstructionInsights,
		"procurement_insights":  out.ProcurementInsights,
		"completion_insights":   out.CompletionInsights,
	}
	for name, list := range lists {
		assert.NotEmpty(t, list, name)
		assert.LessOrEqual(t, len(list), 4, name)
		seen := make(map[string]bool)
		for _, entry := range list {
			assert.NotEmpty(t, entry, name)
			assert.False(t, seen[entry], "%s has duplicate %q", name, entry)
			seen[entry] = true
		}
	}
}

func TestVernacularByLocation(t *testing.T) {
	assert.Contains(t, vernacularByLocation("Kochi, Kerala", ""), "Laterite stone blocks")
	assert.Contains(t, vernacularByLocation("Jaipur, Rajasthan", ""), "Jodhpur sandstone accents")
	assert.Contains(t, vernacularByLocation("Shimla, Himachal", ""), "Local stone masonry")
	assert.Contains(t, vernacularByLocation("Nagpur", ""), "Fly ash bricks")
	// Climate text alone can steer the pick.
	assert.Contains(t, vernacularByLocation("", "hot desert"), "Lime plaster with reflective finish")
}

func TestDedupe(t *testing.T) {
	got := dedupe([]string{" a ", "a", "", "b", "c", "d", "e"}, 4)
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
}

func TestRangeLabel(t *testing.T) {
	// Proportional delta.
	assert.Equal(t, "90-110", rangeLabel(100, 0.1, 0))
	// Small values use the wider floor delta.
	assert.Equal(t, "4-6", rangeLabel(5, 0.01, 0))
	// Floor clamps the low side.
	assert.Equal(t, "3-4", rangeLabel(3, 0.01, 3))
}
