package plan

import (
	"fmt"
	"math"
	"strings"
)

// maxListEntries caps every qualitative guidance list.
const maxListEntries = 4

// dedupe trims entries, drops blanks and exact duplicates, keeps first-seen
// order, and caps the list.
func dedupe(items []string, max int) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, max)
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
		if len(out) == max {
			break
		}
	}
	return out
}

// rangeLabel renders value as a "min-max" band with a proportional delta,
// never dropping below minFloor.
func rangeLabel(value, spread, minFloor float64) string {
	floorDelta := 0.5
	if value < 10 {
		floorDelta = 1
	}
	delta := math.Max(value*spread, floorDelta)
	min := math.Max(minFloor, value-delta)
	max := math.Max(minFloor, value+delta)
	return fmt.Sprintf("%.0f-%.0f", min, max)
}

// vernacularByLocation picks regionally appropriate material suggestions
// from location and climate text.
func vernacularByLocation(location, climateText string) []string {
	l := normalize(location)
	c := normalize(climateText)

	switch {
	case strings.Contains(l, "kerala") || strings.Contains(l, "goa") || strings.Contains(c, "coastal"):
		return []string{"Laterite stone blocks", "Mangalore clay tiles", "Lime-cement breathable plaster"}
	case strings.Contains(l, "rajasthan") || strings.Contains(c, "desert") || strings.Contains(c, "hot"):
		return []string{"Lime plaster with reflective finish", "Jodhpur sandstone accents", "Terracotta jaali panels"}
	case strings.Contains(l, "himachal") || strings.Contains(l, "uttarakhand") || strings.Contains(c, "cold"):
		return []string{"Local stone masonry", "Timber framing inserts", "Insulated mud-lime composite blocks"}
	}
	return []string{"Fly ash bricks", "AAC blocks", "Bamboo-laminated shading panels"}
}

func buildComponents(climate, terrain, soil string) []string {
	climate = normalize(climate)
	terrain = normalize(terrain)
	soil = normalize(soil)

	windows := "Powder-coated aluminium/uPVC windows with multi-point locks"
	if strings.Contains(climate, "coastal") {
		windows = "Marine-grade aluminium windows with EPDM gaskets"
	}
	joints := "Standard movement joints with UV-stable sealants"
	if strings.Contains(terrain, "slope") {
		joints = "High-movement expansion joints with neoprene seals"
	}
	anchors := "Anchor plates and calibrated base plates"
	if strings.Contains(soil, "soft") {
		anchors = "Raft slab shear connectors and settlement markers"
	}

	return dedupe([]string{
		windows,
		joints,
		anchors,
		"SS304 hinges, lock plates, and corrosion-safe fasteners",
	}, maxListEntries)
}

func buildTechniques(scale string, stage Stage, climate string) []string {
	climate = normalize(climate)

	sequencing := "Phased pour cards tied to bar-bending schedules"
	if scale == "High-rise" {
		sequencing = "Core-first slip/jump form sequencing for vertical rise"
	}
	quality := "Mock-up driven quality signoff for each structural bay"
	if stage == StageServices || stage == StageFinishing {
		quality = "MEP clash checks before enclosure and finish closure"
	}
	envelope := "Thermal movement control with staged curing windows"
	if strings.Contains(climate, "coastal") || strings.Contains(climate, "humid") {
		envelope = "Two-layer waterproofing with membrane continuity checks"
	}

	return dedupe([]string{
		sequencing,
		quality,
		envelope,
		"Daily procurement pull-plan synchronized with site execution",
	}, maxListEntries)
}

func buildSpecialRequirements(input Input, locationCostIndex float64) []string {
	typology := "inferred"
	if input.Category != nil && input.Category.Typology != "" {
		typology = input.Category.Typology
	}
	var climate string
	if input.Geo != nil {
		climate = input.Geo.ClimateZone
	}
	vernacular := vernacularByLocation(input.Location, climate)
	bufferDays := math.Max(7, math.Round(12*locationCostIndex))

	return dedupe([]string{
		fmt.Sprintf("Unique requirement: %s typology (%s) needs phased completion package by stage.", input.ProjectType, typology),
		fmt.Sprintf("Local requirement: source %s and %s from local vendors first to cut lead-time risk.", vernacular[0], vernacular[1]),
		"Control requirement: maintain hold-point checks for windows, joints, hinges, and plate alignments before handover.",
		fmt.Sprintf("Procurement buffer: keep %s days of critical stock for cement, steel, and fasteners.", rangeLabel(bufferDays, 0.2, 3)),
	}, maxListEntries)
}

func buildConstructionInsights(input Input, stage Stage, labor []LaborRequirement, climate, terrain, soil string) []string {
	components := buildComponents(climate, terrain, soil)
	laborCore := 0
	for _, row := range labor {
		laborCore += row.Required
	}
	style := "current"
	if input.Category != nil && input.Category.Style != "" {
		style = input.Category.Style
	}
	system := input.ConstructionType
	if system == "" {
		system = "project"
	}

	items := []string{
		fmt.Sprintf("Construction focus: Stage %s at %s%% requires %s core workers.",
			stage, rangeLabel(math.Round(input.ProgressValue), 0.08, 0), rangeLabel(float64(laborCore), 0.2, 1)),
		fmt.Sprintf("Completion focus: prioritize %s and %s before closeout.", components[0], components[1]),
		fmt.Sprintf("Replicate: keep %s style language with %s construction system.", style, system),
	}
	items = append(items, input.AdvancedRecommendations...)
	return dedupe(items, maxListEntries)
}

func buildProcurementInsights(input Input, materials []MaterialRequirement, laborAvailability Availability) []string {
	cementQty := 0
	for _, item := range materials {
		if item.Item == "Cement" {
			cementQty = item.Quantity
			break
		}
	}
	var climate string
	if input.Geo != nil {
		climate = input.Geo.ClimateZone
	}
	vernacular := vernacularByLocation(input.Location, climate)

	return dedupe([]string{
		fmt.Sprintf("Procurement focus: secure cement (%s bags) and steel first.", rangeLabel(float64(cementQty), 0.2, 10)),
		fmt.Sprintf("Pick: prefer local %s procurement where quality certificates are available.", vernacular[0]),
		"Do not pick: unapproved substitutions for joints, hinges, window sections, or structural plates.",
		fmt.Sprintf("Labor availability for this location is %s; pre-book electricians and plumbers early.", laborAvailability),
	}, maxListEntries)
}

func buildCompletionInsights(input Input, stage Stage, climate string, paints []PaintRequirement, locationCostIndex float64) []string {
	techniques := buildTechniques(input.Scale, stage, climate)
	acquired := 0
	for _, paint := range paints {
		if paint.Status == PaintAcquired {
			acquired++
		}
	}
	terrain, soil := "terrain inferred", "soil inferred"
	if input.Geo != nil {
		if input.Geo.Terrain != "" {
			terrain = input.Geo.Terrain
		}
		if input.Geo.SoilCondition != "" {
			soil = input.Geo.SoilCondition
		}
	}

	items := []string{
		fmt.Sprintf("Special completion requirement: execute %s to protect schedule reliability.", techniques[0]),
		fmt.Sprintf("Paint panel status: %s of %s paint lots acquired.",
			rangeLabel(float64(acquired), 0.25, 0), rangeLabel(float64(len(paints)), 0.05, 1)),
		fmt.Sprintf("Unique site context: %s / %s should drive final QA checklists.", terrain, soil),
	}
	items = append(items, buildSpecialRequirements(input, locationCostIndex)...)
	return dedupe(items, maxListEntries)
}
