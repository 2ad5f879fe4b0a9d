package plan

// scaleFactor maps scale labels to the quantity multiplier that drives
// every table in the plan.
var scaleFactor = map[string]float64{
	"Low-rise":   1,
	"Mid-rise":   1.8,
	"High-rise":  3.4,
	"Large-site": 4.6,
}

// stagePressure represents how labor-intensive each stage still is.
var stagePressure = map[Stage]float64{
	StagePlanning:   1,
	StageFoundation: 0.94,
	StageStructure:  0.8,
	StageServices:   0.6,
	StageFinishing:  0.4,
	StageCompleted:  0.15,
}

// stageRoleFactor is the role×stage demand matrix.
var stageRoleFactor = map[string]map[Stage]float64{
	"architect": {
		StagePlanning: 1, StageFoundation: 0.8, StageStructure: 0.6,
		StageServices: 0.5, StageFinishing: 0.4, StageCompleted: 0.2,
	},
	"engineer": {
		StagePlanning: 0.8, StageFoundation: 1, StageStructure: 1,
		StageServices: 0.9, StageFinishing: 0.7, StageCompleted: 0.2,
	},
	"mason": {
		StagePlanning: 0.25, StageFoundation: 1, StageStructure: 1,
		StageServices: 0.65, StageFinishing: 0.35, StageCompleted: 0.08,
	},
	"carpenter": {
		StagePlanning: 0.2, StageFoundation: 0.5, StageStructure: 0.95,
		StageServices: 0.95, StageFinishing: 0.75, StageCompleted: 0.1,
	},
	"electrician": {
		StagePlanning: 0.1, StageFoundation: 0.2, StageStructure: 0.45,
		StageServices: 1, StageFinishing: 0.9, StageCompleted: 0.1,
	},
	"plumber": {
		StagePlanning: 0.1, StageFoundation: 0.2, StageStructure: 0.45,
		StageServices: 1, StageFinishing: 0.85, StageCompleted: 0.1,
	},
	"painter": {
		StagePlanning: 0.05, StageFoundation: 0.1, StageStructure: 0.2,
		StageServices: 0.45, StageFinishing: 1, StageCompleted: 0.2,
	},
	"steelFixer": {
		StagePlanning: 0.15, StageFoundation: 1, StageStructure: 1,
		StageServices: 0.25, StageFinishing: 0.08, StageCompleted: 0.05,
	},
}

type laborSpec struct {
	role         string
	key          string
	base         int
	dailyRateUSD float64
}

// laborSpecs is the fixed 8-role crew table.
var laborSpecs = []laborSpec{
	{role: "Architect", key: "architect", base: 1, dailyRateUSD: 220},
	{role: "Site Engineer", key: "engineer", base: 2, dailyRateUSD: 140},
	{role: "Masons", key: "mason", base: 8, dailyRateUSD: 45},
	{role: "Carpenters", key: "carpenter", base: 5, dailyRateUSD: 52},
	{role: "Electricians", key: "electrician", base: 4, dailyRateUSD: 58},
	{role: "Plumbers", key: "plumber", base: 3, dailyRateUSD: 56},
	{role: "Painters", key: "painter", base: 4, dailyRateUSD: 40},
	{role: "Steel Fixers", key: "steelFixer", base: 4, dailyRateUSD: 48},
}

type machinerySpec struct {
	machine       string
	baseUnits     int
	hourlyRateUSD float64
	stageKey      string
}

// machinerySpecs is the fixed 7-machine plant table. stageKey tags the
// bucket in which the machine runs at full utilization.
var machinerySpecs = []machinerySpec{
	{machine: "Excavator", baseUnits: 1, hourlyRateUSD: 95, stageKey: "foundation"},
	{machine: "Concrete Pump", baseUnits: 1, hourlyRateUSD: 125, stageKey: "structure"},
	{machine: "Tower Crane / Hoist", baseUnits: 1, hourlyRateUSD: 180, stageKey: "structure"},
	{machine: "Rebar Cutter + Bender", baseUnits: 1, hourlyRateUSD: 38, stageKey: "structure"},
	{machine: "Scaffolding Set", baseUnits: 1, hourlyRateUSD: 22, stageKey: "services"},
	{machine: "Boom Lift", baseUnits: 1, hourlyRateUSD: 72, stageKey: "services"},
	{machine: "Paint Sprayer Rig", baseUnits: 1, hourlyRateUSD: 28, stageKey: "finishing"},
}

type materialSpec struct {
	item         string
	baseQuantity float64
	unit         string
	unitCostUSD  float64
}

// materialSpecs is the fixed 12-item materials table.
var materialSpecs = []materialSpec{
	{item: "Cement", baseQuantity: 900, unit: "bags", unitCostUSD: 7.4},
	{item: "Bricks", baseQuantity: 78000, unit: "nos", unitCostUSD: 0.11},
	{item: "Steel (TMT/Rebar)", baseQuantity: 62, unit: "ton", unitCostUSD: 740},
	{item: "River Sand", baseQuantity: 320, unit: "ton", unitCostUSD: 24},
	{item: "Aggregate 20mm", baseQuantity: 430, unit: "ton", unitCostUSD: 30},
	{item: "Screws", baseQuantity: 24000, unit: "nos", unitCostUSD: 0.05},
	{item: "MS Plates", baseQuantity: 680, unit: "nos", unitCostUSD: 7.5},
	{item: "Door Hinges", baseQuantity: 360, unit: "nos", unitCostUSD: 2.8},
	{item: "Windows", baseQuantity: 52, unit: "nos", unitCostUSD: 115},
	{item: "Joint Sealant", baseQuantity: 540, unit: "cartridges", unitCostUSD: 6.2},
	{item: "Plumbing Pipes", baseQuantity: 1500, unit: "m", unitCostUSD: 4.1},
	{item: "Electrical Cables", baseQuantity: 2600, unit: "m", unitCostUSD: 1.7},
}

// Location cost tiers, checked ultra-high -> high -> low; first match wins.
var (
	ultraHighCostTerms = []string{"new york", "san francisco", "london", "zurich", "singapore", "dubai", "tokyo"}
	highCostTerms      = []string{"mumbai", "delhi", "bengaluru", "bangalore", "seattle", "toronto", "sydney", "melbourne", "paris"}
	lowCostTerms       = []string{"rural", "village", "tier-3", "small town", "remote"}
)

// Risk terms that downgrade labor availability one level.
var (
	riskyTerrainTerms   = []string{"slope", "steep", "hill", "marsh", "flood", "coastal", "landslide", "soft"}
	extremeClimateTerms = []string{"cyclone", "storm", "extreme", "heat", "cold", "humid", "monsoon", "snow"}
)
