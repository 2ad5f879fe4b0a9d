// Package model holds the plain data shapes exchanged between the upstream
// site analyzer, the estimation engines, and persistence.
package model

import (
	"time"

	"github.com/sitescope/estimator-cli/internal/plan"
	"github.com/sitescope/estimator-cli/internal/valuation"
)

// AssessmentKind distinguishes stored assessment records.
type AssessmentKind string

// Assessment kinds.
const (
	KindPlan      AssessmentKind = "plan"
	KindValuation AssessmentKind = "valuation"
)

// Timeline carries the remaining-effort hours reported upstream.
type Timeline struct {
	HoursRemaining float64 `json:"hours_remaining"`
	ManpowerHours  float64 `json:"manpower_hours"`
	MachineryHours float64 `json:"machinery_hours"`
}

// CategoryMatrix is the full classification row produced by the analyzer.
type CategoryMatrix struct {
	Category            string `json:"category,omitempty"`
	Typology            string `json:"typology,omitempty"`
	Style               string `json:"style,omitempty"`
	ClimateAdaptability string `json:"climate_adaptability,omitempty"`
	Terrain             string `json:"terrain,omitempty"`
	SoilType            string `json:"soil_type,omitempty"`
	MaterialUsed        string `json:"material_used,omitempty"`
	InteriorLayout      string `json:"interior_layout,omitempty"`
	RoofType            string `json:"roof_type,omitempty"`
	Exterior            string `json:"exterior,omitempty"`
	AdditionalFeatures  string `json:"additional_features,omitempty"`
	Sustainability      string `json:"sustainability,omitempty"`
}

// GeoMarketFactors is the analyzer's geographic and market context block.
// Numeric metrics are pointers so absent values stay distinguishable.
type GeoMarketFactors struct {
	Terrain            string `json:"terrain,omitempty"`
	SoilCondition      string `json:"soil_condition,omitempty"`
	ClimateZone        string `json:"climate_zone,omitempty"`
	PopulationDensity  string `json:"population_density,omitempty"`
	MasterPlanZone     string `json:"master_plan_zone,omitempty"`
	PolicyPosture      string `json:"policy_posture,omitempty"`
	PolicyFocus        string `json:"policy_focus,omitempty"`
	ComparableActivity string `json:"comparable_activity,omitempty"`

	ComparablePropertiesCount *float64 `json:"comparable_properties_count,omitempty"`
	CityGrowth5YPercent       *float64 `json:"city_growth_5y_percent,omitempty"`
	PropertyGrowthPercent     *float64 `json:"property_growth_percent,omitempty"`
	LandGrowthPercent         *float64 `json:"land_growth_percent,omitempty"`
	PropertyAgeYears          *float64 `json:"property_age_years,omitempty"`
	ResaleValuePercent        *float64 `json:"resale_value_percent,omitempty"`
	InvestmentROIPercent      *float64 `json:"investment_roi_percent,omitempty"`
}

// SiteAnalysis is the validated upstream analyzer output plus the request
// metadata the user supplied. It is the single record both engines are fed
// from.
type SiteAnalysis struct {
	ProjectStatus       string            `json:"project_status"`
	StageOfConstruction string            `json:"stage_of_construction"`
	ProgressPercent     float64           `json:"progress_percent"`
	Timeline            Timeline          `json:"timeline"`
	CategoryMatrix      *CategoryMatrix   `json:"category_matrix,omitempty"`
	GeoMarketFactors    *GeoMarketFactors `json:"geo_market_factors,omitempty"`
	Notes               []string          `json:"notes,omitempty"`

	// Request metadata.
	Location         string `json:"location,omitempty"`
	ProjectType      string `json:"project_type,omitempty"`
	Scale            string `json:"scale,omitempty"`
	ConstructionType string `json:"construction_type,omitempty"`
	Note             string `json:"note,omitempty"`
	GeoStatus        string `json:"geo_status,omitempty"`

	// Prior advisory recommendations, folded into plan insights.
	Recommendations []string `json:"recommendations,omitempty"`
}

// status maps the analyzer's snake_case project status onto the planner's
// display statuses.
func (s SiteAnalysis) status() plan.Status {
	switch s.ProjectStatus {
	case "completed":
		return plan.StatusCompleted
	case "under_construction":
		return plan.StatusUnderConstruction
	}
	return plan.StatusUnknown
}

// PlanInput maps the analysis record onto the resource planner's input.
func (s SiteAnalysis) PlanInput() plan.Input {
	input := plan.Input{
		Status:                  s.status(),
		Stage:                   plan.Stage(s.StageOfConstruction),
		ProgressValue:           s.ProgressPercent,
		ProjectType:             s.ProjectType,
		Scale:                   s.Scale,
		ConstructionType:        s.ConstructionType,
		Location:                s.Location,
		Note:                    s.Note,
		AdvancedRecommendations: s.Recommendations,
	}
	if s.CategoryMatrix != nil {
		input.Category = &plan.CategoryRow{
			Typology:           s.CategoryMatrix.Typology,
			Style:              s.CategoryMatrix.Style,
			RoofType:           s.CategoryMatrix.RoofType,
			MaterialUsed:       s.CategoryMatrix.MaterialUsed,
			AdditionalFeatures: s.CategoryMatrix.AdditionalFeatures,
		}
	}
	if s.GeoMarketFactors != nil {
		input.Geo = &plan.GeoFactors{
			Terrain:           s.GeoMarketFactors.Terrain,
			SoilCondition:     s.GeoMarketFactors.SoilCondition,
			ClimateZone:       s.GeoMarketFactors.ClimateZone,
			PopulationDensity: s.GeoMarketFactors.PopulationDensity,
		}
	}
	return input
}

// ValuationInput maps the analysis record onto the valuation engine's input.
func (s SiteAnalysis) ValuationInput() valuation.Input {
	input := valuation.Input{
		ProjectType:   s.ProjectType,
		Scale:         s.Scale,
		Status:        string(s.status()),
		StageLabel:    s.StageOfConstruction,
		ProgressValue: s.ProgressPercent,
		Location:      s.Location,
		Note:          s.Note,
		GeoStatus:     valuation.GeoStatus(s.GeoStatus),
	}
	if input.GeoStatus == "" {
		input.GeoStatus = valuation.GeoNone
	}
	if s.CategoryMatrix != nil {
		input.Category = &valuation.CategoryRow{
			Category:           s.CategoryMatrix.Category,
			Typology:           s.CategoryMatrix.Typology,
			Style:              s.CategoryMatrix.Style,
			AdditionalFeatures: s.CategoryMatrix.AdditionalFeatures,
			Exterior:           s.CategoryMatrix.Exterior,
		}
	}
	if g := s.GeoMarketFactors; g != nil {
		input.Geo = &valuation.GeoFactors{
			Terrain:            g.Terrain,
			SoilCondition:      g.SoilCondition,
			ClimateZone:        g.ClimateZone,
			PopulationDensity:  g.PopulationDensity,
			MasterPlanZone:     g.MasterPlanZone,
			PolicyPosture:      g.PolicyPosture,
			PolicyFocus:        g.PolicyFocus,
			ComparableActivity: g.ComparableActivity,
			ComparableCount:    g.ComparablePropertiesCount,
			CityGrowthPct:      g.CityGrowth5YPercent,
			PropertyGrowthPct:  g.PropertyGrowthPercent,
			LandGrowthPct:      g.LandGrowthPercent,
			PropertyAgeYears:   g.PropertyAgeYears,
			ResaleValuePct:     g.ResaleValuePercent,
			ROIPct:             g.InvestmentROIPercent,
		}
	}
	return input
}

// Assessment is one persisted estimation run.
type Assessment struct {
	ID        string         `json:"id"`
	Kind      AssessmentKind `json:"kind"`
	Location  string         `json:"location,omitempty"`
	Input     []byte         `json:"input"`
	Result    []byte         `json:"result"`
	CreatedAt time.Time      `json:"created_at"`
}
