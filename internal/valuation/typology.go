package valuation

import (
	"regexp"
	"sort"
	"strings"
)

// MarketClass is one of the eight pricing classes.
type MarketClass string

// Market classes.
const (
	ClassResidential   MarketClass = "Residential"
	ClassCommercial    MarketClass = "Commercial"
	ClassIndustrial    MarketClass = "Industrial"
	ClassAgricultural  MarketClass = "Agricultural"
	ClassRecreational  MarketClass = "Recreational/Cultural"
	ClassInstitutional MarketClass = "Institutional"
	ClassMixedUse      MarketClass = "Mixed-use"
	ClassInfra         MarketClass = "Infrastructure"
)

// Pricing bases.
const (
	BasisBuiltUp  = "built_up"
	BasisLandOnly = "land_only"
)

// Typology provenance.
const (
	SourceAlias         = "alias"
	SourceClassFallback = "classFallback"
)

// ResolvedTypology is the anchor the valuation is priced against. The
// [BaseRate, MaxRate] corridor bounds every final unit rate.
type ResolvedTypology struct {
	Key         string      `json:"key"`
	MarketClass MarketClass `json:"market_class"`
	Basis       string      `json:"basis"`
	BaseRate    float64     `json:"base_rate"`
	MaxRate     float64     `json:"max_rate"`
	Source      string      `json:"source"`
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9+\s-]+`)
var separatorRe = regexp.MustCompile(`[-_/]+`)

// normalizeText lowercases, strips punctuation, folds separators to spaces,
// and collapses whitespace, so alias matching is insensitive to formatting.
func normalizeText(value string) string {
	text := strings.ToLower(value)
	text = nonAlnumRe.ReplaceAllString(text, " ")
	text = separatorRe.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(text), " ")
}

// normalizeMarketClass folds arbitrary class/typology text onto one of the
// eight market classes. Residential is the terminal default.
func normalizeMarketClass(value string) MarketClass {
	text := normalizeText(value)
	switch {
	case text == "":
		return ClassResidential
	case strings.Contains(text, "mixed"):
		return ClassMixedUse
	case strings.Contains(text, "infra"):
		return ClassInfra
	case strings.Contains(text, "industrial"), strings.Contains(text, "logistic"),
		strings.Contains(text, "factory"), strings.Contains(text, "warehouse"):
		return ClassIndustrial
	case strings.Contains(text, "commercial"), strings.Contains(text, "office"),
		strings.Contains(text, "retail"), strings.Contains(text, "hotel"):
		return ClassCommercial
	case strings.Contains(text, "agric"), strings.Contains(text, "farm"),
		strings.Contains(text, "barn"), strings.Contains(text, "silo"):
		return ClassAgricultural
	case strings.Contains(text, "recreat"), strings.Contains(text, "cultural"),
		strings.Contains(text, "stadium"), strings.Contains(text, "museum"), strings.Contains(text, "zoo"):
		return ClassRecreational
	case strings.Contains(text, "institution"), strings.Contains(text, "school"),
		strings.Contains(text, "college"), strings.Contains(text, "hospital"), strings.Contains(text, "university"):
		return ClassInstitutional
	}
	return ClassResidential
}

// typologyQuery carries the text fields the resolver scores against.
type typologyQuery struct {
	typology    string
	category    string
	projectType string
	note        string
}

// resolveTypology matches the typology text against the alias table. Exact
// alias matches outrank typology-substring matches, which outrank matches in
// the expanded text; longer aliases break ties. Anchors are scanned in
// sorted key order so resolution is deterministic. When nothing matches, the
// market-class fallback band is used.
func (e *Engine) resolveTypology(q typologyQuery, warnings *warningSet) ResolvedTypology {
	typologyText := normalizeText(q.typology)
	expandedText := normalizeText(q.typology + " " + q.note + " " + q.projectType + " " + q.category)

	keys := make([]string, 0, len(e.tuning.TypologyAnchorsUSDPerSqm))
	for key := range e.tuning.TypologyAnchorsUSDPerSqm {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var bestKey string
	var bestScore int
	var bestAnchor TypologyAnchor

	for _, key := range keys {
		anchor := e.tuning.TypologyAnchorsUSDPerSqm[key]
		for _, alias := range anchor.Aliases {
			normalized := normalizeText(alias)
			if normalized == "" {
				continue
			}

			score := 0
			switch {
			case typologyText == normalized:
				score = 300 + len(normalized)
			case typologyText != "" && strings.Contains(typologyText, normalized):
				score = 220 + len(normalized)
			case expandedText != "" && strings.Contains(expandedText, normalized):
				score = 120 + len(normalized)
			}
			if score > bestScore {
				bestKey, bestScore, bestAnchor = key, score, anchor
			}
		}
	}

	if bestScore > 0 {
		class := bestAnchor.Class
		if class == "" {
			class = q.category
			if class == "" {
				class = q.projectType
			}
		}
		baseRate := clamp(orDefault(bestAnchor.Base, 800), 100, 200_000)
		maxRate := clamp(orDefault(bestAnchor.Max, 6_000), baseRate+1, 300_000)
		basis := BasisBuiltUp
		if bestAnchor.Basis == BasisLandOnly {
			basis = BasisLandOnly
		}
		return ResolvedTypology{
			Key:         bestKey,
			MarketClass: normalizeMarketClass(class),
			Basis:       basis,
			BaseRate:    baseRate,
			MaxRate:     maxRate,
			Source:      SourceAlias,
		}
	}

	classText := q.category
	if classText == "" {
		classText = q.typology
	}
	if classText == "" {
		classText = q.projectType
	}
	inferredClass := normalizeMarketClass(classText)

	band, ok := e.tuning.ClassFallbackUSDPerSqm[string(inferredClass)]
	if !ok {
		band, ok = e.tuning.ClassFallbackUSDPerSqm[string(ClassResidential)]
	}
	if !ok {
		band = RateBand{Base: 800, Max: 6_000}
	}

	if typologyText == "" {
		warnings.add("typology:missing")
	} else {
		warnings.add("typology:class_fallback")
	}

	baseRate := clamp(orDefault(band.Base, 800), 100, 200_000)
	maxRate := clamp(orDefault(band.Max, 6_000), baseRate+1, 300_000)
	return ResolvedTypology{
		Key:         string(inferredClass) + " fallback",
		MarketClass: inferredClass,
		Basis:       BasisBuiltUp,
		BaseRate:    baseRate,
		MaxRate:     maxRate,
		Source:      SourceClassFallback,
	}
}

// orDefault substitutes fallback for unset (zero or negative) rates.
func orDefault(value, fallback float64) float64 {
	if value <= 0 {
		return fallback
	}
	return value
}
