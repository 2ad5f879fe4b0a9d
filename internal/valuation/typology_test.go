package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "row house duplex", normalizeText("  Row-House / Duplex!! "))
	assert.Equal(t, "it park", normalizeText("IT_Park"))
	assert.Equal(t, "", normalizeText("   "))
}

func TestNormalizeMarketClass(t *testing.T) {
	cases := map[string]MarketClass{
		"":                         ClassResidential,
		"Residential":              ClassResidential,
		"something else":           ClassResidential,
		"Mixed Use Development":    ClassMixedUse,
		"infra corridor":           ClassInfra,
		"logistics hub":            ClassIndustrial,
		"warehouse cluster":        ClassIndustrial,
		"Office / Retail":          ClassCommercial,
		"boutique hotel":           ClassCommercial,
		"farm collective":          ClassAgricultural,
		"city zoo":                 ClassRecreational,
		"cultural district":        ClassRecreational,
		"university campus":        ClassInstitutional,
		"multi-specialty hospital": ClassInstitutional,
	}
	for text, want := range cases {
		assert.Equal(t, want, normalizeMarketClass(text), text)
	}
}

func TestResolveTypologyExactAlias(t *testing.T) {
	engine := New(DefaultTuning())
	warnings := newWarningSet()

	got := engine.resolveTypology(typologyQuery{typology: "Apartment Tower"}, warnings)

	assert.Equal(t, "apartment_tower", got.Key)
	assert.Equal(t, ClassResidential, got.MarketClass)
	assert.Equal(t, BasisBuiltUp, got.Basis)
	assert.Equal(t, SourceAlias, got.Source)
	assert.InDelta(t, 520, got.BaseRate, 1e-9)
	assert.InDelta(t, 2100, got.MaxRate, 1e-9)
	assert.Empty(t, warnings.codes)
}

func TestResolveTypologySubstringAlias(t *testing.T) {
	engine := New(DefaultTuning())
	warnings := newWarningSet()

	got := engine.resolveTypology(typologyQuery{typology: "Luxury Villa Compound"}, warnings)

	assert.Equal(t, "independent_house", got.Key)
	assert.Equal(t, SourceAlias, got.Source)
}

func TestResolveTypologyFromNote(t *testing.T) {
	engine := New(DefaultTuning())
	warnings := newWarningSet()

	got := engine.resolveTypology(typologyQuery{
		note:        "site sits above the new metro station box",
		projectType: "Infrastructure",
	}, warnings)

	assert.Equal(t, "transit_hub", got.Key)
	assert.Equal(t, ClassInfra, got.MarketClass)
	assert.Equal(t, SourceAlias, got.Source)
}

func TestResolveTypologyClassFallback(t *testing.T) {
	engine := New(DefaultTuning())
	warnings := newWarningSet()

	got := engine.resolveTypology(typologyQuery{
		typology: "unusual structure",
		category: "logistic zone",
	}, warnings)

	require.Equal(t, SourceClassFallback, got.Source)
	assert.Equal(t, ClassIndustrial, got.MarketClass)
	assert.InDelta(t, 300, got.BaseRate, 1e-9)
	assert.InDelta(t, 1400, got.MaxRate, 1e-9)
	assert.Contains(t, warnings.codes, "typology:class_fallback")
}

func TestResolveTypologyMissing(t *testing.T) {
	engine := New(DefaultTuning())
	warnings := newWarningSet()

	got := engine.resolveTypology(typologyQuery{}, warnings)

	assert.Equal(t, SourceClassFallback, got.Source)
	assert.Equal(t, ClassResidential, got.MarketClass)
	assert.Contains(t, warnings.codes, "typology:missing")
}

func TestResolveTypologyLandOnlyBasis(t *testing.T) {
	engine := New(DefaultTuning())
	warnings := newWarningSet()

	got := engine.resolveTypology(typologyQuery{typology: "raw land"}, warnings)

	assert.Equal(t, "plotted_land", got.Key)
	assert.Equal(t, BasisLandOnly, got.Basis)
}

func TestResolveTypologyCorridorOrdering(t *testing.T) {
	engine := New(DefaultTuning())
	for _, typology := range []string{"hotel", "warehouse", "farmland", "stadium", "hospital"} {
		got := engine.resolveTypology(typologyQuery{typology: typology}, newWarningSet())
		assert.Equal(t, SourceAlias, got.Source, typology)
		assert.Less(t, got.BaseRate, got.MaxRate, typology)
	}
}

func TestOrDefault(t *testing.T) {
	assert.InDelta(t, 800, orDefault(0, 800), 1e-9)
	assert.InDelta(t, 800, orDefault(-5, 800), 1e-9)
	assert.InDelta(t, 42, orDefault(42, 800), 1e-9)
}
