package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"lowercases", "ELECTRICAL", "electrical"},
		{"strips punctuation", "Hydraulics / Landing Gear", "hydraulics landing gear"},
		{"collapses whitespace", "  Fuel   System  ", "fuel system"},
		{"keeps accented letters", "Sistema Eléctrico", "sistema eléctrico"},
		{"keeps digits", "B737 Systems", "b737 systems"},
		{"empty", "", ""},
		{"punctuation only", "---!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.label))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	labels := []string{"Sistema Eléctrico", "Fuel - System", "  APU  ", "Flight Controls!"}
	for _, l := range labels {
		once := Normalize(l)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestMatchesExactTier(t *testing.T) {
	// Labels that normalize to the same string always match.
	assert.True(t, Matches("Electrical", []string{"ELECTRICAL"}))
	assert.True(t, Matches("Fuel-System", []string{"fuel system"}))
	assert.True(t, Matches("Sistema Eléctrico", []string{"sistema   eléctrico"}))
}

func TestMatchesSubstringTier(t *testing.T) {
	assert.True(t, Matches("Electrical Systems", []string{"Electrical"}))
	assert.True(t, Matches("Electrical", []string{"Electrical Systems"}))
	assert.True(t, Matches("Sistema Hidráulico", []string{"hidráulico"}))
}

func TestMatchesTokenOverlapTier(t *testing.T) {
	// No full containment, but "eléctrico"/"eléctricos" share a token substring.
	assert.True(t, Matches("Sistema Eléctrico", []string{"Componentes Eléctricos"}))
	assert.True(t, Matches("Fuel Pumps", []string{"Pumps and Valves"}))
}

func TestMatchesCrossLanguageWithoutSharedTokens(t *testing.T) {
	// "sistema eléctrico" and "electrical" share no token, so this is a
	// documented miss: cross-language matching needs a mapping table,
	// not the cascade.
	assert.False(t, Matches("Sistema Eléctrico", []string{"Electrical"}))
}

func TestMatchesShortTokenGuard(t *testing.T) {
	// Fragments under three runes are ignored by the substring and
	// overlap tiers, in both directions.
	assert.False(t, Matches("Sistema de Combustible", []string{"DE"}))
	assert.False(t, Matches("APU y Motores", []string{"y"}))
	assert.False(t, Matches("DE", []string{"Sistema de Combustible"}))
	assert.False(t, Matches("el", []string{"Sistema Eléctrico"}))

	// Exact equality is not guarded.
	assert.True(t, Matches("de", []string{"DE"}))

	// Three-rune fragments still pass the substring tier.
	assert.True(t, Matches("APU Systems", []string{"APU"}))
}

func TestMatchesEmptyInputs(t *testing.T) {
	assert.False(t, Matches("", []string{"Electrical"}))
	assert.False(t, Matches("Electrical", nil))
	assert.False(t, Matches("Electrical", []string{""}))
	assert.False(t, Matches("!!!", []string{"Electrical"}))
}

func TestMatchesMultipleTargets(t *testing.T) {
	targets := []string{"Hydraulics", "Fuel", "Electrical"}
	assert.True(t, Matches("Fuel System", targets))
	assert.False(t, Matches("Pressurization", targets))
}
