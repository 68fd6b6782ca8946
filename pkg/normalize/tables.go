package normalize

// CityAlias maps a lowercase substring to its canonical city name.
// Aliases are checked in order, so more specific aliases must precede
// shorter ones that they contain.
type CityAlias struct {
	Alias string
	City  string
}

// Tables holds the read-only lookup tables the normalizer consults.
// They are process-wide configuration, constructed once and injected,
// so tests can substitute alternates.
type Tables struct {
	// Acronyms are upper-cased verbatim during name title-casing.
	Acronyms map[string]bool

	// CanonicalSectors is the closed vocabulary of sector tags.
	CanonicalSectors map[string]bool

	// SectorSynonyms maps lowercase variants to canonical sector tags.
	SectorSynonyms map[string]string

	// CityAliases maps location substrings to canonical city names.
	CityAliases []CityAlias

	// CountryFallback is the location used when none is provided.
	CountryFallback string
}

// SectorOther is the catch-all sector tag for unmapped input.
const SectorOther = "other"

// DefaultTables returns the standard lookup tables for the Moroccan
// startup ecosystem.
func DefaultTables() Tables {
	return Tables{
		Acronyms: map[string]bool{
			"SAAS": true,
			"API":  true,
			"AI":   true,
			"ML":   true,
			"IOT":  true,
			"VC":   true,
		},
		CanonicalSectors: map[string]bool{
			"fintech":    true,
			"ai":         true,
			"healthtech": true,
			"edtech":     true,
			"agritech":   true,
			"cleantech":  true,
			"proptech":   true,
			"ecommerce":  true,
			"saas":       true,
			"logistics":  true,
			SectorOther:  true,
		},
		SectorSynonyms: map[string]string{
			"fin tech":                "fintech",
			"financial technology":    "fintech",
			"artificial intelligence": "ai",
			"machine learning":        "ai",
			"health tech":             "healthtech",
			"healthcare":              "healthtech",
			"ed tech":                 "edtech",
			"education technology":    "edtech",
			"agri tech":               "agritech",
			"agricultural technology": "agritech",
			"clean tech":              "cleantech",
			"green tech":              "cleantech",
			"prop tech":               "proptech",
			"real estate":             "proptech",
			"e-commerce":              "ecommerce",
			"ecom":                    "ecommerce",
			"software as a service":   "saas",
			"delivery":                "logistics",
			"supply chain":            "logistics",
		},
		CityAliases: []CityAlias{
			{"casablanca, morocco", "Casablanca"},
			{"casa", "Casablanca"},
			{"rabat, morocco", "Rabat"},
			{"marrakesh", "Marrakech"},
			{"marrakech", "Marrakech"},
			{"tangier", "Tanger"},
			{"tanger", "Tanger"},
			{"fes", "Fès"},
			{"fez", "Fès"},
			{"agadir", "Agadir"},
		},
		CountryFallback: "Morocco",
	}
}
