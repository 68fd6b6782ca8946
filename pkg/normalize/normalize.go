// Package normalize canonicalizes entity records field by field. Each
// record is rewritten independently — normalization never consults other
// records, and it never fails: absent or malformed fields degrade to safe
// defaults instead of errors.
package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fennecworks/dealscope/pkg/record"
)

// emailPattern is a conservative local@domain.tld shape. Addresses that
// don't match are discarded rather than kept malformed.
var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

// thousandsPattern matches comma-grouped integers like "500,000" or
// "12,345,678", where every comma delimits a 3-digit group.
var thousandsPattern = regexp.MustCompile(`^\d{1,3}(,\d{3})+$`)

// Normalizer canonicalizes loose collector records into typed records.
type Normalizer struct {
	tables Tables
}

// New creates a Normalizer with the given lookup tables.
func New(tables Tables) *Normalizer {
	return &Normalizer{tables: tables}
}

// Default creates a Normalizer with the standard tables.
func Default() *Normalizer {
	return New(DefaultTables())
}

// Tables returns the lookup tables in use.
func (n *Normalizer) Tables() Tables {
	return n.tables
}

// Record canonicalizes one loose record into a typed Record. Recognized
// fields are rewritten per field rules; unrecognized fields pass through
// unchanged in Extra. Fields absent from the input stay absent — in
// particular a record without a sector key does not gain the "other" tag.
func (n *Normalizer) Record(raw record.Raw) record.Record {
	var rec record.Record

	if v, ok := raw[record.FieldName]; ok {
		rec.Name = n.name(asString(v))
	}
	if v, ok := raw[record.FieldDescription]; ok {
		rec.Description = strings.TrimSpace(asString(v))
	}
	if v, ok := raw[record.FieldSector]; ok {
		rec.Sector = n.sector(asString(v))
	}
	if v, ok := raw[record.FieldLocation]; ok {
		rec.Location = n.location(asString(v))
	}
	if v, ok := raw[record.FieldWebsite]; ok {
		rec.Website = n.url(asString(v))
	}
	if v, ok := raw[record.FieldEmail]; ok {
		rec.Email = n.email(asString(v))
	}
	if v, ok := raw[record.FieldFundingRaised]; ok {
		rec.FundingRaised = Amount(v)
	}
	if v, ok := raw[record.FieldRevenue]; ok {
		rec.Revenue = Amount(v)
	}
	if v, ok := raw[record.FieldEmployees]; ok {
		rec.Employees = asInt(v)
	}
	if v, ok := raw[record.FieldFoundedYear]; ok {
		rec.FoundedYear = asInt(v)
	}
	if v, ok := raw[record.FieldFounders]; ok {
		rec.Founders = asStringSlice(v)
	}
	if v, ok := raw[record.FieldMetrics]; ok {
		if m, isMap := v.(map[string]any); isMap {
			if len(m) > 0 {
				rec.Metrics = m
			}
		} else if record.Truthy(v) {
			// Sources sometimes send metrics as a bare value; keep it
			// rather than losing the signal.
			rec.Metrics = map[string]any{"value": v}
		}
	}
	if v, ok := raw[record.FieldSource]; ok {
		rec.Source = strings.TrimSpace(asString(v))
	}
	if v, ok := raw[record.FieldSources]; ok {
		for _, tag := range asStringSlice(v) {
			rec.AddSource(tag)
		}
	}
	if v, ok := raw[record.FieldQualityScore]; ok {
		rec.DataQualityScore = asInt(v)
	}
	if v, ok := raw[record.FieldConfidence]; ok {
		rec.Confidence = record.Confidence(asString(v))
	}
	if v, ok := raw[record.FieldPredicted]; ok {
		rec.PredictedScore = asInt(v)
	}

	for key, value := range raw {
		if recognized[key] {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]any)
		}
		rec.Extra[key] = value
	}

	return rec
}

// recognized is the set of field names the normalizer rewrites; everything
// else passes through in Extra.
var recognized = map[string]bool{
	record.FieldName:          true,
	record.FieldDescription:   true,
	record.FieldSector:        true,
	record.FieldLocation:      true,
	record.FieldWebsite:       true,
	record.FieldEmail:         true,
	record.FieldFundingRaised: true,
	record.FieldRevenue:       true,
	record.FieldEmployees:     true,
	record.FieldFoundedYear:   true,
	record.FieldFounders:      true,
	record.FieldMetrics:       true,
	record.FieldSource:        true,
	record.FieldSources:       true,
	record.FieldQualityScore:  true,
	record.FieldConfidence:    true,
	record.FieldPredicted:     true,
}

// name trims and title-cases each word, upper-casing known acronyms
// regardless of input case.
func (n *Normalizer) name(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	titler := cases.Title(language.English)
	words := strings.Fields(name)
	for i, word := range words {
		upper := strings.ToUpper(word)
		if n.tables.Acronyms[upper] {
			words[i] = upper
		} else {
			words[i] = titler.String(word)
		}
	}
	return strings.Join(words, " ")
}

// email lower-cases and validates; a malformed address becomes empty.
func (n *Normalizer) email(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !emailPattern.MatchString(email) {
		return ""
	}
	return email
}

// sector maps input through the synonym table into the canonical
// vocabulary; anything unmapped becomes "other".
func (n *Normalizer) sector(sector string) string {
	sector = strings.ToLower(strings.TrimSpace(sector))
	if sector == "" {
		return SectorOther
	}
	if n.tables.CanonicalSectors[sector] {
		return sector
	}
	if canonical, ok := n.tables.SectorSynonyms[sector]; ok {
		return canonical
	}
	return SectorOther
}

// location resolves known city aliases by substring match; unmatched
// non-empty values are title-cased as-is, and empty input falls back to
// the country-level default.
func (n *Normalizer) location(location string) string {
	location = strings.TrimSpace(location)
	if location == "" {
		return n.tables.CountryFallback
	}

	lower := strings.ToLower(location)
	for _, alias := range n.tables.CityAliases {
		if strings.Contains(lower, alias.Alias) {
			return alias.City
		}
	}

	return cases.Title(language.English).String(location)
}

// url prepends https:// when no scheme is present and strips trailing
// slashes.
func (n *Normalizer) url(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return ""
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}
	return strings.TrimRight(url, "/")
}

// Amount parses a monetary value from integer, float, or free-text form
// into a non-negative integer amount. Free text keeps only digits and
// separators: with both separators present the comma is a thousands
// separator, as is a lone comma delimiting 3-digit groups ("500,000");
// any other lone comma is a European decimal point ("2,5"). An M anywhere
// in the text multiplies by 1e6, a K by 1e3, so "MAD" implies millions.
// Any parse failure yields 0.
func Amount(v any) int64 {
	switch val := v.(type) {
	case int:
		return clampAmount(int64(val))
	case int32:
		return clampAmount(int64(val))
	case int64:
		return clampAmount(val)
	case uint:
		return int64(val)
	case uint64:
		return int64(val)
	case float32:
		return clampAmount(int64(val))
	case float64:
		return clampAmount(int64(val))
	case string:
		return parseAmountText(val)
	default:
		return 0
	}
}

func parseAmountText(text string) int64 {
	var cleaned strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			cleaned.WriteRune(r)
		}
	}
	s := cleaned.String()
	if s == "" {
		return 0
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")
	switch {
	case hasComma && hasDot:
		s = strings.ReplaceAll(s, ",", "")
	case thousandsPattern.MatchString(s):
		// Commas delimiting 3-digit groups are thousands separators.
		s = strings.ReplaceAll(s, ",", "")
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	upper := strings.ToUpper(text)
	if strings.Contains(upper, "M") {
		value *= 1_000_000
	} else if strings.Contains(upper, "K") {
		value *= 1_000
	}

	return clampAmount(int64(value))
}

func clampAmount(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

// asString returns the value if it is a string, otherwise empty.
func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// asInt coerces integer-ish values, degrading to 0 on anything else.
func asInt(v any) int {
	switch val := v.(type) {
	case int:
		return val
	case int32:
		return int(val)
	case int64:
		return int(val)
	case uint:
		return int(val)
	case uint64:
		return int(val)
	case float32:
		return int(val)
	case float64:
		return int(val)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

// asStringSlice coerces list values, keeping string elements only.
func asStringSlice(v any) []string {
	switch val := v.(type) {
	case []string:
		if len(val) == 0 {
			return nil
		}
		return append([]string(nil), val...)
	case []any:
		var out []string
		for _, item := range val {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if val == "" {
			return nil
		}
		return []string{val}
	default:
		return nil
	}
}
