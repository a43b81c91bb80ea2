// Package locator parses the compound subject arguments shared by all
// wikicell functions: "language:title" page locators, bare titles with a
// configured default language, and "lat,lon" geographic points.
package locator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultLanguage is used when the caller configures nothing.
const DefaultLanguage = "en"

// Locator identifies a wiki subject in a specific language edition.
type Locator struct {
	Language string
	Subject  string
}

// ErrEmptySubject is returned when a locator has no subject portion.
type ErrEmptySubject struct {
	Raw string
}

func (e *ErrEmptySubject) Error() string {
	return fmt.Sprintf("locator %q has an empty subject", e.Raw)
}

// languageCodeRegex matches Wikimedia language edition codes such as
// "en", "pt-br", or "zh-classical". Anything else before the first colon
// is treated as part of the title (e.g. "Category:Physics").
var languageCodeRegex = regexp.MustCompile(`^[a-z]{2,3}(?:-[a-z0-9]{2,12})?$`)

// Parse splits raw into language and subject. Only the FIRST colon is
// significant, and only when its prefix looks like a language code: titles
// like "Category:Physics" or "de:Berlin:Mitte" keep their own colons.
func Parse(raw, defaultLanguage string) (Locator, error) {
	if defaultLanguage == "" {
		defaultLanguage = DefaultLanguage
	}

	raw = strings.TrimSpace(raw)

	lang := defaultLanguage
	subject := raw

	if idx := strings.Index(raw, ":"); idx >= 0 {
		prefix := strings.ToLower(strings.TrimSpace(raw[:idx]))
		if languageCodeRegex.MatchString(prefix) {
			lang = prefix
			subject = strings.TrimSpace(raw[idx+1:])
		}
	}

	if subject == "" {
		return Locator{}, &ErrEmptySubject{Raw: raw}
	}

	return Locator{Language: lang, Subject: subject}, nil
}

// String renders the locator back into "language:subject" form.
func (l Locator) String() string {
	return l.Language + ":" + l.Subject
}

// GeoPoint is a geographic coordinate pair.
type GeoPoint struct {
	Lat float64
	Lon float64
}

// geoPointRegex matches "lat,lon" with optional sign, decimals, and spaces.
var geoPointRegex = regexp.MustCompile(`^\s*(-?\d{1,3}(?:\.\d+)?)\s*,\s*(-?\d{1,3}(?:\.\d+)?)\s*$`)

// ParseGeoPoint parses a "lat,lon" locator and validates coordinate bounds.
func ParseGeoPoint(raw string) (GeoPoint, error) {
	m := geoPointRegex.FindStringSubmatch(raw)
	if m == nil {
		return GeoPoint{}, fmt.Errorf("invalid geographic locator %q, expected \"lat,lon\"", raw)
	}

	lat, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return GeoPoint{}, fmt.Errorf("invalid latitude in %q: %w", raw, err)
	}
	lon, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return GeoPoint{}, fmt.Errorf("invalid longitude in %q: %w", raw, err)
	}

	if lat < -90 || lat > 90 {
		return GeoPoint{}, fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return GeoPoint{}, fmt.Errorf("longitude %v out of range [-180, 180]", lon)
	}

	return GeoPoint{Lat: lat, Lon: lon}, nil
}

// IsGeoPoint reports whether raw looks like a "lat,lon" locator.
func IsGeoPoint(raw string) bool {
	return geoPointRegex.MatchString(raw)
}

// Languages normalizes a list of language codes: trimmed, lowercased, empty
// entries dropped, duplicates removed. Input order is preserved for the
// first occurrence of each code.
func Languages(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		code = strings.ToLower(strings.TrimSpace(code))
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}
