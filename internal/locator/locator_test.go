package locator

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		defaultLang string
		wantLang    string
		wantSubject string
		wantErr     bool
	}{
		{
			name:        "explicit language",
			raw:         "de:Berlin",
			defaultLang: "en",
			wantLang:    "de",
			wantSubject: "Berlin",
		},
		{
			name:        "bare title uses default",
			raw:         "Berlin",
			defaultLang: "en",
			wantLang:    "en",
			wantSubject: "Berlin",
		},
		{
			name:        "configured default language",
			raw:         "Berlin",
			defaultLang: "de",
			wantLang:    "de",
			wantSubject: "Berlin",
		},
		{
			name:        "empty default falls back to en",
			raw:         "Berlin",
			defaultLang: "",
			wantLang:    "en",
			wantSubject: "Berlin",
		},
		{
			name:        "namespace prefix is not a language",
			raw:         "Category:Physics",
			defaultLang: "en",
			wantLang:    "en",
			wantSubject: "Category:Physics",
		},
		{
			name:        "only first colon splits",
			raw:         "de:Berlin:Mitte",
			defaultLang: "en",
			wantLang:    "de",
			wantSubject: "Berlin:Mitte",
		},
		{
			name:        "hyphenated language code",
			raw:         "pt-br:Brasil",
			defaultLang: "en",
			wantLang:    "pt-br",
			wantSubject: "Brasil",
		},
		{
			name:        "surrounding whitespace trimmed",
			raw:         "  de: Berlin ",
			defaultLang: "en",
			wantLang:    "de",
			wantSubject: "Berlin",
		},
		{
			name:        "empty subject rejected",
			raw:         "de:",
			defaultLang: "en",
			wantErr:     true,
		},
		{
			name:        "empty input rejected",
			raw:         "",
			defaultLang: "en",
			wantErr:     true,
		},
		{
			name:        "whitespace only rejected",
			raw:         "   ",
			defaultLang: "en",
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw, tt.defaultLang)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %+v", tt.raw, got)
				}
				var empty *ErrEmptySubject
				if !errors.As(err, &empty) {
					t.Errorf("Parse(%q) error = %v, want *ErrEmptySubject", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.raw, err)
			}
			if got.Language != tt.wantLang {
				t.Errorf("language = %q, want %q", got.Language, tt.wantLang)
			}
			if got.Subject != tt.wantSubject {
				t.Errorf("subject = %q, want %q", got.Subject, tt.wantSubject)
			}
		})
	}
}

func TestParseGeoPoint(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantLat float64
		wantLon float64
		wantErr bool
	}{
		{name: "simple pair", raw: "52.5,13.4", wantLat: 52.5, wantLon: 13.4},
		{name: "negative coordinates", raw: "-33.87,-151.21", wantLat: -33.87, wantLon: -151.21},
		{name: "spaces around comma", raw: " 52.5 , 13.4 ", wantLat: 52.5, wantLon: 13.4},
		{name: "integers", raw: "52,13", wantLat: 52, wantLon: 13},
		{name: "latitude out of range", raw: "91,0", wantErr: true},
		{name: "longitude out of range", raw: "0,181", wantErr: true},
		{name: "not a coordinate", raw: "Berlin", wantErr: true},
		{name: "missing longitude", raw: "52.5,", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGeoPoint(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseGeoPoint(%q) expected error, got %+v", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseGeoPoint(%q) unexpected error: %v", tt.raw, err)
			}
			if got.Lat != tt.wantLat || got.Lon != tt.wantLon {
				t.Errorf("got (%v, %v), want (%v, %v)", got.Lat, got.Lon, tt.wantLat, tt.wantLon)
			}
		})
	}
}

func TestIsGeoPoint(t *testing.T) {
	if !IsGeoPoint("52.5,13.4") {
		t.Error("IsGeoPoint(\"52.5,13.4\") = false, want true")
	}
	if IsGeoPoint("de:Berlin") {
		t.Error("IsGeoPoint(\"de:Berlin\") = true, want false")
	}
}

func TestLanguages(t *testing.T) {
	got := Languages([]string{"DE", " fr ", "de", "", "es"})
	want := []string{"de", "fr", "es"}
	if len(got) != len(want) {
		t.Fatalf("Languages returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Languages[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
