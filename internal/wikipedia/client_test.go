package wikipedia

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/olgasafonova/wikicell-mcp-server/internal/locator"
)

// newTestClient points the package at a local server for the duration of
// one test. Every language edition resolves to the same server; the handler
// can inspect the request to tell editions apart.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	orig := BaseURL
	BaseURL = func(language string) string {
		return server.URL + "/" + language
	}
	t.Cleanup(func() { BaseURL = orig })

	return NewClient("en")
}

func language(r *http.Request) string {
	return r.URL.Path[1:]
}

func TestTranslations(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("prop"); got != "langlinks" {
			t.Errorf("prop = %q, want langlinks", got)
		}
		fmt.Fprint(w, `{"query":{"pages":[{"title":"Berlin","langlinks":[
			{"lang":"de","title":"Berlin"},
			{"lang":"fr","title":"Berlin"},
			{"lang":"es","title":"Berlín"}]}]}}`)
	})

	got, err := client.Translations(context.Background(), "Berlin", nil)
	if err != nil {
		t.Fatalf("Translations: %v", err)
	}
	want := []Translation{
		{Language: "en", Title: "Berlin"},
		{Language: "de", Title: "Berlin"},
		{Language: "fr", Title: "Berlin"},
		{Language: "es", Title: "Berlín"},
	}
	assertTranslations(t, got, want)
}

func TestTranslationsLanguageFilter(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"query":{"pages":[{"title":"Berlin","langlinks":[
			{"lang":"de","title":"Berlin"},
			{"lang":"es","title":"Berlín"}]}]}}`)
	})

	got, err := client.Translations(context.Background(), "Berlin", []string{"DE", "de"})
	if err != nil {
		t.Fatalf("Translations: %v", err)
	}
	// Source language en is filtered out too, and the filter is deduplicated.
	assertTranslations(t, got, []Translation{{Language: "de", Title: "Berlin"}})
}

func TestTranslationsMissingPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"query":{"pages":[{"title":"Nope","missing":true}]}}`)
	})

	_, err := client.Translations(context.Background(), "Nope", nil)
	var notFound *PageNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want *PageNotFoundError", err)
	}
}

func TestSynonyms(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("blfilterredir"); got != "redirects" {
			t.Errorf("blfilterredir = %q, want redirects", got)
		}
		if got := q.Get("bltitle"); got != "NYC" {
			t.Errorf("bltitle = %q, want NYC", got)
		}
		fmt.Fprint(w, `{"query":{"backlinks":[
			{"title":"New York City"},
			{"title":"The Big Apple"},
			{"title":"New York City"}]}}`)
	})

	got, err := client.Synonyms(context.Background(), "NYC")
	if err != nil {
		t.Fatalf("Synonyms: %v", err)
	}
	want := []string{"New York City", "The Big Apple"}
	assertStrings(t, got, want)
}

func TestExpand(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("prop") == "langlinks":
			fmt.Fprint(w, `{"query":{"pages":[{"title":"Berlin","langlinks":[
				{"lang":"de","title":"Berlin"},
				{"lang":"fr","title":"Berlin"}]}]}}`)
		case q.Get("list") == "backlinks":
			switch language(r) {
			case "en":
				fmt.Fprint(w, `{"query":{"backlinks":[{"title":"Berlin, Germany"}]}}`)
			case "de":
				// The redirect set repeats the translation title itself;
				// the union must not carry the duplicate row.
				fmt.Fprint(w, `{"query":{"backlinks":[
					{"title":"Berlin (Deutschland)"},{"title":"Berlin"}]}}`)
			case "fr":
				fmt.Fprint(w, `{"error":{"code":"missingtitle","info":"The page you specified doesn't exist."}}`)
			default:
				t.Errorf("unexpected language %q", language(r))
			}
		default:
			t.Errorf("unexpected query %v", q)
		}
	})

	got, err := client.Expand(context.Background(), "Berlin", nil)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	// Union of per-language synonym lookups keyed by each translated
	// title, each translation first. The fr edition reports the page
	// missing, so its row survives without synonyms.
	want := []Translation{
		{Language: "en", Title: "Berlin"},
		{Language: "en", Title: "Berlin, Germany"},
		{Language: "de", Title: "Berlin"},
		{Language: "de", Title: "Berlin (Deutschland)"},
		{Language: "fr", Title: "Berlin"},
	}
	assertTranslations(t, got, want)
}

func TestExpandLanguageFilter(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("prop") == "langlinks":
			fmt.Fprint(w, `{"query":{"pages":[{"title":"Berlin","langlinks":[
				{"lang":"de","title":"Berlin"},
				{"lang":"fr","title":"Berlin"}]}]}}`)
		case q.Get("list") == "backlinks":
			if got := language(r); got != "de" {
				t.Errorf("synonym lookup for language %q, want de only", got)
			}
			fmt.Fprint(w, `{"query":{"backlinks":[{"title":"Berlin (Deutschland)"}]}}`)
		}
	})

	got, err := client.Expand(context.Background(), "Berlin", []string{"de"})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	want := []Translation{
		{Language: "de", Title: "Berlin"},
		{Language: "de", Title: "Berlin (Deutschland)"},
	}
	assertTranslations(t, got, want)
}

func TestMutualLinks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("prop") == "links":
			fmt.Fprint(w, `{"query":{"pages":[{"title":"A","links":[
				{"title":"B"},{"title":"C"},{"title":"D"}]}]}}`)
		case q.Get("list") == "backlinks":
			if got := q.Get("blfilterredir"); got != "nonredirects" {
				t.Errorf("blfilterredir = %q, want nonredirects", got)
			}
			fmt.Fprint(w, `{"query":{"backlinks":[
				{"title":"D"},{"title":"B"},{"title":"E"}]}}`)
		default:
			t.Errorf("unexpected query %v", q)
		}
	})

	got, err := client.MutualLinks(context.Background(), "A", nil)
	if err != nil {
		t.Fatalf("MutualLinks: %v", err)
	}
	// Intersection in outbound order.
	assertStrings(t, got, []string{"B", "D"})
}

func TestOutboundLinksContinuation(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			fmt.Fprint(w, `{"continue":{"plcontinue":"123|0|C","continue":"||"},
				"query":{"pages":[{"title":"A","links":[{"title":"B"}]}]}}`)
			return
		}
		if got := r.URL.Query().Get("plcontinue"); got != "123|0|C" {
			t.Errorf("plcontinue = %q, want 123|0|C", got)
		}
		fmt.Fprint(w, `{"query":{"pages":[{"title":"A","links":[{"title":"C"}]}]}}`)
	})

	got, err := client.OutboundLinks(context.Background(), "A", nil)
	if err != nil {
		t.Fatalf("OutboundLinks: %v", err)
	}
	if calls != 2 {
		t.Errorf("server calls = %d, want 2", calls)
	}
	assertStrings(t, got, []string{"B", "C"})
}

func TestCategoryMembers(t *testing.T) {
	var seen url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.Query()
		fmt.Fprint(w, `{"query":{"categorymembers":[
			{"title":"Physics"},{"title":"Quantum mechanics"}]}}`)
	})

	got, err := client.CategoryMembers(context.Background(), "de:Physik")
	if err != nil {
		t.Fatalf("CategoryMembers: %v", err)
	}
	if got := seen.Get("cmtitle"); got != "Category:Physik" {
		t.Errorf("cmtitle = %q, want Category:Physik", got)
	}
	if got := seen.Get("cmtype"); got != "page" {
		t.Errorf("cmtype = %q, want page", got)
	}
	assertStrings(t, got, []string{"Physics", "Quantum mechanics"})
}

func TestSubcategoriesKeepsExistingPrefix(t *testing.T) {
	var seen url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.Query()
		fmt.Fprint(w, `{"query":{"categorymembers":[{"title":"Category:Optics"}]}}`)
	})

	if _, err := client.Subcategories(context.Background(), "Category:Physics"); err != nil {
		t.Fatalf("Subcategories: %v", err)
	}
	if got := seen.Get("cmtitle"); got != "Category:Physics" {
		t.Errorf("cmtitle = %q, want Category:Physics", got)
	}
	if got := seen.Get("cmtype"); got != "subcat" {
		t.Errorf("cmtype = %q, want subcat", got)
	}
}

func TestArticlesAroundClampsRadius(t *testing.T) {
	var seen url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.Query()
		fmt.Fprint(w, `{"query":{"geosearch":[
			{"title":"Brandenburg Gate","lat":52.516,"lon":13.377,"dist":120.5}]}}`)
	})

	got, err := client.ArticlesAround(context.Background(), "", locator.GeoPoint{Lat: 52.52, Lon: 13.4}, 99999, 0)
	if err != nil {
		t.Fatalf("ArticlesAround: %v", err)
	}
	if got := seen.Get("gsradius"); got != "10000" {
		t.Errorf("gsradius = %q, want 10000", got)
	}
	if got := seen.Get("gscoord"); got != "52.52|13.4" {
		t.Errorf("gscoord = %q, want 52.52|13.4", got)
	}
	if len(got) != 1 || got[0].Title != "Brandenburg Gate" || got[0].DistanceMeters != 120.5 {
		t.Errorf("unexpected results: %+v", got)
	}
}

func TestCoordinates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"query":{"pages":[{"title":"Berlin","coordinates":[
			{"lat":52.52,"lon":13.405}]}]}}`)
	})

	point, found, err := client.Coordinates(context.Background(), "Berlin")
	if err != nil {
		t.Fatalf("Coordinates: %v", err)
	}
	if !found {
		t.Fatal("found = false, want true")
	}
	if point.Lat != 52.52 || point.Lon != 13.405 {
		t.Errorf("point = %+v", point)
	}
}

func TestCoordinatesAbsent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"query":{"pages":[{"title":"Love"}]}}`)
	})

	_, found, err := client.Coordinates(context.Background(), "Love")
	if err != nil {
		t.Fatalf("Coordinates: %v", err)
	}
	if found {
		t.Error("found = true for page without coordinates")
	}
}

func TestPageEditsInvertedDateParameters(t *testing.T) {
	var seen url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = r.URL.Query()
		fmt.Fprint(w, `{"query":{"pages":[{"title":"Go","revisions":[
			{"timestamp":"2024-03-02T10:00:00Z","user":"alice","comment":"fix","size":2048},
			{"timestamp":"2024-03-01T09:00:00Z","user":"bob","comment":"start","size":1024}]}]}}`)
	})

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	got, err := client.PageEdits(context.Background(), "Go", &EditOptions{Start: start, End: end})
	if err != nil {
		t.Fatalf("PageEdits: %v", err)
	}

	// The API walks newest to oldest, so the caller's older bound goes to
	// rvend and the newer bound to rvstart.
	if got := seen.Get("rvend"); got != "2024-03-01T00:00:00Z" {
		t.Errorf("rvend = %q, want caller start", got)
	}
	if got := seen.Get("rvstart"); got != "2024-03-03T00:00:00Z" {
		t.Errorf("rvstart = %q, want caller end", got)
	}

	if len(got) != 2 {
		t.Fatalf("revisions = %d, want 2", len(got))
	}
	if !got[0].Timestamp.After(got[1].Timestamp) {
		t.Error("revisions not newest-first")
	}
	if got[0].User != "alice" || got[0].Size != 2048 {
		t.Errorf("first revision = %+v", got[0])
	}
}

func TestPageEditsLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"query":{"pages":[{"title":"Go","revisions":[
			{"timestamp":"2024-03-03T10:00:00Z","user":"a","comment":"","size":3},
			{"timestamp":"2024-03-02T10:00:00Z","user":"b","comment":"","size":2},
			{"timestamp":"2024-03-01T10:00:00Z","user":"c","comment":"","size":1}]}]}}`)
	})

	got, err := client.PageEdits(context.Background(), "Go", &EditOptions{Limit: 2})
	if err != nil {
		t.Fatalf("PageEdits: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("revisions = %d, want 2", len(got))
	}
}

func TestAPIErrorSurfaced(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":{"code":"invalidtitle","info":"Bad title"}}`)
	})

	_, err := client.OutboundLinks(context.Background(), "|||", nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Code != "invalidtitle" || !apiErr.PageMissing() {
		t.Errorf("unexpected API error: %+v", apiErr)
	}
}

func assertStrings(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func assertTranslations(t *testing.T, got, want []Translation) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
