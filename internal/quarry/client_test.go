package quarry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	orig := BaseURL
	BaseURL = server.URL
	t.Cleanup(func() { BaseURL = orig })

	return NewClient()
}

func TestLatestResult(t *testing.T) {
	var path string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		fmt.Fprint(w, `{"headers":["page_title","views"],"rows":[
			["Berlin",1234],
			["Hamburg",567.5],
			[null,true]]}`)
	})

	got, err := client.LatestResult(context.Background(), 12345)
	if err != nil {
		t.Fatalf("LatestResult: %v", err)
	}

	if path != "/query/12345/result/latest/0/json" {
		t.Errorf("path = %q", path)
	}
	if len(got.Headers) != 2 || got.Headers[0] != "page_title" {
		t.Errorf("headers = %v", got.Headers)
	}
	wantRows := [][]string{
		{"Berlin", "1234"},
		{"Hamburg", "567.5"},
		{"", "true"},
	}
	if len(got.Rows) != len(wantRows) {
		t.Fatalf("rows = %v, want %v", got.Rows, wantRows)
	}
	for i, row := range wantRows {
		for j, cell := range row {
			if got.Rows[i][j] != cell {
				t.Errorf("row[%d][%d] = %q, want %q", i, j, got.Rows[i][j], cell)
			}
		}
	}
}

func TestLatestResultNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.LatestResult(context.Background(), 999999)
	var notFound *QueryNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want *QueryNotFoundError", err)
	}
}

func TestLatestResultInvalidID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not be sent for an invalid id")
	})

	if _, err := client.LatestResult(context.Background(), 0); err == nil {
		t.Fatal("expected error for query id 0")
	}
}
