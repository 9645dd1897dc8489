package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"retail-dashboard/internal/presentation"
)

func testProfile(t *testing.T) presentation.Profile {
	t.Helper()
	p, err := presentation.Lookup("brief")
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNewSSEHandlers(t *testing.T) {
	analytics := createTestAnalytics()
	logger := testLogger()

	handlers := NewSSEHandlers(analytics, testProfile(t), logger)

	if handlers == nil {
		t.Fatal("NewSSEHandlers() returned nil")
	}
	if handlers.analytics != analytics {
		t.Error("NewSSEHandlers() should set analytics field")
	}
	if handlers.logger != logger {
		t.Error("NewSSEHandlers() should set logger field")
	}
}

func signalsQuery(signals string) string {
	return "?" + url.Values{signalsParam: {signals}}.Encode()
}

func TestSSEHandlers_HandleDashboard(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testProfile(t), testLogger())

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "initial load",
			query: signalsQuery(`{"productLine":"all","city":"all","gender":"all"}`),
			want:  []string{"2,093.15", "7.96"},
		},
		{
			name:  "filtered by signals",
			query: signalsQuery(`{"productLine":"all","city":"Yangon","gender":"Female"}`),
			want:  []string{"548.97", "9.10"},
		},
		{
			name:  "empty selection",
			query: signalsQuery(`{"productLine":"Sports and travel","city":"Yangon","gender":"all"}`),
			want:  []string{"0.00", "No data"},
		},
		{
			name:  "query parameters",
			query: "?city=Mandalay",
			want:  []string{"634.38"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/sse/dashboard"+tt.query, nil)
			w := httptest.NewRecorder()

			handlers.HandleDashboard(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
			}
			if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
				t.Errorf("Content-Type = %q, should contain text/event-stream", ct)
			}
			if cc := w.Header().Get("Cache-Control"); cc != "no-cache" {
				t.Errorf("Cache-Control = %q, want no-cache", cc)
			}

			body := w.Body.String()
			for _, want := range append([]string{
				"datastar-patch-elements",
				`<div id="metrics"`,
				"datastar-patch-signals",
				`"_monthlyData"`,
				`"_priceData"`,
				`"_ratingData"`,
				`"_scatterData"`,
			}, tt.want...) {
				if !strings.Contains(body, want) {
					t.Errorf("response should contain %q", want)
				}
			}
		})
	}
}

// Every signal the dashboard patches must stay local to the browser.
func TestSSEHandlers_HandleDashboard_PatchesLocalSignals(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testProfile(t), testLogger())

	w := httptest.NewRecorder()
	handlers.HandleDashboard(w, httptest.NewRequest(http.MethodGet, "/sse/dashboard"+signalsQuery(`{"productLine":"all","city":"all","gender":"all"}`), nil))

	var patched map[string]json.RawMessage
	for _, line := range strings.Split(w.Body.String(), "\n") {
		payload, ok := strings.CutPrefix(line, "data: signals ")
		if !ok {
			continue
		}
		if err := json.Unmarshal([]byte(payload), &patched); err != nil {
			t.Fatalf("signals payload is not JSON: %v", err)
		}
	}
	if len(patched) == 0 {
		t.Fatal("no signals patched")
	}
	for key := range patched {
		if !strings.HasPrefix(key, "_") {
			t.Errorf("signal %q would be sent back on every filter change", key)
		}
	}
}

func TestSSEHandlers_HandleDashboard_Invalid(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testProfile(t), testLogger())

	tests := []struct {
		name  string
		query string
	}{
		{"unknown gender", signalsQuery(`{"gender":"Other"}`)},
		{"malformed signals", signalsQuery(`{"gender":`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handlers.HandleDashboard(w, httptest.NewRequest(http.MethodGet, "/sse/dashboard"+tt.query, nil))

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
		})
	}
}

func TestSSEHandlers_HandlePreview(t *testing.T) {
	handlers := NewSSEHandlers(createTestAnalytics(), testProfile(t), testLogger())

	w := httptest.NewRecorder()
	handlers.HandlePreview(w, httptest.NewRequest(http.MethodGet, "/sse/preview", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	for _, want := range []string{"datastar-patch-elements", `<div id="preview">`, "Naypyitaw", "2019-03-08"} {
		if !strings.Contains(body, want) {
			t.Errorf("response should contain %q", want)
		}
	}
}
