package preview

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wattbot/gowatt/internal/display"
	"github.com/wattbot/gowatt/internal/domain"
	"github.com/wattbot/gowatt/internal/icon"
)

func TestServer_Healthz(t *testing.T) {
	s := New(display.NewSnapshotBoard(), nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("healthz status: %d", w.Code)
	}
}

func TestServer_IconBeforeFirstTick(t *testing.T) {
	s := New(display.NewSnapshotBoard(), nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/icon.svg", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before first tick, got %d", w.Code)
	}
}

func TestServer_IconAndSnapshot(t *testing.T) {
	board := display.NewSnapshotBoard()
	svg := icon.Render(icon.Input{
		FiveMinFormatted: "8.5¢",
		HourlyFormatted:  "7.0¢",
		State:            domain.StateNormal,
		Trend:            domain.TrendUp,
	})
	board.SetImage(icon.DataURI(svg))
	board.SetTitle("")
	board.SetSettings(domain.Settings{FiveMinPrice: "8.5", Trend: domain.TrendUp})
	board.SetState(domain.StateNormal)

	s := New(board, nil)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/icon.svg", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("icon status: %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Fatalf("icon content type: %s", ct)
	}
	if body := w.Body.String(); body != svg {
		t.Fatalf("icon body mismatch:\n got %s\nwant %s", body, svg)
	}

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/snapshot", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("snapshot status: %d", w.Code)
	}
	var emission display.Emission
	if err := json.Unmarshal(w.Body.Bytes(), &emission); err != nil {
		t.Fatalf("snapshot decode: %v", err)
	}
	if emission.Settings.FiveMinPrice != "8.5" || emission.Settings.Trend != domain.TrendUp {
		t.Fatalf("unexpected snapshot: %+v", emission)
	}
	if !strings.HasPrefix(emission.ImageDataURI, "data:image/svg+xml,") {
		t.Fatalf("unexpected image URI: %s", emission.ImageDataURI)
	}
}

func TestServer_RefreshTriggers(t *testing.T) {
	triggered := 0
	s := New(display.NewSnapshotBoard(), func() { triggered++ })

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/refresh", nil))
	if w.Code != http.StatusAccepted {
		t.Fatalf("refresh status: %d", w.Code)
	}
	if triggered != 1 {
		t.Fatalf("expected one trigger, got %d", triggered)
	}
}
