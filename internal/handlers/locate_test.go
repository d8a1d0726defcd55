package handlers

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/template/html/v3"

	"locationservice/internal/config"
	"locationservice/internal/locator"
	"locationservice/internal/middleware"
	"locationservice/internal/models"
	"locationservice/internal/resolver"
)

type memStore struct {
	locations []models.Location
	err       error
}

func (m *memStore) FindByCode(ctx context.Context, tier models.Tier, code, owner string) ([]models.Location, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Location
	for _, l := range m.locations {
		if l.Tier == tier && l.OwnerCode == owner && strings.EqualFold(l.CallNo, code) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memStore) OwnerExists(ctx context.Context, code string) (bool, error) {
	return code == "main", nil
}

func testConfig() *config.Config {
	return &config.Config{SiteTitle: "Test Locations", SiteFooter: "footer text", DefaultLang: "en"}
}

func newTestApp(store *memStore) *fiber.App {
	cfg := testConfig()
	engine := html.New("../../views", ".html")
	app := fiber.New(fiber.Config{Views: engine, ViewsLayout: "layouts/main"})

	svc := locator.New(resolver.New(store, nil, resolver.Config{}), nil, nil, time.Second)
	h := NewLocateHandler(svc, cfg)
	app.Get("/locate", middleware.ValidateLocate(store, cfg.DefaultLang), h.Locate)
	return app
}

func seededStore() *memStore {
	return &memStore{locations: []models.Location{
		{Tier: models.TierCollection, CallNo: "MAIN FIC", Name: "Fiction", Floor: "2", OwnerCode: "main"},
		{Tier: models.TierLibrary, CallNo: "MAIN", Name: "Main Library", OwnerCode: "main"},
	}}
}

func get(t *testing.T, app *fiber.App, url string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestLocate_HTML(t *testing.T) {
	app := newTestApp(seededStore())

	tests := []struct {
		name       string
		query      string
		wantStatus int
		contains   []string
	}{
		{"collection", "?callno=MAIN+FIC+ABC&owner=main&lang=en", fiber.StatusOK, []string{"Fiction", "Floor", "Test Locations", "footer text"}},
		{"not found", "?callno=NOTHING+HERE&owner=main&lang=fi", fiber.StatusNotFound, []string{"Location not found", "NOTHING HERE", `lang="fi"`}},
		{"not available", "?callno=MAIN+FIC&owner=main&lang=en&status=1", fiber.StatusOK, []string{"Not available"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, app, "/locate"+tt.query)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			for _, s := range tt.contains {
				if !strings.Contains(body, s) {
					t.Errorf("body does not contain %q", s)
				}
			}
		})
	}
}

func TestLocate_JSON(t *testing.T) {
	app := newTestApp(seededStore())

	status, body := get(t, app, "/locate?callno=main+fic+xyz&owner=main&lang=en&output=json")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	var resp models.LocateResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}
	if resp.Outcome != models.OutcomeResolved || resp.Location == nil || resp.Location.CallNo != "MAIN FIC" {
		t.Errorf("response = %+v, want MAIN FIC", resp)
	}
	if resp.Window != "main fic" {
		t.Errorf("window = %q, want %q", resp.Window, "main fic")
	}
}

func TestLocate_XML(t *testing.T) {
	app := newTestApp(seededStore())

	status, body := get(t, app, "/locate?callno=MAIN+1&owner=main&lang=en&output=xml")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	var resp models.LocateResponse
	if err := xml.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}
	if resp.Location == nil || resp.Location.Tier != models.TierLibrary {
		t.Errorf("response = %+v, want library", resp)
	}
}

func TestLocate_StoreFailure(t *testing.T) {
	app := newTestApp(&memStore{err: errors.New("connection refused")})

	status, _ := get(t, app, "/locate?callno=MAIN&owner=main&lang=en&output=json")
	if status != fiber.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", status)
	}
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(ctx context.Context) error { return f.err }

func TestProbeHandler(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		pingErr    error
		wantStatus int
	}{
		{"liveness", "/healthz", errors.New("down"), fiber.StatusOK},
		{"ready", "/readyz", nil, fiber.StatusOK},
		{"not ready", "/readyz", errors.New("down"), fiber.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewProbeHandler(fakePinger{err: tt.pingErr}, 10)
			app := fiber.New()
			app.Get("/healthz", h.Liveness)
			app.Get("/readyz", h.Readiness)

			status, _ := get(t, app, tt.path)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
		})
	}
}
