package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"shifttrack/internal/api"
	"shifttrack/internal/config"
	"shifttrack/internal/logging"
	"shifttrack/internal/notifications"
	"shifttrack/internal/server"
	"shifttrack/internal/store"
	"shifttrack/internal/testsupport"
)

type harness struct {
	base  string
	token string
	store *store.Store
	cfg   *config.Config
}

func newHarness(t *testing.T, opts ...testsupport.ConfigOption) *harness {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	st := testsupport.MustOpenStore(t, cfg)

	srv, err := server.New(cfg, st, notifications.NewService(cfg), logging.NewNop())
	if err != nil {
		t.Fatalf("server.New: %v", err)
	}
	if srv == nil {
		t.Fatal("expected a server for a configured bind address")
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if err := srv.Start(ctx); err != nil {
		t.Fatalf("server.Start: %v", err)
	}
	t.Cleanup(srv.Stop)

	return &harness{
		base:  "http://" + srv.Addr(),
		token: cfg.Paths.APIToken,
		store: st,
		cfg:   cfg,
	}
}

func (h *harness) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, h.base+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var payload T
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload
}

func TestServerShiftLifecycle(t *testing.T) {
	h := newHarness(t, testsupport.WithDefaultRate(20))

	created := h.do(t, http.MethodPost, "/api/shifts", api.ShiftInput{
		ClockIn:  "2024-03-01T09:00:00Z",
		ClockOut: "2024-03-01T17:00:00Z",
		Position: "Barista",
	})
	if created.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", created.StatusCode)
	}
	shiftResp := decode[api.ShiftResponse](t, created)
	if shiftResp.Shift.Hours != 8 || shiftResp.Shift.Earned != 160 {
		t.Fatalf("unexpected enrichment: %+v", shiftResp.Shift)
	}

	listed := h.do(t, http.MethodGet, "/api/shifts", nil)
	if listed.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", listed.StatusCode)
	}
	listResp := decode[api.ShiftListResponse](t, listed)
	if len(listResp.Shifts) != 1 {
		t.Fatalf("expected 1 shift, got %d", len(listResp.Shifts))
	}

	id := shiftResp.Shift.ID
	updated := h.do(t, http.MethodPut, "/api/shifts/"+id, api.ShiftInput{
		ClockIn:  "2024-03-01T09:00:00Z",
		ClockOut: "2024-03-01T13:00:00Z",
		Position: "Barista",
	})
	if updated.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d", updated.StatusCode)
	}
	if got := decode[api.ShiftResponse](t, updated); got.Shift.Hours != 4 {
		t.Fatalf("updated hours = %v, want 4", got.Shift.Hours)
	}

	deleted := h.do(t, http.MethodDelete, "/api/shifts/"+id, nil)
	if deleted.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d", deleted.StatusCode)
	}
	missing := h.do(t, http.MethodGet, "/api/shifts/"+id, nil)
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", missing.StatusCode)
	}
}

func TestServerRejectsInvalidShift(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodPost, "/api/shifts", api.ShiftInput{ClockOut: "2024-03-01T17:00:00Z"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing clock-in, got %d", resp.StatusCode)
	}
}

func TestServerRateEndpoints(t *testing.T) {
	h := newHarness(t)

	created := h.do(t, http.MethodPost, "/api/rates", api.RateInput{Position: "Barista", Amount: 25, Kind: "hourly"})
	if created.StatusCode != http.StatusCreated {
		t.Fatalf("create rate status = %d", created.StatusCode)
	}
	rateResp := decode[api.RateResponse](t, created)
	if rateResp.Rate.ID == "" || rateResp.Rate.Amount != 25 {
		t.Fatalf("unexpected rate: %+v", rateResp.Rate)
	}

	replaced := h.do(t, http.MethodPost, "/api/rates", api.RateInput{Position: " barista ", Amount: 30, Kind: "hourly"})
	replacedResp := decode[api.RateResponse](t, replaced)
	if replacedResp.Rate.ID != rateResp.Rate.ID {
		t.Fatalf("same position should replace, got new id %q", replacedResp.Rate.ID)
	}

	listed := h.do(t, http.MethodGet, "/api/rates", nil)
	listResp := decode[api.RateListResponse](t, listed)
	if len(listResp.Rates) != 1 || listResp.Rates[0].Amount != 30 {
		t.Fatalf("unexpected rate list: %+v", listResp.Rates)
	}

	deleted := h.do(t, http.MethodDelete, "/api/rates/"+rateResp.Rate.ID, nil)
	if deleted.StatusCode != http.StatusOK {
		t.Fatalf("delete rate status = %d", deleted.StatusCode)
	}
}

func TestServerSeriesAndHeatmap(t *testing.T) {
	h := newHarness(t, testsupport.WithDefaultRate(10))
	now := time.Now()
	start := now.AddDate(0, 0, -2)
	testsupport.NewShift(t, h.store, start, start.Add(5*time.Hour), "Barista")

	series := h.do(t, http.MethodGet, "/api/series?preset=last7days", nil)
	if series.StatusCode != http.StatusOK {
		t.Fatalf("series status = %d", series.StatusCode)
	}
	seriesResp := decode[api.SeriesResponse](t, series)
	if len(seriesResp.Points) != 7 || seriesResp.Current.Hours != 5 {
		t.Fatalf("unexpected series: points=%d hours=%v", len(seriesResp.Points), seriesResp.Current.Hours)
	}

	badPreset := h.do(t, http.MethodGet, "/api/series?preset=decade", nil)
	if badPreset.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown preset, got %d", badPreset.StatusCode)
	}

	heatmap := h.do(t, http.MethodGet, "/api/heatmap", nil)
	heatmapResp := decode[api.HeatmapResponse](t, heatmap)
	if len(heatmapResp.Values) != 1 {
		t.Fatalf("expected 1 heatmap cell, got %d", len(heatmapResp.Values))
	}
}

func TestServerAuditDocument(t *testing.T) {
	h := newHarness(t, testsupport.WithStubbedBinaries())
	start := time.Date(2024, time.January, 3, 9, 0, 0, 0, time.UTC)
	testsupport.NewShift(t, h.store, start, start.Add(8*time.Hour), "Barista")

	docPath := filepath.Join(t.TempDir(), "stub.pdf")
	testsupport.WriteFile(t, docPath, []byte("Begin Date: 01/01/2024\nEnd Date: 01/15/2024\nTotal Hours Worked: 8.0\n"))

	resp := h.do(t, http.MethodPost, "/api/audit/document", documentBody(docPath))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("audit status = %d", resp.StatusCode)
	}
	audit := decode[api.AuditResponse](t, resp)
	if audit.Verdict.Tier != "accurate" {
		t.Fatalf("tier = %q, want accurate", audit.Verdict.Tier)
	}
	if audit.Extracted.BeginDate != "01/01/2024" {
		t.Fatalf("begin date = %q", audit.Extracted.BeginDate)
	}

	unreadable := h.do(t, http.MethodPost, "/api/audit/extract", documentBody(filepath.Join(t.TempDir(), "absent.pdf")))
	if unreadable.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for unreadable document, got %d", unreadable.StatusCode)
	}
}

func TestServerReconcileEndpoint(t *testing.T) {
	h := newHarness(t)
	start := time.Date(2024, time.February, 5, 9, 0, 0, 0, time.UTC)
	testsupport.NewShift(t, h.store, start, start.Add(8*time.Hour), "Barista")

	claimed := 10.0
	resp := h.do(t, http.MethodPost, "/api/audit/reconcile", api.ReconcileInput{
		BeginDate:    "02/01/2024",
		EndDate:      "02/14/2024",
		ClaimedHours: &claimed,
	})
	verdict := decode[api.ReconcileResponse](t, resp)
	if verdict.Tier != "minor_variance" {
		t.Fatalf("tier = %q, want minor_variance", verdict.Tier)
	}
	if verdict.ComputedHours != 8 {
		t.Fatalf("computed = %v, want 8", verdict.ComputedHours)
	}
}

func TestServerHealthEndpoint(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/api/health", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health status = %d", resp.StatusCode)
	}
	health := decode[api.HealthResponse](t, resp)
	if !health.DatabaseExists || !health.DatabaseReadable || !health.TablesExist {
		t.Fatalf("unexpected health: %+v", health)
	}
}

func TestServerEnforcesBearerToken(t *testing.T) {
	h := newHarness(t, testsupport.WithAPIToken("secret-token"))

	req, err := http.NewRequest(http.MethodGet, h.base+"/api/shifts", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	client := &http.Client{Timeout: 10 * time.Second}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	req.Header.Set("Authorization", "Bearer wrong")
	wrong, err := client.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer wrong.Body.Close()
	if wrong.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", wrong.StatusCode)
	}

	authed := h.do(t, http.MethodGet, "/api/shifts", nil)
	if authed.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", authed.StatusCode)
	}
}

func documentBody(path string) map[string]string {
	return map[string]string{"path": path}
}
