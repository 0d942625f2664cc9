package diag

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"idlerpg-lite/engine"
	"idlerpg-lite/gamedata"
	"idlerpg-lite/sim"

	"idlerpg-lite/apps/server/internal/arena"
	"idlerpg-lite/apps/server/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, store.Service) {
	t.Helper()
	cfg := engine.DefaultConfig()
	cfg.Seed = 1
	eng, err := engine.NewEngine(cfg, engine.Deps{Catalog: sim.DemoCatalog(), World: sim.DemoWorld()})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	st := store.NewMemoryService()
	arn := arena.New(eng, gamedata.Demo(), st, nil, time.Hour)
	t.Cleanup(arn.Close)
	if err := arn.Register(context.Background(), sim.DemoCharacter("hero", "Hero", time.Now())); err != nil {
		t.Fatalf("Register: %v", err)
	}

	mux := http.NewServeMux()
	NewHTTPHandler(arn).RegisterRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, st
}

func doJSON(t *testing.T, method, url, body string, out any) int {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, url, err)
		}
	}
	return resp.StatusCode
}

func TestGetCharacter(t *testing.T) {
	srv, _ := newTestServer(t)

	var c engine.Character
	if code := doJSON(t, http.MethodGet, srv.URL+"/api/diag/characters/hero", "", &c); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if c.ID != "hero" || c.Name != "Hero" {
		t.Fatalf("character = %s/%s, want hero/Hero", c.ID, c.Name)
	}

	var errResp errorResponse
	if code := doJSON(t, http.MethodGet, srv.URL+"/api/diag/characters/nobody", "", &errResp); code != http.StatusNotFound {
		t.Fatalf("unknown character status = %d, want 404", code)
	}
	if errResp.Code != "unknown_character" {
		t.Fatalf("error code = %q, want unknown_character", errResp.Code)
	}
}

func TestGetTrace(t *testing.T) {
	srv, _ := newTestServer(t)

	var trace engine.DecisionTrace
	if code := doJSON(t, http.MethodGet, srv.URL+"/api/diag/characters/hero/trace", "", &trace); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if trace.CharacterID != "hero" {
		t.Fatalf("trace character = %q, want hero", trace.CharacterID)
	}
	if len(trace.Entries) == 0 {
		t.Fatalf("trace should be computed on demand before any tick")
	}
	for _, e := range trace.Entries {
		if e.Breakdown.Total < 0 {
			t.Fatalf("entry %q has negative total %v", e.Name, e.Breakdown.Total)
		}
	}
}

func TestModifierLifecycle(t *testing.T) {
	srv, st := newTestServer(t)
	base := srv.URL + "/api/diag/characters/hero/modifiers"

	var created engine.Modifier
	code := doJSON(t, http.MethodPut, base, `{"code":"blessing","label":"Shrine blessing","multiplier":0.25}`, &created)
	if code != http.StatusOK {
		t.Fatalf("put status = %d, want 200", code)
	}
	if created.Code != "blessing" || created.Multiplier != 0.25 {
		t.Fatalf("created = %+v", created)
	}

	var list struct {
		Items []engine.Modifier `json:"items"`
	}
	if code := doJSON(t, http.MethodGet, base, "", &list); code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", code)
	}
	if len(list.Items) != 1 || list.Items[0].Code != "blessing" {
		t.Fatalf("list = %+v, want the blessing", list.Items)
	}

	stored, err := st.ListModifiers(context.Background(), "hero")
	if err != nil {
		t.Fatalf("store list: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("modifier not persisted: %+v", stored)
	}

	// Code taken from the path wins over the body.
	var renamed engine.Modifier
	if code := doJSON(t, http.MethodPut, base+"/haste", `{"multiplier":0.1}`, &renamed); code != http.StatusOK {
		t.Fatalf("put with path code status = %d", code)
	}
	if renamed.Code != "haste" {
		t.Fatalf("path code ignored: %+v", renamed)
	}

	var errResp errorResponse
	if code := doJSON(t, http.MethodPut, base, `{"code":"bad","multiplier":-2}`, &errResp); code != http.StatusBadRequest {
		t.Fatalf("invalid multiplier status = %d, want 400", code)
	}
	if errResp.Code != "invalid_multiplier" {
		t.Fatalf("error code = %q, want invalid_multiplier", errResp.Code)
	}
	if code := doJSON(t, http.MethodPut, base, `{not json`, &errResp); code != http.StatusBadRequest {
		t.Fatalf("malformed payload status = %d, want 400", code)
	}

	if code := doJSON(t, http.MethodDelete, base+"/blessing", "", nil); code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", code)
	}
	if code := doJSON(t, http.MethodDelete, base+"/blessing", "", &errResp); code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", code)
	}
	if code := doJSON(t, http.MethodDelete, base, "", &errResp); code != http.StatusBadRequest {
		t.Fatalf("delete without code status = %d, want 400", code)
	}
}

func TestProfileEndpoint(t *testing.T) {
	srv, st := newTestServer(t)
	url := srv.URL + "/api/diag/characters/hero/profile"

	var prof profileRequest
	if code := doJSON(t, http.MethodGet, url, "", &prof); code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", code)
	}
	if prof.Code != engine.DefaultProfileCode {
		t.Fatalf("default profile = %q, want %q", prof.Code, engine.DefaultProfileCode)
	}

	if code := doJSON(t, http.MethodPut, url, `{"code":"mercantile"}`, &prof); code != http.StatusOK {
		t.Fatalf("put status = %d, want 200", code)
	}
	if code := doJSON(t, http.MethodGet, url, "", &prof); code != http.StatusOK || prof.Code != "mercantile" {
		t.Fatalf("profile after put = %q (status %d), want mercantile", prof.Code, code)
	}
	stored, _ := st.ProfileCode(context.Background(), "hero")
	if stored != "mercantile" {
		t.Fatalf("profile not persisted: %q", stored)
	}

	var errResp errorResponse
	if code := doJSON(t, http.MethodPut, url, `{"code":"bogus"}`, &errResp); code != http.StatusBadRequest {
		t.Fatalf("unknown profile status = %d, want 400", code)
	}
	if errResp.Code != "unknown_profile" {
		t.Fatalf("error code = %q, want unknown_profile", errResp.Code)
	}
}

func TestRoutingErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	var errResp errorResponse
	if code := doJSON(t, http.MethodGet, srv.URL+"/api/diag/characters/", "", &errResp); code != http.StatusBadRequest {
		t.Fatalf("missing id status = %d, want 400", code)
	}
	if code := doJSON(t, http.MethodGet, srv.URL+"/api/diag/characters/hero/unknown", "", &errResp); code != http.StatusNotFound {
		t.Fatalf("unknown resource status = %d, want 404", code)
	}
	if code := doJSON(t, http.MethodDelete, srv.URL+"/api/diag/characters/hero", "", &errResp); code != http.StatusMethodNotAllowed {
		t.Fatalf("bad method status = %d, want 405", code)
	}
	if code := doJSON(t, http.MethodDelete, srv.URL+"/api/diag/characters/hero/trace", "", &errResp); code != http.StatusMethodNotAllowed {
		t.Fatalf("trace delete status = %d, want 405", code)
	}
}
