package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"moba-stats/internal/repository"
	"moba-stats/internal/server"
	"moba-stats/internal/service"
	"moba-stats/internal/testutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	gw := testutil.SetupSeededGateway(t)
	log := zerolog.Nop()

	srv := server.NewStatsServer(
		service.NewPlayerService(repository.NewPlayerRepository(gw, log), log),
		service.NewMatchService(repository.NewMatchRepository(gw, log), log),
		service.NewCharacterService(repository.NewCharacterRepository(gw, log), log),
		service.NewCatalogService(
			repository.NewRoleRepository(gw, log),
			repository.NewItemRepository(gw, log),
			repository.NewEntitlementRepository(gw, log),
			log,
		),
		service.NewAdminService(gw, log),
		log,
	)
	return srv.Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) (int, map[string]any) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec.Code, out
}

func TestListEndpoints(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		path  string
		key   string
		count int
	}{
		{"/players", "players", 5},
		{"/roles", "roles", 4},
		{"/matches", "matches", 3},
		{"/items", "items", 3},
		{"/items/all", "items", 3},
		{"/entitlements", "entitlements", 2},
		{"/transactions", "transactions", 2},
		{"/characters", "characters", 5},
		{"/tables", "tables", 12},
		{"/query/game_role", "rows", 4},
		{"/query/not_a_table", "rows", 0},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			code, body := do(t, h, http.MethodGet, tt.path, "")
			require.Equal(t, http.StatusOK, code)
			assert.Equal(t, true, body["ok"])
			list, ok := body[tt.key].([]any)
			require.True(t, ok, "missing %q", tt.key)
			assert.Len(t, list, tt.count)
		})
	}
}

func TestPlayerProfileEndpoint(t *testing.T) {
	h := newTestServer(t)

	code, body := do(t, h, http.MethodGet, "/player/1/profile", "")
	require.Equal(t, http.StatusOK, code)
	player := body["player"].(map[string]any)
	assert.Equal(t, "Alice", player["display_name"])
	stats := body["stats"].(map[string]any)
	assert.EqualValues(t, 3, stats["total_matches"])
	assert.EqualValues(t, 0, stats["avg_healing"])
	assert.Len(t, body["matches"], 3)
	assert.Len(t, body["characters"], 2)

	code, body = do(t, h, http.MethodGet, "/player/5/profile", "")
	require.Equal(t, http.StatusOK, code)
	stats = body["stats"].(map[string]any)
	assert.Nil(t, stats["avg_kills"])

	code, body = do(t, h, http.MethodGet, "/player/404/profile", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, body["ok"])

	code, _ = do(t, h, http.MethodGet, "/player/abc/profile", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestMatchAndCharacterDetails(t *testing.T) {
	h := newTestServer(t)

	code, body := do(t, h, http.MethodGet, "/match/1/details", "")
	require.Equal(t, http.StatusOK, code)
	players := body["players"].([]any)
	require.Len(t, players, 4)
	dan := players[3].(map[string]any)
	assert.Equal(t, "Dan", dan["display_name"])
	assert.Nil(t, dan["kills"])

	code, _ = do(t, h, http.MethodGet, "/match/99/details", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, body = do(t, h, http.MethodGet, "/character/1", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Tank", body["role_name"])
	abilities := body["abilities"].([]any)
	require.Len(t, abilities, 3)
	assert.Equal(t, "primary", abilities[0].(map[string]any)["slot"])
}

func TestPlayerUpsertAndDelete(t *testing.T) {
	h := newTestServer(t)

	code, body := do(t, h, http.MethodPost, "/player/upsert",
		`{"display_name":"Hana","email":"hana@example.com","password_hash":"h"}`)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "Player created successfully", body["message"])
	id := body["player_id"].(float64)
	assert.EqualValues(t, 6, id)

	code, body = do(t, h, http.MethodGet, "/player/search?q=hana", "")
	require.Equal(t, http.StatusOK, code)
	found := body["players"].([]any)
	require.Len(t, found, 1)
	assert.EqualValues(t, 1000, found[0].(map[string]any)["rank_mmr"])

	code, _ = do(t, h, http.MethodPost, "/player/upsert",
		`{"display_name":"Dup","email":"alice@example.com","password_hash":"h"}`)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = do(t, h, http.MethodPost, "/player/upsert", `{"display_name":"","email":"x@y.z","password_hash":"h"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, h, http.MethodPost, "/player/upsert", `{not json`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, h, http.MethodPost, "/player/delete/6", "")
	assert.Equal(t, http.StatusOK, code)

	code, _ = do(t, h, http.MethodGet, "/player/search", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestRoleDeleteConflict(t *testing.T) {
	h := newTestServer(t)

	code, body := do(t, h, http.MethodPost, "/role/delete/1", "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, false, body["ok"])

	code, body = do(t, h, http.MethodPost, "/role/upsert", `{"name":"Assassin","description":"Dives backlines"}`)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 5, body["role_id"])
}

func TestGrantEndpoint(t *testing.T) {
	h := newTestServer(t)

	code, body := do(t, h, http.MethodPost, "/entitlement/grant", `{"player_id":3,"item_id":1}`)
	require.Equal(t, http.StatusOK, code, body)
	ent := body["entitlement"].(map[string]any)
	assert.EqualValues(t, 1, ent["quantity"])
	assert.Equal(t, "active", ent["status"])

	code, _ = do(t, h, http.MethodPost, "/entitlement/grant", `{"player_id":3}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, h, http.MethodPost, "/entitlement/grant", `{"player_id":3,"item_id":1,"quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAdminEndpoints(t *testing.T) {
	h := newTestServer(t)

	code, _ := do(t, h, http.MethodPost, "/drop", "")
	require.Equal(t, http.StatusOK, code)

	_, body := do(t, h, http.MethodGet, "/tables", "")
	assert.Empty(t, body["tables"])

	code, _ = do(t, h, http.MethodPost, "/create", "")
	require.Equal(t, http.StatusOK, code)
	code, _ = do(t, h, http.MethodPost, "/seed", "")
	require.Equal(t, http.StatusOK, code)

	// seeding twice collides with the fixed ids
	code, body = do(t, h, http.MethodPost, "/seed", "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, false, body["ok"])
}
