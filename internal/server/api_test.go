package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcjdh/eternal-click-slayer/internal/config"
	"github.com/mcjdh/eternal-click-slayer/internal/game"
	"github.com/mcjdh/eternal-click-slayer/internal/save"
	"github.com/mcjdh/eternal-click-slayer/internal/state"
)

func newTestApp(t *testing.T) (*App, *http.ServeMux) {
	t.Helper()
	bal := config.Default()
	clock := game.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	sess := game.NewSession(game.Options{
		Balance: bal,
		Clock:   clock,
		Rand:    &game.SeqRand{Seq: []float64{0.999}},
	})
	repo, err := save.NewFileRepo(t.TempDir(), false)
	require.NoError(t, err)

	app := &App{
		Session: sess,
		Repo:    repo,
		Balance: bal,
		Clock:   clock,
		BootNow: clock.Now(),
	}
	mux := http.NewServeMux()
	rr := &RouteRegistry{}
	RegisterAPIRoutes(mux, rr, app)
	return app, mux
}

func do(t *testing.T, mux *http.ServeMux, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func errCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestGetState(t *testing.T) {
	_, mux := newTestApp(t)

	w := do(t, mux, http.MethodGet, "/api/state")
	require.Equal(t, http.StatusOK, w.Code)

	var view StateView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.NotNil(t, view.State)
	assert.Equal(t, 1, view.State.Enemy.Level)
	assert.Equal(t, 10.0, view.State.Enemy.MaxHP)
	assert.Equal(t, 0, view.State.Gold)
}

func TestAttack_ThenNoTarget(t *testing.T) {
	app, mux := newTestApp(t)
	app.Session.View(func(st *state.State, _ map[string]bool) {
		st.ClickDamage = 1000
	})

	w := do(t, mux, http.MethodPost, "/api/attack")
	require.Equal(t, http.StatusOK, w.Code)

	var res game.AttackResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.True(t, res.Defeated)
	assert.Equal(t, 4, res.GoldAwarded)

	// The corpse waits for its respawn tick; attacking it is a conflict.
	w = do(t, mux, http.MethodPost, "/api/attack")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "no_target", errCode(t, w))
}

func TestUpgrades_ErrorTaxonomy(t *testing.T) {
	_, mux := newTestApp(t)

	w := do(t, mux, http.MethodPost, "/api/upgrades/click")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "insufficient_gold", errCode(t, w))

	w = do(t, mux, http.MethodPost, "/api/upgrades/crit")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "feature_locked", errCode(t, w))

	w = do(t, mux, http.MethodPost, "/api/upgrades/banner")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "unknown_upgrade", errCode(t, w))
}

func TestSkills_LockedCode(t *testing.T) {
	_, mux := newTestApp(t)

	w := do(t, mux, http.MethodPost, "/api/skills/doubleDamage/activate")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "feature_locked", errCode(t, w))
}

func TestPrestige_LockedCode(t *testing.T) {
	_, mux := newTestApp(t)

	w := do(t, mux, http.MethodGet, "/api/prestige")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "prestige_locked", errCode(t, w))
}

func TestSaveLoad_RoundTripOverHTTP(t *testing.T) {
	app, mux := newTestApp(t)
	app.Session.View(func(st *state.State, _ map[string]bool) {
		st.Gold = 777
	})

	w := do(t, mux, http.MethodPost, "/api/save")
	require.Equal(t, http.StatusOK, w.Code)

	app.Session.View(func(st *state.State, _ map[string]bool) {
		st.Gold = 0
	})

	w = do(t, mux, http.MethodPost, "/api/load")
	require.Equal(t, http.StatusOK, w.Code)

	var view StateView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, 777, view.State.Gold)
}

func TestLoad_NoSaveOnDisk(t *testing.T) {
	_, mux := newTestApp(t)

	w := do(t, mux, http.MethodPost, "/api/load")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "no_save", errCode(t, w))
}

func TestRoutesAreDocumented(t *testing.T) {
	_, mux := newTestApp(t)

	w := do(t, mux, http.MethodGet, "/api/routes")
	require.Equal(t, http.StatusOK, w.Code)

	var routes []RouteDoc
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &routes))
	patterns := map[string]bool{}
	for _, r := range routes {
		patterns[r.Method+" "+r.Pattern] = true
	}
	for _, want := range []string{
		"GET /api/state",
		"POST /api/attack",
		"POST /api/upgrades/{kind}",
		"POST /api/skills/{id}/activate",
		"GET /api/prestige",
		"POST /api/prestige/confirm",
		"POST /api/save",
		"POST /api/load",
	} {
		assert.True(t, patterns[want], "missing route %s", want)
	}
}
