// Package server exposes the session over a thin JSON API. All game
// semantics live in internal/game; handlers translate HTTP to session calls
// and session errors to a status + machine-readable code.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/mcjdh/eternal-click-slayer/internal/buff"
	"github.com/mcjdh/eternal-click-slayer/internal/config"
	"github.com/mcjdh/eternal-click-slayer/internal/game"
	"github.com/mcjdh/eternal-click-slayer/internal/prestige"
	"github.com/mcjdh/eternal-click-slayer/internal/save"
	"github.com/mcjdh/eternal-click-slayer/internal/state"
	"github.com/mcjdh/eternal-click-slayer/internal/telemetry"
)

// App holds what the handlers depend on.
type App struct {
	Session   *game.Session
	Repo      *save.FileRepo
	Balance   config.Balance
	Clock     game.Clock
	Logger    *log.Logger
	Stream    *Stream
	Telemetry telemetry.Repository

	BootNow time.Time
}

func (a *App) record(eventType telemetry.EventType, metadata telemetry.EventMetadata) {
	if a.Telemetry == nil {
		return
	}
	_ = a.Telemetry.RecordEvent(eventType, metadata)
}

func (a *App) recordDefeat(wasBoss, wasSpecial bool, specialType string, gold int) {
	switch {
	case wasBoss:
		a.record(telemetry.EventBossDefeated, telemetry.EventMetadata{"gold": gold})
	case wasSpecial:
		a.record(telemetry.EventSpecialDefeated, telemetry.EventMetadata{"gold": gold, "special_type": specialType})
	default:
		a.record(telemetry.EventEnemyDefeated, telemetry.EventMetadata{"gold": gold})
	}
}

func (a *App) recordUnlocks(ids []string) {
	for _, id := range ids {
		a.record(telemetry.EventAchievementUnlocked, telemetry.EventMetadata{"id": id})
	}
}

// SaveNow captures and writes the current session. The autosaver and the
// POST /api/save handler share it.
func (a *App) SaveNow() error {
	var snap save.Snapshot
	a.Session.View(func(st *state.State, achieved map[string]bool) {
		snap = save.FromState(st, achieved, a.Clock.Now())
	})
	return a.Repo.Save(snap)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps session errors onto statuses a client can branch on without
// string matching.
func writeErr(w http.ResponseWriter, err error) {
	code, status := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, game.ErrInsufficientGold):
		code, status = http.StatusConflict, "insufficient_gold"
	case errors.Is(err, game.ErrCritCapped):
		code, status = http.StatusConflict, "crit_capped"
	case errors.Is(err, game.ErrNoTarget):
		code, status = http.StatusConflict, "no_target"
	case errors.Is(err, game.ErrFeatureLocked):
		code, status = http.StatusForbidden, "feature_locked"
	case errors.Is(err, game.ErrUnknownUpgrade):
		code, status = http.StatusNotFound, "unknown_upgrade"
	case errors.Is(err, buff.ErrSkillLocked):
		code, status = http.StatusForbidden, "skill_locked"
	case errors.Is(err, buff.ErrSkillCooling):
		code, status = http.StatusTooManyRequests, "skill_cooldown"
	case errors.Is(err, prestige.ErrLocked):
		code, status = http.StatusForbidden, "prestige_locked"
	case errors.Is(err, save.ErrNotFound):
		code, status = http.StatusNotFound, "no_save"
	}
	writeJSON(w, code, map[string]string{
		"code":  status,
		"error": err.Error(),
	})
}

// RegisterAPIRoutes wires every gameplay route onto the mux.
func RegisterAPIRoutes(mux *http.ServeMux, rr *RouteRegistry, app *App) {
	sess := app.Session

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "clickslayer",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := app.Repo.Load(); err != nil && !errors.Is(err, save.ErrNotFound) {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "save storage unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "clickslayer",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	Handle(mux, rr, "GET /api/routes", "List registered routes", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, rr.List())
	})

	Handle(mux, rr, "GET /api/state", "Current session state", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, stateView(sess))
	})

	Handle(mux, rr, "GET /api/config", "Active balance configuration", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, app.Balance)
	})

	Handle(mux, rr, "POST /api/attack", "Attack the current enemy", "", func(w http.ResponseWriter, r *http.Request) {
		res, err := sess.Attack()
		if err != nil {
			writeErr(w, err)
			return
		}
		if res.Crit {
			app.record(telemetry.EventCrit, telemetry.EventMetadata{"damage": res.Damage})
		}
		if res.Defeated {
			app.recordDefeat(res.WasBoss, res.WasSpecial, res.SpecialType, res.GoldAwarded)
		}
		app.recordUnlocks(res.Unlocked)
		writeJSON(w, http.StatusOK, res)
	})

	Handle(mux, rr, "POST /api/upgrades/{kind}", "Buy an upgrade (click, crit, helper:<id>)", "", func(w http.ResponseWriter, r *http.Request) {
		res, err := sess.Purchase(r.PathValue("kind"))
		if err != nil {
			writeErr(w, err)
			return
		}
		app.record(telemetry.EventUpgradePurchased, telemetry.EventMetadata{"kind": res.Kind})
		app.recordUnlocks(res.Unlocked)
		writeJSON(w, http.StatusOK, res)
	})

	Handle(mux, rr, "POST /api/skills/{id}/activate", "Activate a skill", "", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if err := sess.ActivateSkill(id); err != nil {
			writeErr(w, err)
			return
		}
		app.record(telemetry.EventSkillActivated, telemetry.EventMetadata{"id": id})
		writeJSON(w, http.StatusOK, map[string]bool{"active": true})
	})

	Handle(mux, rr, "GET /api/prestige", "Preview stars for prestiging now", "", func(w http.ResponseWriter, r *http.Request) {
		stars, err := sess.PrestigePreview()
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]float64{"stars": stars})
	})

	Handle(mux, rr, "POST /api/prestige/confirm", "Reset the run for stars", "", func(w http.ResponseWriter, r *http.Request) {
		res, err := sess.PrestigeConfirm()
		if err != nil {
			writeErr(w, err)
			return
		}
		app.record(telemetry.EventPrestige, telemetry.EventMetadata{"stars": res.StarsEarned})
		app.recordUnlocks(res.Unlocked)
		writeJSON(w, http.StatusOK, res)
	})

	Handle(mux, rr, "POST /api/save", "Write the session to disk", "", func(w http.ResponseWriter, r *http.Request) {
		if err := app.SaveNow(); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"saved": true})
	})

	Handle(mux, rr, "POST /api/load", "Replace the session from disk", "", func(w http.ResponseWriter, r *http.Request) {
		snap, err := app.Repo.Load()
		if err != nil {
			writeErr(w, err)
			return
		}
		st, achieved := snap.Apply(app.Balance)
		sess.Restore(st, achieved)
		writeJSON(w, http.StatusOK, stateView(sess))
	})

	if app.Telemetry != nil {
		Handle(mux, rr, "GET /api/events", "Recent gameplay events", "", func(w http.ResponseWriter, r *http.Request) {
			events, err := app.Telemetry.GetEvents(time.Time{}, nil)
			if err != nil {
				writeErr(w, err)
				return
			}
			writeJSON(w, http.StatusOK, events)
		})

		Handle(mux, rr, "GET /api/stats", "Session pace stats since boot", "", func(w http.ResponseWriter, r *http.Request) {
			events, err := app.Telemetry.GetEvents(app.BootNow, nil)
			if err != nil {
				writeErr(w, err)
				return
			}
			stats, err := telemetry.CalculateStats(events, app.BootNow)
			if err != nil {
				writeErr(w, err)
				return
			}
			writeJSON(w, http.StatusOK, stats)
		})
	}

	if app.Stream != nil {
		Handle(mux, rr, "GET /api/stream", "Websocket state stream", "", app.Stream.Serve)
	}
}

// StateView is the wire shape of GET /api/state.
type StateView struct {
	State        *state.State    `json:"state"`
	Achievements map[string]bool `json:"achievements"`
}

func stateView(sess *game.Session) StateView {
	var view StateView
	sess.View(func(st *state.State, achieved map[string]bool) {
		// Deep-copy via JSON so the response never aliases live maps.
		b, err := json.Marshal(st)
		if err == nil {
			var cp state.State
			if json.Unmarshal(b, &cp) == nil {
				view.State = &cp
			}
		}
		view.Achievements = achieved
	})
	return view
}
