// Package achievement implements the rule set evaluated after every
// meaningful action. Achievements are data: a predicate over (trigger,
// context, state) and a reward that mutates the state's permanent bonuses.
// Predicates all share one signature; context-free ones simply ignore the
// trigger and context.
package achievement

import (
	"github.com/mcjdh/eternal-click-slayer/internal/state"
)

// Trigger identifies the action that prompted an evaluation pass.
type Trigger string

const (
	TriggerInit          Trigger = "init"
	TriggerClick         Trigger = "click"
	TriggerUpgrade       Trigger = "upgrade"
	TriggerSpawn         Trigger = "spawn"
	TriggerEnemyDefeated Trigger = "enemyDefeated"
	TriggerPrestige      Trigger = "prestige"
)

// Context carries the event details a context-sensitive predicate matches on.
type Context struct {
	UpgradeKind string // "click", "critChance" or "helper:<id>"
	HelperID    string // set for helper upgrades
	WasBoss     bool
	WasSpecial  bool
	SpecialType string
}

// Achievement is one rule. Prestige-tagged achievements keep their achieved
// latch across a prestige reset; all others re-arm.
type Achievement struct {
	ID       string
	Desc     string
	Glyph    string
	Prestige bool

	Predicate func(trigger Trigger, ctx Context, st *state.State) bool
	Reward    func(st *state.State)
}

// Engine owns the achieved latches, keyed by id so saves stay forward
// compatible when the table grows or reorders.
type Engine struct {
	defs     []Achievement
	achieved map[string]bool
	notify   func(Achievement)
}

// NewEngine builds an engine over the given rules. notify is called exactly
// once per unlock and may be nil.
func NewEngine(defs []Achievement, notify func(Achievement)) *Engine {
	return &Engine{
		defs:     defs,
		achieved: make(map[string]bool, len(defs)),
		notify:   notify,
	}
}

// Evaluate runs every not-yet-achieved rule against the action. Rewards run
// at most once per achievement; the unlocked rules are returned in table
// order.
func (e *Engine) Evaluate(trigger Trigger, ctx Context, st *state.State) []Achievement {
	var unlocked []Achievement
	for _, a := range e.defs {
		if e.achieved[a.ID] {
			continue
		}
		if !a.Predicate(trigger, ctx, st) {
			continue
		}
		a.Reward(st)
		e.achieved[a.ID] = true
		if e.notify != nil {
			e.notify(a)
		}
		unlocked = append(unlocked, a)
	}
	return unlocked
}

// Achieved reports whether the id has been unlocked.
func (e *Engine) Achieved(id string) bool {
	return e.achieved[id]
}

// AchievedIDs returns a copy of the latch map for persistence.
func (e *Engine) AchievedIDs() map[string]bool {
	out := make(map[string]bool, len(e.achieved))
	for id, ok := range e.achieved {
		if ok {
			out[id] = true
		}
	}
	return out
}

// Restore applies saved latches. Ids with no current definition are ignored.
func (e *Engine) Restore(ids map[string]bool) {
	for _, a := range e.defs {
		if ids[a.ID] {
			e.achieved[a.ID] = true
		}
	}
}

// ResetForPrestige re-arms every non-prestige achievement. Their permanent
// bonuses are not subtracted here; the caller swaps in a fresh state, so the
// bonuses are gone with it.
func (e *Engine) ResetForPrestige() {
	for _, a := range e.defs {
		if !a.Prestige {
			delete(e.achieved, a.ID)
		}
	}
}

// Defs returns the rule table.
func (e *Engine) Defs() []Achievement {
	return e.defs
}
