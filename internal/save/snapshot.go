// Package save persists sessions as versioned snapshots: plain or
// lz4-compressed JSON on disk, with tolerant loading so older and partial
// saves still come back playable.
package save

import (
	"time"

	"github.com/google/uuid"

	"github.com/mcjdh/eternal-click-slayer/internal/config"
	"github.com/mcjdh/eternal-click-slayer/internal/formula"
	"github.com/mcjdh/eternal-click-slayer/internal/helper"
	"github.com/mcjdh/eternal-click-slayer/internal/state"
)

// CurrentVersion is written into every new snapshot. Version 1 predates
// per-type helpers and is migrated on load.
const CurrentVersion = 2

// Snapshot is the on-disk save format.
type Snapshot struct {
	ID      string    `json:"id"`
	Version int       `json:"version"`
	SavedAt time.Time `json:"saved_at"`

	State    *state.State    `json:"state"`
	Achieved map[string]bool `json:"achievements"`

	// Legacy single-helper fields, only read from version-1 saves.
	LegacyHelperLevel int `json:"helperLevel,omitempty"`
	LegacyHelperCost  int `json:"helperCost,omitempty"`
}

// FromState captures the session into a fresh snapshot.
func FromState(st *state.State, achieved map[string]bool, now time.Time) Snapshot {
	return Snapshot{
		ID:       uuid.NewString(),
		Version:  CurrentVersion,
		SavedAt:  now,
		State:    st,
		Achieved: achieved,
	}
}

// Apply turns a loaded snapshot back into a playable state. Missing fields
// fall back to fresh-session defaults instead of zeroes, and version-1 saves
// get their single helper level migrated onto the default type with the cost
// curve replayed.
func (s Snapshot) Apply(bal config.Balance) (*state.State, map[string]bool) {
	fresh := state.New(bal)
	st := s.State
	if st == nil {
		st = fresh
	}

	if st.HelperLevels == nil {
		st.HelperLevels = fresh.HelperLevels
		st.HelperCosts = fresh.HelperCosts
		if s.Version <= 1 && s.LegacyHelperLevel > 0 {
			st.HelperLevels[helper.DefaultType] = s.LegacyHelperLevel
			st.HelperCosts[helper.DefaultType] = replayCost(helper.DefaultType, s.LegacyHelperLevel)
		}
	}
	if st.HelperDPS == nil {
		st.HelperDPS = fresh.HelperDPS
	}
	if st.Buffs == nil {
		st.Buffs = fresh.Buffs
	}
	if st.Skills == nil {
		st.Skills = fresh.Skills
	}
	if st.Progress == nil {
		st.Progress = fresh.Progress
	}

	if st.ClickDamage <= 0 {
		st.ClickDamage = fresh.ClickDamage
	}
	if st.CritMultiplier <= 0 {
		st.CritMultiplier = fresh.CritMultiplier
	}
	if st.ClickUpgradeCost <= 0 {
		st.ClickUpgradeCost = fresh.ClickUpgradeCost
	}
	if st.CritUpgradeCost <= 0 {
		st.CritUpgradeCost = fresh.CritUpgradeCost
	}
	if st.AchievementClickMult <= 0 {
		st.AchievementClickMult = 1.0
	}
	if st.AchievementGoldMult <= 0 {
		st.AchievementGoldMult = 1.0
	}
	if st.AchievementHelperMult <= 0 {
		st.AchievementHelperMult = 1.0
	}
	// Always derived from stars; older saves stored stale values.
	st.StarGoldMultiplier = st.Stars * bal.StarGoldRate

	st.RecalcDPS()

	achieved := s.Achieved
	if achieved == nil {
		achieved = map[string]bool{}
	}
	return st, achieved
}

// replayCost walks the purchase curve to where a migrated helper's next cost
// would have landed.
func replayCost(id string, level int) int {
	def, ok := helper.ByID(id)
	if !ok {
		return 0
	}
	cost := def.BaseCost
	for i := 0; i < level; i++ {
		cost = formula.NextUpgradeCost(cost, def.CostScale, def.CostAdd)
	}
	return cost
}
