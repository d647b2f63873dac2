// Package state holds the single mutable aggregate every other component
// reads and mutates. One State per running session; only the prestige
// controller ever replaces it wholesale.
package state

import (
	"math"

	"github.com/mcjdh/eternal-click-slayer/internal/buff"
	"github.com/mcjdh/eternal-click-slayer/internal/config"
	"github.com/mcjdh/eternal-click-slayer/internal/formula"
	"github.com/mcjdh/eternal-click-slayer/internal/helper"
)

// Enemy is the current encounter. CurrentHP stays within [0, MaxHP].
type Enemy struct {
	Level       int     `json:"level"`
	MaxHP       float64 `json:"max_hp"`
	CurrentHP   float64 `json:"current_hp"`
	Name        string  `json:"name"`
	Glyph       string  `json:"glyph"`
	GoldReward  float64 `json:"gold_reward"`
	Boss        bool    `json:"boss"`
	Special     bool    `json:"special"`
	SpecialType string  `json:"special_type,omitempty"`
}

// Alive reports whether there is a living target.
func (e *Enemy) Alive() bool {
	return e.CurrentHP > 0
}

// State is the progression aggregate.
type State struct {
	// Economy
	Gold             int `json:"gold"`
	ClickUpgradeCost int `json:"click_upgrade_cost"`
	CritUpgradeCost  int `json:"crit_upgrade_cost"`

	// Player offense. Bases never include achievement bonuses; effective
	// values are derived at the point of use.
	ClickDamage    float64 `json:"click_damage"`
	CritChance     float64 `json:"crit_chance"`
	CritMultiplier float64 `json:"crit_multiplier"`
	DPS            float64 `json:"dps"`

	// Per-helper-type progress
	HelperLevels map[string]int     `json:"helper_levels"`
	HelperCosts  map[string]int     `json:"helper_costs"`
	HelperDPS    map[string]float64 `json:"helper_dps"`

	// Feature latches, false→true only
	CritUnlocked     bool `json:"crit_unlocked"`
	HelpersUnlocked  bool `json:"helpers_unlocked"`
	SkillsUnlocked   bool `json:"skills_unlocked"`
	PrestigeUnlocked bool `json:"prestige_unlocked"`

	// Permanent achievement bonuses
	AchievementClickMult  float64 `json:"achievement_click_mult"`
	AchievementGoldMult   float64 `json:"achievement_gold_mult"`
	AchievementCritBonus  float64 `json:"achievement_crit_bonus"`
	AchievementHelperMult float64 `json:"achievement_helper_mult"`

	// Prestige meta-state, survives resets
	Stars              float64 `json:"stars"`
	TotalPrestiges     int     `json:"total_prestiges"`
	StarGoldMultiplier float64 `json:"star_gold_multiplier"`

	Enemy Enemy `json:"enemy"`

	// Cumulative counters, reset only by prestige
	TotalClicks     int `json:"total_clicks"`
	TotalCrits      int `json:"total_crits"`
	EnemiesDefeated int `json:"enemies_defeated"`

	Buffs  buff.Set    `json:"buffs"`
	Skills buff.Skills `json:"skills"`

	// Progress holds occurrence counters for achievements that count events
	// across triggers rather than reading a state snapshot.
	Progress map[string]int `json:"progress"`
}

// New returns the initial state for a fresh session.
func New(bal config.Balance) *State {
	s := &State{
		ClickUpgradeCost: bal.ClickUpgradeBaseCost,
		CritUpgradeCost:  bal.CritUpgradeBaseCost,

		ClickDamage:    bal.BaseClickDamage,
		CritMultiplier: bal.CritMultiplier,

		HelperLevels: map[string]int{},
		HelperCosts:  map[string]int{},
		HelperDPS:    map[string]float64{},

		AchievementClickMult:  1.0,
		AchievementGoldMult:   1.0,
		AchievementHelperMult: 1.0,

		Buffs:    buff.NewSet(),
		Skills:   buff.NewSkills(),
		Progress: map[string]int{},
	}
	for _, def := range helper.Types {
		s.HelperLevels[def.ID] = 0
		s.HelperCosts[def.ID] = def.BaseCost
		s.HelperDPS[def.ID] = 0
	}
	return s
}

// EffectiveClickDamage combines purchased damage with the permanent
// achievement multiplier. Buff and skill factors are applied by the caller.
func (s *State) EffectiveClickDamage() float64 {
	return math.Round(s.ClickDamage * s.AchievementClickMult)
}

// EffectiveCritChance is the purchased chance plus the permanent bonus,
// before any crit buff.
func (s *State) EffectiveCritChance() float64 {
	return s.CritChance + s.AchievementCritBonus
}

// RecalcDPS rebuilds per-type and aggregate helper damage from levels and the
// helper achievement multiplier. Call after any helper purchase, any helper
// multiplier change, and after load.
func (s *State) RecalcDPS() {
	s.DPS = 0
	if !s.HelpersUnlocked {
		for _, def := range helper.Types {
			s.HelperDPS[def.ID] = 0
		}
		return
	}
	for _, def := range helper.Types {
		dps := formula.HelperDPS(s.HelperLevels[def.ID], def.BaseDamage, def.DamageExponent, s.AchievementHelperMult)
		s.HelperDPS[def.ID] = dps
		s.DPS += dps
	}
}

// ApplyDamage reduces the enemy's HP by at most its remaining HP and reports
// whether this blow defeated it. HP never goes negative.
func (s *State) ApplyDamage(amount float64) (dealt float64, defeated bool) {
	if !s.Enemy.Alive() || amount <= 0 {
		return 0, false
	}
	dealt = math.Min(amount, s.Enemy.CurrentHP)
	s.Enemy.CurrentHP -= dealt
	if s.Enemy.CurrentHP <= 0 {
		s.Enemy.CurrentHP = 0
		defeated = true
	}
	return dealt, defeated
}
