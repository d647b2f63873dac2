package achievement

import (
	"github.com/mcjdh/eternal-click-slayer/internal/config"
	"github.com/mcjdh/eternal-click-slayer/internal/enemy"
	"github.com/mcjdh/eternal-click-slayer/internal/helper"
	"github.com/mcjdh/eternal-click-slayer/internal/state"
)

// progress counter keys
const keyTreasureGoblins = "treasureGoblinsDefeated"

// Defaults returns the shipped achievement table. Order matters: rewards from
// earlier entries are visible to later predicates within one evaluation pass.
func Defaults(bal config.Balance) []Achievement {
	return []Achievement{
		{
			ID:    "click10",
			Desc:  "Attack 10 times",
			Glyph: "👆",
			Predicate: func(_ Trigger, _ Context, st *state.State) bool {
				return st.TotalClicks >= 10
			},
			Reward: func(st *state.State) {
				st.CritUnlocked = true
				st.AchievementClickMult += 0.05
			},
		},
		{
			ID:    "defeat5",
			Desc:  "Defeat 5 enemies",
			Glyph: "⚔️",
			Predicate: func(_ Trigger, _ Context, st *state.State) bool {
				return st.EnemiesDefeated >= 5
			},
			Reward: func(st *state.State) {
				st.HelpersUnlocked = true
				st.AchievementGoldMult += 0.10
				st.RecalcDPS()
			},
		},
		{
			ID:    "firstUpgrade",
			Desc:  "Buy your first damage upgrade",
			Glyph: "💪",
			Predicate: func(trigger Trigger, ctx Context, st *state.State) bool {
				return trigger == TriggerUpgrade && ctx.UpgradeKind == "click" && st.ClickDamage > 1
			},
			Reward: func(st *state.State) {
				st.AchievementCritBonus += 0.005
			},
		},
		{
			ID:    "level10",
			Desc:  "Reach enemy level 10",
			Glyph: "🔟",
			Predicate: func(_ Trigger, _ Context, st *state.State) bool {
				return st.Enemy.Level >= 10
			},
			Reward: func(st *state.State) {
				st.AchievementClickMult += 0.10
			},
		},
		{
			ID:    "crit10",
			Desc:  "Land 10 critical hits",
			Glyph: "💥",
			Predicate: func(_ Trigger, _ Context, st *state.State) bool {
				return st.TotalCrits >= 10
			},
			Reward: func(st *state.State) {
				st.AchievementCritBonus += 0.01
			},
		},
		{
			ID:    "helperLevel1",
			Desc:  "Hire your first helper",
			Glyph: "🤝",
			Predicate: func(trigger Trigger, ctx Context, st *state.State) bool {
				return trigger == TriggerUpgrade && ctx.HelperID != "" && st.HelperLevels[ctx.HelperID] >= 1
			},
			Reward: func(st *state.State) {
				st.AchievementHelperMult += 0.05
				st.RecalcDPS()
			},
		},
		{
			ID:    "warriorLevel5",
			Desc:  "Raise the Warrior to level 5",
			Glyph: "🛡️",
			Predicate: func(_ Trigger, _ Context, st *state.State) bool {
				return st.HelperLevels[helper.Warrior] >= 5
			},
			Reward: func(st *state.State) {
				st.AchievementHelperMult += 0.07
				st.RecalcDPS()
			},
		},
		{
			ID:    "mageLevel5",
			Desc:  "Raise the Mage to level 5",
			Glyph: "🧙",
			Predicate: func(_ Trigger, _ Context, st *state.State) bool {
				return st.HelperLevels[helper.Mage] >= 5
			},
			Reward: func(st *state.State) {
				st.AchievementHelperMult += 0.10
				st.RecalcDPS()
			},
		},
		{
			ID:    "rogueLevel5",
			Desc:  "Raise the Rogue to level 5",
			Glyph: "🗡️",
			Predicate: func(_ Trigger, _ Context, st *state.State) bool {
				return st.HelperLevels[helper.Rogue] >= 5
			},
			Reward: func(st *state.State) {
				st.AchievementCritBonus += 0.05
			},
		},
		{
			ID:    "allHelpers",
			Desc:  "Hire all three helper types",
			Glyph: "👥",
			Predicate: func(_ Trigger, _ Context, st *state.State) bool {
				for _, def := range helper.Types {
					if st.HelperLevels[def.ID] == 0 {
						return false
					}
				}
				return true
			},
			Reward: func(st *state.State) {
				st.AchievementGoldMult += 0.15
			},
		},
		{
			ID:    "firstBoss",
			Desc:  "Defeat your first boss",
			Glyph: "👑",
			Predicate: func(trigger Trigger, ctx Context, _ *state.State) bool {
				return trigger == TriggerEnemyDefeated && ctx.WasBoss
			},
			Reward: func(st *state.State) {
				st.AchievementGoldMult += 0.25
				st.AchievementClickMult += 0.10
			},
		},
		{
			ID:    "damage15",
			Desc:  "Reach 15 click damage",
			Glyph: "🔥",
			Predicate: func(_ Trigger, _ Context, st *state.State) bool {
				return st.ClickDamage >= 15
			},
			Reward: func(st *state.State) {
				st.AchievementCritBonus += 0.01
			},
		},
		{
			ID:    "dps10",
			Desc:  "Reach 10 damage per second",
			Glyph: "⏱️",
			Predicate: func(_ Trigger, _ Context, st *state.State) bool {
				return st.DPS >= 10
			},
			Reward: func(st *state.State) {
				st.AchievementGoldMult += 0.10
			},
		},
		{
			ID:    "dps50",
			Desc:  "Reach 50 damage per second",
			Glyph: "🚀",
			Predicate: func(_ Trigger, _ Context, st *state.State) bool {
				return st.DPS >= 50
			},
			Reward: func(st *state.State) {
				st.AchievementHelperMult += 0.15
				st.RecalcDPS()
			},
		},
		{
			ID:    "firstSpecial",
			Desc:  "Defeat a special enemy",
			Glyph: "✨",
			Predicate: func(trigger Trigger, ctx Context, _ *state.State) bool {
				return trigger == TriggerEnemyDefeated && ctx.WasSpecial
			},
			Reward: func(st *state.State) {
				st.AchievementGoldMult += 0.15
			},
		},
		{
			ID:    "treasureHunter",
			Desc:  "Defeat 5 treasure goblins",
			Glyph: "💰",
			Predicate: func(trigger Trigger, ctx Context, st *state.State) bool {
				if trigger == TriggerEnemyDefeated && ctx.SpecialType == enemy.TreasureGoblin {
					st.Progress[keyTreasureGoblins]++
				}
				return st.Progress[keyTreasureGoblins] >= 5
			},
			Reward: func(st *state.State) {
				st.AchievementGoldMult += 0.20
			},
		},
		{
			ID:       "prestigeReady",
			Desc:     "Reach the prestige threshold",
			Glyph:    "⭐",
			Prestige: true,
			Predicate: func(_ Trigger, _ Context, st *state.State) bool {
				return st.Enemy.Level >= bal.PrestigeUnlockLevel
			},
			Reward: func(st *state.State) {
				st.PrestigeUnlocked = true
			},
		},
		{
			ID:       "firstPrestige",
			Desc:     "Prestige for the first time",
			Glyph:    "🌟",
			Prestige: true,
			Predicate: func(trigger Trigger, _ Context, st *state.State) bool {
				return trigger == TriggerPrestige && st.TotalPrestiges >= 1
			},
			Reward: func(st *state.State) {
				st.AchievementClickMult += 0.10
			},
		},
	}
}
