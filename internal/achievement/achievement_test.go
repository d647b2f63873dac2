package achievement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcjdh/eternal-click-slayer/internal/config"
	"github.com/mcjdh/eternal-click-slayer/internal/enemy"
	"github.com/mcjdh/eternal-click-slayer/internal/helper"
	"github.com/mcjdh/eternal-click-slayer/internal/state"
)

func newTestEngine(t *testing.T) (*Engine, *state.State) {
	t.Helper()
	bal := config.Default()
	return NewEngine(Defaults(bal), nil), state.New(bal)
}

func TestEvaluate_RewardRunsExactlyOnce(t *testing.T) {
	eng, st := newTestEngine(t)

	st.TotalClicks = 10
	unlocked := eng.Evaluate(TriggerClick, Context{}, st)
	require.Len(t, unlocked, 1)
	assert.Equal(t, "click10", unlocked[0].ID)
	assert.True(t, st.CritUnlocked)
	assert.InDelta(t, 1.05, st.AchievementClickMult, 1e-9)

	// Condition still holds; the latch must block a second reward.
	unlocked = eng.Evaluate(TriggerClick, Context{}, st)
	assert.Empty(t, unlocked)
	assert.InDelta(t, 1.05, st.AchievementClickMult, 1e-9)
}

func TestEvaluate_UpgradeContext(t *testing.T) {
	eng, st := newTestEngine(t)

	// A crit purchase does not count as the first damage upgrade.
	st.ClickDamage = 2
	unlocked := eng.Evaluate(TriggerUpgrade, Context{UpgradeKind: "critChance"}, st)
	for _, a := range unlocked {
		assert.NotEqual(t, "firstUpgrade", a.ID)
	}

	unlocked = eng.Evaluate(TriggerUpgrade, Context{UpgradeKind: "click"}, st)
	require.Len(t, unlocked, 1)
	assert.Equal(t, "firstUpgrade", unlocked[0].ID)
	assert.InDelta(t, 0.005, st.AchievementCritBonus, 1e-9)
}

func TestEvaluate_HelperUnlocksCascade(t *testing.T) {
	eng, st := newTestEngine(t)
	st.HelpersUnlocked = true

	st.HelperLevels[helper.Warrior] = 1
	unlocked := eng.Evaluate(TriggerUpgrade, Context{UpgradeKind: "helper:warrior", HelperID: helper.Warrior}, st)
	require.Len(t, unlocked, 1)
	assert.Equal(t, "helperLevel1", unlocked[0].ID)
	// Reward recalculates DPS with the new helper multiplier.
	assert.InDelta(t, 1.5*1.05, st.DPS, 1e-9)

	st.HelperLevels[helper.Mage] = 1
	st.HelperLevels[helper.Rogue] = 1
	unlocked = eng.Evaluate(TriggerUpgrade, Context{UpgradeKind: "helper:rogue", HelperID: helper.Rogue}, st)
	require.Len(t, unlocked, 1)
	assert.Equal(t, "allHelpers", unlocked[0].ID)
	assert.InDelta(t, 1.15, st.AchievementGoldMult, 1e-9)
}

func TestEvaluate_BossAndSpecialAreTriggerScoped(t *testing.T) {
	eng, st := newTestEngine(t)

	// A spawn pass with boss context must not fire the defeat achievement.
	unlocked := eng.Evaluate(TriggerSpawn, Context{WasBoss: true}, st)
	for _, a := range unlocked {
		assert.NotEqual(t, "firstBoss", a.ID)
	}

	unlocked = eng.Evaluate(TriggerEnemyDefeated, Context{WasBoss: true}, st)
	require.Len(t, unlocked, 1)
	assert.Equal(t, "firstBoss", unlocked[0].ID)
	assert.InDelta(t, 1.25, st.AchievementGoldMult, 1e-9)
	assert.InDelta(t, 1.10, st.AchievementClickMult, 1e-9)
}

func TestEvaluate_TreasureHunterCountsAcrossTriggers(t *testing.T) {
	eng, st := newTestEngine(t)

	ctx := Context{WasSpecial: true, SpecialType: enemy.TreasureGoblin}
	for i := 0; i < 4; i++ {
		unlocked := eng.Evaluate(TriggerEnemyDefeated, ctx, st)
		for _, a := range unlocked {
			assert.NotEqual(t, "treasureHunter", a.ID)
		}
	}
	assert.Equal(t, 4, st.Progress["treasureGoblinsDefeated"])

	unlocked := eng.Evaluate(TriggerEnemyDefeated, ctx, st)
	ids := make([]string, 0, len(unlocked))
	for _, a := range unlocked {
		ids = append(ids, a.ID)
	}
	assert.Contains(t, ids, "treasureHunter")

	// Other defeat passes must not advance the counter.
	eng2, st2 := newTestEngine(t)
	eng2.Evaluate(TriggerEnemyDefeated, Context{WasSpecial: true, SpecialType: enemy.RareFairy}, st2)
	assert.Equal(t, 0, st2.Progress["treasureGoblinsDefeated"])
}

func TestEvaluate_PrestigeLatchesSurviveReset(t *testing.T) {
	bal := config.Default()
	eng := NewEngine(Defaults(bal), nil)
	st := state.New(bal)

	st.TotalClicks = 10
	st.Enemy.Level = bal.PrestigeUnlockLevel
	eng.Evaluate(TriggerClick, Context{}, st)
	require.True(t, eng.Achieved("click10"))
	require.True(t, eng.Achieved("prestigeReady"))
	require.True(t, st.PrestigeUnlocked)

	eng.ResetForPrestige()
	assert.False(t, eng.Achieved("click10"))
	assert.True(t, eng.Achieved("prestigeReady"))

	// firstPrestige fires only on the prestige trigger itself.
	fresh := state.New(bal)
	fresh.TotalPrestiges = 1
	unlocked := eng.Evaluate(TriggerPrestige, Context{}, fresh)
	require.Len(t, unlocked, 1)
	assert.Equal(t, "firstPrestige", unlocked[0].ID)
	assert.InDelta(t, 1.10, fresh.AchievementClickMult, 1e-9)
}

func TestRestore_IgnoresUnknownIDs(t *testing.T) {
	eng, st := newTestEngine(t)

	eng.Restore(map[string]bool{
		"click10":     true,
		"retiredGoal": true,
	})
	assert.True(t, eng.Achieved("click10"))
	assert.False(t, eng.Achieved("retiredGoal"))

	// Restored latch blocks the reward on replayed conditions.
	st.TotalClicks = 100
	unlocked := eng.Evaluate(TriggerClick, Context{}, st)
	for _, a := range unlocked {
		assert.NotEqual(t, "click10", a.ID)
	}
	assert.InDelta(t, 1.0, st.AchievementClickMult, 1e-9)
}

func TestNotify_CalledPerUnlock(t *testing.T) {
	bal := config.Default()
	var seen []string
	eng := NewEngine(Defaults(bal), func(a Achievement) {
		seen = append(seen, a.ID)
	})
	st := state.New(bal)

	st.TotalClicks = 10
	st.EnemiesDefeated = 5
	eng.Evaluate(TriggerEnemyDefeated, Context{}, st)
	assert.Equal(t, []string{"click10", "defeat5"}, seen)
}
