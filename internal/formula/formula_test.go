package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnemyMaxHP_MonotonicNonDecreasing(t *testing.T) {
	prev := EnemyMaxHP(1, 10, 1.16)
	assert.Equal(t, float64(10), prev)

	for level := 2; level <= 200; level++ {
		hp := EnemyMaxHP(level, 10, 1.16)
		assert.GreaterOrEqual(t, hp, prev, "HP dropped at level %d", level)
		prev = hp
	}
}

func TestEnemyGoldReward_StrictlyPositive(t *testing.T) {
	for level := 1; level <= 100; level++ {
		gold := EnemyGoldReward(level, 3, 0.3, 1.10)
		assert.GreaterOrEqual(t, gold, float64(1), "level %d", level)
	}
}

func TestEnemyGoldReward_Level1(t *testing.T) {
	// floor((3 + 1*0.3) * 1.1^0) + 1 = floor(3.3) + 1 = 4
	assert.Equal(t, float64(4), EnemyGoldReward(1, 3, 0.3, 1.10))
}

func TestBossMultipliers(t *testing.T) {
	// First boss level: 3.5 * (5/5)^1.1 = 3.5
	assert.InDelta(t, 3.5, BossHPMultiplier(5, 5, 1.1, 3.5), 1e-9)
	// Gold: 4.5 * (1 + 5/25) = 5.4
	assert.InDelta(t, 5.4, BossGoldMultiplier(5, 5, 4.5), 1e-9)
}

func TestNextClickDamage_SmallSteps(t *testing.T) {
	assert.Equal(t, float64(2), NextClickDamage(1))
	assert.Equal(t, float64(3), NextClickDamage(2))
	// 100 + 1 + floor(5) = 106
	assert.Equal(t, float64(106), NextClickDamage(100))
}

func TestNextUpgradeCost(t *testing.T) {
	// floor(8*1.12 + 1) = floor(9.96) = 9
	assert.Equal(t, 9, NextUpgradeCost(8, 1.12, 1))
	// floor(40*1.35 + 20) = 74
	assert.Equal(t, 74, NextUpgradeCost(40, 1.35, 20))
}

func TestHelperDPS(t *testing.T) {
	assert.Zero(t, HelperDPS(0, 1.5, 1.0, 1.0))
	assert.InDelta(t, 1.5, HelperDPS(1, 1.5, 1.0, 1.0), 1e-9)
	assert.InDelta(t, 15, HelperDPS(10, 1.5, 1.0, 1.0), 1e-9)
	// Achievement multiplier applies on top.
	assert.InDelta(t, 15.75, HelperDPS(10, 1.5, 1.0, 1.05), 1e-9)
}

func TestHelperDPS_ExponentCrossover(t *testing.T) {
	// Rogue (1.0 base, exp 1.2) overtakes mage (3.0 base, exp 0.8) eventually.
	assert.Less(t, HelperDPS(2, 1.0, 1.2, 1.0), HelperDPS(2, 3.0, 0.8, 1.0))
	assert.Greater(t, HelperDPS(50, 1.0, 1.2, 1.0), HelperDPS(50, 3.0, 0.8, 1.0))
}

func TestStarsEarned_FloorOfOne(t *testing.T) {
	for level := 1; level <= 24; level++ {
		assert.Equal(t, float64(1), StarsEarned(level, 25), "level %d", level)
	}
}

func TestStarsEarned_Milestones(t *testing.T) {
	assert.Equal(t, float64(1), StarsEarned(25, 25))
	assert.Equal(t, float64(2), StarsEarned(50, 25))
	// 30 levels = 1 full star + floor(5/25*10)/10 = 1.2
	assert.InDelta(t, 1.2, StarsEarned(30, 25), 1e-9)
	assert.InDelta(t, 1.9, StarsEarned(49, 25), 1e-9)
}
