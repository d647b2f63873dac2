// Package formula holds the pure progression math. Every function is
// deterministic in its inputs; randomness lives in the combat engine.
package formula

import "math"

// EnemyMaxHP returns the max HP of a regular enemy at the given level.
func EnemyMaxHP(level int, base, scale float64) float64 {
	return math.Floor(base * math.Pow(scale, float64(level-1)))
}

// EnemyGoldReward returns the base gold drop at the given level. The trailing
// +1 keeps rewards strictly positive, and the linear term keeps gold income
// from falling behind HP growth at high levels.
func EnemyGoldReward(level int, base, linearAdd, scale float64) float64 {
	bonus := float64(level) * linearAdd
	return math.Floor((base+bonus)*math.Pow(scale, float64(level-1))) + 1
}

// BossHPMultiplier is applied on top of EnemyMaxHP on boss levels.
func BossHPMultiplier(level, interval int, exponent, baseMult float64) float64 {
	return baseMult * math.Pow(float64(level)/float64(interval), exponent)
}

// BossGoldMultiplier is applied on top of EnemyGoldReward on boss levels.
func BossGoldMultiplier(level, interval int, goldMult float64) float64 {
	return goldMult * (1 + float64(level)/float64(interval*5))
}

// NextClickDamage grows click damage super-linearly but in small steps, so
// each purchase stays meaningful at both low and high damage values.
func NextClickDamage(current float64) float64 {
	return current + 1 + math.Floor(current*0.05)
}

// NextUpgradeCost compounds the current cost and adds a linear floor that
// keeps early purchases from being trivially cheap.
func NextUpgradeCost(current int, scale, linearAdd float64) int {
	return int(math.Floor(float64(current)*scale + linearAdd))
}

// HelperDPS returns one helper type's damage-per-second contribution.
// The scaling exponent lets archetypes diverge late-game: an exponent above 1
// overtakes one below 1 once levels grow.
func HelperDPS(level int, baseDamage, scalingExponent, achievementMult float64) float64 {
	if level <= 0 {
		return 0
	}
	return baseDamage * math.Pow(float64(level), scalingExponent) * achievementMult
}

// StarsEarned returns the stars granted for prestiging at the given enemy
// level: one per 25 levels plus a tenth per fractional progress, never less
// than one so prestige is never a net loss.
func StarsEarned(level, levelsPerStar int) float64 {
	full := float64(level / levelsPerStar)
	partial := float64(level%levelsPerStar) / float64(levelsPerStar)
	fractional := math.Floor(partial*10) / 10
	return math.Max(1, full+fractional)
}
