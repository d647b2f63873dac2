package config

import "time"

// Balance holds every gameplay tuning constant in one place.
// The zero value is not usable; start from Default() and override.
type Balance struct {
	// Enemy scaling
	EnemyHPBase        float64 `json:"enemy_hp_base" yaml:"enemy_hp_base"`
	EnemyHPScale       float64 `json:"enemy_hp_scale" yaml:"enemy_hp_scale"`
	EnemyGoldBase      float64 `json:"enemy_gold_base" yaml:"enemy_gold_base"`
	EnemyGoldScale     float64 `json:"enemy_gold_scale" yaml:"enemy_gold_scale"`
	EnemyGoldLinearAdd float64 `json:"enemy_gold_linear_add" yaml:"enemy_gold_linear_add"`

	// Bosses
	BossLevelInterval int     `json:"boss_level_interval" yaml:"boss_level_interval"`
	BossHPExponent    float64 `json:"boss_hp_exponent" yaml:"boss_hp_exponent"`
	BossBaseHPMult    float64 `json:"boss_base_hp_mult" yaml:"boss_base_hp_mult"`
	BossGoldMult      float64 `json:"boss_gold_mult" yaml:"boss_gold_mult"`

	// Special enemies
	SpecialMinLevel int `json:"special_min_level" yaml:"special_min_level"`

	// Player offense
	BaseClickDamage float64 `json:"base_click_damage" yaml:"base_click_damage"`
	CritMultiplier  float64 `json:"crit_multiplier" yaml:"crit_multiplier"`
	CritChanceMax   float64 `json:"crit_chance_max" yaml:"crit_chance_max"`
	CritChanceStep  float64 `json:"crit_chance_step" yaml:"crit_chance_step"`

	// Upgrade cost curves
	ClickUpgradeBaseCost  int     `json:"click_upgrade_base_cost" yaml:"click_upgrade_base_cost"`
	ClickUpgradeScale     float64 `json:"click_upgrade_scale" yaml:"click_upgrade_scale"`
	ClickUpgradeLinearAdd float64 `json:"click_upgrade_linear_add" yaml:"click_upgrade_linear_add"`
	CritUpgradeBaseCost   int     `json:"crit_upgrade_base_cost" yaml:"crit_upgrade_base_cost"`
	CritUpgradeScale      float64 `json:"crit_upgrade_scale" yaml:"crit_upgrade_scale"`
	CritUpgradeLinearAdd  float64 `json:"crit_upgrade_linear_add" yaml:"crit_upgrade_linear_add"`

	// Feature unlock thresholds
	SkillsUnlockLevel   int `json:"skills_unlock_level" yaml:"skills_unlock_level"`
	PrestigeUnlockLevel int `json:"prestige_unlock_level" yaml:"prestige_unlock_level"`

	// Prestige
	LevelsPerStar int     `json:"levels_per_star" yaml:"levels_per_star"`
	StarGoldRate  float64 `json:"star_gold_rate" yaml:"star_gold_rate"`

	// Scheduling
	TickInterval     time.Duration `json:"tick_interval" yaml:"tick_interval"`
	RespawnDelay     time.Duration `json:"respawn_delay" yaml:"respawn_delay"`
	AutosaveInterval time.Duration `json:"autosave_interval" yaml:"autosave_interval"`
}

// Default returns the balance the game ships with. The numbers come from the
// current tuning generation; older gold/star curves are retired for good.
func Default() Balance {
	return Balance{
		EnemyHPBase:        10,
		EnemyHPScale:       1.16,
		EnemyGoldBase:      3,
		EnemyGoldScale:     1.10,
		EnemyGoldLinearAdd: 0.3,

		BossLevelInterval: 5,
		BossHPExponent:    1.1,
		BossBaseHPMult:    3.5,
		BossGoldMult:      4.5,

		SpecialMinLevel: 10,

		BaseClickDamage: 1,
		CritMultiplier:  3,
		CritChanceMax:   0.50,
		CritChanceStep:  0.01,

		ClickUpgradeBaseCost:  8,
		ClickUpgradeScale:     1.12,
		ClickUpgradeLinearAdd: 1,
		CritUpgradeBaseCost:   40,
		CritUpgradeScale:      1.35,
		CritUpgradeLinearAdd:  20,

		SkillsUnlockLevel:   15,
		PrestigeUnlockLevel: 25,

		LevelsPerStar: 25,
		StarGoldRate:  0.02,

		TickInterval:     500 * time.Millisecond,
		RespawnDelay:     500 * time.Millisecond,
		AutosaveInterval: 2 * time.Minute,
	}
}

// Casual softens the HP curve and cheapens upgrades.
func Casual() Balance {
	cfg := Default()
	cfg.EnemyHPScale = 1.13
	cfg.ClickUpgradeBaseCost = 6
	cfg.CritUpgradeBaseCost = 30
	cfg.SpecialMinLevel = 5
	return cfg
}

// Hard steepens scaling for players who want to earn their stars.
func Hard() Balance {
	cfg := Default()
	cfg.EnemyHPScale = 1.19
	cfg.BossBaseHPMult = 4.5
	cfg.ClickUpgradeScale = 1.15
	cfg.CritUpgradeScale = 1.40
	return cfg
}
