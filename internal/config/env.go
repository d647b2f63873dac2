package config

import (
	"os"
	"strconv"
)

// FromEnv loads balance configuration from environment variables,
// falling back to defaults for anything not set.
func FromEnv() Balance {
	cfg := Default()

	if val := getEnvFloat("ENEMY_HP_SCALE"); val > 0 {
		cfg.EnemyHPScale = val
	}
	if val := getEnvFloat("ENEMY_GOLD_SCALE"); val > 0 {
		cfg.EnemyGoldScale = val
	}
	if val := getEnvInt("BOSS_LEVEL_INTERVAL"); val > 0 {
		cfg.BossLevelInterval = val
	}
	if val := getEnvInt("SPECIAL_MIN_LEVEL"); val > 0 {
		cfg.SpecialMinLevel = val
	}
	if val := getEnvInt("CLICK_UPGRADE_BASE_COST"); val > 0 {
		cfg.ClickUpgradeBaseCost = val
	}
	if val := getEnvInt("CRIT_UPGRADE_BASE_COST"); val > 0 {
		cfg.CritUpgradeBaseCost = val
	}
	if val := getEnvInt("SKILLS_UNLOCK_LEVEL"); val > 0 {
		cfg.SkillsUnlockLevel = val
	}
	if val := getEnvInt("PRESTIGE_UNLOCK_LEVEL"); val > 0 {
		cfg.PrestigeUnlockLevel = val
	}
	if val := getEnvInt("LEVELS_PER_STAR"); val > 0 {
		cfg.LevelsPerStar = val
	}

	// Support preset modes
	if mode := os.Getenv("DIFFICULTY"); mode != "" {
		switch mode {
		case "casual":
			return Casual()
		case "hard":
			return Hard()
		}
	}

	return cfg
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}

func getEnvFloat(key string) float64 {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0
	}
	return num
}
