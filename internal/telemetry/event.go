// Package telemetry keeps a bounded in-memory log of gameplay events and
// aggregates balance stats from it. It backs the events feed and the stats
// endpoint; nothing here is persisted.
package telemetry

import "time"

type EventType string

const (
	EventCrit                EventType = "crit"
	EventEnemyDefeated       EventType = "enemy_defeated"
	EventBossDefeated        EventType = "boss_defeated"
	EventSpecialDefeated     EventType = "special_defeated"
	EventUpgradePurchased    EventType = "upgrade_purchased"
	EventSkillActivated      EventType = "skill_activated"
	EventBuffGained          EventType = "buff_gained"
	EventAchievementUnlocked EventType = "achievement_unlocked"
	EventPrestige            EventType = "prestige"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
