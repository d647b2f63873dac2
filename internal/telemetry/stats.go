package telemetry

import (
	"encoding/json"
	"time"
)

// Stats summarizes a session's recent pace for balance tuning.
type Stats struct {
	Period       string            `json:"period"`
	EventCounts  map[EventType]int `json:"event_counts"`
	Kills        int               `json:"kills"`
	BossKills    int               `json:"boss_kills"`
	SpecialKills int               `json:"special_kills"`
	Crits        int               `json:"crits"`
	GoldEarned   int               `json:"gold_earned"`
	Upgrades     map[string]int    `json:"upgrades"`
	Prestiges    int               `json:"prestiges"`
}

// CalculateStats aggregates the events recorded since the given time.
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:      since.Format(time.RFC3339),
		EventCounts: make(map[EventType]int),
		Upgrades:    make(map[string]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventEnemyDefeated, EventBossDefeated, EventSpecialDefeated:
			stats.Kills++
			if event.Type == EventBossDefeated {
				stats.BossKills++
			}
			if event.Type == EventSpecialDefeated {
				stats.SpecialKills++
			}
			if gold, ok := metadata["gold"].(float64); ok {
				stats.GoldEarned += int(gold)
			}
		case EventCrit:
			stats.Crits++
		case EventUpgradePurchased:
			if kind, ok := metadata["kind"].(string); ok {
				stats.Upgrades[kind]++
			}
		case EventPrestige:
			stats.Prestiges++
		}
	}
	return stats, nil
}
