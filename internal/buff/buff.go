// Package buff implements the timed multiplier systems: buffs dropped by
// special enemies and player-activated skills with cooldowns.
package buff

import (
	"errors"
	"time"
)

// Buff kinds. A kind has at most one active instance; re-activation refreshes.
const (
	GoldBoost   = "goldBoost"
	DamageBoost = "damageBoost"
	CritBoost   = "critBoost"
)

// Skill kinds.
const (
	DoubleDamage = "doubleDamage"
)

var (
	ErrSkillLocked  = errors.New("skill not unlocked")
	ErrSkillCooling = errors.New("skill on cooldown")
)

// Buff is one timed multiplicative effect with an absolute expiry.
type Buff struct {
	Active     bool      `json:"active"`
	Multiplier float64   `json:"multiplier"`
	EndTime    time.Time `json:"end_time"`
}

// Set holds every buff kind, active or not.
type Set map[string]Buff

func NewSet() Set {
	return Set{
		GoldBoost:   {Multiplier: 1.0},
		DamageBoost: {Multiplier: 1.0},
		CritBoost:   {Multiplier: 1.0},
	}
}

// Activate arms the buff, overwriting any prior instance of the same kind.
func (s Set) Activate(kind string, multiplier float64, duration time.Duration, now time.Time) bool {
	if _, ok := s[kind]; !ok {
		return false
	}
	s[kind] = Buff{
		Active:     true,
		Multiplier: multiplier,
		EndTime:    now.Add(duration),
	}
	return true
}

// ExpireDue deactivates every buff whose end time has passed and returns the
// kinds that expired on this check.
func (s Set) ExpireDue(now time.Time) []string {
	var expired []string
	for kind, b := range s {
		if b.Active && !now.Before(b.EndTime) {
			s[kind] = Buff{Multiplier: 1.0}
			expired = append(expired, kind)
		}
	}
	return expired
}

// Multiplier returns the kind's factor, 1.0 when inactive.
func (s Set) Multiplier(kind string) float64 {
	b, ok := s[kind]
	if !ok || !b.Active {
		return 1.0
	}
	return b.Multiplier
}

// Active reports whether the kind is currently running.
func (s Set) Active(kind string) bool {
	b, ok := s[kind]
	return ok && b.Active
}

// Skill is a player-activated effect. Cooldown starts at activation, so the
// active window and the cooldown overlap.
type Skill struct {
	Unlocked         bool          `json:"unlocked"`
	Active           bool          `json:"active"`
	ActiveEnd        time.Time     `json:"active_end"`
	CooldownEnd      time.Time     `json:"cooldown_end"`
	ActiveDuration   time.Duration `json:"active_duration"`
	CooldownDuration time.Duration `json:"cooldown_duration"`
	Multiplier       float64       `json:"multiplier"`
}

// Skills holds every skill kind.
type Skills map[string]*Skill

func NewSkills() Skills {
	return Skills{
		DoubleDamage: {
			ActiveDuration:   10 * time.Second,
			CooldownDuration: 60 * time.Second,
			Multiplier:       2.0,
		},
	}
}

// Activate starts the skill. It fails distinctly when the skill is still
// locked versus still cooling down.
func (s Skills) Activate(kind string, now time.Time) error {
	sk, ok := s[kind]
	if !ok || !sk.Unlocked {
		return ErrSkillLocked
	}
	if now.Before(sk.CooldownEnd) {
		return ErrSkillCooling
	}
	sk.Active = true
	sk.ActiveEnd = now.Add(sk.ActiveDuration)
	sk.CooldownEnd = now.Add(sk.CooldownDuration)
	return nil
}

// ExpireDue ends skills whose active window has passed and returns the kinds
// that ended on this check. Cooldowns keep running.
func (s Skills) ExpireDue(now time.Time) []string {
	var ended []string
	for kind, sk := range s {
		if sk.Active && !now.Before(sk.ActiveEnd) {
			sk.Active = false
			ended = append(ended, kind)
		}
	}
	return ended
}

// Multiplier returns the kind's factor, 1.0 when inactive.
func (s Skills) Multiplier(kind string) float64 {
	sk, ok := s[kind]
	if !ok || !sk.Active {
		return 1.0
	}
	return sk.Multiplier
}

// Unlock latches the skill available. One-way.
func (s Skills) Unlock(kind string) {
	if sk, ok := s[kind]; ok {
		sk.Unlocked = true
	}
}
