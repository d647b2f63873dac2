package buff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestBuff_ActivateAndExpire(t *testing.T) {
	s := NewSet()

	ok := s.Activate(GoldBoost, 1.5, 30*time.Second, t0)
	require.True(t, ok)
	assert.True(t, s.Active(GoldBoost))
	assert.Equal(t, 1.5, s.Multiplier(GoldBoost))

	// Still running one tick before expiry.
	expired := s.ExpireDue(t0.Add(29 * time.Second))
	assert.Empty(t, expired)
	assert.True(t, s.Active(GoldBoost))

	expired = s.ExpireDue(t0.Add(30 * time.Second))
	assert.Equal(t, []string{GoldBoost}, expired)
	assert.False(t, s.Active(GoldBoost))
	assert.Equal(t, 1.0, s.Multiplier(GoldBoost))

	// Expiry reported exactly once.
	expired = s.ExpireDue(t0.Add(31 * time.Second))
	assert.Empty(t, expired)
}

func TestBuff_ReactivationRefreshes(t *testing.T) {
	s := NewSet()
	s.Activate(DamageBoost, 2.0, 15*time.Second, t0)
	s.Activate(DamageBoost, 2.0, 15*time.Second, t0.Add(10*time.Second))

	// Old end time would have passed; refreshed one has not.
	assert.Empty(t, s.ExpireDue(t0.Add(16*time.Second)))
	assert.True(t, s.Active(DamageBoost))

	assert.NotEmpty(t, s.ExpireDue(t0.Add(25*time.Second)))
	assert.False(t, s.Active(DamageBoost))
}

func TestBuff_UnknownKind(t *testing.T) {
	s := NewSet()
	assert.False(t, s.Activate("hasteBoost", 2.0, time.Second, t0))
	assert.Equal(t, 1.0, s.Multiplier("hasteBoost"))
}

func TestSkill_LockedThenCooldown(t *testing.T) {
	s := NewSkills()

	err := s.Activate(DoubleDamage, t0)
	assert.ErrorIs(t, err, ErrSkillLocked)

	s.Unlock(DoubleDamage)
	require.NoError(t, s.Activate(DoubleDamage, t0))
	assert.Equal(t, 2.0, s.Multiplier(DoubleDamage))

	// Cooldown starts at activation, so a retry during the active window
	// already reports cooling.
	err = s.Activate(DoubleDamage, t0.Add(5*time.Second))
	assert.ErrorIs(t, err, ErrSkillCooling)

	// Active window ends at 10s; cooldown keeps running until 60s.
	ended := s.ExpireDue(t0.Add(10 * time.Second))
	assert.Equal(t, []string{DoubleDamage}, ended)
	assert.Equal(t, 1.0, s.Multiplier(DoubleDamage))

	err = s.Activate(DoubleDamage, t0.Add(59*time.Second))
	assert.ErrorIs(t, err, ErrSkillCooling)

	require.NoError(t, s.Activate(DoubleDamage, t0.Add(60*time.Second)))
}
