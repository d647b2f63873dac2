package prestige

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcjdh/eternal-click-slayer/internal/config"
	"github.com/mcjdh/eternal-click-slayer/internal/state"
)

func TestPreview_RequiresUnlock(t *testing.T) {
	bal := config.Default()
	st := state.New(bal)
	st.Enemy.Level = 30

	_, err := Preview(st, bal)
	assert.ErrorIs(t, err, ErrLocked)

	// The latch is the only gate. A run still below the threshold previews
	// the minimum star once the feature is unlocked.
	st.PrestigeUnlocked = true
	st.Enemy.Level = 1
	stars, err := Preview(st, bal)
	require.NoError(t, err)
	assert.Equal(t, 1.0, stars)

	st.Enemy.Level = bal.PrestigeUnlockLevel
	stars, err = Preview(st, bal)
	require.NoError(t, err)
	assert.Equal(t, 1.0, stars)
}

func TestPerform_FreshStateWithCarryover(t *testing.T) {
	bal := config.Default()
	st := state.New(bal)
	st.PrestigeUnlocked = true
	st.Enemy.Level = 30 // one full star plus 5/25 levels
	st.Gold = 99999
	st.ClickDamage = 42
	st.HelperLevels["warrior"] = 7
	st.TotalClicks = 500
	st.Stars = 2.0
	st.TotalPrestiges = 3

	fresh, earned, err := Perform(st, bal)
	require.NoError(t, err)
	assert.Equal(t, 1.2, earned)

	// Carryover fields.
	assert.Equal(t, 3.2, fresh.Stars)
	assert.Equal(t, 4, fresh.TotalPrestiges)
	assert.True(t, fresh.PrestigeUnlocked)
	assert.InDelta(t, 3.2*bal.StarGoldRate, fresh.StarGoldMultiplier, 1e-9)

	// Everything else resets.
	assert.Equal(t, 0, fresh.Gold)
	assert.Equal(t, bal.BaseClickDamage, fresh.ClickDamage)
	assert.Equal(t, 0, fresh.HelperLevels["warrior"])
	assert.Equal(t, 0, fresh.TotalClicks)
	assert.False(t, fresh.CritUnlocked)

	// The old state is untouched; callers swap atomically.
	assert.Equal(t, 99999, st.Gold)
	assert.Equal(t, 2.0, st.Stars)
}

func TestPerform_MinimumOneStar(t *testing.T) {
	bal := config.Default()
	st := state.New(bal)
	st.PrestigeUnlocked = true
	st.Enemy.Level = bal.PrestigeUnlockLevel

	_, earned, err := Perform(st, bal)
	require.NoError(t, err)
	assert.Equal(t, 1.0, earned)
}
