// Package prestige implements the reset-for-stars loop. A prestige never
// mutates the old state in place; it builds a fresh one and copies over
// exactly the fields that are documented to survive.
package prestige

import (
	"errors"

	"github.com/mcjdh/eternal-click-slayer/internal/config"
	"github.com/mcjdh/eternal-click-slayer/internal/formula"
	"github.com/mcjdh/eternal-click-slayer/internal/state"
)

var ErrLocked = errors.New("prestige not unlocked")

// Preview returns the stars a prestige would grant right now, without
// performing it. The unlock latch is the only gate; once earned it never
// re-locks, whatever level the current run is at.
func Preview(st *state.State, bal config.Balance) (float64, error) {
	if !st.PrestigeUnlocked {
		return 0, ErrLocked
	}
	return formula.StarsEarned(st.Enemy.Level, bal.LevelsPerStar), nil
}

// Perform resets the run. It returns a fresh state carrying the accumulated
// stars, the prestige count, the unlock latch, and the recomputed star gold
// multiplier; everything else starts over. The returned stars are the ones
// earned by this prestige alone.
func Perform(st *state.State, bal config.Balance) (*state.State, float64, error) {
	earned, err := Preview(st, bal)
	if err != nil {
		return nil, 0, err
	}

	fresh := state.New(bal)
	fresh.Stars = st.Stars + earned
	fresh.TotalPrestiges = st.TotalPrestiges + 1
	fresh.PrestigeUnlocked = true
	fresh.StarGoldMultiplier = fresh.Stars * bal.StarGoldRate
	return fresh, earned, nil
}
