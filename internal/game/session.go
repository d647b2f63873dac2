// Package game wires the progression state, combat rolls, economy, timers,
// achievements and prestige into one session with a single lock. Everything
// time-dependent goes through the Clock and everything random through Rand,
// so the whole loop runs deterministically under test.
package game

import (
	"fmt"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/mcjdh/eternal-click-slayer/internal/achievement"
	"github.com/mcjdh/eternal-click-slayer/internal/buff"
	"github.com/mcjdh/eternal-click-slayer/internal/config"
	"github.com/mcjdh/eternal-click-slayer/internal/enemy"
	"github.com/mcjdh/eternal-click-slayer/internal/formula"
	"github.com/mcjdh/eternal-click-slayer/internal/helper"
	"github.com/mcjdh/eternal-click-slayer/internal/prestige"
	"github.com/mcjdh/eternal-click-slayer/internal/state"
)

// Event is a gameplay notification pushed to observers (log, live stream).
type Event struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Options configures a Session. Zero-value fields get sane defaults.
type Options struct {
	Balance config.Balance
	Clock   Clock
	Rand    Rand
	Logger  *log.Logger
	Notify  func(Event)
}

// Session is one player's running game. All methods are safe for concurrent
// use; the session serializes them behind one mutex.
type Session struct {
	mu    sync.Mutex
	bal   config.Balance
	clock Clock
	rng   Rand
	log   *log.Logger

	st  *state.State
	ach *achievement.Engine

	// Deferred respawn: consumed by the first Tick at or after respawnAt.
	respawnAt    time.Time
	pendingLevel int

	notify func(Event)
}

// NewSession builds a session with a fresh state and the first enemy spawned.
func NewSession(opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.Rand == nil {
		opts.Rand = NewRand(time.Now().UnixNano())
	}
	s := &Session{
		bal:    opts.Balance,
		clock:  opts.Clock,
		rng:    opts.Rand,
		log:    opts.Logger,
		notify: opts.Notify,
		st:     state.New(opts.Balance),
	}
	s.ach = achievement.NewEngine(achievement.Defaults(opts.Balance), s.onAchievement)
	s.spawn(1)
	s.evaluate(achievement.TriggerInit, achievement.Context{})
	return s
}

func (s *Session) onAchievement(a achievement.Achievement) {
	s.emit("achievement", fmt.Sprintf("%s %s", a.Glyph, a.Desc))
}

func (s *Session) emit(kind, msg string) {
	if s.log != nil {
		s.log.Printf("%s: %s", kind, msg)
	}
	if s.notify != nil {
		s.notify(Event{Kind: kind, Message: msg})
	}
}

// AttackResult reports one click's outcome. The boss and special flags
// describe the defeated enemy and are only set when Defeated is.
type AttackResult struct {
	Damage      float64  `json:"damage"`
	Crit        bool     `json:"crit"`
	Defeated    bool     `json:"defeated"`
	WasBoss     bool     `json:"was_boss,omitempty"`
	WasSpecial  bool     `json:"was_special,omitempty"`
	SpecialType string   `json:"special_type,omitempty"`
	GoldAwarded int      `json:"gold_awarded"`
	Unlocked    []string `json:"unlocked,omitempty"`
}

// Attack applies one click to the current enemy.
func (s *Session) Attack() (AttackResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.st.Enemy.Alive() {
		return AttackResult{}, ErrNoTarget
	}

	s.st.TotalClicks++

	dmg := s.st.EffectiveClickDamage()
	crit := s.rollCrit()
	if crit {
		dmg *= s.st.CritMultiplier
		s.st.TotalCrits++
	}
	dmg *= s.damageMultiplier()

	_, defeated := s.st.ApplyDamage(dmg)

	res := AttackResult{Damage: dmg, Crit: crit, Defeated: defeated}
	res.Unlocked = append(res.Unlocked, s.evaluate(achievement.TriggerClick, achievement.Context{})...)
	if defeated {
		d := s.handleDefeat()
		res.GoldAwarded = d.Gold
		res.WasBoss = d.WasBoss
		res.WasSpecial = d.WasSpecial
		res.SpecialType = d.SpecialType
		res.Unlocked = append(res.Unlocked, d.Unlocked...)
	}
	return res, nil
}

// rollCrit draws against the capped effective chance. Locked crits never
// roll, even when a bonus or buff would give a nonzero chance. A critBoost
// buff adds on top of the cap and can force every hit critical.
func (s *Session) rollCrit() bool {
	if !s.st.CritUnlocked {
		return false
	}
	chance := math.Min(s.st.EffectiveCritChance(), s.bal.CritChanceMax)
	if s.st.Buffs.Active(buff.CritBoost) {
		chance = math.Min(chance+s.st.Buffs.Multiplier(buff.CritBoost), 1.0)
	}
	if chance <= 0 {
		return false
	}
	return s.rng.Float64() < chance
}

func (s *Session) damageMultiplier() float64 {
	return s.st.Buffs.Multiplier(buff.DamageBoost) * s.st.Skills.Multiplier(buff.DoubleDamage)
}

// goldMultiplier composes the payout bonuses: achievement and star bonuses
// add, the gold buff multiplies the sum.
func (s *Session) goldMultiplier() float64 {
	return (s.st.AchievementGoldMult + s.st.StarGoldMultiplier) * s.st.Buffs.Multiplier(buff.GoldBoost)
}

// DefeatInfo describes one defeated enemy's payout.
type DefeatInfo struct {
	Gold        int
	WasBoss     bool
	WasSpecial  bool
	SpecialType string
	Unlocked    []string
}

// handleDefeat pays out, fires defeat achievements, grants the special's buff
// and schedules the next spawn. Caller holds the lock and has already zeroed
// the enemy's HP.
func (s *Session) handleDefeat() DefeatInfo {
	e := &s.st.Enemy
	d := DefeatInfo{
		Gold:        int(math.Round(e.GoldReward * s.goldMultiplier())),
		WasBoss:     e.Boss,
		WasSpecial:  e.Special,
		SpecialType: e.SpecialType,
	}
	s.st.Gold += d.Gold
	s.st.EnemiesDefeated++

	if e.Special {
		if def, ok := enemy.SpecialByID(e.SpecialType); ok {
			dur := time.Duration(def.BuffDuration) * time.Second
			s.st.Buffs.Activate(def.BuffKind, def.BuffAmount, dur, s.clock.Now())
			s.emit("buff", fmt.Sprintf("%s grants %s for %s", def.Name, def.BuffKind, dur))
		}
	}

	d.Unlocked = s.evaluate(achievement.TriggerEnemyDefeated, achievement.Context{
		WasBoss:     d.WasBoss,
		WasSpecial:  d.WasSpecial,
		SpecialType: d.SpecialType,
	})

	// Skills unlock when an enemy of the threshold level falls, not when
	// one first appears.
	if e.Level >= s.bal.SkillsUnlockLevel && !s.st.SkillsUnlocked {
		s.st.SkillsUnlocked = true
		s.st.Skills.Unlock(buff.DoubleDamage)
		s.emit("unlock", "skills unlocked")
	}

	s.pendingLevel = e.Level + 1
	s.respawnAt = s.clock.Now().Add(s.bal.RespawnDelay)
	return d
}

// TickResult reports one scheduler tick's outcome.
type TickResult struct {
	DamageDealt  float64  `json:"damage_dealt"`
	GoldAwarded  int      `json:"gold_awarded"`
	Defeated     bool     `json:"defeated"`
	WasBoss      bool     `json:"was_boss,omitempty"`
	WasSpecial   bool     `json:"was_special,omitempty"`
	SpecialType  string   `json:"special_type,omitempty"`
	Respawned    bool     `json:"respawned"`
	ExpiredBuffs []string `json:"expired_buffs,omitempty"`
	EndedSkills  []string `json:"ended_skills,omitempty"`
	Unlocked     []string `json:"unlocked,omitempty"`
}

// Tick advances the passive loop: buff and skill expiry, helper damage, and
// any due respawn. Meant to run once per configured tick interval, but safe
// at any cadence since expiry is deadline-based.
func (s *Session) Tick() TickResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	var res TickResult
	res.ExpiredBuffs = s.st.Buffs.ExpireDue(now)
	res.EndedSkills = s.st.Skills.ExpireDue(now)

	if !s.st.Enemy.Alive() {
		if s.pendingLevel > 0 && !now.Before(s.respawnAt) {
			s.spawn(s.pendingLevel)
			s.pendingLevel = 0
			s.respawnAt = time.Time{}
			res.Respawned = true
			res.Unlocked = s.evaluate(achievement.TriggerSpawn, achievement.Context{WasBoss: s.st.Enemy.Boss})
		}
		return res
	}

	if s.st.DPS <= 0 {
		return res
	}

	dmg := s.st.DPS * s.damageMultiplier() * s.bal.TickInterval.Seconds()
	dealt, defeated := s.st.ApplyDamage(dmg)
	res.DamageDealt = dealt
	res.Defeated = defeated
	if defeated {
		d := s.handleDefeat()
		res.GoldAwarded = d.Gold
		res.WasBoss = d.WasBoss
		res.WasSpecial = d.WasSpecial
		res.SpecialType = d.SpecialType
		res.Unlocked = append(res.Unlocked, d.Unlocked...)
	}
	return res
}

// spawn replaces the enemy for the given level. Boss levels never roll a
// special.
func (s *Session) spawn(level int) {
	e := state.Enemy{Level: level}

	hp := formula.EnemyMaxHP(level, s.bal.EnemyHPBase, s.bal.EnemyHPScale)
	gold := formula.EnemyGoldReward(level, s.bal.EnemyGoldBase, s.bal.EnemyGoldLinearAdd, s.bal.EnemyGoldScale)

	switch {
	case enemy.IsBossLevel(level, s.bal.BossLevelInterval):
		def := enemy.BossForLevel(level, s.bal.BossLevelInterval)
		e.Name, e.Glyph = def.Name, def.Glyph
		e.Boss = true
		hp = math.Floor(hp * formula.BossHPMultiplier(level, s.bal.BossLevelInterval, s.bal.BossHPExponent, s.bal.BossBaseHPMult))
		gold = math.Floor(gold * formula.BossGoldMultiplier(level, s.bal.BossLevelInterval, s.bal.BossGoldMult))
	default:
		def := enemy.ForLevel(level)
		e.Name, e.Glyph = def.Name, def.Glyph
		if level >= s.bal.SpecialMinLevel {
			if sp, ok := enemy.RollSpecial(func(chance float64) bool { return s.rng.Float64() < chance }); ok {
				e.Special = true
				e.SpecialType = sp.ID
				e.Name, e.Glyph = sp.Name, sp.Glyph
				hp = math.Max(1, math.Floor(hp*sp.HPMult))
				gold = math.Floor(gold * sp.GoldMult)
				s.emit("special", fmt.Sprintf("%s appeared", sp.Name))
			}
		}
	}

	e.MaxHP = hp
	e.CurrentHP = hp
	e.GoldReward = gold
	s.st.Enemy = e
}

func (s *Session) evaluate(trigger achievement.Trigger, ctx achievement.Context) []string {
	var ids []string
	for _, a := range s.ach.Evaluate(trigger, ctx, s.st) {
		ids = append(ids, a.ID)
	}
	return ids
}

// PurchaseResult reports the post-purchase economy for the bought kind.
type PurchaseResult struct {
	Kind     string   `json:"kind"`
	Gold     int      `json:"gold"`
	NextCost int      `json:"next_cost"`
	Unlocked []string `json:"unlocked,omitempty"`
}

// Purchase buys one upgrade. kind is "click", "crit" or "helper:<id>".
// Purchases succeed when gold equals the cost exactly; on any error the
// state is unchanged.
func (s *Session) Purchase(kind string) (PurchaseResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case kind == "click":
		return s.buyClick()
	case kind == "crit":
		return s.buyCrit()
	case strings.HasPrefix(kind, "helper:"):
		return s.buyHelper(strings.TrimPrefix(kind, "helper:"))
	default:
		return PurchaseResult{}, fmt.Errorf("%w: %q", ErrUnknownUpgrade, kind)
	}
}

func (s *Session) buyClick() (PurchaseResult, error) {
	cost := s.st.ClickUpgradeCost
	if s.st.Gold < cost {
		return PurchaseResult{}, ErrInsufficientGold
	}
	s.st.Gold -= cost
	s.st.ClickDamage = formula.NextClickDamage(s.st.ClickDamage)
	s.st.ClickUpgradeCost = formula.NextUpgradeCost(cost, s.bal.ClickUpgradeScale, s.bal.ClickUpgradeLinearAdd)

	unlocked := s.evaluate(achievement.TriggerUpgrade, achievement.Context{UpgradeKind: "click"})
	return PurchaseResult{Kind: "click", Gold: s.st.Gold, NextCost: s.st.ClickUpgradeCost, Unlocked: unlocked}, nil
}

func (s *Session) buyCrit() (PurchaseResult, error) {
	if !s.st.CritUnlocked {
		return PurchaseResult{}, ErrFeatureLocked
	}
	// The purchasable base leaves room for the achievement bonus so the
	// effective chance never exceeds the cap.
	limit := s.bal.CritChanceMax - s.st.AchievementCritBonus
	if s.st.CritChance >= limit {
		return PurchaseResult{}, ErrCritCapped
	}
	cost := s.st.CritUpgradeCost
	if s.st.Gold < cost {
		return PurchaseResult{}, ErrInsufficientGold
	}
	s.st.Gold -= cost
	s.st.CritChance = math.Min(s.st.CritChance+s.bal.CritChanceStep, limit)
	s.st.CritUpgradeCost = formula.NextUpgradeCost(cost, s.bal.CritUpgradeScale, s.bal.CritUpgradeLinearAdd)

	unlocked := s.evaluate(achievement.TriggerUpgrade, achievement.Context{UpgradeKind: "critChance"})
	return PurchaseResult{Kind: "crit", Gold: s.st.Gold, NextCost: s.st.CritUpgradeCost, Unlocked: unlocked}, nil
}

func (s *Session) buyHelper(id string) (PurchaseResult, error) {
	if !s.st.HelpersUnlocked {
		return PurchaseResult{}, ErrFeatureLocked
	}
	def, ok := helper.ByID(id)
	if !ok {
		return PurchaseResult{}, fmt.Errorf("%w: helper %q", ErrUnknownUpgrade, id)
	}
	cost := s.st.HelperCosts[id]
	if s.st.Gold < cost {
		return PurchaseResult{}, ErrInsufficientGold
	}
	s.st.Gold -= cost
	s.st.HelperLevels[id]++
	s.st.HelperCosts[id] = formula.NextUpgradeCost(cost, def.CostScale, def.CostAdd)
	s.st.RecalcDPS()

	unlocked := s.evaluate(achievement.TriggerUpgrade, achievement.Context{
		UpgradeKind: "helper:" + id,
		HelperID:    id,
	})
	return PurchaseResult{Kind: "helper:" + id, Gold: s.st.Gold, NextCost: s.st.HelperCosts[id], Unlocked: unlocked}, nil
}

// ActivateSkill starts a skill. Skills gate on the level unlock first, then
// on their own cooldown.
func (s *Session) ActivateSkill(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.st.SkillsUnlocked {
		return ErrFeatureLocked
	}
	return s.st.Skills.Activate(id, s.clock.Now())
}

// PrestigePreview returns the stars a prestige would grant now.
func (s *Session) PrestigePreview() (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return prestige.Preview(s.st, s.bal)
}

// PrestigeResult reports a completed prestige.
type PrestigeResult struct {
	StarsEarned    float64  `json:"stars_earned"`
	StarsTotal     float64  `json:"stars_total"`
	TotalPrestiges int      `json:"total_prestiges"`
	Unlocked       []string `json:"unlocked,omitempty"`
}

// PrestigeConfirm performs the reset. The achievement engine re-arms every
// non-prestige rule, the fresh state replaces the old one atomically, and a
// level-1 enemy spawns immediately.
func (s *Session) PrestigeConfirm() (PrestigeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh, earned, err := prestige.Perform(s.st, s.bal)
	if err != nil {
		return PrestigeResult{}, err
	}
	s.st = fresh
	s.ach.ResetForPrestige()
	s.pendingLevel = 0
	s.respawnAt = time.Time{}
	s.spawn(1)

	unlocked := s.evaluate(achievement.TriggerPrestige, achievement.Context{})
	s.emit("prestige", fmt.Sprintf("prestiged for %.1f stars (total %.1f)", earned, s.st.Stars))
	return PrestigeResult{
		StarsEarned:    earned,
		StarsTotal:     s.st.Stars,
		TotalPrestiges: s.st.TotalPrestiges,
		Unlocked:       unlocked,
	}, nil
}

// View runs f with the live state and achievement latches under the session
// lock. f must not retain either value.
func (s *Session) View(f func(st *state.State, achieved map[string]bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.st, s.ach.AchievedIDs())
}

// Restore replaces the session's state from a loaded save. Derived values are
// rebuilt and a dead or missing enemy respawns at its level.
func (s *Session) Restore(st *state.State, achieved map[string]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.st = st
	s.ach = achievement.NewEngine(achievement.Defaults(s.bal), s.onAchievement)
	s.ach.Restore(achieved)
	s.pendingLevel = 0
	s.respawnAt = time.Time{}

	s.st.RecalcDPS()
	if s.st.SkillsUnlocked {
		s.st.Skills.Unlock(buff.DoubleDamage)
	}
	if !s.st.Enemy.Alive() {
		level := s.st.Enemy.Level
		if level < 1 {
			level = 1
		}
		s.spawn(level)
	}
}
