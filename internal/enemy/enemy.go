// Package enemy defines the static enemy tables and per-level selection.
package enemy

// TypeDef is a regular or boss enemy entry: name plus presentation glyph.
type TypeDef struct {
	Name  string `json:"name"`
	Glyph string `json:"glyph"`
}

// SpecialTypeDef is a rare alternate spawn that adjusts HP/gold and grants a
// timed buff when defeated.
type SpecialTypeDef struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Glyph        string  `json:"glyph"`
	Description  string  `json:"description"`
	HPMult       float64 `json:"hp_mult"`
	GoldMult     float64 `json:"gold_mult"`
	BuffKind     string  `json:"buff_kind"`
	BuffAmount   float64 `json:"buff_amount"`
	BuffDuration int     `json:"buff_duration_s"`
	Chance       float64 `json:"chance"`
}

var Types = []TypeDef{
	{Name: "Slime", Glyph: "🟢"},
	{Name: "Goblin", Glyph: "👺"},
	{Name: "Bat", Glyph: "🦇"},
	{Name: "Spider", Glyph: "🕷️"},
	{Name: "Skeleton", Glyph: "💀"},
	{Name: "Orc", Glyph: "👹"},
	{Name: "Wolf", Glyph: "🐺"},
	{Name: "Bandit", Glyph: "🧔"},
	{Name: "Imp", Glyph: "👿"},
}

var BossTypes = []TypeDef{
	{Name: "Giant Slime", Glyph: "🦠"},
	{Name: "Goblin King", Glyph: "👑"},
	{Name: "Spider Queen", Glyph: "🕸️"},
	{Name: "Undead Knight", Glyph: "👻"},
	{Name: "Orc Warlord", Glyph: "🐗"},
	{Name: "Stone Golem", Glyph: "🗿"},
	{Name: "Dark Mage", Glyph: "🧙"},
	{Name: "Baby Dragon", Glyph: "🐉"},
}

const (
	TreasureGoblin = "treasureGoblin"
	RareFairy      = "rareFairy"
	CriticalOrb    = "criticalOrb"
)

// SpecialTypes is evaluated in order at spawn; the first entry whose
// independent probability check succeeds wins, at most one per spawn.
var SpecialTypes = []SpecialTypeDef{
	{
		ID:           TreasureGoblin,
		Name:         "Treasure Goblin",
		Glyph:        "💰",
		Description:  "A rare creature overflowing with gold!",
		HPMult:       0.7,
		GoldMult:     5.0,
		BuffKind:     "goldBoost",
		BuffAmount:   1.5,
		BuffDuration: 30,
		Chance:       0.05,
	},
	{
		ID:           RareFairy,
		Name:         "Magical Fairy",
		Glyph:        "✨",
		Description:  "A magical fairy that grants damage buffs",
		HPMult:       0.5,
		GoldMult:     2.0,
		BuffKind:     "damageBoost",
		BuffAmount:   2.0,
		BuffDuration: 15,
		Chance:       0.03,
	},
	{
		ID:           CriticalOrb,
		Name:         "Critical Orb",
		Glyph:        "🔮",
		Description:  "A mysterious orb pulsing with critical energy",
		HPMult:       0.8,
		GoldMult:     1.5,
		BuffKind:     "critBoost",
		BuffAmount:   1.0,
		BuffDuration: 10,
		Chance:       0.02,
	},
}

// ForLevel returns the regular enemy shown at the given level.
func ForLevel(level int) TypeDef {
	idx := (level - 1) % len(Types)
	if idx < 0 {
		idx = 0
	}
	return Types[idx]
}

// BossForLevel returns the boss shown at the given boss level.
func BossForLevel(level, interval int) TypeDef {
	idx := (level/interval - 1) % len(BossTypes)
	if idx < 0 {
		idx = 0
	}
	return BossTypes[idx]
}

// IsBossLevel reports whether the level is a boss encounter.
func IsBossLevel(level, interval int) bool {
	return level > 0 && level%interval == 0
}

// SpecialByID returns the special definition for the given id.
func SpecialByID(id string) (SpecialTypeDef, bool) {
	for _, def := range SpecialTypes {
		if def.ID == id {
			return def, true
		}
	}
	return SpecialTypeDef{}, false
}

// RollSpecial walks the special table in order and returns the first entry
// whose independent chance succeeds. roll is called once per entry with its
// spawn probability and reports success. Boss levels must not call this.
func RollSpecial(roll func(chance float64) bool) (SpecialTypeDef, bool) {
	for _, def := range SpecialTypes {
		if roll(def.Chance) {
			return def, true
		}
	}
	return SpecialTypeDef{}, false
}
