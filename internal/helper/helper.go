// Package helper defines the purchasable helper archetypes. The table is the
// single source of truth for ids; save compatibility depends on ids never
// changing.
package helper

// TypeDef describes one helper archetype. Definitions are immutable.
type TypeDef struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Glyph       string  `json:"glyph"`
	Description string  `json:"description"`
	BaseDamage  float64 `json:"base_damage"`
	BaseCost    int     `json:"base_cost"`
	CostScale   float64 `json:"cost_scale"`
	CostAdd     float64 `json:"cost_add"`
	// DamageExponent shapes the late-game curve: above 1 keeps accelerating,
	// below 1 flattens out.
	DamageExponent float64 `json:"damage_exponent"`
}

const (
	Warrior = "warrior"
	Mage    = "mage"
	Rogue   = "rogue"
)

// DefaultType is where a legacy single-helper save's levels are migrated to.
const DefaultType = Warrior

var Types = []TypeDef{
	{
		ID:             Warrior,
		Name:           "Warrior",
		Glyph:          "⚔️",
		Description:    "Strong melee fighter with balanced stats",
		BaseDamage:     1.5,
		BaseCost:       30,
		CostScale:      1.28,
		CostAdd:        5,
		DamageExponent: 1.0,
	},
	{
		ID:             Mage,
		Name:           "Mage",
		Glyph:          "🔮",
		Description:    "High damage but expensive magic user",
		BaseDamage:     3.0,
		BaseCost:       60,
		CostScale:      1.35,
		CostAdd:        10,
		DamageExponent: 0.8,
	},
	{
		ID:             Rogue,
		Name:           "Rogue",
		Glyph:          "🗡️",
		Description:    "Fast attacker with increasing efficiency",
		BaseDamage:     1.0,
		BaseCost:       25,
		CostScale:      1.22,
		CostAdd:        3,
		DamageExponent: 1.2,
	},
}

// ByID returns the definition for the given id.
func ByID(id string) (TypeDef, bool) {
	for _, def := range Types {
		if def.ID == id {
			return def, true
		}
	}
	return TypeDef{}, false
}
