package battle

// Catalog is the read-only external collaborator the core consumes for
// creature/item definitions (§1 OUT OF SCOPE, §6). The core never embeds
// game data itself; internal/catalog provides a concrete implementation.
type Catalog interface {
	// PetEffects returns fresh Effect templates for name at lvl. Callers
	// must Clone() before attaching to a pet so templates never alias.
	PetEffects(name EntityName, lvl int) ([]Effect, error)

	// PetRecord returns the base tier/stats for name at lvl, used by
	// SummonQueryCatalog and shop stock generation.
	PetRecord(name EntityName, lvl int) (PetRecord, error)

	// FoodAbility returns the Effect template a food's ability fires.
	FoodAbility(name EntityName) (Effect, error)

	// FoodRecord returns a food's shop metadata (cost, holdable, ailment).
	FoodRecord(name EntityName) (FoodRecord, error)

	// QueryPets returns pet records matching filter, used by shop rolls.
	QueryPets(filter PetFilter) ([]PetRecord, error)

	// QueryFoods returns food records matching filter, used by shop rolls.
	QueryFoods(filter FoodFilter) ([]FoodRecord, error)

	// RandomTeamName deterministically derives a team name from seed.
	RandomTeamName(seed int64) string
}

// PetRecord is what the catalog hands back for one (name, level) pair.
type PetRecord struct {
	Name   EntityName
	Tier   int
	Stats  Stats
	Packs  []Pack
}

// FoodRecord is what the catalog hands back for a food's shop metadata.
type FoodRecord struct {
	Name      EntityName
	Tier      int
	Cost      int
	Holdable  bool
	IsAilment bool
	Packs     []Pack
}

// Pack gates which pets/foods may appear in a shop roll (SPEC_FULL.md §C.1,
// grounded on original_source's shop/store.rs pack filtering).
type Pack string

const (
	PackTurtle Pack = "turtle"
	PackPuppy  Pack = "puppy"
	PackStar   Pack = "star"
)

// PetFilter narrows QueryPets to a shop tier and active pack set.
type PetFilter struct {
	MaxTier int
	Packs   []Pack
}

// FoodFilter narrows QueryFoods to a shop tier and active pack set.
type FoodFilter struct {
	MaxTier int
	Packs   []Pack
}
