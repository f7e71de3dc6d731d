// Package catalog is the concrete creature/item collaborator the battle
// engine consumes for shop stock and summon/transform lookups. It carries
// a small static roster as literal data, the way the teacher's Weapons
// map names a fixed weapon roster.
package catalog

import (
	"fmt"
	"math/rand"
	"sort"

	"battlesim/internal/battle"
)

// petDef is one roster entry's static definition. effects is a function
// of level because several pets' abilities scale their numbers with the
// summoning pet's level (Cricket's zombie, Horse's buff amount, etc).
type petDef struct {
	tier    int
	stats   battle.Stats
	packs   []battle.Pack
	effects func(lvl int) []battle.Effect
}

// foodDef is one roster entry for a purchasable/holdable food.
type foodDef struct {
	tier      int
	cost      int
	holdable  bool
	isAilment bool
	packs     []battle.Pack
	ability   func() battle.Effect
}

func uses(n int) *int { return &n }

var pets = map[battle.EntityName]petDef{
	battle.NameZombieFly: {
		tier:  6,
		stats: battle.Stats{Attack: 1, Health: 1},
		packs: []battle.Pack{battle.PackTurtle},
	},
	battle.NameFly: {
		tier:  6,
		stats: battle.Stats{Attack: 5, Health: 5},
		packs: []battle.Pack{battle.PackTurtle},
		effects: func(lvl int) []battle.Effect {
			return []battle.Effect{{
				Trigger:    battle.Outcome{Status: battle.StatusFaint, Position: battle.Position{Kind: battle.PosAll}},
				TargetTeam: battle.TargetFriend,
				Pos:        battle.Position{Kind: battle.PosTriggerAffected},
				Action: battle.Action{
					Kind:   battle.ActionSummon,
					Summon: battle.SummonType{Kind: battle.SummonQueryCatalog, QueryName: battle.NameZombieFly, QueryLevel: lvl},
				},
			}}
		},
	},
	battle.NameZombieCricket: {
		tier:  1,
		stats: battle.Stats{Attack: 1, Health: 1},
		packs: []battle.Pack{battle.PackTurtle},
	},
	"cricket": {
		tier:  1,
		stats: battle.Stats{Attack: 1, Health: 2},
		packs: []battle.Pack{battle.PackTurtle},
		effects: func(lvl int) []battle.Effect {
			return []battle.Effect{{
				Trigger:    battle.Outcome{Status: battle.StatusFaint, Position: battle.Position{Kind: battle.PosOnSelf}},
				TargetTeam: battle.TargetFriend,
				Pos:        battle.Position{Kind: battle.PosTriggerAffected},
				Action: battle.Action{
					Kind:   battle.ActionSummon,
					Summon: battle.SummonType{Kind: battle.SummonQueryCatalog, QueryName: battle.NameZombieCricket, QueryLevel: lvl},
				},
			}}
		},
	},
	"horse": {
		tier:  1,
		stats: battle.Stats{Attack: 2, Health: 1},
		packs: []battle.Pack{battle.PackTurtle},
		effects: func(lvl int) []battle.Effect {
			return []battle.Effect{{
				Trigger:    battle.Outcome{Status: battle.StatusAnySelfSummoned, Position: battle.Position{Kind: battle.PosAll}},
				TargetTeam: battle.TargetFriend,
				Pos:        battle.Position{Kind: battle.PosTriggerAffected},
				Action:     battle.Add(battle.StaticAttack(lvl)),
			}}
		},
	},
	"leopard": {
		tier:  1,
		stats: battle.Stats{Attack: 10, Health: 4},
		packs: []battle.Pack{battle.PackTurtle},
		effects: func(lvl int) []battle.Effect {
			return []battle.Effect{{
				Trigger:    battle.Outcome{Status: battle.StatusStartOfBattle, Position: battle.Position{Kind: battle.PosOnSelf}},
				TargetTeam: battle.TargetEnemy,
				Pos:        battle.Position{Kind: battle.PosAny, Cond: battle.Condition{Kind: battle.CondNone}},
				Action:     battle.Remove(battle.MultiplierPct(50)),
			}}
		},
	},
	battle.NameTiger: {
		tier:  6,
		stats: battle.Stats{Attack: 4, Health: 3},
		packs: []battle.Pack{battle.PackTurtle},
	},
	"scorpion": {
		tier:  1,
		stats: battle.Stats{Attack: 1, Health: 1},
		packs: []battle.Pack{battle.PackTurtle},
	},
	"hippo": {
		tier:  4,
		stats: battle.Stats{Attack: 4, Health: 5},
		packs: []battle.Pack{battle.PackTurtle},
	},
	"dog": {
		tier:  1,
		stats: battle.Stats{Attack: 3, Health: 2},
		packs: []battle.Pack{battle.PackTurtle},
	},
	battle.NameRhino: {
		tier:  5,
		stats: battle.Stats{Attack: 6, Health: 5},
		packs: []battle.Pack{battle.PackTurtle},
	},
	"mosquito": {
		tier:  1,
		stats: battle.Stats{Attack: 2, Health: 2},
		packs: []battle.Pack{battle.PackTurtle},
		effects: func(lvl int) []battle.Effect {
			return []battle.Effect{{
				Trigger:    battle.Outcome{Status: battle.StatusStartOfBattle, Position: battle.Position{Kind: battle.PosOnSelf}},
				TargetTeam: battle.TargetEnemy,
				Pos:        battle.Position{Kind: battle.PosAny, Cond: battle.Condition{Kind: battle.CondNone}},
				Action:     battle.Remove(battle.StaticAttack(lvl)),
			}}
		},
	},
	battle.NameBee: {
		tier:  1,
		stats: battle.Stats{Attack: 1, Health: 1},
		packs: []battle.Pack{battle.PackTurtle},
	},
}

var foods = map[battle.EntityName]foodDef{
	battle.NameGarlic: {
		tier: 1, cost: 3, holdable: true, packs: []battle.Pack{battle.PackTurtle},
		ability: func() battle.Effect { return battle.Effect{} },
	},
	battle.NameCoconut: {
		tier: 3, cost: 3, holdable: true, packs: []battle.Pack{battle.PackTurtle},
		ability: func() battle.Effect { return battle.Effect{Uses: uses(1)} },
	},
	battle.NameMelon: {
		tier: 2, cost: 3, holdable: true, packs: []battle.Pack{battle.PackTurtle},
		ability: func() battle.Effect { return battle.Effect{Uses: uses(1)} },
	},
	battle.NamePepper: {
		tier: 3, cost: 3, holdable: true, packs: []battle.Pack{battle.PackTurtle},
		ability: func() battle.Effect { return battle.Effect{Uses: uses(1)} },
	},
	battle.NameMeatBone: {
		tier: 1, cost: 3, holdable: true, packs: []battle.Pack{battle.PackTurtle},
		ability: func() battle.Effect {
			return battle.Effect{Action: battle.Action{Kind: battle.ActionAdd, StatChange: battle.StaticAttack(3)}}
		},
	},
	battle.NameSteak: {
		tier: 2, cost: 3, holdable: true, packs: []battle.Pack{battle.PackTurtle},
		ability: func() battle.Effect {
			return battle.Effect{Uses: uses(1), Action: battle.Action{Kind: battle.ActionAdd, StatChange: battle.StaticAttack(20)}}
		},
	},
	battle.NameChili: {
		tier: 2, cost: 3, holdable: true, packs: []battle.Pack{battle.PackTurtle},
		ability: func() battle.Effect { return battle.Effect{Uses: uses(1)} },
	},
	battle.NameFortuneCookie: {
		tier: 4, cost: 3, holdable: true, packs: []battle.Pack{battle.PackTurtle},
		ability: func() battle.Effect { return battle.Effect{Uses: uses(1)} },
	},
	battle.NamePeanut: {
		tier: 3, cost: 3, holdable: true, packs: []battle.Pack{battle.PackTurtle},
		ability: func() battle.Effect { return battle.Effect{Uses: uses(1)} },
	},
	battle.NameHoney: {
		tier: 1, cost: 3, holdable: true, packs: []battle.Pack{battle.PackTurtle},
		ability: func() battle.Effect {
			return battle.Effect{
				Trigger:    battle.Outcome{Status: battle.StatusFaint, Position: battle.Position{Kind: battle.PosOnSelf}},
				TargetTeam: battle.TargetFriend,
				Pos:        battle.Position{Kind: battle.PosTriggerAffected},
				Action: battle.Action{
					Kind:   battle.ActionSummon,
					Summon: battle.SummonType{Kind: battle.SummonQueryCatalog, QueryName: battle.NameBee, QueryLevel: 1},
				},
			}
		},
	},
	"apple": {
		tier: 1, cost: 3, holdable: true, packs: []battle.Pack{battle.PackTurtle},
		ability: func() battle.Effect {
			return battle.Effect{Action: battle.Action{Kind: battle.ActionAdd, StatChange: battle.StaticStats(battle.Stats{Attack: 1, Health: 1})}}
		},
	},
}

// Static is the default battle.Catalog implementation: a fixed in-memory
// roster, queried deterministically (all randomness flows through the
// caller-supplied *rand.Rand callers pass to shop/summon code; the only
// RNG Static seeds is RandomTeamName's, from its seed argument;
// QueryPets/QueryFoods return the whole matching set sorted by name and
// leave the draw to the caller).
type Static struct{}

func New() *Static { return &Static{} }

func (c *Static) PetEffects(name battle.EntityName, lvl int) ([]battle.Effect, error) {
	def, ok := pets[name]
	if !ok {
		return nil, fmt.Errorf("catalog: unknown pet %q", name)
	}
	if def.effects == nil {
		return nil, nil
	}
	return def.effects(lvl), nil
}

func (c *Static) PetRecord(name battle.EntityName, lvl int) (battle.PetRecord, error) {
	def, ok := pets[name]
	if !ok {
		return battle.PetRecord{}, fmt.Errorf("catalog: unknown pet %q", name)
	}
	return battle.PetRecord{Name: name, Tier: def.tier, Stats: def.stats.Scale(lvl).Clamp(), Packs: def.packs}, nil
}

func (c *Static) FoodAbility(name battle.EntityName) (battle.Effect, error) {
	def, ok := foods[name]
	if !ok {
		return battle.Effect{}, fmt.Errorf("catalog: unknown food %q", name)
	}
	return def.ability(), nil
}

func (c *Static) FoodRecord(name battle.EntityName) (battle.FoodRecord, error) {
	def, ok := foods[name]
	if !ok {
		return battle.FoodRecord{}, fmt.Errorf("catalog: unknown food %q", name)
	}
	return battle.FoodRecord{Name: name, Tier: def.tier, Cost: def.cost, Holdable: def.holdable, IsAilment: def.isAilment, Packs: def.packs}, nil
}

func (c *Static) QueryPets(filter battle.PetFilter) ([]battle.PetRecord, error) {
	out := make([]battle.PetRecord, 0, len(pets))
	for name, def := range pets {
		if def.tier > filter.MaxTier || !packsOverlap(def.packs, filter.Packs) {
			continue
		}
		out = append(out, battle.PetRecord{Name: name, Tier: def.tier, Stats: def.stats, Packs: def.packs})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (c *Static) QueryFoods(filter battle.FoodFilter) ([]battle.FoodRecord, error) {
	out := make([]battle.FoodRecord, 0, len(foods))
	for name, def := range foods {
		if def.tier > filter.MaxTier || !packsOverlap(def.packs, filter.Packs) {
			continue
		}
		out = append(out, battle.FoodRecord{Name: name, Tier: def.tier, Cost: def.cost, Holdable: def.holdable, IsAilment: def.isAilment, Packs: def.packs})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// RandomTeamName derives a team name deterministically from seed, the
// way the teacher's player.go assigns a fallback display name.
func (c *Static) RandomTeamName(seed int64) string {
	adjectives := []string{"Brave", "Swift", "Clever", "Stubborn", "Lucky", "Quiet"}
	nouns := []string{"Tortoise", "Falcon", "Badger", "Otter", "Wolf", "Heron"}
	rng := rand.New(rand.NewSource(seed))
	return adjectives[rng.Intn(len(adjectives))] + " " + nouns[rng.Intn(len(nouns))]
}

func packsOverlap(have, want []battle.Pack) bool {
	if len(want) == 0 {
		return true
	}
	for _, w := range want {
		for _, h := range have {
			if w == h {
				return true
			}
		}
	}
	return false
}

var _ battle.Catalog = (*Static)(nil)
