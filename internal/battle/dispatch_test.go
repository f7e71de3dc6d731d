package battle

import "testing"

func TestActivationOrderByAttackThenPosition(t *testing.T) {
	weak := newTestPet("ant", 1, Stats{Attack: 2, Health: 5})
	tied1 := newTestPet("bee", 1, Stats{Attack: 5, Health: 5})
	tied2 := newTestPet("cat", 1, Stats{Attack: 5, Health: 5})
	team := newTestTeam(weak, tied1, tied2)

	order := activationOrder(team, false)
	want := []PetID{idAt(team, 1), idAt(team, 2), idAt(team, 0)}
	if len(order) != len(want) {
		t.Fatalf("got %d ids, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: got %v, want %v", i, order[i], want[i])
		}
	}
}

func TestActivationOrderPromotesFront(t *testing.T) {
	front := newTestPet("ant", 1, Stats{Attack: 1, Health: 5})
	strong := newTestPet("bee", 1, Stats{Attack: 9, Health: 5})
	team := newTestTeam(front, strong)

	order := activationOrder(team, true)
	if order[0] != idAt(team, 0) {
		t.Errorf("expected front pet promoted to head, got %v", order)
	}

	noPromote := activationOrder(team, false)
	if noPromote[0] != idAt(team, 1) {
		t.Errorf("without promotion, strongest pet should lead, got %v", noPromote)
	}
}

func TestTigerBehindPetRequiresClosedShop(t *testing.T) {
	front := newTestPet("sheep", 1, Stats{Attack: 1, Health: 1})
	tiger := newTestPet(NameTiger, 3, Stats{Attack: 4, Health: 4})
	team := newTestTeam(front, tiger)
	team.Shop = NewShop(team, nil, 0)

	team.Shop.State = ShopClosed
	if tigerBehindPet(team, front) == nil {
		t.Error("expected Tiger directly behind front pet with shop closed")
	}

	team.Shop.State = ShopOpen
	if tigerBehindPet(team, front) != nil {
		t.Error("Tiger doubling must not apply while the shop is open")
	}
}

func TestTigerBehindPetFalseWithoutTiger(t *testing.T) {
	front := newTestPet("sheep", 1, Stats{Attack: 1, Health: 1})
	other := newTestPet("ant", 1, Stats{Attack: 1, Health: 1})
	team := newTestTeam(front, other)
	team.Shop = NewShop(team, nil, 0)
	team.Shop.State = ShopClosed

	if tigerBehindPet(team, front) != nil {
		t.Error("expected no Tiger doubling without a Tiger behind")
	}
}

func TestUnconsumedKnockOutDetectsQueuedKnockOut(t *testing.T) {
	left := newTestTeam(newTestPet("ant", 1, Stats{Attack: 1, Health: 1}))
	right := newTestTeam(newTestPet("bee", 1, Stats{Attack: 9, Health: 9}))
	left.enqueue(Outcome{Status: StatusKnockOut, AffectedTeam: TargetFriend})

	if !unconsumedKnockOut(left) {
		t.Error("expected left's unconsumed KnockOut trigger to be detected")
	}
	if unconsumedKnockOut(right) {
		t.Error("right has no KnockOut trigger queued")
	}
}

func TestPetEffectExceptionBlocksSummonOnZombieFly(t *testing.T) {
	fly := newTestPet(NameZombieFly, 1, Stats{Attack: 1, Health: 1})
	team := newTestTeam(fly)
	flyID := idAt(team, 0)

	eff := &Effect{Action: Action{Kind: ActionSummon}}
	outcome := Outcome{Status: StatusFaint, AffectedTeam: TargetFriend, AffectedPet: flyID}

	if !petEffectException(eff, outcome, team, flyID) {
		t.Error("expected Summon triggered by a ZombieFly's own faint to be excepted")
	}
}

// levelScaledCatalog is a fake Catalog whose single pet's effect scales
// with the queried level, so tests can tell a level-1 template apart from
// a level-3 one.
type levelScaledCatalog struct{}

func (levelScaledCatalog) PetEffects(name EntityName, lvl int) ([]Effect, error) {
	return []Effect{{
		Trigger:    Outcome{Status: StatusStartOfBattle, Position: Position{Kind: PosOnSelf}},
		TargetTeam: TargetEnemy,
		Pos:        Position{Kind: PosAny, Cond: Condition{Kind: CondNone}},
		Action:     Remove(StaticAttack(lvl * 10)),
	}}, nil
}
func (levelScaledCatalog) PetRecord(name EntityName, lvl int) (PetRecord, error) {
	return PetRecord{}, nil
}
func (levelScaledCatalog) FoodAbility(name EntityName) (Effect, error) { return Effect{}, nil }
func (levelScaledCatalog) FoodRecord(name EntityName) (FoodRecord, error) {
	return FoodRecord{}, nil
}
func (levelScaledCatalog) QueryPets(filter PetFilter) ([]PetRecord, error)   { return nil, nil }
func (levelScaledCatalog) QueryFoods(filter FoodFilter) ([]FoodRecord, error) { return nil, nil }
func (levelScaledCatalog) RandomTeamName(seed int64) string                  { return "" }

// TestTigerDoubledEffectsUsesTigersLevel covers §4.3.1: the doubled copy
// must reflect the Tiger's level-scaled effect template, not a verbatim
// re-application of the acting pet's own (here, lower-level) effect.
func TestTigerDoubledEffectsUsesTigersLevel(t *testing.T) {
	own := NewPet("leopard", 1, Stats{Attack: 1, Health: 5}, []Effect{{
		Trigger:    Outcome{Status: StatusStartOfBattle, Position: Position{Kind: PosOnSelf}},
		TargetTeam: TargetEnemy,
		Pos:        Position{Kind: PosAny, Cond: Condition{Kind: CondNone}},
		Action:     Remove(StaticAttack(10)), // own level-1 template: 10
	}}, 0)
	tiger := NewPet(NameTiger, 6, Stats{Attack: 4, Health: 3}, nil, 0)
	tiger.Level = 3

	team := NewTeam("team", []*Pet{own, tiger}, 2, 0, levelScaledCatalog{})
	id := idAt(team, 0)
	outcome := Outcome{Status: StatusStartOfBattle}

	doubled := tigerDoubledEffects(team, own, tiger, outcome, id)
	if len(doubled) != 1 {
		t.Fatalf("expected exactly one doubled effect, got %d", len(doubled))
	}
	if got := doubled[0].Action.StatChange.Amount; got != 30 {
		t.Errorf("expected the doubled effect to use tiger's level-3 template (30), got %d", got)
	}
	if doubled[0].Owner != id {
		t.Errorf("expected the doubled effect's owner reassigned to the acting pet, got %v", doubled[0].Owner)
	}
}

// TestTigerDoubledEffectsFallsBackWithoutCatalog covers the no-catalog
// fallback: reuse the acting pet's own current effects when there's no
// catalog to re-query at the Tiger's level.
func TestTigerDoubledEffectsFallsBackWithoutCatalog(t *testing.T) {
	own := newTestPet("leopard", 1, Stats{Attack: 10, Health: 4})
	own.Effects = []Effect{leopardEffect()}
	tiger := newTestPet(NameTiger, 6, Stats{Attack: 4, Health: 3})
	team := newTestTeam(own, tiger)
	id := idAt(team, 0)

	doubled := tigerDoubledEffects(team, own, tiger, Outcome{Status: StatusStartOfBattle}, id)
	if len(doubled) != 1 {
		t.Fatalf("expected the fallback to reuse the pet's one own effect, got %d", len(doubled))
	}
}

func TestTriggerAllEffectsDrainsBothQueues(t *testing.T) {
	left := newTestTeam(newTestPet("ant", 1, Stats{Attack: 1, Health: 1}))
	right := newTestTeam(newTestPet("bee", 1, Stats{Attack: 1, Health: 1}))
	left.enqueue(Outcome{Status: StatusStartTurn, AffectedTeam: TargetFriend})
	right.enqueue(Outcome{Status: StatusStartTurn, AffectedTeam: TargetFriend})

	d := NewDispatch(left, right)
	if err := d.TriggerAllEffects(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(left.triggers) != 0 || len(right.triggers) != 0 {
		t.Errorf("expected both queues drained, got left=%d right=%d", len(left.triggers), len(right.triggers))
	}
}
