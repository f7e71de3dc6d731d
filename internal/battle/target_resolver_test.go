package battle

import "testing"

func idAt(team *Team, pos int) PetID {
	return team.friends[pos]
}

func TestResolveTargetsOnSelf(t *testing.T) {
	p := newTestPet("ant", 1, Stats{Attack: 1, Health: 1})
	team := newTestTeam(p)
	self := idAt(team, 0)

	ctx := resolveCtx{self: team, currentPet: self}
	targets, err := ResolveTargets(OnSelf(), TargetFriend, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(targets) != 1 || targets[0].ID != self {
		t.Errorf("expected [self], got %+v", targets)
	}
}

func TestResolveTargetsFirstLast(t *testing.T) {
	a := newTestPet("ant", 1, Stats{Attack: 1, Health: 1})
	b := newTestPet("bee", 1, Stats{Attack: 1, Health: 1})
	c := newTestPet("cat", 1, Stats{Attack: 1, Health: 1})
	team := newTestTeam(a, b, c)
	ctx := resolveCtx{self: team, currentPet: idAt(team, 0)}

	first, err := ResolveTargets(First(), TargetFriend, ctx)
	if err != nil || len(first) != 1 || first[0].ID != idAt(team, 0) {
		t.Errorf("First(): got %+v, err %v", first, err)
	}

	last, err := ResolveTargets(Last(), TargetFriend, ctx)
	if err != nil || len(last) != 1 || last[0].ID != idAt(team, 2) {
		t.Errorf("Last(): got %+v, err %v", last, err)
	}
}

func TestResolveTargetsRelative(t *testing.T) {
	a := newTestPet("ant", 1, Stats{Attack: 1, Health: 1})
	b := newTestPet("bee", 1, Stats{Attack: 1, Health: 1})
	c := newTestPet("cat", 1, Stats{Attack: 1, Health: 1})
	team := newTestTeam(a, b, c)
	ctx := resolveCtx{self: team, currentPet: idAt(team, 0)}

	ahead, err := ResolveTargets(Relative(1), TargetFriend, ctx)
	if err != nil || len(ahead) != 1 || ahead[0].ID != idAt(team, 1) {
		t.Errorf("Relative(1) from slot 0: got %+v, err %v", ahead, err)
	}

	ctxFromLast := resolveCtx{self: team, currentPet: idAt(team, 2)}
	beyond, err := ResolveTargets(Relative(1), TargetFriend, ctxFromLast)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(beyond) != 1 || beyond[0].ID != idAt(team, 2) {
		t.Errorf("Relative(1) past the back clamps to last slot, got %+v", beyond)
	}
}

func TestResolveTargetsAdjacent(t *testing.T) {
	a := newTestPet("ant", 1, Stats{Attack: 1, Health: 1})
	b := newTestPet("bee", 1, Stats{Attack: 1, Health: 1})
	c := newTestPet("cat", 1, Stats{Attack: 1, Health: 1})
	team := newTestTeam(a, b, c)
	ctx := resolveCtx{self: team, currentPet: idAt(team, 1)}

	targets, err := ResolveTargets(Adjacent(), TargetFriend, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("expected 2 adjacent pets, got %d: %+v", len(targets), targets)
	}
	got := map[PetID]bool{targets[0].ID: true, targets[1].ID: true}
	if !got[idAt(team, 0)] || !got[idAt(team, 2)] {
		t.Errorf("expected slots 0 and 2, got %+v", targets)
	}
}

func TestResolveTargetsOpposite(t *testing.T) {
	self := newTestTeam(newTestPet("ant", 1, Stats{Attack: 1, Health: 1}))
	opp := newTestTeam(newTestPet("bee", 1, Stats{Attack: 1, Health: 1}))
	ctx := resolveCtx{self: self, opponent: opp, currentPet: idAt(self, 0)}

	targets, err := ResolveTargets(Opposite(), TargetEnemy, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(targets) != 1 || targets[0].ID != idAt(opp, 0) || targets[0].Team != opp {
		t.Errorf("expected opposing slot-0 pet, got %+v", targets)
	}
}

func TestResolveTargetsAllWithCondition(t *testing.T) {
	t1 := newTestPet("ant", 1, Stats{Attack: 1, Health: 1})
	t2 := newTestPet("bee", 2, Stats{Attack: 1, Health: 1})
	t3 := newTestPet("cat", 1, Stats{Attack: 1, Health: 1})
	team := newTestTeam(t1, t2, t3)
	ctx := resolveCtx{self: team, currentPet: idAt(team, 0)}

	targets, err := ResolveTargets(All(TierIs(1)), TargetFriend, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("expected 2 tier-1 pets, got %d: %+v", len(targets), targets)
	}
}

func TestResolveTargetsNCapsCount(t *testing.T) {
	pets := make([]*Pet, 5)
	for i := range pets {
		pets[i] = newTestPet("ant", 1, Stats{Attack: 1, Health: 1})
	}
	team := newTestTeam(pets...)
	ctx := resolveCtx{self: team, currentPet: idAt(team, 0)}

	targets, err := ResolveTargets(N(Condition{Kind: CondNone}, 3, false), TargetFriend, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(targets) != 3 {
		t.Errorf("expected N to cap at 3, got %d", len(targets))
	}
}
