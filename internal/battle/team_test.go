package battle

import "testing"

func TestReindexPositionsMatchesSlotOrder(t *testing.T) {
	a := newTestPet("ant", 1, Stats{Attack: 1, Health: 1})
	b := newTestPet("bee", 1, Stats{Attack: 1, Health: 1})
	team := newTestTeam(a, b)

	team.swapPets(0, 1)
	if a.Position != 1 || b.Position != 0 {
		t.Errorf("expected positions swapped, got a=%d b=%d", a.Position, b.Position)
	}
}

func TestAddPetRejectsWhenTeamFull(t *testing.T) {
	pets := make([]*Pet, 3)
	for i := range pets {
		pets[i] = newTestPet("ant", 1, Stats{Attack: 1, Health: 1})
	}
	team := newTestTeam(pets...)

	extra := newTestPet("bee", 1, Stats{Attack: 1, Health: 1})
	if _, err := team.AddPet(extra, 0); err == nil {
		t.Fatal("expected an error adding to a full team")
	}
}

func TestClearTeamRetainEmptyKeepsHoles(t *testing.T) {
	alive := newTestPet("ant", 1, Stats{Attack: 1, Health: 1})
	dead := newTestPet("bee", 1, Stats{Attack: 1, Health: 0})
	team := newTestTeam(alive, dead)

	team.ClearTeam(true)
	if team.friends[0].Zero() {
		t.Error("expected slot 0 (living pet) to remain occupied")
	}
	if !team.friends[1].Zero() {
		t.Error("expected slot 1 (fainted pet) to become an explicit hole")
	}
	if len(team.fainted) != 1 {
		t.Errorf("expected 1 fainted pet recorded, got %d", len(team.fainted))
	}
}

func TestClearTeamCompactsWhenNotRetaining(t *testing.T) {
	dead := newTestPet("ant", 1, Stats{Attack: 1, Health: 0})
	alive := newTestPet("bee", 1, Stats{Attack: 1, Health: 1})
	team := newTestTeam(dead, alive)

	team.ClearTeam(false)
	if team.friends[0].Zero() {
		t.Fatal("expected the living pet to be compacted into slot 0")
	}
	p, ok := team.pet(team.friends[0])
	if !ok || p.Name != "bee" {
		t.Errorf("expected bee compacted to the front, got %+v", p)
	}
	if p.Position != 0 {
		t.Errorf("expected reindexed position 0, got %d", p.Position)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	pet := newTestPet("ant", 2, Stats{Attack: 3, Health: 4})
	pet.Level = 2
	pet.Exp = 2
	team := NewTeam("raiders", []*Pet{pet}, 3, 7, nil)

	snap := team.Snapshot()
	if snap.Name != "raiders" || snap.MaxSize != 3 || snap.Seed != 7 {
		t.Errorf("unexpected snapshot header: %+v", snap)
	}
	if len(snap.Friends) != 1 || snap.Friends[0].Name != "ant" || snap.Friends[0].Level != 2 {
		t.Fatalf("unexpected snapshot friends: %+v", snap.Friends)
	}

	cat := newTestCatalog()
	cat.pets = append(cat.pets, PetRecord{Name: "ant", Tier: 2, Stats: Stats{Attack: 3, Health: 4}})
	loaded, err := LoadTeam(snap, cat)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Name != "raiders" || loaded.MaxSize != 3 || loaded.Seed != 7 {
		t.Errorf("unexpected reloaded team header: %+v", loaded)
	}
	if loaded.CountAlive() != 1 {
		t.Fatalf("expected 1 pet reloaded, got %d", loaded.CountAlive())
	}
	reloadedPet := loaded.First()
	if reloadedPet.Name != "ant" || reloadedPet.Level != 2 || reloadedPet.Exp != 2 {
		t.Errorf("unexpected reloaded pet: %+v", reloadedPet)
	}
}

func TestCloneTeamSeedIsIndependent(t *testing.T) {
	team := newTestTeam(newTestPet("ant", 1, Stats{Attack: 1, Health: 1}))
	team.SetSeed(99)

	other := NewTeam("clone", nil, team.MaxSize, team.Seed, nil)
	other.SetSeed(123)

	if team.Seed == other.Seed {
		t.Fatal("expected independent seeds after SetSeed on the clone")
	}
}
