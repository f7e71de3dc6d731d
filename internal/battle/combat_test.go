package battle

import (
	"math/rand"
	"testing"
)

func useOf(n int) *int { return &n }

func TestApplyDamagePlain(t *testing.T) {
	defender := newTestPet("ant", 1, Stats{Attack: 2, Health: 10})
	result := applyDamage(defender, 4, false)
	if result.dealt != 4 || result.fainted {
		t.Errorf("got %+v, want dealt=4 fainted=false", result)
	}
	if defender.Stats.Health != 6 {
		t.Errorf("defender health = %d, want 6", defender.Stats.Health)
	}
}

func TestApplyDamageGarlicReducesFlatFloorOne(t *testing.T) {
	defender := newTestPet("ant", 1, Stats{Attack: 2, Health: 10})
	defender.Item = &Food{Name: NameGarlic}

	result := applyDamage(defender, 3, false)
	if result.dealt != 1 {
		t.Errorf("3 dmg through garlic should reduce to 1, got %d", result.dealt)
	}

	defender.Stats.Health = 10
	result = applyDamage(defender, 100, false)
	if result.dealt != 98 {
		t.Errorf("100 dmg through garlic should reduce to 98, got dealt=%d", result.dealt)
	}
}

func TestApplyDamageCoconutAbsorbsEvenLethalMark(t *testing.T) {
	defender := newTestPet("ant", 1, Stats{Attack: 2, Health: 10})
	defender.Item = &Food{Name: NameCoconut, Uses: useOf(1)}

	result := applyDamage(defender, 500, true)
	if !result.absorbed {
		t.Fatal("expected coconut to absorb the hit")
	}
	if defender.Stats.Health != 10 {
		t.Errorf("absorbed hit should leave health untouched, got %d", defender.Stats.Health)
	}
	if defender.Item != nil {
		t.Error("single-use coconut should be consumed and cleared")
	}
}

func TestApplyDamagePepperGuaranteesSurvival(t *testing.T) {
	defender := newTestPet("ant", 1, Stats{Attack: 2, Health: 5})
	defender.Item = &Food{Name: NamePepper, Uses: useOf(1)}

	result := applyDamage(defender, 50, false)
	if !result.peppered {
		t.Fatal("expected pepper to fire on a lethal hit")
	}
	if defender.Stats.Health != 1 {
		t.Errorf("peppered pet should survive at 1 hp, got %d", defender.Stats.Health)
	}
	if *defender.Item.Uses != 0 {
		t.Errorf("pepper should consume its single use, got %d left", *defender.Item.Uses)
	}
}

func TestApplyDamagePepperAlreadySpentDoesNotFire(t *testing.T) {
	defender := newTestPet("ant", 1, Stats{Attack: 2, Health: 5})
	defender.Item = &Food{Name: NamePepper, Uses: useOf(0)}

	result := applyDamage(defender, 50, false)
	if result.peppered {
		t.Error("spent pepper must not fire again")
	}
	if !result.fainted {
		t.Error("expected the pet to faint once pepper is already spent")
	}
}

func TestApplyDamageLethalMarkBypassesPepper(t *testing.T) {
	defender := newTestPet("ant", 1, Stats{Attack: 2, Health: 5})
	defender.Item = &Food{Name: NamePepper, Uses: useOf(1)}

	result := applyDamage(defender, 1, true)
	if !result.fainted {
		t.Error("a peanut-marked lethal hit must faint the defender even holding pepper")
	}
	if defender.Stats.Health != 0 {
		t.Errorf("lethal mark should zero health outright, got %d", defender.Stats.Health)
	}
}

func TestResolveDirectAttackDealsSimultaneousDamage(t *testing.T) {
	left := newTestPet("ant", 1, Stats{Attack: 3, Health: 10})
	right := newTestPet("bee", 1, Stats{Attack: 4, Health: 10})
	leftTeam := newTestTeam(left)
	rightTeam := newTestTeam(right)
	b := &Battle{Left: leftTeam, Right: rightTeam, dispatch: NewDispatch(leftTeam, rightTeam)}

	if err := b.resolveDirectAttack(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if left.Stats.Health != 6 {
		t.Errorf("left health = %d, want 6", left.Stats.Health)
	}
	if right.Stats.Health != 7 {
		t.Errorf("right health = %d, want 7", right.Stats.Health)
	}

	leftStatuses := statusesOf(leftTeam)
	rightStatuses := statusesOf(rightTeam)
	if !leftStatuses[StatusAttack] || !rightStatuses[StatusAttack] {
		t.Error("expected both teams to queue StatusAttack")
	}
	if !leftStatuses[StatusHurt] || !rightStatuses[StatusHurt] {
		t.Error("expected both teams to queue StatusHurt")
	}
}

func TestResolveDirectAttackFaintAndKnockOut(t *testing.T) {
	left := newTestPet("ant", 1, Stats{Attack: 10, Health: 10})
	right := newTestPet("bee", 1, Stats{Attack: 1, Health: 1})
	leftTeam := newTestTeam(left)
	rightTeam := newTestTeam(right)
	b := &Battle{Left: leftTeam, Right: rightTeam, dispatch: NewDispatch(leftTeam, rightTeam)}

	if err := b.resolveDirectAttack(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !right.Fainted() {
		t.Fatal("expected right to faint")
	}

	rightStatuses := statusesOf(rightTeam)
	if !rightStatuses[StatusFaint] {
		t.Error("expected right's own team to queue StatusFaint")
	}
	leftStatuses := statusesOf(leftTeam)
	if !leftStatuses[StatusKnockOut] {
		t.Error("expected the attacker's team to queue StatusKnockOut")
	}
}

func TestResolveDirectAttackFoodBonusAndConsumption(t *testing.T) {
	left := newTestPet("ant", 1, Stats{Attack: 2, Health: 10})
	left.Item = &Food{Name: NameMeatBone, Ability: Effect{Action: Action{Kind: ActionAdd, StatChange: StaticAttack(3)}}, Uses: useOf(1)}
	right := newTestPet("bee", 1, Stats{Attack: 1, Health: 10})
	leftTeam := newTestTeam(left)
	rightTeam := newTestTeam(right)
	b := &Battle{Left: leftTeam, Right: rightTeam, dispatch: NewDispatch(leftTeam, rightTeam)}

	if err := b.resolveDirectAttack(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if right.Stats.Health != 5 {
		t.Errorf("right should take 2+3=5 damage, got health %d", right.Stats.Health)
	}
	if *left.Item.Uses != 0 {
		t.Errorf("meat bone should consume its single use, got %d left", *left.Item.Uses)
	}
}

func TestResolveDirectAttackChiliSplashesSecondEnemy(t *testing.T) {
	left := newTestPet("ant", 3, Stats{Attack: 10, Health: 10})
	left.Item = &Food{Name: NameChili, Uses: useOf(1)}
	front := newTestPet("bee", 1, Stats{Attack: 1, Health: 1})
	back := newTestPet("cat", 1, Stats{Attack: 1, Health: 10})
	leftTeam := newTestTeam(left)
	rightTeam := newTestTeam(front, back)
	b := &Battle{Left: leftTeam, Right: rightTeam, dispatch: NewDispatch(leftTeam, rightTeam)}

	if err := b.resolveDirectAttack(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !front.Fainted() {
		t.Fatal("expected front pet to faint to the direct hit")
	}
	if back.Stats.Health != 0 {
		t.Errorf("expected chili splash to also deal 10 to the second enemy, got health %d", back.Stats.Health)
	}
	if left.Item == nil || *left.Item.Uses != 0 {
		t.Error("chili should consume its single use on splash")
	}
}

func TestFortuneCookieCritDoublesAndConsumes(t *testing.T) {
	p := newTestPet("ant", 1, Stats{Attack: 5, Health: 5})
	p.Item = &Food{Name: NameFortuneCookie, Uses: useOf(1)}

	// seed chosen so the first Intn(100) roll lands under 25 (crit fires).
	var critRng *rand.Rand
	for seed := int64(0); seed < 100; seed++ {
		r := rand.New(rand.NewSource(seed))
		if r.Intn(100) < 25 {
			critRng = rand.New(rand.NewSource(seed))
			break
		}
	}
	if critRng == nil {
		t.Fatal("could not find a seed producing a crit in the search range")
	}
	if !fortuneCookieCrit(p, critRng) {
		t.Fatal("expected crit to fire with the chosen seed")
	}
	if *p.Item.Uses != 0 {
		t.Error("fortune cookie should consume its use on crit")
	}
}

func TestFortuneCookieNoCritLeavesUseIntact(t *testing.T) {
	p := newTestPet("ant", 1, Stats{Attack: 5, Health: 5})
	p.Item = &Food{Name: NameFortuneCookie, Uses: useOf(1)}

	var missRng *rand.Rand
	for seed := int64(0); seed < 100; seed++ {
		r := rand.New(rand.NewSource(seed))
		if r.Intn(100) >= 25 {
			missRng = rand.New(rand.NewSource(seed))
			break
		}
	}
	if missRng == nil {
		t.Fatal("could not find a seed producing a miss in the search range")
	}
	if fortuneCookieCrit(p, missRng) {
		t.Fatal("did not expect a crit with the chosen seed")
	}
	if *p.Item.Uses != 1 {
		t.Error("a missed crit roll must not consume the cookie")
	}
}

func TestApplyIndirectAttackRhinoDoublesTierOne(t *testing.T) {
	rhino := newTestPet(NameRhino, 1, Stats{Attack: 1, Health: 1})
	ownerTeam := newTestTeam(rhino)
	ownerID := idAt(ownerTeam, 0)

	target := newTestPet("ant", 1, Stats{Attack: 1, Health: 10})
	targetTeam := newTestTeam(target)
	targetID := idAt(targetTeam, 0)

	applyIndirectAttack(target, 3, targetTeam, targetID, ownerTeam, ownerID)
	if target.Stats.Health != 4 {
		t.Errorf("rhino should double indirect damage vs tier 1 (3*2=6), got health %d", target.Stats.Health)
	}
}

func TestApplyIndirectAttackNoDoubleAgainstHigherTier(t *testing.T) {
	rhino := newTestPet(NameRhino, 1, Stats{Attack: 1, Health: 1})
	ownerTeam := newTestTeam(rhino)
	ownerID := idAt(ownerTeam, 0)

	target := newTestPet("ant", 2, Stats{Attack: 1, Health: 10})
	targetTeam := newTestTeam(target)
	targetID := idAt(targetTeam, 0)

	applyIndirectAttack(target, 3, targetTeam, targetID, ownerTeam, ownerID)
	if target.Stats.Health != 7 {
		t.Errorf("rhino should not double vs tier 2+, got health %d", target.Stats.Health)
	}
}

func TestApplyIndirectAttackRoutesKnockOutToOwnerTeam(t *testing.T) {
	owner := newTestPet("ant", 1, Stats{Attack: 1, Health: 1})
	ownerTeam := newTestTeam(owner)
	ownerID := idAt(ownerTeam, 0)

	target := newTestPet("bee", 1, Stats{Attack: 1, Health: 1})
	targetTeam := newTestTeam(target)
	targetID := idAt(targetTeam, 0)

	applyIndirectAttack(target, 5, targetTeam, targetID, ownerTeam, ownerID)
	if !target.Fainted() {
		t.Fatal("expected target to faint")
	}
	if !statusesOf(targetTeam)[StatusFaint] {
		t.Error("expected target's own team to queue StatusFaint")
	}
	if !statusesOf(ownerTeam)[StatusKnockOut] {
		t.Error("expected the owner's team to queue StatusKnockOut when it differs from the target's team")
	}
}

func statusesOf(team *Team) map[Status]bool {
	got := map[Status]bool{}
	for _, o := range team.triggers {
		got[o.Status] = true
	}
	return got
}
