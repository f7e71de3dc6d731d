package battle

import (
	"math/rand"
	"time"
)

// Battle pairs two teams with the dispatcher that drives their queues,
// and tracks the bookkeeping fight() needs across repeated calls (§4.5).
type Battle struct {
	Left, Right *Team
	dispatch    *Dispatch

	started bool
	leftBeforeFirst, rightBeforeFirst bool
}

func NewBattle(left, right *Team) *Battle {
	return &Battle{Left: left, Right: right, dispatch: NewDispatch(left, right)}
}

// Fight runs one battle step (§4.5 fight): clear fainted pets, drain
// pending triggers, fire StartOfBattle/BeforeFirstBattle exactly once,
// resolve at most one direct attack exchange, and report the outcome.
func (b *Battle) Fight() (FightOutcome, error) {
	start := time.Now()
	outcome, err := b.fight()
	recordFightDuration(time.Since(start))
	if err == nil {
		recordFightOutcome(outcome)
	}
	return outcome, err
}

func (b *Battle) fight() (FightOutcome, error) {
	b.Left.ClearTeam(false)
	b.Right.ClearTeam(false)
	if err := b.dispatch.TriggerAllEffects(); err != nil {
		return FightNone, err
	}

	if !b.started {
		b.started = true
		b.Left.enqueue(Outcome{Status: StatusStartOfBattle, AffectedTeam: TargetFriend})
		b.Right.enqueue(Outcome{Status: StatusStartOfBattle, AffectedTeam: TargetEnemy})
	}
	if !b.leftBeforeFirst {
		b.leftBeforeFirst = true
		b.Left.enqueue(Outcome{Status: StatusBeforeFirstBattle, AffectedTeam: TargetFriend})
	}
	if !b.rightBeforeFirst {
		b.rightBeforeFirst = true
		b.Right.enqueue(Outcome{Status: StatusBeforeFirstBattle, AffectedTeam: TargetFriend})
	}
	if err := b.dispatch.TriggerAllEffects(); err != nil {
		return FightNone, err
	}

	b.Left.currPhase++
	b.Right.currPhase++

	leftFront, rightFront := b.Left.First(), b.Right.First()
	if leftFront != nil && rightFront != nil {
		leftID, rightID := idOf(b.Left, leftFront), idOf(b.Right, rightFront)
		// SelfBeforeAttack fires on the attacking pet itself; AheadAttack
		// fires on the rest of its team, which is about to watch it fight
		// (§4.5 step 5).
		b.Left.enqueue(Outcome{Status: StatusSelfBeforeAttack, AffectedTeam: TargetFriend, AffectedPet: leftID})
		b.Left.enqueue(Outcome{Status: StatusAheadAttack, AffectedTeam: TargetFriend, AffectedPet: leftID})
		b.Right.enqueue(Outcome{Status: StatusSelfBeforeAttack, AffectedTeam: TargetFriend, AffectedPet: rightID})
		b.Right.enqueue(Outcome{Status: StatusAheadAttack, AffectedTeam: TargetFriend, AffectedPet: rightID})
		if err := b.dispatch.TriggerAllEffects(); err != nil {
			return FightNone, err
		}

		if err := b.resolveDirectAttack(); err != nil {
			return FightNone, err
		}
		if err := b.dispatch.TriggerAllEffects(); err != nil {
			return FightNone, err
		}
	}

	b.Left.ClearTeam(false)
	b.Right.ClearTeam(false)

	leftAlive, rightAlive := b.Left.CountAlive(), b.Right.CountAlive()
	switch {
	case leftAlive == 0 && rightAlive == 0:
		return FightDraw, nil
	case leftAlive == 0:
		return FightLoss, nil
	case rightAlive == 0:
		return FightWin, nil
	default:
		return FightNone, nil
	}
}

// foodAttackBonus returns the Steak/MeatBone-style flat attack bonus a held
// food contributes to this exchange, consuming a use if finite.
func foodAttackBonus(p *Pet) int {
	if p.Item == nil {
		return 0
	}
	switch p.Item.Name {
	case NameMeatBone, NameSteak:
		bonus := p.Item.Ability.Action.StatChange.ToStats(p.Stats, nil).Attack
		p.Item.Consume()
		return bonus
	}
	return 0
}

// hasChili reports whether p holds an unconsumed Chili (§4.6 splash).
func hasChili(p *Pet) bool {
	return p.Item != nil && p.Item.Name == NameChili && (p.Item.Uses == nil || *p.Item.Uses > 0)
}

// fortuneCookieCrit rolls a crit using the pet's own team's seeded RNG,
// consuming the cookie's use on activation (§4.6). A crit doubles this
// exchange's outgoing damage.
func fortuneCookieCrit(p *Pet, rng *rand.Rand) bool {
	if p.Item == nil || p.Item.Name != NameFortuneCookie {
		return false
	}
	const critChancePct = 25
	crit := rng.Intn(100) < critChancePct
	if crit {
		p.Item.Consume()
	}
	return crit
}

// hasPeanut reports whether p holds an unconsumed Peanut (§4.6 lethal
// marker).
func hasPeanut(p *Pet) bool {
	return p.Item != nil && p.Item.Name == NamePeanut && (p.Item.Uses == nil || *p.Item.Uses > 0)
}

// absorbsHit reports whether p's held Coconut/Melon nullifies an incoming
// hit outright, consuming one use (§4.6: "overflow ... is not possible,
// invulnerability is total").
func absorbsHit(p *Pet) bool {
	if p.Item == nil {
		return false
	}
	switch p.Item.Name {
	case NameCoconut, NameMelon:
		spent := p.Item.Consume()
		if spent {
			p.Item = nil
		}
		return true
	}
	return false
}

// garlicReduction returns the flat damage reduction (min resulting damage
// 1) a defender's Garlic applies (§4.6, §8 scenario 4).
func garlicReduction(dmg int) int {
	const garlicAmount = 2
	reduced := dmg - garlicAmount
	if reduced < 1 {
		reduced = 1
	}
	return reduced
}

// applyPepper guarantees 1 HP survival on a lethal hit, consuming its
// single use, and reports whether it fired.
func applyPepper(p *Pet, incoming int) bool {
	if p.Item == nil || p.Item.Name != NamePepper {
		return false
	}
	if p.Item.Uses != nil && *p.Item.Uses == 0 {
		return false
	}
	if p.Stats.Health-incoming > 0 {
		return false
	}
	p.Item.Consume()
	return true
}

// damageResult is the outcome of one attack's worth of damage against one
// defender, after armor/Garlic/Coconut/Melon/Pepper resolution.
type damageResult struct {
	dealt      int
	absorbed   bool
	peppered   bool
	fainted    bool
	knockedOut bool
}

// applyDamage computes and applies raw damage to defender, honoring the
// §4.6 armor order: Coconut/Melon absorb first (even a Peanut-marked
// lethal hit); otherwise Garlic reduces; otherwise Pepper may guarantee
// survival at 1 HP.
func applyDamage(defender *Pet, raw int, lethalMarked bool) damageResult {
	if absorbsHit(defender) {
		return damageResult{absorbed: true}
	}
	dmg := raw
	if defender.Item != nil && defender.Item.Name == NameGarlic {
		dmg = garlicReduction(dmg)
	}
	if lethalMarked {
		defender.Stats.Health = 0
		return damageResult{dealt: dmg, fainted: true}
	}
	if applyPepper(defender, dmg) {
		defender.Stats.Health = 1
		return damageResult{dealt: dmg, peppered: true}
	}
	defender.Stats.Health = clampInt(defender.Stats.Health-dmg, 0, MaxStat)
	return damageResult{dealt: dmg, fainted: defender.Stats.Health <= 0}
}

// resolveDirectAttack implements §4.6's direct attack between the two
// current front pets, applying damage simultaneously and routing the
// resulting triggers (§4.5 step 5, §4.6).
func (b *Battle) resolveDirectAttack() error {
	left, right := b.Left.First(), b.Right.First()
	if left == nil || right == nil {
		return nil
	}
	leftID, rightID := idOf(b.Left, left), idOf(b.Right, right)

	leftDmg := left.Stats.Attack + foodAttackBonus(left)
	rightDmg := right.Stats.Attack + foodAttackBonus(right)
	if fortuneCookieCrit(left, b.Left.rng) {
		leftDmg *= 2
	}
	if fortuneCookieCrit(right, b.Right.rng) {
		rightDmg *= 2
	}
	leftLethal := hasPeanut(left)
	rightLethal := hasPeanut(right)

	rightResult := applyDamage(right, leftDmg, leftLethal)
	leftResult := applyDamage(left, rightDmg, rightLethal)

	b.Left.enqueue(Outcome{Status: StatusAttack, AffectedTeam: TargetFriend, AffectedPet: leftID})
	b.Right.enqueue(Outcome{Status: StatusAttack, AffectedTeam: TargetFriend, AffectedPet: rightID})

	if rightResult.dealt > 0 {
		b.Right.enqueue(Outcome{Status: StatusHurt, AffectedTeam: TargetFriend, AffectedPet: rightID})
	}
	if leftResult.dealt > 0 {
		b.Left.enqueue(Outcome{Status: StatusHurt, AffectedTeam: TargetFriend, AffectedPet: leftID})
	}
	if rightResult.fainted {
		b.Right.enqueue(Outcome{Status: StatusFaint, AffectedTeam: TargetFriend, AffectedPet: rightID})
		b.Left.enqueue(Outcome{Status: StatusKnockOut, AffectedTeam: TargetEnemy, AffectedPet: rightID, AfflictingTeam: TargetFriend, AfflictingPet: leftID})
	}
	if leftResult.fainted {
		b.Left.enqueue(Outcome{Status: StatusFaint, AffectedTeam: TargetFriend, AffectedPet: leftID})
		b.Right.enqueue(Outcome{Status: StatusKnockOut, AffectedTeam: TargetEnemy, AffectedPet: leftID, AfflictingTeam: TargetFriend, AfflictingPet: rightID})
	}

	if hasChili(left) && right.Fainted() {
		left.Item.Consume()
		applySplash(b.Right, right, leftDmg)
	}
	if hasChili(right) && left.Fainted() {
		right.Item.Consume()
		applySplash(b.Left, left, rightDmg)
	}
	return nil
}

// applySplash implements Chili's splash onto the second enemy pet (§4.6).
func applySplash(team *Team, excluding *Pet, dmg int) {
	living := team.livingPetsInOrder()
	for _, p := range living {
		if p == excluding {
			continue
		}
		id := idOf(team, p)
		result := applyDamage(p, dmg, false)
		if result.dealt > 0 {
			team.enqueue(Outcome{Status: StatusHurt, AffectedTeam: TargetFriend, AffectedPet: id})
		}
		if result.fainted {
			team.enqueue(Outcome{Status: StatusFaint, AffectedTeam: TargetFriend, AffectedPet: id})
		}
		break
	}
}

// applyIndirectAttack implements §4.6's indirect attack: same damage/
// armor/pepper logic as a direct attack but without an Attack trigger,
// with the afflicting pet recorded as the effect owner, Rhino's tier-1
// double damage, and a KnockOut routed to the owner's team when the
// owner's team differs from the target's.
func applyIndirectAttack(target *Pet, dmg int, targetTeam *Team, targetID PetID, ownerTeam *Team, ownerID PetID) {
	if owner, ok := ownerTeam.pet(ownerID); ok && owner.Name == NameRhino && target.Tier == 1 {
		dmg *= 2
	}
	lethal := false
	if owner, ok := ownerTeam.pet(ownerID); ok {
		lethal = hasPeanut(owner)
	}
	result := applyDamage(target, dmg, lethal)
	if result.absorbed {
		return
	}
	if result.dealt > 0 {
		targetTeam.enqueue(Outcome{Status: StatusHurt, AffectedTeam: TargetFriend, AffectedPet: targetID})
	}
	if result.fainted {
		targetTeam.enqueue(Outcome{Status: StatusFaint, AffectedTeam: TargetFriend, AffectedPet: targetID})
		if ownerTeam != targetTeam {
			ownerTeam.enqueue(Outcome{Status: StatusKnockOut, AffectedTeam: TargetEnemy, AffectedPet: targetID, AfflictingTeam: TargetFriend, AfflictingPet: ownerID})
		}
	}
}
