package battle

import "log"

// Dispatch owns the two teams' trigger queues and drives them to
// quiescence (§4.4). It is the single entry point both the combat loop
// and the shop loop use to react to game events.
type Dispatch struct {
	Left  *Team
	Right *Team
}

func NewDispatch(left, right *Team) *Dispatch {
	return &Dispatch{Left: left, Right: right}
}

func (d *Dispatch) sideOf(t *Team) (self, opponent *Team) {
	if t == d.Left {
		return d.Left, d.Right
	}
	return d.Right, d.Left
}

// frontAttack returns the attack of team's living front pet, or -1 if it
// has none (used only to break entry priority ties).
func frontAttack(t *Team) int {
	p := t.First()
	if p == nil {
		return -1
	}
	return p.Stats.Attack
}

// unconsumedKnockOut reports whether team's queue holds a KnockOut trigger
// that hasn't yet been marked consumed (§4.4: "if either front pet holds
// an unconsumed KnockOut trigger it controls").
func unconsumedKnockOut(t *Team) bool {
	for i := range t.triggers {
		if t.triggers[i].Status == StatusKnockOut && !t.triggers[i].consumed {
			return true
		}
	}
	return false
}

// TriggerAllEffects drains both teams' queues to quiescence, starting with
// whichever side has priority at entry (§4.4 trigger_all_effects): a side
// holding an unconsumed KnockOut trigger controls; otherwise the side with
// the higher front-pet attack drains first. Once started, the two queues
// alternate one popped Outcome at a time until both are empty.
func (d *Dispatch) TriggerAllEffects() error {
	first, second := d.Left, d.Right
	switch {
	case unconsumedKnockOut(d.Left):
		first, second = d.Left, d.Right
	case unconsumedKnockOut(d.Right):
		first, second = d.Right, d.Left
	case frontAttack(d.Right) > frontAttack(d.Left):
		first, second = d.Right, d.Left
	}

	depth := 0
	for {
		progressed := false
		if len(first.triggers) > 0 {
			if err := d.triggerAllEffectsOnce(first); err != nil {
				return err
			}
			depth++
			progressed = true
		}
		if len(second.triggers) > 0 {
			if err := d.triggerAllEffectsOnce(second); err != nil {
				return err
			}
			depth++
			progressed = true
		}
		if !progressed {
			cascadeDepth.Observe(float64(depth))
			return nil
		}
	}
}

// triggerAllEffectsOnce pops exactly one Outcome off team's queue and runs
// every matching effect of that team's pets against it (§4.4 steps 2-5).
// The other team reacts only to Outcomes enqueued on its own queue.
func (d *Dispatch) triggerAllEffectsOnce(team *Team) error {
	outcome, ok := team.popTrigger()
	if !ok {
		return nil
	}
	triggersDispatchedTotal.Inc()
	self, opponent := d.sideOf(team)

	// §4.4 step 2: a combat trigger promotes the current front-line pet to
	// the head of its own team's activation order; for a non-combat trigger
	// activationOrder's plain descending-attack order (ties by position) is
	// used as is.
	selfOrder := activationOrder(self, outcome.Status.isCombatTrigger())
	if err := d.triggerEffects(self, opponent, selfOrder, outcome); err != nil {
		return err
	}

	if outcome.Status == StatusKnockOut {
		outcome.consumed = true
	}
	return nil
}

// activationOrder lists team's living pets by descending attack, ties
// broken by ascending position (§5 Ordering guarantees). When
// promoteFront is true the current front-line pet (slot 0's occupant) is
// moved to the head regardless of attack.
func activationOrder(team *Team, promoteFront bool) []PetID {
	pets := team.livingPetsInOrder()
	order := make([]*Pet, len(pets))
	copy(order, pets)
	for i := 1; i < len(order); i++ {
		for j := i; j > 0; j-- {
			a, b := order[j-1], order[j]
			if a.Stats.Attack < b.Stats.Attack || (a.Stats.Attack == b.Stats.Attack && a.Position > b.Position) {
				order[j-1], order[j] = order[j], order[j-1]
			} else {
				break
			}
		}
	}
	front := team.First()
	ids := make([]PetID, 0, len(order))
	if promoteFront && front != nil {
		ids = append(ids, idOf(team, front))
	}
	for _, p := range order {
		if promoteFront && front != nil && p == front {
			continue
		}
		ids = append(ids, idOf(team, p))
	}
	return ids
}

// triggerEffects runs every living pet's matching effects — its own perk
// effects, then item dispatch over its held food's ability — in
// activation order, against one Outcome (§4.4 steps 3-4). A friendly pet
// that the Outcome names and that has fainted is considered last, so its
// own on-faint effects (Cricket, Honey) still fire.
func (d *Dispatch) triggerEffects(owner, opponent *Team, order []PetID, outcome Outcome) error {
	type pending struct {
		ownerID PetID
		eff     *Effect
		tiger   bool
	}
	var toApply []pending

	var faintedSelf PetID
	if outcome.AffectedTeam == TargetFriend {
		if p, ok := owner.pet(outcome.AffectedPet); ok && p.Fainted() {
			faintedSelf = outcome.AffectedPet
			order = append(append([]PetID(nil), order...), faintedSelf)
		}
	}

	for _, id := range order {
		pet, ok := owner.pet(id)
		if !ok || (pet.Fainted() && id != faintedSelf) {
			continue
		}
		tiger := tigerBehindPet(owner, pet)

		consider := func(eff *Effect) {
			if eff.Inert() || !matchesTrigger(eff, outcome, pet, owner) {
				return
			}
			if petEffectException(eff, outcome, owner, id) {
				return
			}
			toApply = append(toApply, pending{ownerID: id, eff: eff})
			if eff.Uses != nil {
				*eff.Uses--
			}
		}

		for i := range pet.Effects {
			consider(&pet.Effects[i])
		}
		if pet.Item != nil {
			consider(&pet.Item.Ability)
		}

		if tiger != nil {
			for _, te := range tigerDoubledEffects(owner, pet, tiger, outcome, id) {
				te := te
				toApply = append(toApply, pending{ownerID: id, eff: &te, tiger: true})
			}
		}
	}

	for _, p := range toApply {
		if err := d.fireEffect(owner, opponent, p.ownerID, p.eff, outcome); err != nil {
			if IsFallible(err) {
				fallibleActionsSwallowedTotal.Inc()
				log.Printf("battle: swallowed fallible action: %v", err)
				continue
			}
			return err
		}
	}
	return nil
}

// tigerBehindPet returns the Tiger directly behind pet on team, or nil if
// there isn't one or the shop is open (§4.3.1, §8 invariant).
func tigerBehindPet(team *Team, pet *Pet) *Pet {
	if team.Shop != nil && team.Shop.State == ShopOpen {
		return nil
	}
	behindIdx := pet.Position + 1
	if behindIdx >= team.MaxSize {
		return nil
	}
	id := team.friends[behindIdx]
	if id.Zero() {
		return nil
	}
	behind, ok := team.pet(id)
	if !ok || behind.Fainted() || behind.Name != NameTiger {
		return nil
	}
	return behind
}

// tigerDoubledEffects implements §4.3.1's "fetch the original pet's effect
// list at the Tiger's level": it re-queries the catalog for pet's effect
// templates at tiger.Level (not pet's own, possibly lower, level) and
// filters them through the same activation and exception checks as pet's
// own effects, so a levelled-up Tiger doubles with levelled-up numbers
// rather than a verbatim copy of the acting pet's current effect. When no
// catalog is wired (e.g. hand-built effects with no catalog-backed
// template), this falls back to reusing pet's own current effects as they
// are — equivalent when the acting pet's effect doesn't scale with level
// (see DESIGN.md Open Questions).
func tigerDoubledEffects(owner *Team, pet *Pet, tiger *Pet, outcome Outcome, id PetID) []Effect {
	var templates []Effect
	if owner.Catalog != nil {
		fetched, err := owner.Catalog.PetEffects(pet.Name, tiger.Level)
		if err == nil {
			templates = fetched
		}
	}
	if templates == nil {
		templates = pet.Effects
	}
	out := make([]Effect, 0, len(templates))
	for _, te := range templates {
		te.Owner = id
		if te.Inert() || !matchesTrigger(&te, outcome, pet, owner) {
			continue
		}
		if petEffectException(&te, outcome, owner, id) {
			continue
		}
		out = append(out, te)
	}
	return out
}

// petEffectException implements the three named self-cycle breaks (§4.4
// step 3 Exceptions), the rules that keep Fly-on-summon and
// Summon-on-ZombieFly from looping forever (§5 Cancellation).
func petEffectException(eff *Effect, outcome Outcome, owner *Team, thisPet PetID) bool {
	affected, ok := owner.pet(outcome.AffectedPet)
	if eff.Action.Kind == ActionSummon && ok {
		if affected.Name == NameZombieFly {
			return true
		}
		if affected.Name == NameFly && outcome.AffectedPet == thisPet {
			return true
		}
	}
	if eff.Action.Kind == ActionAdd &&
		eff.Trigger.Position.Kind == PosAny && eff.Trigger.Position.Cond.Kind == CondNone &&
		outcome.AffectedPet == thisPet {
		return true
	}
	return false
}

// matchesTrigger implements the effect-activation predicate (§4.4 step 3):
// the effect's own trigger status must match the popped Outcome, and its
// trigger position must either be a wildcard (None/Any/All) or name this
// pet specifically as the one the Outcome affected. An OnSelf trigger also
// matches an Outcome that names no pet (a team-wide event such as
// StartOfBattle), so every pet carrying it reacts.
func matchesTrigger(eff *Effect, outcome Outcome, pet *Pet, owner *Team) bool {
	if eff.Trigger.Status != outcome.Status {
		return false
	}
	if eff.Trigger.Position.broad() {
		return true
	}
	if eff.Trigger.Position.Kind == PosOnSelf && outcome.AffectedPet.Zero() {
		return true
	}
	affected, ok := owner.pet(outcome.AffectedPet)
	return ok && affected == pet
}

// fireEffect resolves eff's targets and applies its Action against each
// (§4.3/§4.4 step 4). A Tiger-doubled pending entry reuses the same
// resolution, since targets are resolved fresh from current state rather
// than memoized, matching "fetch the original pet's effect list at the
// Tiger's level" (the doubled copy fires against whatever the position
// resolves to at that later point in the application sequence).
func (d *Dispatch) fireEffect(owner, opponent *Team, ownerID PetID, eff *Effect, outcome Outcome) error {
	rctx := resolveCtx{self: owner, opponent: opponent, currentPet: ownerID, trigger: outcome}
	targets, err := ResolveTargets(eff.Pos, eff.TargetTeam, rctx)
	if err != nil {
		return err
	}
	ctx := execCtx{self: owner, opponent: opponent, owner: ownerID, cause: outcome}
	if eff.Action.Kind == ActionSwap || eff.Action.Kind == ActionShuffle {
		if err := ApplyMultiTarget(eff.Action, targets, ctx); err != nil {
			if IsFallible(err) {
				fallibleActionsSwallowedTotal.Inc()
				log.Printf("battle: action %v fallible: %v", eff.Action.Kind, err)
				return nil
			}
			return err
		}
		return nil
	}
	for _, target := range targets {
		if err := ApplyAction(eff.Action, target, ctx); err != nil {
			if IsFallible(err) {
				fallibleActionsSwallowedTotal.Inc()
				log.Printf("battle: action %v fallible: %v", eff.Action.Kind, err)
				continue
			}
			return err
		}
	}
	return nil
}
