package battle

import "math/rand"

// ResolvedTarget is one (team, pet) pair produced by the resolver (§4.2).
type ResolvedTarget struct {
	Team *Team
	ID   PetID
}

// resolveCtx carries everything the resolver needs: which team "owns" this
// resolution (self), its opponent, the current pet driving it, and the
// trigger that caused the effect to activate.
type resolveCtx struct {
	self       *Team
	opponent   *Team
	currentPet PetID
	trigger    Outcome
}

// sideFor maps a Target to a concrete team. Either defaults to self for
// callers that need a single anchor team (Relative/Nearest/Adjacent
// positive-direction arithmetic); callers that must honor Either's
// cross-team semantics handle it themselves.
func sideFor(target Target, self, opponent *Team) *Team {
	switch target {
	case TargetEnemy:
		return opponent
	case TargetFriend, TargetEither:
		return self
	default:
		return nil
	}
}

// ResolveTargets enumerates the ordered list of pets a Position affects,
// given the team a position is resolved against (targetTeam) and the
// resolution context (§4.2).
func ResolveTargets(pos Position, targetTeam Target, ctx resolveCtx) ([]ResolvedTarget, error) {
	self, opp := ctx.self, ctx.opponent

	switch pos.Kind {
	case PosOnSelf:
		if ctx.currentPet.Zero() {
			return nil, nil
		}
		return []ResolvedTarget{{Team: self, ID: ctx.currentPet}}, nil

	case PosFirst:
		team := sideFor(targetTeam, self, opp)
		if team == nil {
			return nil, nil
		}
		if p := team.First(); p != nil {
			return []ResolvedTarget{{Team: team, ID: idOf(team, p)}}, nil
		}
		return nil, nil

	case PosLast:
		team := sideFor(targetTeam, self, opp)
		if team == nil {
			return nil, nil
		}
		if p := team.Last(); p != nil {
			return []ResolvedTarget{{Team: team, ID: idOf(team, p)}}, nil
		}
		return nil, nil

	case PosAny:
		return resolveAny(pos, targetTeam, ctx)

	case PosAll:
		return resolveAll(pos, targetTeam, ctx)

	case PosRelative:
		return resolveRelative(pos.K, targetTeam, ctx)

	case PosRange:
		out := make([]ResolvedTarget, 0)
		for k := pos.RangeLo; k <= pos.RangeHi; k++ {
			ts, err := resolveRelative(k, targetTeam, ctx)
			if err != nil {
				return nil, err
			}
			out = append(out, ts...)
		}
		return out, nil

	case PosNearest:
		return resolveNearest(pos.K, targetTeam, ctx)

	case PosAdjacent:
		team := sideFor(targetTeam, self, opp)
		if team == nil || ctx.currentPet.Zero() {
			return nil, nil
		}
		cur, ok := team.pet(ctx.currentPet)
		if !ok {
			return nil, nil
		}
		out := make([]ResolvedTarget, 0, 2)
		if ahead := nearestLivingAt(team, cur.Position-1, -1); !ahead.Zero() {
			out = append(out, ResolvedTarget{Team: team, ID: ahead})
		}
		if behind := nearestLivingAt(team, cur.Position+1, 1); !behind.Zero() {
			out = append(out, ResolvedTarget{Team: team, ID: behind})
		}
		return out, nil

	case PosOpposite:
		if ctx.currentPet.Zero() || opp == nil {
			return nil, nil
		}
		cur, ok := self.pet(ctx.currentPet)
		if !ok {
			return nil, nil
		}
		if cur.Position < 0 || cur.Position >= opp.MaxSize {
			return nil, nil
		}
		id := opp.friends[cur.Position]
		if id.Zero() {
			return nil, nil
		}
		return []ResolvedTarget{{Team: opp, ID: id}}, nil

	case PosN:
		return resolveN(pos, targetTeam, ctx)

	case PosTriggerAffected:
		team := teamForSide(ctx.trigger.AffectedTeam, self, opp)
		if team == nil || ctx.trigger.AffectedPet.Zero() {
			return nil, newErr(ErrFallibleAction, "trigger carries no affected pet")
		}
		return []ResolvedTarget{{Team: team, ID: ctx.trigger.AffectedPet}}, nil

	case PosTriggerAfflicting:
		team := teamForSide(ctx.trigger.AfflictingTeam, self, opp)
		if team == nil || ctx.trigger.AfflictingPet.Zero() {
			return nil, newErr(ErrFallibleAction, "trigger carries no afflicting pet")
		}
		return []ResolvedTarget{{Team: team, ID: ctx.trigger.AfflictingPet}}, nil

	case PosMultiple:
		out := make([]ResolvedTarget, 0)
		for _, sub := range pos.Positions {
			ts, err := ResolveTargets(sub, targetTeam, ctx)
			if err != nil {
				return nil, err
			}
			out = append(out, ts...)
		}
		return out, nil

	case PosShop:
		return nil, nil // shop-only positions are resolved by shop.go, not the pet resolver

	default:
		return nil, nil
	}
}

func idOf(team *Team, p *Pet) PetID {
	for _, id := range team.friends {
		if pp, ok := team.pet(id); ok && pp == p {
			return id
		}
	}
	return PetID{}
}

func teamForSide(side Target, self, opponent *Team) *Team {
	switch side {
	case TargetFriend:
		return self
	case TargetEnemy:
		return opponent
	default:
		return nil
	}
}

// resolveAny draws one pet with the team's seeded RNG from cond's matches
// (§4.2 Any). Dead pets are excluded by All's own living-only iteration.
func resolveAny(pos Position, targetTeam Target, ctx resolveCtx) ([]ResolvedTarget, error) {
	all, err := resolveAll(pos, targetTeam, ctx)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	idx := ctx.self.rng.Intn(len(all))
	return []ResolvedTarget{all[idx]}, nil
}

// resolveAll gathers every living match for cond across the sides named by
// targetTeam, in position order (self side first for Either).
func resolveAll(pos Position, targetTeam Target, ctx resolveCtx) ([]ResolvedTarget, error) {
	evCtx := evalCtx{opponent: ctx.opponent, currentPet: petOrNil(ctx.self, ctx.currentPet), trigger: ctx.trigger}
	out := make([]ResolvedTarget, 0)
	collect := func(team *Team) error {
		if team == nil {
			return nil
		}
		evCtx.team = team
		for _, p := range team.livingPetsInOrder() {
			ok, err := pos.Cond.matches(p, evCtx)
			if err != nil {
				return err
			}
			if ok {
				out = append(out, ResolvedTarget{Team: team, ID: idOf(team, p)})
			}
		}
		return nil
	}
	switch targetTeam {
	case TargetFriend:
		if err := collect(ctx.self); err != nil {
			return nil, err
		}
	case TargetEnemy:
		if err := collect(ctx.opponent); err != nil {
			return nil, err
		}
	case TargetEither:
		if err := collect(ctx.self); err != nil {
			return nil, err
		}
		if err := collect(ctx.opponent); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func petOrNil(team *Team, id PetID) *Pet {
	if team == nil {
		return nil
	}
	p, _ := team.pet(id)
	return p
}

// resolveRelative implements §4.2 Relative(k) (and is reused per-index by
// Range).
func resolveRelative(k int, targetTeam Target, ctx resolveCtx) ([]ResolvedTarget, error) {
	self, opp := ctx.self, ctx.opponent
	base := sideFor(targetTeam, self, opp)
	if base == nil {
		return nil, nil
	}
	cur, ok := self.pet(ctx.currentPet)
	if !ok {
		return nil, nil
	}
	idx := cur.Position + k
	if idx < 0 {
		if targetTeam == TargetEither && opp != nil {
			eIdx := -idx - 1
			if eIdx >= 0 && eIdx < opp.MaxSize && !opp.friends[eIdx].Zero() {
				return []ResolvedTarget{{Team: opp, ID: opp.friends[eIdx]}}, nil
			}
		}
		return nil, nil // off-team result discarded for single-team targets
	}
	if idx >= base.MaxSize {
		idx = base.MaxSize - 1
	}
	if base.friends[idx].Zero() {
		return nil, nil
	}
	return []ResolvedTarget{{Team: base, ID: base.friends[idx]}}, nil
}

// nearestLivingAt scans from idx in the given step direction (+1/-1) within
// team, returning the first living pet found, or a zero PetID.
func nearestLivingAt(team *Team, idx, step int) PetID {
	for idx >= 0 && idx < team.MaxSize {
		id := team.friends[idx]
		if !id.Zero() {
			if p, ok := team.pet(id); ok && !p.Fainted() {
				return id
			}
		}
		idx += step
	}
	return PetID{}
}

// resolveNearest implements §4.2 Nearest(k): the |k| closest living pets,
// direction by sign, crossing onto the enemy only with Either.
func resolveNearest(k int, targetTeam Target, ctx resolveCtx) ([]ResolvedTarget, error) {
	self, opp := ctx.self, ctx.opponent
	cur, ok := self.pet(ctx.currentPet)
	if !ok {
		return nil, nil
	}
	n := k
	step := 1
	if k < 0 {
		n = -k
		step = -1
	}
	out := make([]ResolvedTarget, 0, n)
	idx := cur.Position + step
	for len(out) < n && idx >= -self.MaxSize && idx < self.MaxSize*2 {
		if idx >= 0 && idx < self.MaxSize {
			if id := self.friends[idx]; !id.Zero() {
				if p, ok := self.pet(id); ok && !p.Fainted() {
					out = append(out, ResolvedTarget{Team: self, ID: id})
				}
			}
		} else if idx < 0 && targetTeam == TargetEither && opp != nil {
			eIdx := -idx - 1
			if eIdx >= 0 && eIdx < opp.MaxSize {
				if id := opp.friends[eIdx]; !id.Zero() {
					if p, ok := opp.pet(id); ok && !p.Fainted() {
						out = append(out, ResolvedTarget{Team: opp, ID: id})
					}
				}
			} else {
				break
			}
		} else {
			break
		}
		idx += step
	}
	return out, nil
}

// resolveN implements §4.2 N(cond, n, randomize): up to n matches,
// optionally shuffled, alternating friend/enemy for Either.
func resolveN(pos Position, targetTeam Target, ctx resolveCtx) ([]ResolvedTarget, error) {
	if targetTeam != TargetEither {
		all, err := resolveAll(pos, targetTeam, ctx)
		if err != nil {
			return nil, err
		}
		if pos.Randomize {
			shuffleTargets(all, ctx.self.rng)
		}
		if len(all) > pos.N {
			all = all[:pos.N]
		}
		return all, nil
	}

	friends, err := resolveAll(pos, TargetFriend, ctx)
	if err != nil {
		return nil, err
	}
	enemies, err := resolveAll(pos, TargetEnemy, ctx)
	if err != nil {
		return nil, err
	}
	if pos.Randomize {
		shuffleTargets(friends, ctx.self.rng)
		shuffleTargets(enemies, ctx.self.rng)
	}
	out := make([]ResolvedTarget, 0, pos.N)
	fi, ei := 0, 0
	turnFriend := true
	for len(out) < pos.N && (fi < len(friends) || ei < len(enemies)) {
		if turnFriend && fi < len(friends) {
			out = append(out, friends[fi])
			fi++
		} else if !turnFriend && ei < len(enemies) {
			out = append(out, enemies[ei])
			ei++
		} else if fi < len(friends) {
			out = append(out, friends[fi])
			fi++
		} else if ei < len(enemies) {
			out = append(out, enemies[ei])
			ei++
		}
		turnFriend = !turnFriend
	}
	return out, nil
}

func shuffleTargets(ts []ResolvedTarget, rng *rand.Rand) {
	rng.Shuffle(len(ts), func(i, j int) { ts[i], ts[j] = ts[j], ts[i] })
}
