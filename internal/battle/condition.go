package battle

// ConditionKind discriminates the closed set of pure predicates over a team
// (and optionally opponent) snapshot (§4.1).
type ConditionKind uint8

const (
	CondNone ConditionKind = iota
	CondHealthiest
	CondIllest
	CondStrongest
	CondWeakest
	CondHighestTier
	CondLowestTier
	CondIsSelf
	CondTier
	CondName
	CondLevel
	CondTrigger
	CondAction
	CondHasPerk
	CondFrozen
	CondMultipleAny
	CondMultipleAll
)

// Condition is a tagged sum: comparison selectors carry no payload, equality
// predicates carry one scalar field, and the two boolean combinators carry a
// slice of child Conditions. Nesting a combinator inside another combinator
// is rejected at evaluation time (§4.1, Design Notes).
type Condition struct {
	Kind ConditionKind

	Tier   int
	Name   EntityName
	Level  int
	Status Status
	Action ActionKind

	Children []Condition
}

func Healthiest() Condition   { return Condition{Kind: CondHealthiest} }
func Illest() Condition       { return Condition{Kind: CondIllest} }
func Strongest() Condition    { return Condition{Kind: CondStrongest} }
func Weakest() Condition      { return Condition{Kind: CondWeakest} }
func HighestTier() Condition  { return Condition{Kind: CondHighestTier} }
func LowestTier() Condition   { return Condition{Kind: CondLowestTier} }
func IsSelf() Condition       { return Condition{Kind: CondIsSelf} }
func TierIs(n int) Condition  { return Condition{Kind: CondTier, Tier: n} }
func NameIs(n EntityName) Condition { return Condition{Kind: CondName, Name: n} }
func LevelIs(n int) Condition { return Condition{Kind: CondLevel, Level: n} }
func TriggerIs(s Status) Condition { return Condition{Kind: CondTrigger, Status: s} }
func ActionIs(a ActionKind) Condition { return Condition{Kind: CondAction, Action: a} }
func HasPerk() Condition      { return Condition{Kind: CondHasPerk} }
func Frozen() Condition       { return Condition{Kind: CondFrozen} }

func MultipleAny(cs ...Condition) Condition {
	return Condition{Kind: CondMultipleAny, Children: cs}
}
func MultipleAll(cs ...Condition) Condition {
	return Condition{Kind: CondMultipleAll, Children: cs}
}

// isCombinator reports whether Kind is one of the boolean combinators.
func (c Condition) isCombinator() bool {
	return c.Kind == CondMultipleAny || c.Kind == CondMultipleAll
}

// evalCtx bundles the snapshot state a Condition is evaluated against:
// the side being queried, the opposing side (only populated for Either
// conditions wired in by the caller), and the resolver's current pet for
// IsSelf.
type evalCtx struct {
	team       *Team
	opponent   *Team
	currentPet *Pet
	trigger    Outcome
	shop       *Shop
}

// matches evaluates cond against candidate within ctx. It never mutates
// state (§4.1).
func (cond Condition) matches(candidate *Pet, ctx evalCtx) (bool, error) {
	if cond.isCombinator() {
		for _, child := range cond.Children {
			if child.isCombinator() {
				return false, newErr(ErrInvalidPetAction, "nested Multiple/MultipleAll conditions are not supported")
			}
		}
		switch cond.Kind {
		case CondMultipleAny:
			for _, child := range cond.Children {
				ok, err := child.matches(candidate, ctx)
				if err != nil {
					return false, err
				}
				if ok {
					return true, nil
				}
			}
			return false, nil
		case CondMultipleAll:
			for _, child := range cond.Children {
				ok, err := child.matches(candidate, ctx)
				if err != nil {
					return false, err
				}
				if !ok {
					return false, nil
				}
			}
			return true, nil
		}
	}

	switch cond.Kind {
	case CondNone:
		return true, nil
	case CondIsSelf:
		return ctx.currentPet != nil && candidate == ctx.currentPet, nil
	case CondTier:
		return candidate.Tier == cond.Tier, nil
	case CondName:
		return candidate.Name == cond.Name, nil
	case CondLevel:
		return candidate.Level == cond.Level, nil
	case CondTrigger:
		return ctx.trigger.Status == cond.Status, nil
	case CondAction:
		for _, eff := range candidate.Effects {
			if eff.Action.Kind == cond.Action {
				return true, nil
			}
		}
		return false, nil
	case CondHasPerk:
		return len(candidate.Effects) > 0, nil
	case CondFrozen:
		if ctx.shop == nil {
			return false, newErr(ErrInvalidShopAction, "Frozen condition evaluated outside a shop context")
		}
		return ctx.shop.isFrozen(candidate), nil
	case CondHealthiest, CondIllest, CondStrongest, CondWeakest, CondHighestTier, CondLowestTier:
		// These are resolved against the whole team by selectExtremum and
		// should not be asked about a single candidate; matches() only
		// answers "is candidate exactly the extremum".
		extremum := selectExtremum(cond.Kind, ctx.team)
		return extremum != nil && extremum == candidate, nil
	default:
		return false, nil
	}
}

// selectExtremum returns the single pet satisfying a comparison selector,
// ties broken by lowest position index (§4.1).
func selectExtremum(kind ConditionKind, team *Team) *Pet {
	var best *Pet
	less := func(a, b *Pet) bool {
		switch kind {
		case CondHealthiest:
			return a.Stats.Health > b.Stats.Health
		case CondIllest:
			return a.Stats.Health < b.Stats.Health
		case CondStrongest:
			return a.Stats.Attack > b.Stats.Attack
		case CondWeakest:
			return a.Stats.Attack < b.Stats.Attack
		case CondHighestTier:
			return a.Tier > b.Tier
		case CondLowestTier:
			return a.Tier < b.Tier
		}
		return false
	}
	for _, pet := range team.livingPetsInOrder() {
		if best == nil || less(pet, best) {
			best = pet
		}
	}
	return best
}
