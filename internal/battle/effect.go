package battle

// StatChangeKind discriminates the closed "stat change" sum (Design Notes):
// a single typed enum standing in for the source's duck-typed stat change,
// materialized to an absolute Stats value by ToStats.
type StatChangeKind uint8

const (
	StatChangeStatic StatChangeKind = iota
	StatChangeStaticAttack
	StatChangeStaticHealth
	StatChangeMultiplier
	StatChangeCurrentAttack
	StatChangeCurrentHealth
	StatChangeTeamCounter
)

// StatChangeType names the amount an Add/Remove/Set/Debuff action applies.
type StatChangeType struct {
	Kind    StatChangeKind
	Static  Stats
	Amount  int
	Percent int
	Counter string
}

func StaticStats(s Stats) StatChangeType { return StatChangeType{Kind: StatChangeStatic, Static: s} }
func StaticAttack(n int) StatChangeType  { return StatChangeType{Kind: StatChangeStaticAttack, Amount: n} }
func StaticHealth(n int) StatChangeType  { return StatChangeType{Kind: StatChangeStaticHealth, Amount: n} }
func MultiplierPct(p int) StatChangeType { return StatChangeType{Kind: StatChangeMultiplier, Percent: p} }
func CurrentAttack() StatChangeType      { return StatChangeType{Kind: StatChangeCurrentAttack} }
func CurrentHealth() StatChangeType      { return StatChangeType{Kind: StatChangeCurrentHealth} }
func TeamCounterStat(name string) StatChangeType {
	return StatChangeType{Kind: StatChangeTeamCounter, Counter: name}
}

// ToStats materializes an absolute Stats value from the stat change,
// relative to ownerStats (the pet the change is computed from, usually the
// affected pet itself) and the owning team's counters map (Design Notes).
// Multiplier always yields that percentage of ownerStats, whichever
// action (Add, Set, ...) consumes the result.
func (sc StatChangeType) ToStats(ownerStats Stats, counters map[string]int) Stats {
	switch sc.Kind {
	case StatChangeStatic:
		return sc.Static
	case StatChangeStaticAttack:
		return Stats{Attack: sc.Amount}
	case StatChangeStaticHealth:
		return Stats{Health: sc.Amount}
	case StatChangeMultiplier:
		return ownerStats.Percent(sc.Percent)
	case StatChangeCurrentAttack:
		return Stats{Attack: ownerStats.Attack}
	case StatChangeCurrentHealth:
		return Stats{Health: ownerStats.Health}
	case StatChangeTeamCounter:
		return Stats{Attack: counters[sc.Counter]}
	default:
		return Stats{}
	}
}

// Effect is a (trigger, target, position, action, uses) record attached to
// a pet or food (§3). Owner is a weak reference: effects never keep a pet
// alive, and a fainted owner's effects must still be resolvable as inert
// rather than panicking.
type Effect struct {
	Owner PetID
	Trigger Outcome
	TargetTeam Target
	Pos     Position
	Action  Action
	Uses    *int // nil = unlimited; pointer so 0 and "unset" are distinguishable
	Temp    bool
}

// Inert reports whether the effect can never activate again.
func (e *Effect) Inert() bool {
	return e.Uses != nil && *e.Uses == 0
}

// Clone deep-copies an effect template for attachment to a new owner
// (catalog lookups return templates that must not alias across pets).
func (e Effect) Clone() Effect {
	clone := e
	if e.Uses != nil {
		u := *e.Uses
		clone.Uses = &u
	}
	if e.Action.Actions != nil {
		clone.Action.Actions = append([]Action(nil), e.Action.Actions...)
	}
	return clone
}
