package battle

// ActionKind discriminates the closed set of mutations an Action performs
// (§4.3). ~30 variants, matched exhaustively by the executor (executor.go).
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionAdd
	ActionRemove
	ActionSet
	ActionGain
	ActionExperience
	ActionPush
	ActionTransform
	ActionSummon
	ActionMultiple
	ActionConditional
	ActionKill
	ActionDebuff
	ActionLynx
	ActionWhale
	ActionStegosaurus
	ActionCockroach
	ActionCopy
	ActionSwap
	ActionShuffle
	ActionAddToCounter
	ActionFox

	// Shop-only actions (§4.3 bullet list); valid only when effect.target
	// == Target Shop and never produce a per-pet affected set.
	ActionAddShopStats
	ActionAddShopFood
	ActionAddShopPet
	ActionClearShop
	ActionAlterGold
	ActionDiscount
	ActionSaveGold
	ActionFreeRoll
	ActionAlterCost
	ActionGetToy
)

// GainKind discriminates Action::Gain's item assignment.
type GainKind uint8

const (
	GainSet GainKind = iota
	GainClear
)

// GainType names what Action::Gain assigns to the affected pet's item slot.
type GainType struct {
	Kind GainKind
	Food Food
}

// SummonKind discriminates the four ways Action::Summon can produce a pet
// (§4.3).
type SummonKind uint8

const (
	SummonStoredPet SummonKind = iota
	SummonQueryCatalog
	SummonSelfCopy
	SummonShopTierRelative
)

// SummonType describes one Action::Summon instruction.
type SummonType struct {
	Kind SummonKind

	StoredTemplate *Pet // SummonStoredPet
	QueryName      EntityName
	QueryLevel     int // SummonQueryCatalog

	StatOverride *Stats // SummonSelfCopy: nil means copy stats as-is

	TierOffset int // SummonShopTierRelative: shop.tier + offset
}

// CopyKind discriminates what Action::Copy duplicates from a source pet.
type CopyKind uint8

const (
	CopyNone CopyKind = iota
	CopyStats
	CopyEffects
	CopyItem
	CopyPercentStats
)

// CopyType describes one Action::Copy instruction.
type CopyType struct {
	Kind    CopyKind
	AtLevel int // CopyEffects
	Percent int // CopyPercentStats
}

// RandomizeKind discriminates Swap/Shuffle's operand: slot positions or raw
// stats.
type RandomizeKind uint8

const (
	RandomizePositions RandomizeKind = iota
	RandomizeStats
)

// LogicKind discriminates Action::Conditional's evaluation strategy
// (§4.3).
type LogicKind uint8

const (
	LogicIf LogicKind = iota
	LogicIfNot
	LogicIfAny
	LogicForEach
)

// ConditionTargetKind discriminates what a ConditionType inspects.
type ConditionTargetKind uint8

const (
	CondTargetPet ConditionTargetKind = iota
	CondTargetTeam
	CondTargetShop
	CondTargetTrigger
)

// ConditionType is the discriminated payload a Conditional action's logic
// evaluates against (§4.3: "cond_type discriminates Pet/Team/Shop/Trigger").
type ConditionType struct {
	Kind ConditionTargetKind
	Team Target
	Cond Condition
}

// Action applies one mutation to one resolved pet or to the shop (§4.3).
// Like Position and Condition, it is a tagged sum: Kind plus whichever
// fields that Kind's variant uses.
type Action struct {
	Kind ActionKind

	StatChange StatChangeType // Add, Remove, Set, Debuff
	Gain       GainType       // Gain
	Amount     int            // Experience, AddToCounter (delta), AlterGold, SaveGold, Discount, AlterCost, FreeRoll
	PushBy     int            // Push
	TransformTo EntityName    // Transform
	TransformStats Stats      // Transform
	TransformLevel int        // Transform
	Summon     SummonType     // Summon, Fox (landing a summoned pet)
	Actions    []Action       // Multiple
	Logic      LogicKind      // Conditional
	CondType   ConditionType  // Conditional
	IfAction   *Action        // Conditional
	ElseAction *Action        // Conditional
	Copy       CopyType       // Copy
	CopySource Position       // Copy, Whale
	TargetTeamForCopy Target  // Copy: which side CopySource resolves against
	Randomize  RandomizeKind  // Swap, Shuffle
	CounterName string        // AddToCounter
	FoxMultiplier int         // Fox

	FoodTemplate Food // AddShopFood
	PetTemplate  Pet  // AddShopPet
	Toy          Toy  // GetToy
}

func Add(sc StatChangeType) Action    { return Action{Kind: ActionAdd, StatChange: sc} }
func Remove(sc StatChangeType) Action { return Action{Kind: ActionRemove, StatChange: sc} }
func Set(sc StatChangeType) Action    { return Action{Kind: ActionSet, StatChange: sc} }
func Gain(g GainType) Action          { return Action{Kind: ActionGain, Gain: g} }
func Experience(n int) Action         { return Action{Kind: ActionExperience, Amount: n} }
func Push(by int) Action              { return Action{Kind: ActionPush, PushBy: by} }
func Transform(name EntityName, s Stats, lvl int) Action {
	return Action{Kind: ActionTransform, TransformTo: name, TransformStats: s, TransformLevel: lvl}
}
func Summon(s SummonType) Action { return Action{Kind: ActionSummon, Summon: s} }
func MultipleActions(a ...Action) Action { return Action{Kind: ActionMultiple, Actions: a} }
func Conditional(logic LogicKind, ct ConditionType, ifA, elseA *Action) Action {
	return Action{Kind: ActionConditional, Logic: logic, CondType: ct, IfAction: ifA, ElseAction: elseA}
}
func Kill() Action               { return Action{Kind: ActionKill} }
func Debuff(pct StatChangeType) Action { return Action{Kind: ActionDebuff, StatChange: pct} }
func Lynx() Action                { return Action{Kind: ActionLynx} }
func Whale(lvl int, pos Position) Action {
	return Action{Kind: ActionWhale, TransformLevel: lvl, CopySource: pos}
}
func Stegosaurus(s Stats) Action  { return Action{Kind: ActionStegosaurus, StatChange: StaticStats(s)} }
func Cockroach() Action           { return Action{Kind: ActionCockroach} }
func Copy(ct CopyType, target Target, pos Position) Action {
	return Action{Kind: ActionCopy, Copy: ct, TargetTeamForCopy: target, CopySource: pos}
}
func SwapAction(kind RandomizeKind) Action    { return Action{Kind: ActionSwap, Randomize: kind} }
func Shuffle(kind RandomizeKind) Action { return Action{Kind: ActionShuffle, Randomize: kind} }
func AddToCounter(name string, delta int) Action {
	return Action{Kind: ActionAddToCounter, CounterName: name, Amount: delta}
}
func Fox(multiplier int) Action { return Action{Kind: ActionFox, FoxMultiplier: multiplier} }
