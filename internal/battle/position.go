package battle

// Target names which side(s) a Position resolves against (§3 GLOSSARY,
// §4.2).
type Target uint8

const (
	TargetNone Target = iota
	TargetFriend
	TargetEnemy
	TargetEither
	TargetShop
)

// PositionKind discriminates the closed set of target-selection expressions
// from §4.2. Position is a tagged sum implemented as a Kind plus whichever
// payload fields that Kind uses; the target resolver switches on Kind
// exhaustively (Design Notes: "tagged sum types... exhaustive match").
type PositionKind uint8

const (
	PosNone PositionKind = iota
	PosOnSelf
	PosFirst
	PosLast
	PosAny
	PosAll
	PosRelative
	PosNearest
	PosRange
	PosAdjacent
	PosOpposite
	PosN
	PosTriggerAffected
	PosTriggerAfflicting
	PosMultiple
	PosShop
)

// ShopPositionKind enumerates shop-slot addressing for Position{Kind:
// PosShop}.
type ShopPositionKind uint8

const (
	ShopPosAny ShopPositionKind = iota
	ShopPosFirst
	ShopPosLast
	ShopPosN
)

// Position is a closed sum of target-selection expressions. Only the fields
// relevant to Kind are populated; the resolver (§4.2) ignores the rest.
type Position struct {
	Kind PositionKind

	Cond      Condition // Any, All, N
	K         int       // Relative, Nearest (signed offset/count)
	RangeLo   int       // Range
	RangeHi   int       // Range
	N         int       // N
	Randomize bool      // N
	Positions []Position

	ShopKind ShopPositionKind
	ShopN    int
}

// Position constructors, kept terse like the teacher's Weapons map literals.

func OnSelf() Position                { return Position{Kind: PosOnSelf} }
func First() Position                 { return Position{Kind: PosFirst} }
func Last() Position                  { return Position{Kind: PosLast} }
func Any(c Condition) Position        { return Position{Kind: PosAny, Cond: c} }
func All(c Condition) Position        { return Position{Kind: PosAll, Cond: c} }
func Relative(k int) Position         { return Position{Kind: PosRelative, K: k} }
func Nearest(k int) Position          { return Position{Kind: PosNearest, K: k} }
func RangeOf(lo, hi int) Position     { return Position{Kind: PosRange, RangeLo: lo, RangeHi: hi} }
func Adjacent() Position              { return Position{Kind: PosAdjacent} }
func Opposite() Position              { return Position{Kind: PosOpposite} }
func N(c Condition, n int, r bool) Position {
	return Position{Kind: PosN, Cond: c, N: n, Randomize: r}
}
func TriggerAffected() Position    { return Position{Kind: PosTriggerAffected} }
func TriggerAfflicting() Position  { return Position{Kind: PosTriggerAfflicting} }
func Multiple(ps ...Position) Position { return Position{Kind: PosMultiple, Positions: ps} }
func ShopPos(kind ShopPositionKind, n int) Position {
	return Position{Kind: PosShop, ShopKind: kind, ShopN: n}
}

// broad reports the wildcard category used for trigger-template matching in
// §4.4 step 3: effect.trigger.position ∈ {None, Any, All}.
func (p Position) broad() bool {
	return p.Kind == PosNone || p.Kind == PosAny || p.Kind == PosAll
}
