package battle

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics with bounded cardinality (no per-pet or per-team labels, to keep
// the series count flat regardless of roster size).
var (
	triggersDispatchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "battlesim_triggers_dispatched_total",
		Help: "Total Outcomes popped and dispatched across both teams",
	})

	actionsAppliedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "battlesim_actions_applied_total",
		Help: "Total Action executions, labeled by action kind",
	}, []string{"kind"})

	fallibleActionsSwallowedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "battlesim_fallible_actions_swallowed_total",
		Help: "FallibleAction errors logged and swallowed by the dispatcher",
	})

	fightsResolvedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "battlesim_fights_resolved_total",
		Help: "Total fight() calls resolved, labeled by outcome",
	}, []string{"outcome"})

	fightDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "battlesim_fight_duration_seconds",
		Help:    "Wall-clock time spent inside one Fight() call",
		Buckets: []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	})

	cascadeDepth = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "battlesim_cascade_depth",
		Help:    "Number of Outcomes drained by one TriggerAllEffects call",
		Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128},
	})

	shopTransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "battlesim_shop_transactions_total",
		Help: "Total shop transactions, labeled by kind",
	}, []string{"kind"}) // buy_pet, buy_food, sell, roll, freeze, move
)

// recordAction increments the per-kind action counter. Called by the
// executor on every ApplyAction dispatch.
func recordAction(kind ActionKind) {
	actionsAppliedTotal.WithLabelValues(actionKindLabel(kind)).Inc()
}

func actionKindLabel(kind ActionKind) string {
	switch kind {
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	case ActionSet:
		return "set"
	case ActionGain:
		return "gain"
	case ActionExperience:
		return "experience"
	case ActionPush:
		return "push"
	case ActionTransform:
		return "transform"
	case ActionSummon:
		return "summon"
	case ActionMultiple:
		return "multiple"
	case ActionConditional:
		return "conditional"
	case ActionKill:
		return "kill"
	case ActionDebuff:
		return "debuff"
	case ActionLynx:
		return "lynx"
	case ActionWhale:
		return "whale"
	case ActionStegosaurus:
		return "stegosaurus"
	case ActionCockroach:
		return "cockroach"
	case ActionCopy:
		return "copy"
	case ActionSwap:
		return "swap"
	case ActionShuffle:
		return "shuffle"
	case ActionAddToCounter:
		return "add_to_counter"
	case ActionFox:
		return "fox"
	default:
		return "shop_action"
	}
}

func recordFightOutcome(o FightOutcome) {
	var label string
	switch o {
	case FightWin:
		label = "win"
	case FightLoss:
		label = "loss"
	case FightDraw:
		label = "draw"
	default:
		label = "none"
	}
	fightsResolvedTotal.WithLabelValues(label).Inc()
}

func recordFightDuration(d time.Duration) {
	fightDuration.Observe(d.Seconds())
}

func recordShopTransaction(kind string) {
	shopTransactionsTotal.WithLabelValues(kind).Inc()
}
