package battle

// History is a bounded, in-process trace of the Outcomes a team has
// enqueued, used for post-battle debugging and the optional effect-cause-
// effect graph (§4.4 step 5, SPEC_FULL.md §C.2).
//
// This is adapted from the teacher's EventLog (event_log.go): same bounded
// circular buffer and drop-oldest-under-pressure policy, but with the
// goroutine-driven async writer, wall-clock rate limiting, and file
// persistence stripped out. Those exist in the teacher to protect a
// concurrently-written, networked event stream from a DoS attacker (§1 of
// that repo's domain); this core's dispatcher is single-threaded and
// cooperative (§5) and has no such producer to defend against, so keeping
// them would mean carrying unused concurrency machinery. See DESIGN.md.
type History struct {
	buffer    []recordedOutcome
	writeHead int
	capacity  int
	total     uint64
	dropped   uint64

	graphEnabled bool
	edges        []graphEdge
}

type recordedOutcome struct {
	seq     uint64
	outcome Outcome
}

// graphEdge records one effect-causes-effect edge: the effect owner whose
// resolution produced `caused`.
type graphEdge struct {
	cause  PetID
	caused Outcome
}

const historyCapacity = 512

func newHistory() *History {
	return &History{
		buffer:   make([]recordedOutcome, 0, historyCapacity),
		capacity: historyCapacity,
	}
}

// EnableGraph turns on effect-cause-effect edge recording (off by default,
// per §4.4 step 5's "if graph building is enabled").
func (h *History) EnableGraph(on bool) { h.graphEnabled = on }

func (h *History) record(o Outcome) {
	h.total++
	rec := recordedOutcome{seq: h.total, outcome: o}
	if len(h.buffer) < h.capacity {
		h.buffer = append(h.buffer, rec)
		return
	}
	// Drop oldest, rolling window, same policy as the teacher's EventLog.
	copy(h.buffer, h.buffer[1:])
	h.buffer[len(h.buffer)-1] = rec
	h.dropped++
}

// recordEdge records that resolving cause's effects produced the caused
// Outcome, when graph building is enabled.
func (h *History) recordEdge(cause PetID, caused Outcome) {
	if !h.graphEnabled {
		return
	}
	h.edges = append(h.edges, graphEdge{cause: cause, caused: caused})
}

// Recent returns the most recent n recorded outcomes, oldest first.
func (h *History) Recent(n int) []Outcome {
	if n > len(h.buffer) {
		n = len(h.buffer)
	}
	start := len(h.buffer) - n
	out := make([]Outcome, n)
	for i, rec := range h.buffer[start:] {
		out[i] = rec.outcome
	}
	return out
}

// Stats mirrors the teacher's EventLog.GetStats for monitoring parity.
func (h *History) Stats() map[string]uint64 {
	return map[string]uint64{
		"total":   h.total,
		"dropped": h.dropped,
		"pending": uint64(len(h.buffer)),
	}
}
