// Package load tracks the lifecycle of a view's most recent request.
//
// A view holds one State. Begin enters Loading and hands out a Ticket;
// Resolve applies a result only if its Ticket is still the newest, so a slow
// earlier response can never overwrite a later one. Loading and an error are
// mutually exclusive phases rather than independent flags.
package load

// Phase is the lifecycle position of a State.
type Phase int

const (
	Idle Phase = iota
	Loading
	Populated
	Empty
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Populated:
		return "populated"
	case Empty:
		return "empty"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Policy decides what a failed request does to the display.
type Policy int

const (
	// Surface enters Failed and keeps the error for display.
	Surface Policy = iota
	// Silent returns to the phase held before the request and keeps the
	// previous items; the caller is expected to log the error.
	Silent
)

// Ticket identifies one request issued by Begin.
type Ticket struct {
	gen uint64
}

// State is the display state of one list-backed view.
type State[T any] struct {
	policy Policy
	phase  Phase
	prev   Phase
	items  []T
	err    error
	gen    uint64
}

// New returns an Idle state using policy p for failures.
func New[T any](p Policy) *State[T] {
	return &State[T]{policy: p}
}

// Begin starts a new request, superseding any in flight.
func (s *State[T]) Begin() Ticket {
	s.gen++
	if s.phase != Loading {
		s.prev = s.phase
	}
	s.phase = Loading
	s.err = nil
	return Ticket{gen: s.gen}
}

// Current reports whether t is the newest ticket.
func (s *State[T]) Current(t Ticket) bool {
	return t.gen == s.gen
}

// Resolve applies the outcome of the request identified by t.
// It returns false and changes nothing when t is stale.
func (s *State[T]) Resolve(t Ticket, items []T, err error) bool {
	if !s.Current(t) {
		return false
	}
	if err != nil {
		if s.policy == Silent {
			s.phase = s.prev
			return true
		}
		s.phase = Failed
		s.err = err
		return true
	}
	s.items = items
	if len(items) == 0 {
		s.phase = Empty
	} else {
		s.phase = Populated
	}
	return true
}

// Reset returns to Idle, drops items and invalidates any in-flight ticket.
func (s *State[T]) Reset() {
	s.gen++
	s.phase = Idle
	s.prev = Idle
	s.items = nil
	s.err = nil
}

// Phase returns the current phase.
func (s *State[T]) Phase() Phase { return s.phase }

// Loading reports whether a request is in flight.
func (s *State[T]) Loading() bool { return s.phase == Loading }

// Err returns the failure when the phase is Failed, otherwise nil.
func (s *State[T]) Err() error {
	if s.phase != Failed {
		return nil
	}
	return s.err
}

// Items returns the last successfully fetched items.
func (s *State[T]) Items() []T { return s.items }
