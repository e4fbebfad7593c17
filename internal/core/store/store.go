package store

import "sync"

// Store serializes dispatches, keeps the log of accepted actions and notifies
// subscribers with every new snapshot.
type Store struct {
	mu     sync.RWMutex
	state  State
	log    []Action
	subs   map[int]func(State)
	nextID int
}

func New(initial State) *Store {
	return &Store{
		state: initial,
		subs:  make(map[int]func(State)),
	}
}

// Dispatch reduces a into the current state. Rejected actions are not logged.
func (s *Store) Dispatch(a Action) (State, error) {
	s.mu.Lock()
	next, err := Reduce(s.state, a)
	if err != nil {
		s.mu.Unlock()
		return s.state, err
	}
	s.state = next
	s.log = append(s.log, a)
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next, nil
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Log returns a copy of the accepted actions in dispatch order.
func (s *Store) Log() []Action {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Action(nil), s.log...)
}

// Subscribe registers fn for future snapshots and returns its cancel func.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Replay folds actions over initial, stopping at the first rejected action.
func Replay(initial State, actions []Action) (State, error) {
	state := initial
	for _, a := range actions {
		next, err := Reduce(state, a)
		if err != nil {
			return state, err
		}
		state = next
	}
	return state, nil
}
