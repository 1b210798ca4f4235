package kontenbot

import "sync"

type FlowAction string

const (
	FlowAdd  FlowAction = "add"
	FlowEdit FlowAction = "edit"
)

// ConversationState tracks one chat's in-flight data-entry flow: which
// record it targets, which step is awaited, and the fields collected so far.
// It lives only in memory; a restart drops every in-flight flow.
type ConversationState struct {
	Action     FlowAction
	Collection string
	DocID      string
	Step       string

	Number    string // payment number, collected before the owner name
	Name      string // testimonial customer name
	PhotoLink string // resolved photo link for QRIS / testimonial flows
}

// StateStore holds at most one ConversationState per chat id. Setting a new
// state overwrites whatever flow was active.
type StateStore struct {
	mu     sync.Mutex
	states map[int64]*ConversationState
}

func NewStateStore() *StateStore {
	return &StateStore{states: make(map[int64]*ConversationState)}
}

func (s *StateStore) Set(chatID int64, state *ConversationState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[chatID] = state
}

func (s *StateStore) Get(chatID int64) (*ConversationState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[chatID]
	return state, ok
}

func (s *StateStore) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, chatID)
}

func (s *StateStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.states)
}
