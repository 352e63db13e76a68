package store

import (
	"sync"

	"github.com/psomsri/taladsod-backend/internal/app/model"
)

// SelectionStore holds the volatile per-profile selection state of the
// listing page. State lives in memory only: it is created when a profile
// loads the catalog and is never persisted; the derived cart snapshot is
// persisted instead.
type SelectionStore struct {
	mu       sync.RWMutex
	profiles map[string]map[uint]*model.SelectionState
}

func NewSelectionStore() *SelectionStore {
	return &SelectionStore{
		profiles: make(map[string]map[uint]*model.SelectionState),
	}
}

// Init creates one default entry per product for the profile, replacing any
// previous state. Defaults are option index 0, unselected.
func (s *SelectionStore) Init(profileID string, productIDs []uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	states := make(map[uint]*model.SelectionState, len(productIDs))
	for _, id := range productIDs {
		states[id] = &model.SelectionState{}
	}
	s.profiles[profileID] = states
}

// Get returns a copy of the profile's selection state keyed by product id.
func (s *SelectionStore) Get(profileID string) map[uint]model.SelectionState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	states := make(map[uint]model.SelectionState, len(s.profiles[profileID]))
	for id, state := range s.profiles[profileID] {
		states[id] = *state
	}
	return states
}

// GetState returns the state of one product.
func (s *SelectionStore) GetState(profileID string, productID uint) (model.SelectionState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.profiles[profileID][productID]
	if !ok {
		return model.SelectionState{}, false
	}
	return *state, true
}

// SetOption overwrites the chosen option index of one product. Returns false
// when the profile has no state for the product.
func (s *SelectionStore) SetOption(profileID string, productID uint, optionIndex int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.profiles[profileID][productID]
	if !ok {
		return false
	}
	state.SelectedOptionIndex = optionIndex
	return true
}

// SetSelected sets the selection flag of one product.
func (s *SelectionStore) SetSelected(profileID string, productID uint, selected bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.profiles[profileID][productID]
	if !ok {
		return false
	}
	state.IsSelected = selected
	return true
}

// SetAll sets the selection flag of every product of the profile.
func (s *SelectionStore) SetAll(profileID string, selected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, state := range s.profiles[profileID] {
		state.IsSelected = selected
	}
}

// Drop removes all state of a profile.
func (s *SelectionStore) Drop(profileID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.profiles, profileID)
}
