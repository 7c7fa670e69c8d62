package player

import (
	"sync"

	"captionscroll/internal/core/model"
	"captionscroll/internal/core/timemap"
)

// sessionContent is everything derived from one transcript load: the
// parsed document, its wrapped display rows, and the per-segment samples
// (sample i anchors segment i). The time/offset map built from the same
// samples lives in the SyncDriver and may be shorter after deduplication.
type sessionContent struct {
	Transcript *model.Transcript
	Lines      []model.Line
	Samples    []timemap.Sample
}

// StateManager manages application state in a thread-safe manner
type StateManager struct {
	mu sync.RWMutex

	content *sessionContent

	isLoading      bool
	loadingMessage string

	interactionState model.InteractionState
}

// NewStateManager creates a new StateManager instance
func NewStateManager() *StateManager {
	return &StateManager{}
}

// GetContent returns the active session content (may be nil while loading)
func (sm *StateManager) GetContent() *sessionContent {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.content
}

// SetContent installs freshly loaded session content
func (sm *StateManager) SetContent(content *sessionContent) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.content = content
}

// GetLoadingState returns current loading state and message
func (sm *StateManager) GetLoadingState() (bool, string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.isLoading, sm.loadingMessage
}

// SetLoadingState updates loading state and message
func (sm *StateManager) SetLoadingState(isLoading bool, message string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.isLoading = isLoading
	sm.loadingMessage = message
}

// GetInteractionState returns current interaction state
func (sm *StateManager) GetInteractionState() model.InteractionState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.interactionState
}

// UpdateInteractionState applies a mutation to the interaction state
func (sm *StateManager) UpdateInteractionState(fn func(*model.InteractionState)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	fn(&sm.interactionState)
}
