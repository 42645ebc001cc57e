package studio

import (
	"errors"
	"sync"
	"time"

	"eduforge/generator"
)

// ErrSessionBusy is returned when a generation is requested while another one
// is still running on the same session.
var ErrSessionBusy = errors.New("a generation is already in progress for this session")

// Status tells the presentation layer whether to show a progress indicator.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusGenerating Status = "generating"
)

// Session holds the state of one interactive session. It is created empty,
// updated by Handler after each successful generation and discarded when the
// session ends. Sessions never share state.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.RWMutex
	category generator.Category
	content  *generator.GeneratedContent
	input    *GenerateInput
	status   Status
}

// Snapshot is a consistent copy of a session for readers.
type Snapshot struct {
	ID        string                      `json:"session_id"`
	Status    Status                      `json:"status"`
	Category  generator.Category          `json:"category"`
	Content   *generator.GeneratedContent `json:"content,omitempty"`
	LastInput *GenerateInput              `json:"last_input,omitempty"` // resolved parameters of the last success
	CreatedAt time.Time                   `json:"created_at"`
}

// NewSession creates a session with no content and Learning Material selected.
func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		category:  generator.LearningMaterial,
		status:    StatusIdle,
	}
}

func (s *Session) Category() generator.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.category
}

// SelectCategory changes the category used when an input omits one.
func (s *Session) SelectCategory(c generator.Category) error {
	if !c.Valid() {
		return generator.ErrInvalidCategory
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.category = c
	return nil
}

// Content returns the last generated content, if any.
func (s *Session) Content() (generator.GeneratedContent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.content == nil {
		return generator.GeneratedContent{}, false
	}
	return *s.content, true
}

func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		ID:        s.ID,
		Status:    s.status,
		Category:  s.category,
		CreatedAt: s.CreatedAt,
	}
	if s.content != nil {
		c := *s.content
		snap.Content = &c
	}
	if s.input != nil {
		in := s.input.clone()
		snap.LastInput = &in
	}
	return snap
}

func (s *Session) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusGenerating {
		return ErrSessionBusy
	}
	s.status = StatusGenerating
	return nil
}

func (s *Session) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusIdle
}

// commit replaces the previous content in one step; readers see either the
// old value or the new one.
func (s *Session) commit(content generator.GeneratedContent, input GenerateInput) {
	in := input.clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = &content
	s.input = &in
	s.category = content.Category
}
