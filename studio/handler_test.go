package studio

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduforge/generator"
	"eduforge/publisher"
)

type stubLLM struct {
	mu    sync.Mutex
	text  string
	err   error
	calls int
	gate  chan struct{}
}

func (s *stubLLM) Complete(ctx context.Context, _ string) (string, error) {
	s.mu.Lock()
	s.calls++
	gate := s.gate
	s.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.text, s.err
}

func (s *stubLLM) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubRenderer struct {
	unavailable error
}

func (s stubRenderer) Available() error { return s.unavailable }

func (s stubRenderer) Render(context.Context, string, string) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

func newTestHandler(t *testing.T, llm generator.LLMClient, r publisher.Renderer) *Handler {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	agent, err := generator.NewAgent(llm, time.Minute, logger)
	require.NoError(t, err)
	exp, err := publisher.New(r, time.Minute, logger)
	require.NoError(t, err)
	h, err := NewHandler(agent, exp, logger)
	require.NoError(t, err)
	return h
}

func intPtr(n int) *int { return &n }

func serviceDown() error {
	return &generator.GenerationError{Kind: generator.ErrServiceUnavailable, Provider: "stub", Err: errors.New("dial tcp: connection refused")}
}

func TestHandleGenerateValidation(t *testing.T) {
	tests := []struct {
		name      string
		in        GenerateInput
		wantField string
	}{
		{"age lower bound", GenerateInput{Category: "quiz", Topic: "Math", AudienceAge: 5}, ""},
		{"age upper bound", GenerateInput{Category: "quiz", Topic: "Math", AudienceAge: 100}, ""},
		{"age below", GenerateInput{Category: "quiz", Topic: "Math", AudienceAge: 4}, "audience_age"},
		{"age above", GenerateInput{Category: "quiz", Topic: "Math", AudienceAge: 101}, "audience_age"},
		{"paragraphs 1", GenerateInput{Category: "story", Topic: "Sea", AudienceAge: 9, ParagraphCount: intPtr(1)}, ""},
		{"paragraphs 7", GenerateInput{Category: "story", Topic: "Sea", AudienceAge: 9, ParagraphCount: intPtr(7)}, ""},
		{"paragraphs 0", GenerateInput{Category: "story", Topic: "Sea", AudienceAge: 9, ParagraphCount: intPtr(0)}, "paragraph_count"},
		{"paragraphs 8", GenerateInput{Category: "story", Topic: "Sea", AudienceAge: 9, ParagraphCount: intPtr(8)}, "paragraph_count"},
		{"questions 3", GenerateInput{Category: "quiz", Topic: "Sea", AudienceAge: 9, QuestionCount: intPtr(3)}, ""},
		{"questions 30", GenerateInput{Category: "quiz", Topic: "Sea", AudienceAge: 9, QuestionCount: intPtr(30)}, ""},
		{"questions 2", GenerateInput{Category: "quiz", Topic: "Sea", AudienceAge: 9, QuestionCount: intPtr(2)}, "question_count"},
		{"questions 31", GenerateInput{Category: "quiz", Topic: "Sea", AudienceAge: 9, QuestionCount: intPtr(31)}, "question_count"},
		{"empty topic", GenerateInput{Category: "quiz", Topic: "", AudienceAge: 9}, "topic"},
		{"blank topic", GenerateInput{Category: "quiz", Topic: "   ", AudienceAge: 9}, "topic"},
		{"unknown category", GenerateInput{Category: "poem", Topic: "Sea", AudienceAge: 9}, "category"},
		{"topic checked before age", GenerateInput{Category: "quiz", Topic: " ", AudienceAge: 200}, "topic"},
		{"age checked before count", GenerateInput{Category: "quiz", Topic: "Sea", AudienceAge: 3, QuestionCount: intPtr(99)}, "audience_age"},
		{"age checked before category", GenerateInput{Category: "poem", Topic: "Sea", AudienceAge: 3}, "audience_age"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			llm := &stubLLM{text: "generated"}
			h := newTestHandler(t, llm, stubRenderer{})
			sess := NewSession("s1")

			_, err := h.HandleGenerate(context.Background(), sess, tc.in)
			if tc.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, 1, llm.callCount())
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.wantField, verr.Field)
			assert.Equal(t, 0, llm.callCount())
			_, ok := sess.Content()
			assert.False(t, ok)
		})
	}
}

func TestHandleGenerateStoresExactText(t *testing.T) {
	llm := &stubLLM{text: "  # Space Story\n\nOnce upon a time...\n\n"}
	h := newTestHandler(t, llm, stubRenderer{})
	fixed := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return fixed }
	sess := NewSession("s1")

	in := GenerateInput{Category: "Story", Topic: "  Space ", AudienceAge: 8, ParagraphCount: intPtr(3)}
	got, err := h.HandleGenerate(context.Background(), sess, in)
	require.NoError(t, err)

	assert.Equal(t, llm.text, got.Text)
	assert.Equal(t, "Space", got.Topic)
	assert.Equal(t, generator.Story, got.Category)
	assert.Equal(t, 8, got.AudienceAge)
	assert.Equal(t, fixed, got.GeneratedAt)

	stored, ok := sess.Content()
	require.True(t, ok)
	assert.Equal(t, got, stored)

	snap := sess.Snapshot()
	assert.Equal(t, StatusIdle, snap.Status)
	assert.Equal(t, generator.Story, snap.Category)
	require.NotNil(t, snap.LastInput)
	assert.Equal(t, 3, *snap.LastInput.ParagraphCount)
}

func TestHandleGenerateRecordsResolvedInput(t *testing.T) {
	tests := []struct {
		name string
		in   GenerateInput
		want GenerateInput
	}{
		{
			name: "story default paragraphs",
			in:   GenerateInput{Category: "story", Topic: "  Space  ", AudienceAge: 8},
			want: GenerateInput{Category: "Story", Topic: "Space", AudienceAge: 8, ParagraphCount: intPtr(3)},
		},
		{
			name: "quiz slug with explicit count",
			in:   GenerateInput{Category: "QUIZ", Topic: "Photosynthesis", AudienceAge: 10, QuestionCount: intPtr(12)},
			want: GenerateInput{Category: "Quiz", Topic: "Photosynthesis", AudienceAge: 10, QuestionCount: intPtr(12)},
		},
		{
			name: "lesson plan drops stray counts",
			in:   GenerateInput{Category: "lesson_plan", Topic: "Fractions", AudienceAge: 11, ParagraphCount: intPtr(5)},
			want: GenerateInput{Category: "Lesson Plan", Topic: "Fractions", AudienceAge: 11},
		},
		{
			name: "session category fills in",
			in:   GenerateInput{Topic: "Gravity", AudienceAge: 25},
			want: GenerateInput{Category: "Learning Material", Topic: "Gravity", AudienceAge: 25},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler(t, &stubLLM{text: "ok"}, stubRenderer{})
			sess := NewSession("s1")

			_, err := h.HandleGenerate(context.Background(), sess, tc.in)
			require.NoError(t, err)

			snap := sess.Snapshot()
			require.NotNil(t, snap.LastInput)
			assert.Equal(t, tc.want, *snap.LastInput)
		})
	}
}

func TestHandleGenerateUsesSessionCategoryAndDefaults(t *testing.T) {
	llm := &stubLLM{text: "quiz"}
	h := newTestHandler(t, llm, stubRenderer{})
	sess := NewSession("s1")
	require.NoError(t, sess.SelectCategory(generator.Quiz))

	got, err := h.HandleGenerate(context.Background(), sess, GenerateInput{Topic: "Planets", AudienceAge: 12})
	require.NoError(t, err)
	assert.Equal(t, generator.Quiz, got.Category)
}

func TestHandleGenerateFailureLeavesSessionUntouched(t *testing.T) {
	llm := &stubLLM{text: "first version"}
	h := newTestHandler(t, llm, stubRenderer{})
	sess := NewSession("s1")

	_, err := h.HandleGenerate(context.Background(), sess, GenerateInput{Category: "lesson_plan", Topic: "Fractions", AudienceAge: 11})
	require.NoError(t, err)
	before := sess.Snapshot()

	llm.text, llm.err = "", serviceDown()
	_, err = h.HandleGenerate(context.Background(), sess, GenerateInput{Category: "story", Topic: "Space", AudienceAge: 8, ParagraphCount: intPtr(3)})
	require.Error(t, err)
	assert.ErrorIs(t, err, generator.ErrServiceUnavailable)

	after := sess.Snapshot()
	assert.Equal(t, before, after)
}

func TestStoryServiceUnavailableScenario(t *testing.T) {
	llm := &stubLLM{err: serviceDown()}
	h := newTestHandler(t, llm, stubRenderer{})
	sess := NewSession("s1")

	_, err := h.HandleGenerate(context.Background(), sess, GenerateInput{Category: "Story", Topic: "Space", AudienceAge: 8, ParagraphCount: intPtr(3)})
	var genErr *generator.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.ErrorIs(t, err, generator.ErrServiceUnavailable)

	_, ok := sess.Content()
	assert.False(t, ok)
	assert.Equal(t, StatusIdle, sess.Status())
}

func TestQuizEndToEndScenario(t *testing.T) {
	llm := &stubLLM{text: "Q1...Q5..."}
	h := newTestHandler(t, llm, stubRenderer{})
	sess := NewSession("s1")

	content, err := h.HandleGenerate(context.Background(), sess, GenerateInput{
		Category:      "Quiz",
		Topic:         "Photosynthesis",
		AudienceAge:   10,
		QuestionCount: intPtr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, "Q1...Q5...", content.Text)

	art, err := h.Export(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis_Quiz.pdf", art.SuggestedFilename)
	assert.Equal(t, "application/pdf", art.MimeType)
	assert.NotEmpty(t, art.Bytes)
}

func TestExportWithoutContent(t *testing.T) {
	h := newTestHandler(t, &stubLLM{}, stubRenderer{})
	_, err := h.Export(context.Background(), NewSession("s1"))
	assert.ErrorIs(t, err, publisher.ErrNoContent)
}

func TestExportEngineUnavailableKeepsContent(t *testing.T) {
	llm := &stubLLM{text: "# Facts"}
	h := newTestHandler(t, llm, publisher.NewWkhtmltopdfRenderer("eduforge-missing-wkhtmltopdf", ""))
	sess := NewSession("s1")

	_, err := h.HandleGenerate(context.Background(), sess, GenerateInput{Category: "learning material", Topic: "Gravity", AudienceAge: 30})
	require.NoError(t, err)

	_, err = h.Export(context.Background(), sess)
	assert.ErrorIs(t, err, publisher.ErrEngineUnavailable)
	assert.Contains(t, err.Error(), "wkhtmltopdf")

	content, ok := sess.Content()
	require.True(t, ok)
	assert.Equal(t, "# Facts", content.Text)
}

func TestHandleGenerateRejectsConcurrentRequest(t *testing.T) {
	llm := &stubLLM{text: "done", gate: make(chan struct{})}
	h := newTestHandler(t, llm, stubRenderer{})
	sess := NewSession("s1")
	in := GenerateInput{Category: "quiz", Topic: "Cells", AudienceAge: 15}

	errCh := make(chan error, 1)
	go func() {
		_, err := h.HandleGenerate(context.Background(), sess, in)
		errCh <- err
	}()

	require.Eventually(t, func() bool { return sess.Status() == StatusGenerating }, time.Second, 5*time.Millisecond)

	_, err := h.HandleGenerate(context.Background(), sess, in)
	assert.ErrorIs(t, err, ErrSessionBusy)

	close(llm.gate)
	require.NoError(t, <-errCh)
	assert.Equal(t, StatusIdle, sess.Status())
	assert.Equal(t, 1, llm.callCount())
}

func TestSessionsAreIsolated(t *testing.T) {
	llm := &stubLLM{text: "text"}
	h := newTestHandler(t, llm, stubRenderer{})
	a, b := NewSession("a"), NewSession("b")

	_, err := h.HandleGenerate(context.Background(), a, GenerateInput{Category: "quiz", Topic: "Cells", AudienceAge: 15})
	require.NoError(t, err)

	_, ok := b.Content()
	assert.False(t, ok)
	assert.Equal(t, generator.LearningMaterial, b.Category())
}

func TestNewHandlerRequiresCollaborators(t *testing.T) {
	_, err := NewHandler(nil, nil, nil)
	assert.Error(t, err)
}
