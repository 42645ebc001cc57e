package generator

import (
	"fmt"
	"strings"
	"time"
)

// Category is one of the supported content kinds. The value is the display
// label, which also feeds exported filenames.
type Category string

const (
	LearningMaterial Category = "Learning Material"
	Story            Category = "Story"
	Quiz             Category = "Quiz"
	LessonPlan       Category = "Lesson Plan"
)

// Categories lists every category in form order.
var Categories = []Category{LearningMaterial, Story, Quiz, LessonPlan}

// Parameter ranges and the defaults used when a caller omits the value.
const (
	MinAudienceAge = 5
	MaxAudienceAge = 100

	MinParagraphs     = 1
	MaxParagraphs     = 7
	DefaultParagraphs = 3

	MinQuestions     = 3
	MaxQuestions     = 30
	DefaultQuestions = 5

	// interestingFacts is fixed by the learning material template.
	interestingFacts = 3
)

// ParseCategory accepts a display label ("Lesson Plan") or a slug
// ("lesson_plan", "lesson-plan"), case-insensitively.
func ParseCategory(s string) (Category, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	for _, c := range Categories {
		if strings.ToLower(string(c)) == norm {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// Valid reports whether c is one of the supported categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Slug is the machine form of the category, e.g. "lesson_plan".
func (c Category) Slug() string {
	return strings.ReplaceAll(strings.ToLower(string(c)), " ", "_")
}

// Params carries the category-specific parameters of a request.
// Only StoryParams and QuizParams implement it.
type Params interface {
	category() Category
}

// StoryParams configures a Story request.
type StoryParams struct {
	ParagraphCount int `json:"paragraph_count"`
}

func (StoryParams) category() Category { return Story }

// QuizParams configures a Quiz request.
type QuizParams struct {
	QuestionCount int `json:"question_count"`
}

func (QuizParams) category() Category { return Quiz }

// ContentRequest is a fully validated generation request.
// Params is nil for LearningMaterial and LessonPlan.
type ContentRequest struct {
	Category    Category
	Topic       string
	AudienceAge int
	Params      Params
}

// GeneratedContent is the result of one successful generation. It is never
// mutated after creation; a new generation replaces it wholesale.
type GeneratedContent struct {
	Category    Category  `json:"category"`
	Topic       string    `json:"topic"`
	AudienceAge int       `json:"audience_age"`
	Text        string    `json:"text"`
	GeneratedAt time.Time `json:"generated_at"`
}
