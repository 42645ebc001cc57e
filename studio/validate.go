package studio

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"eduforge/generator"
)

var validate = validator.New()

// GenerateInput is the raw form submission. Category may be empty, in which
// case the session's current category is used. A nil count falls back to the
// category default.
type GenerateInput struct {
	Category       string `json:"category,omitempty"`
	Topic          string `json:"topic"`
	AudienceAge    int    `json:"audience_age"`
	ParagraphCount *int   `json:"paragraph_count,omitempty"`
	QuestionCount  *int   `json:"question_count,omitempty"`
}

func (in GenerateInput) clone() GenerateInput {
	out := in
	if in.ParagraphCount != nil {
		n := *in.ParagraphCount
		out.ParagraphCount = &n
	}
	if in.QuestionCount != nil {
		n := *in.QuestionCount
		out.QuestionCount = &n
	}
	return out
}

// ValidationError names the first offending input field.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// buildRequest checks in against its rules in a fixed order and returns the
// first violation: topic, audience age, category, then the category's count.
func buildRequest(in GenerateInput, current generator.Category) (generator.ContentRequest, error) {
	topic := strings.TrimSpace(in.Topic)
	if err := validate.Var(topic, "required"); err != nil {
		return generator.ContentRequest{}, &ValidationError{Field: "topic", Reason: "must not be empty"}
	}

	ageRule := fmt.Sprintf("min=%d,max=%d", generator.MinAudienceAge, generator.MaxAudienceAge)
	if err := validate.Var(in.AudienceAge, ageRule); err != nil {
		return generator.ContentRequest{}, &ValidationError{
			Field:  "audience_age",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", generator.MinAudienceAge, generator.MaxAudienceAge, in.AudienceAge),
		}
	}

	category := current
	if strings.TrimSpace(in.Category) != "" {
		c, err := generator.ParseCategory(in.Category)
		if err != nil {
			return generator.ContentRequest{}, &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", in.Category)}
		}
		category = c
	}
	if !category.Valid() {
		return generator.ContentRequest{}, &ValidationError{Field: "category", Reason: "no category selected"}
	}

	req := generator.ContentRequest{Category: category, Topic: topic, AudienceAge: in.AudienceAge}
	switch category {
	case generator.Story:
		n := countOrDefault(in.ParagraphCount, generator.DefaultParagraphs)
		if err := checkRange("paragraph_count", n, generator.MinParagraphs, generator.MaxParagraphs); err != nil {
			return generator.ContentRequest{}, err
		}
		req.Params = generator.StoryParams{ParagraphCount: n}
	case generator.Quiz:
		n := countOrDefault(in.QuestionCount, generator.DefaultQuestions)
		if err := checkRange("question_count", n, generator.MinQuestions, generator.MaxQuestions); err != nil {
			return generator.ContentRequest{}, err
		}
		req.Params = generator.QuizParams{QuestionCount: n}
	}
	return req, nil
}

// resolvedInput reports the parameters a request was actually built with:
// trimmed topic, canonical category label and the effective count.
func resolvedInput(req generator.ContentRequest) GenerateInput {
	in := GenerateInput{
		Category:    string(req.Category),
		Topic:       req.Topic,
		AudienceAge: req.AudienceAge,
	}
	switch p := req.Params.(type) {
	case generator.StoryParams:
		n := p.ParagraphCount
		in.ParagraphCount = &n
	case generator.QuizParams:
		n := p.QuestionCount
		in.QuestionCount = &n
	}
	return in
}

func countOrDefault(n *int, def int) int {
	if n == nil {
		return def
	}
	return *n
}

func checkRange(field string, n, lo, hi int) error {
	if err := validate.Var(n, fmt.Sprintf("min=%d,max=%d", lo, hi)); err != nil {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must be between %d and %d, got %d", lo, hi, n)}
	}
	return nil
}
