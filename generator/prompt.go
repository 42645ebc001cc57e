package generator

import (
	"fmt"
	"strings"
)

// Compose builds the prompt sent to the language model. It is deterministic:
// the same request always yields the same string.
func Compose(req ContentRequest) (string, error) {
	if !req.Category.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, req.Category)
	}
	if err := checkParams(req); err != nil {
		return "", err
	}

	var sb strings.Builder
	switch req.Category {
	case LearningMaterial:
		sb.WriteString(fmt.Sprintf("Create comprehensive learning material about %s for %d-year-olds. Include:\n", req.Topic, req.AudienceAge))
		writeItems(&sb,
			"Key Concepts with simple explanations",
			"Real-world Applications",
			"Visual Metaphors",
			"Common Misconceptions",
			fmt.Sprintf("%d Interesting Facts", interestingFacts),
		)
	case Story:
		p := req.Params.(StoryParams)
		sb.WriteString(fmt.Sprintf("Write a %d-paragraph story about %s for %d-year-olds. Include:\n", p.ParagraphCount, req.Topic, req.AudienceAge))
		writeItems(&sb,
			"Named characters",
			"Dialogue between characters",
			"Moral lesson",
			"Plot twist",
		)
		sb.WriteString(fmt.Sprintf("Use exactly %d paragraphs.\n", p.ParagraphCount))
	case Quiz:
		p := req.Params.(QuizParams)
		sb.WriteString(fmt.Sprintf("Create %d MCQ questions about %s for %d-year-olds. Include for each question:\n", p.QuestionCount, req.Topic, req.AudienceAge))
		writeItems(&sb,
			"Clear question stem",
			"3 Distractors",
			"Correct answer with explanation",
		)
		sb.WriteString(fmt.Sprintf("Write exactly %d questions, each with exactly 3 distractors and 1 correct answer.\n", p.QuestionCount))
	case LessonPlan:
		sb.WriteString(fmt.Sprintf("Create a lesson plan about %s for %d-year-olds. Include:\n", req.Topic, req.AudienceAge))
		writeItems(&sb,
			"Learning Objectives",
			"Materials Needed",
			"Warm-up Activity",
			"Core Lesson",
			"Group Activity",
			"Assessment",
		)
	}
	sb.WriteString("Format the answer as Markdown.")
	return sb.String(), nil
}

func writeItems(sb *strings.Builder, items ...string) {
	for i, item := range items {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, item))
	}
}

func checkParams(req ContentRequest) error {
	if req.AudienceAge < MinAudienceAge || req.AudienceAge > MaxAudienceAge {
		return fmt.Errorf("%w: audience age %d outside [%d,%d]", ErrInvalidParams, req.AudienceAge, MinAudienceAge, MaxAudienceAge)
	}
	switch req.Category {
	case Story:
		p, ok := req.Params.(StoryParams)
		if !ok {
			return fmt.Errorf("%w: %s requires story params, got %T", ErrInvalidParams, req.Category, req.Params)
		}
		if p.ParagraphCount < MinParagraphs || p.ParagraphCount > MaxParagraphs {
			return fmt.Errorf("%w: paragraph count %d outside [%d,%d]", ErrInvalidParams, p.ParagraphCount, MinParagraphs, MaxParagraphs)
		}
	case Quiz:
		p, ok := req.Params.(QuizParams)
		if !ok {
			return fmt.Errorf("%w: %s requires quiz params, got %T", ErrInvalidParams, req.Category, req.Params)
		}
		if p.QuestionCount < MinQuestions || p.QuestionCount > MaxQuestions {
			return fmt.Errorf("%w: question count %d outside [%d,%d]", ErrInvalidParams, p.QuestionCount, MinQuestions, MaxQuestions)
		}
	default:
		if req.Params != nil {
			return fmt.Errorf("%w: %s takes no params, got %T", ErrInvalidParams, req.Category, req.Params)
		}
	}
	return nil
}
