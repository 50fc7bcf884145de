package oracle

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/thermochef/backend/internal/domain"
)

// wireStep is the step shape models answer with; "time" and "reverse" are
// accepted as older spellings of durationSeconds and reversed.
type wireStep struct {
	Instruction     string              `json:"instruction"`
	Temperature     *domain.Temperature `json:"temperature"`
	Speed           float64             `json:"speed"`
	DurationSeconds *float64            `json:"durationSeconds"`
	Time            *float64            `json:"time"`
	Reversed        *bool               `json:"reversed"`
	Reverse         *bool               `json:"reverse"`
	Attachment      string              `json:"attachment"`
}

type wireAnswer struct {
	Steps []wireStep `json:"steps"`
}

// ExtractJSON returns the outermost {...} span of a model answer,
// dropping markdown fences and chatter around it
func ExtractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || start > end {
		return "", fmt.Errorf("%w: no JSON object in answer", domain.ErrOracleFailure)
	}
	return text[start : end+1], nil
}

// DecodeSteps parses a model answer into operation steps
func DecodeSteps(text string) ([]domain.OperationStep, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrOracleEmpty
	}

	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	var answer wireAnswer
	if err := json.Unmarshal([]byte(raw), &answer); err != nil {
		return nil, fmt.Errorf("%w: malformed answer: %v", domain.ErrOracleFailure, err)
	}
	if len(answer.Steps) == 0 {
		return nil, domain.ErrOracleEmpty
	}

	steps := make([]domain.OperationStep, 0, len(answer.Steps))
	for _, w := range answer.Steps {
		steps = append(steps, w.toStep())
	}
	return steps, nil
}

func (w wireStep) toStep() domain.OperationStep {
	step := domain.OperationStep{
		Instruction: strings.TrimSpace(w.Instruction),
		Temperature: w.Temperature,
		Speed:       w.Speed,
		Attachment:  strings.TrimSpace(w.Attachment),
	}

	switch {
	case w.DurationSeconds != nil:
		step.DurationSeconds = int(math.Round(*w.DurationSeconds))
	case w.Time != nil:
		step.DurationSeconds = int(math.Round(*w.Time))
	}

	switch {
	case w.Reversed != nil:
		step.Reversed = *w.Reversed
	case w.Reverse != nil:
		step.Reversed = *w.Reverse
	}

	return step
}
