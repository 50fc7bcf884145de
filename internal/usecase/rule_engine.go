package usecase

import (
	"strings"

	"go.uber.org/zap"

	"github.com/thermochef/backend/internal/domain"
	"github.com/thermochef/backend/internal/tables"
)

// Generic step emitted when no rule matches an instruction
const (
	genericStepSpeed           = 1
	defaultStepDurationSeconds = 60
)

type compiledRule struct {
	rule     domain.ConversionRule
	keywords []string
}

// RuleEngine maps instruction text onto device templates using an ordered rule list
type RuleEngine struct {
	rules  []compiledRule
	parser *QuantityParser
	logger *zap.Logger
}

// NewRuleEngine creates a rule engine; rule order in the table is precedence order
func NewRuleEngine(t *tables.Tables, parser *QuantityParser, logger *zap.Logger) *RuleEngine {
	if logger == nil {
		logger = zap.NewNop()
	}

	rules := make([]compiledRule, 0, len(t.Rules))
	for _, r := range t.Rules {
		keywords := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			if kw = foldText(kw); kw != "" {
				keywords = append(keywords, kw)
			}
		}
		rules = append(rules, compiledRule{rule: r, keywords: keywords})
	}

	return &RuleEngine{rules: rules, parser: parser, logger: logger.Named("rules")}
}

// MatchRule returns a copy of the first rule with a keyword contained in the instruction, or nil
func (e *RuleEngine) MatchRule(instruction string) *domain.ConversionRule {
	text := foldText(instruction)
	if text == "" {
		return nil
	}
	for i := range e.rules {
		for _, kw := range e.rules[i].keywords {
			if strings.Contains(text, kw) {
				rule := e.rules[i].rule
				if rule.Template.Temperature != nil {
					temp := *rule.Template.Temperature
					rule.Template.Temperature = &temp
				}
				rule.Keywords = append([]string(nil), rule.Keywords...)
				return &rule
			}
		}
	}
	return nil
}

// BuildStep turns an instruction and optional template into a step.
// Without a template the step is a generic speed 1 / 60 s step. With one, the
// duration is the time stated in the text (60 s when none), capped by the
// template's max duration when it has one.
func (e *RuleEngine) BuildStep(instruction string, template *domain.OperationTemplate) domain.OperationStep {
	if template == nil {
		return domain.OperationStep{
			Instruction:     instruction,
			Speed:           genericStepSpeed,
			DurationSeconds: defaultStepDurationSeconds,
		}
	}

	duration := e.parser.ParseDuration(instruction)
	if duration <= 0 {
		duration = defaultStepDurationSeconds
	}

	if template.MaxDurationSeconds > 0 && template.MaxDurationSeconds < duration {
		duration = template.MaxDurationSeconds
	}

	step := domain.OperationStep{
		Instruction:     instruction,
		Speed:           template.Speed,
		DurationSeconds: duration,
		Reversed:        template.Reversed,
		Attachment:      template.Attachment,
	}
	if template.Temperature != nil {
		temp := *template.Temperature
		step.Temperature = &temp
	}
	return step
}

// Convert builds one step per instruction
func (e *RuleEngine) Convert(instructions []string) []domain.OperationStep {
	steps := make([]domain.OperationStep, 0, len(instructions))
	for _, instruction := range instructions {
		var template *domain.OperationTemplate
		if rule := e.MatchRule(instruction); rule != nil {
			template = &rule.Template
			e.logger.Debug("instruction matched rule", zap.String("rule", rule.Name), zap.String("instruction", instruction))
		} else {
			e.logger.Debug("no rule matched, using generic step", zap.String("instruction", instruction))
		}
		steps = append(steps, e.BuildStep(instruction, template))
	}
	return steps
}
