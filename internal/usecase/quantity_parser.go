package usecase

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/thermochef/backend/internal/domain"
)

// DefaultServings is used when a servings text carries no number
const DefaultServings = 4

// defaultGenericUnit is the unit given to lines without a recognizable unit
const defaultGenericUnit = "unit"

// amountExpr matches a mixed fraction, a bare fraction, or an integer/decimal
const amountExpr = `\d+\s+\d+/\d+|\d+/\d+|\d+(?:\.\d+)?`

// Compiled regex patterns for ingredient and time parsing
var (
	// "2 cups flour", "1 1/2 cups sugar", "0.5 kg potatoes", "2 large eggs"
	amountUnitNamePattern = regexp.MustCompile(`^(` + amountExpr + `)\s+(\w+\.?)\s+(.+)$`)

	// "flour, 2 cups"
	nameAmountUnitPattern = regexp.MustCompile(`^(.+?),\s*(` + amountExpr + `)\s+(\w+\.?)$`)

	// first numeric token anywhere in the line
	firstAmountPattern = regexp.MustCompile(amountExpr)

	// "onions, finely chopped" or "butter (softened)"
	trailingNotePattern      = regexp.MustCompile(`^(.+?),\s*(.+)$`)
	parentheticalNotePattern = regexp.MustCompile(`^(.*?)\s*\(([^)]*)\)\s*(.*)$`)

	// "1 hour 30 minutes", "15 mins", "45 sec"
	durationPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(hours?|hrs?|minutes?|mins?|seconds?|secs?)\b`)

	// schema.org style "PT1H30M"
	isoDurationPattern = regexp.MustCompile(`(?i)^P(?:(\d+)D)?(?:T(?:(\d+(?:\.\d+)?)H)?(?:(\d+(?:\.\d+)?)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

	firstIntegerPattern = regexp.MustCompile(`\d+`)
)

// vulgarFractions maps unicode fraction glyphs onto ASCII fractions
var vulgarFractions = strings.NewReplacer(
	"½", " 1/2", "⅓", " 1/3", "⅔", " 2/3", "¼", " 1/4", "¾", " 3/4",
	"⅕", " 1/5", "⅛", " 1/8", "⅜", " 3/8", "⅝", " 5/8", "⅞", " 7/8",
	"⁄", "/",
)

// QuantityParser turns free text into quantities, durations and serving counts.
// It never fails: every input resolves to a documented default.
type QuantityParser struct {
	logger *zap.Logger
}

// NewQuantityParser creates a new quantity parser
func NewQuantityParser(logger *zap.Logger) *QuantityParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuantityParser{logger: logger.Named("quantity")}
}

// ParseIngredientLine parses one ingredient line.
// Layouts are tried in order: "amount unit name", "name, amount unit",
// first-number extraction, then the whole line as name with amount 1.
func (p *QuantityParser) ParseIngredientLine(line string) domain.Quantity {
	cleaned := cleanIngredientLine(line)
	if cleaned == "" {
		return domain.Quantity{Amount: 1, Unit: defaultGenericUnit, Name: strings.TrimSpace(line)}
	}

	if m := amountUnitNamePattern.FindStringSubmatch(cleaned); m != nil {
		return withNotes(parseAmount(m[1]), m[2], m[3])
	}

	if m := nameAmountUnitPattern.FindStringSubmatch(cleaned); m != nil {
		return withNotes(parseAmount(m[2]), m[3], m[1])
	}

	if loc := firstAmountPattern.FindStringIndex(cleaned); loc != nil {
		amount := parseAmount(cleaned[loc[0]:loc[1]])
		remaining := strings.TrimSpace(cleaned[:loc[0]] + " " + cleaned[loc[1]:])
		words := strings.Fields(remaining)
		p.logger.Debug("ingredient line matched no layout, extracted first number",
			zap.String("line", line), zap.Float64("amount", amount))
		switch len(words) {
		case 0:
			return domain.Quantity{Amount: amount, Unit: defaultGenericUnit, Name: cleaned}
		case 1:
			return withNotes(amount, defaultGenericUnit, words[0])
		default:
			return withNotes(amount, words[0], strings.Join(words[1:], " "))
		}
	}

	p.logger.Debug("ingredient line has no amount, using defaults", zap.String("line", line))
	return domain.Quantity{Amount: 1, Unit: defaultGenericUnit, Name: cleaned}
}

// ParseDuration sums every "{number}{unit}" occurrence in text, in seconds.
// Returns 0 when nothing is found.
func (p *QuantityParser) ParseDuration(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	if m := isoDurationPattern.FindStringSubmatch(text); m != nil && len(text) > 1 {
		return int(math.Round(parseFloatOrZero(m[1])*86400 +
			parseFloatOrZero(m[2])*3600 +
			parseFloatOrZero(m[3])*60 +
			parseFloatOrZero(m[4])))
	}

	total := 0.0
	for _, m := range durationPattern.FindAllStringSubmatch(text, -1) {
		value := parseFloatOrZero(m[1])
		switch unit := strings.ToLower(m[2]); {
		case strings.HasPrefix(unit, "h"):
			total += value * 3600
		case strings.HasPrefix(unit, "m"):
			total += value * 60
		default:
			total += value
		}
	}
	return int(math.Round(total))
}

// ParseServings returns the first positive integer in text, or DefaultServings
func (p *QuantityParser) ParseServings(text string) int {
	m := firstIntegerPattern.FindString(text)
	if m == "" {
		return DefaultServings
	}
	n, err := strconv.Atoi(m)
	if err != nil || n < 1 {
		p.logger.Debug("servings text not usable, using default", zap.String("text", text))
		return DefaultServings
	}
	return n
}

// cleanIngredientLine expands fraction glyphs and normalizes whitespace
func cleanIngredientLine(line string) string {
	line = vulgarFractions.Replace(line)
	line = multipleSpacesRegex.ReplaceAllString(line, " ")
	return strings.TrimSpace(line)
}

// withNotes splits a trailing ", note" or "(note)" off the name
func withNotes(amount float64, unit, name string) domain.Quantity {
	name = strings.TrimSpace(name)
	notes := ""

	if m := parentheticalNotePattern.FindStringSubmatch(name); m != nil && strings.TrimSpace(m[1]) != "" {
		notes = strings.TrimSpace(m[2])
		name = strings.TrimSpace(m[1] + " " + m[3])
	}
	if m := trailingNotePattern.FindStringSubmatch(name); m != nil {
		name = strings.TrimSpace(m[1])
		if notes != "" {
			notes = strings.TrimSpace(m[2]) + "; " + notes
		} else {
			notes = strings.TrimSpace(m[2])
		}
	}

	return domain.Quantity{Amount: amount, Unit: unit, Name: name, Notes: notes}
}

// parseAmount handles "1 1/2", "3/4" and "2.5"; malformed input yields 1
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)

	if parts := strings.Fields(s); len(parts) == 2 && strings.Contains(parts[1], "/") {
		whole, err := strconv.ParseFloat(parts[0], 64)
		frac, ok := parseFraction(parts[1])
		if err != nil || !ok {
			return 1
		}
		return whole + frac
	}

	if strings.Contains(s, "/") {
		frac, ok := parseFraction(s)
		if !ok {
			return 1
		}
		return frac
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 1
	}
	return v
}

func parseFraction(s string) (float64, bool) {
	num, den, found := strings.Cut(s, "/")
	if !found {
		return 0, false
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}

func parseFloatOrZero(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
