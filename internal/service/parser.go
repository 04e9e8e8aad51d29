package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"riskscope/internal/model"
)

// ParseError means no structured data could be recovered from the raw
// generation output.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Reason
}

// ValidationError means the parsed object is missing a required field or
// has a field of the wrong type.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Reason)
}

// ExtractJSON locates the first balanced {...} substring in raw generation
// output. The model may wrap JSON in prose or code fences, so fences are
// stripped first and string literals are honored during the brace scan.
func ExtractJSON(raw string) (string, error) {
	cleaned := stripCodeFences(raw)

	start := strings.IndexByte(cleaned, '{')
	if start < 0 {
		return "", &ParseError{Reason: "no JSON object found in response"}
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(cleaned); i++ {
		ch := cleaned[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return cleaned[start : i+1], nil
			}
		}
	}

	// The scan can be thrown off by over-escaped model output; fall back
	// to the widest {...} slice and let lenient unmarshal sort it out.
	if end := strings.LastIndexByte(cleaned, '}'); end > start {
		return cleaned[start : end+1], nil
	}

	return "", &ParseError{Reason: "unbalanced JSON object in response"}
}

func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// unmarshalLenient parses extracted JSON, retrying once with over-escaped
// quotes normalized (some model outputs escape every quote).
func unmarshalLenient(jsonStr string, v interface{}) error {
	if err := json.Unmarshal([]byte(jsonStr), v); err == nil {
		return nil
	}
	normalized := strings.ReplaceAll(jsonStr, `\"`, `"`)
	if err := json.Unmarshal([]byte(normalized), v); err != nil {
		return &ParseError{Reason: "invalid JSON: " + err.Error()}
	}
	return nil
}

// ParseQuestion turns raw generation output into a validated Question.
// It never retries; retry policy belongs to the caller.
func ParseQuestion(raw string) (*model.Question, error) {
	jsonStr, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var q model.Question
	if err := unmarshalLenient(jsonStr, &q); err != nil {
		return nil, err
	}

	if strings.TrimSpace(q.Text) == "" {
		return nil, &ValidationError{Field: "text", Reason: "must not be empty"}
	}
	switch q.Type {
	case model.QuestionTypeRadio:
		if len(q.Options) == 0 {
			return nil, &ValidationError{Field: "options", Reason: "radio question requires options"}
		}
	case model.QuestionTypeText:
		if q.Placeholder == "" {
			return nil, &ValidationError{Field: "placeholder", Reason: "text question requires a placeholder"}
		}
	default:
		return nil, &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown question type %q", q.Type)}
	}

	return &q, nil
}

// requiredMetrics are the minimum healthMetrics keys a report must carry
var requiredMetrics = []string{"diet", "exercise", "sleep", "stress"}

// ParseReport turns raw generation output into a validated RiskReport.
func ParseReport(raw string) (*model.RiskReport, error) {
	jsonStr, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var report model.RiskReport
	if err := unmarshalLenient(jsonStr, &report); err != nil {
		return nil, err
	}

	// A score of exactly 0 is valid, so absence has to be detected
	// separately from the zero value.
	var scoreField struct {
		RiskScore *float64 `json:"riskScore"`
	}
	if err := unmarshalLenient(jsonStr, &scoreField); err != nil {
		return nil, err
	}
	if scoreField.RiskScore == nil {
		return nil, &ValidationError{Field: "riskScore", Reason: "missing"}
	}
	if report.RiskScore < 0 || report.RiskScore > 100 {
		return nil, &ValidationError{Field: "riskScore", Reason: "must be between 0 and 100"}
	}
	if strings.TrimSpace(report.Summary) == "" {
		return nil, &ValidationError{Field: "summary", Reason: "must not be empty"}
	}
	if report.HealthMetrics == nil {
		return nil, &ValidationError{Field: "healthMetrics", Reason: "missing"}
	}
	for _, metric := range requiredMetrics {
		if _, ok := report.HealthMetrics[metric]; !ok {
			return nil, &ValidationError{Field: "healthMetrics." + metric, Reason: "missing"}
		}
	}

	return &report, nil
}
