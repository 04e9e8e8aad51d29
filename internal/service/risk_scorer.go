package service

import "strings"

// Keyword weights for the heuristic scorer
const (
	highRiskWeight     = 15.0
	moderateRiskWeight = 8.0
)

var highRiskKeywords = []string{
	"severe",
	"extreme",
	"constant",
	"always",
	"unbearable",
	"chest pain",
	"difficulty breathing",
	"unconscious",
	"suicide",
	"heart",
	"emergency",
	"critical",
}

var moderateRiskKeywords = []string{
	"often",
	"frequent",
	"moderate",
	"sometimes",
	"pain",
	"stress",
	"anxiety",
	"worried",
}

// HeuristicRiskScore computes a deterministic keyword-based score over the
// answer strings of a transcript. It acts as a floor for the model's risk
// score, never a replacement. Case-insensitive substring matching; each
// match adds its weight and counts as one risk factor, and the raw score
// is amplified by the factor count then clamped to [0,100].
func HeuristicRiskScore(answers []string) float64 {
	score := 0.0
	riskFactors := 0

	for _, answer := range answers {
		lower := strings.ToLower(answer)
		for _, keyword := range highRiskKeywords {
			if strings.Contains(lower, keyword) {
				score += highRiskWeight
				riskFactors++
			}
		}
		for _, keyword := range moderateRiskKeywords {
			if strings.Contains(lower, keyword) {
				score += moderateRiskWeight
				riskFactors++
			}
		}
	}

	final := score * (1 + float64(riskFactors)*0.1)
	if final < 0 {
		final = 0
	}
	if final > 100 {
		final = 100
	}
	return final
}
