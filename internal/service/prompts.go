package service

import (
	"fmt"
	"strings"

	"riskscope/internal/model"
)

// Topic schedule: which theme each turn index should address. Indexes past
// the schedule reuse the last topic so N is free to exceed five.
var questionTopics = []string{
	"Primary health concern",
	"Lifestyle impact",
	"Specific symptoms",
	"Risk factors",
	"Prevention and sleep",
}

// freeTextIndex is the designated free-text turn (detailed symptoms).
const freeTextIndex = 3

// topicForIndex returns the scheduled topic for a 1-based turn index.
func topicForIndex(index int) string {
	if index >= 1 && index <= len(questionTopics) {
		return questionTopics[index-1]
	}
	return questionTopics[len(questionTopics)-1]
}

// BuildQuestionPrompt renders the generation request for turn `index` of
// `n`. Pure: identical inputs always yield byte-identical output.
func BuildQuestionPrompt(profile *model.SubjectProfile, turns []model.Turn, index, n int) string {
	var sb strings.Builder

	sb.WriteString("Generate a brief health assessment question.\n\n")
	sb.WriteString(profileSummary(profile))

	if len(turns) > 0 {
		sb.WriteString("\nPrevious Q&A:\n")
		for _, turn := range turns {
			fmt.Fprintf(&sb, "Q: %s\nA: %s\n", turn.Question.Text, turn.Answer)
		}
	}

	fmt.Fprintf(&sb, "\nQuestion Number: %d/%d\n", index, n)
	fmt.Fprintf(&sb, "Question Focus: %s\n", topicForIndex(index))
	sb.WriteString(`
Guidelines:
- Keep questions short and direct
- Focus on risk assessment
- Consider user profile
- Be conversational
- Do not repeat earlier questions
`)

	if index == freeTextIndex {
		sb.WriteString(`
Return one JSON object with this exact structure:
{
  "text": "brief question here",
  "type": "text",
  "placeholder": "brief guide..."
}`)
	} else {
		sb.WriteString(`
Return one JSON object with this exact structure:
{
  "text": "brief question here",
  "type": "radio",
  "options": ["option1", "option2", "option3", "option4"]
}`)
	}

	return sb.String()
}

// BuildReportPrompt renders the report synthesis request from a complete
// transcript. Pure in the same sense as BuildQuestionPrompt.
func BuildReportPrompt(profile *model.SubjectProfile, turns []model.Turn) string {
	var sb strings.Builder

	sb.WriteString("Generate a health risk assessment report in JSON format (no markdown, no backticks).\n\n")
	sb.WriteString(profileSummary(profile))

	sb.WriteString("\nAssessment Responses:\n")
	for _, turn := range turns {
		fmt.Fprintf(&sb, "Q: %s\nA: %s\n", turn.Question.Text, turn.Answer)
	}

	sb.WriteString(`
Return a JSON object with this exact structure:
{
  "riskScore": <number 1-100>,
  "summary": "<brief health status>",
  "healthMetrics": {
    "diet": <1-10>,
    "exercise": <1-10>,
    "sleep": <1-10>,
    "stress": <1-10>,
    "lifestyle": <1-10>
  },
  "potentialConditions": [
    {
      "condition": "<name>",
      "probability": "Low/Medium/High",
      "summary": "<brief explanation>",
      "riskFactors": ["factor1", "factor2"],
      "preventiveMeasures": ["measure1", "measure2"]
    }
  ],
  "recommendations": {
    "immediate": [
      {
        "action": "<action>",
        "priority": "High/Medium/Low",
        "timeframe": "<timeframe>"
      }
    ],
    "lifestyle": {
      "diet": ["recommendation1", "recommendation2"],
      "exercise": ["recommendation1", "recommendation2"],
      "sleep": ["recommendation1", "recommendation2"],
      "stress": ["recommendation1", "recommendation2"]
    }
  }
}`)

	return sb.String()
}

func profileSummary(profile *model.SubjectProfile) string {
	var sb strings.Builder

	conditions := "None"
	if len(profile.MedicalHistory.Conditions) > 0 {
		conditions = strings.Join(profile.MedicalHistory.Conditions, ", ")
	}

	sb.WriteString("User Profile:\n")
	fmt.Fprintf(&sb, "Age: %d\n", profile.PersonalInfo.Age)
	fmt.Fprintf(&sb, "Gender: %s\n", profile.PersonalInfo.Gender)
	fmt.Fprintf(&sb, "Conditions: %s\n", conditions)
	fmt.Fprintf(&sb, "Smoking: %t, Alcohol: %t\n", profile.Lifestyle.Smoking, profile.Lifestyle.Alcohol)
	fmt.Fprintf(&sb, "Exercise: %s\n", profile.MedicalHistory.Exercise)
	return sb.String()
}
