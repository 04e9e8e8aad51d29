package service

import "riskscope/internal/model"

// fallbackQuestions is the static, topic-matched question bank used when
// generation or parsing fails. The flow can always proceed without the
// external model.
var fallbackQuestions = []model.Question{
	{
		Text: "How would you rate your daily energy levels?",
		Type: model.QuestionTypeRadio,
		Options: []string{
			"Very low - I feel tired most of the time",
			"Low - I often feel tired",
			"Moderate - I have enough energy for basic tasks",
			"High - I generally feel energetic",
		},
	},
	{
		Text: "How often do you engage in physical exercise?",
		Type: model.QuestionTypeRadio,
		Options: []string{
			"Never or rarely",
			"1-2 times per week",
			"3-4 times per week",
			"5 or more times per week",
		},
	},
	{
		Text:        "Please describe any recurring health symptoms or concerns you've experienced in the past month.",
		Type:        model.QuestionTypeText,
		Placeholder: "Describe your symptoms, frequency, and severity...",
	},
	{
		Text: "How would you describe your stress levels in the past month?",
		Type: model.QuestionTypeRadio,
		Options: []string{
			"Minimal - rarely feel stressed",
			"Mild - occasionally feel stressed",
			"Moderate - frequently feel stressed",
			"Severe - constantly feel stressed",
		},
	},
	{
		Text: "How would you rate your sleep quality?",
		Type: model.QuestionTypeRadio,
		Options: []string{
			"Poor - difficulty sleeping most nights",
			"Fair - occasional sleep issues",
			"Good - usually sleep well",
			"Excellent - consistently sleep well",
		},
	},
}

// FallbackQuestion returns the static question for a 1-based turn index.
// Indexes past the bank reuse the final (sleep) question so sessions with
// N greater than the bank length still complete.
func FallbackQuestion(index int) model.Question {
	if index >= 1 && index <= len(fallbackQuestions) {
		return fallbackQuestions[index-1]
	}
	return fallbackQuestions[len(fallbackQuestions)-1]
}
