package model

// QuestionType defines the input kind for a generated question
type QuestionType string

const (
	QuestionTypeRadio QuestionType = "radio" // single-choice with fixed options
	QuestionTypeText  QuestionType = "text"  // free text with a placeholder hint
)

// Question is one adaptive questionnaire question, either generated by
// the model or substituted from the static bank.
type Question struct {
	Text        string       `json:"text" bson:"text"`
	Type        QuestionType `json:"type" bson:"type"`
	Options     []string     `json:"options,omitempty" bson:"options,omitempty"`         // radio only
	Placeholder string       `json:"placeholder,omitempty" bson:"placeholder,omitempty"` // text only
}

// Turn is one question/answer pair in the transcript. Turns are appended
// strictly in increasing index order.
type Turn struct {
	Index    int      `json:"index" bson:"index"` // 1-based
	Question Question `json:"question" bson:"question"`
	Answer   string   `json:"answer" bson:"answer"`
}
