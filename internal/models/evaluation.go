package models

import (
	"encoding/json"
	"time"
)

// Evaluation is a post-event feedback entry.
type Evaluation struct {
	ID             int64           `json:"id"`
	EventID        int64           `json:"eventId"`
	RespondentType RespondentType  `json:"respondentType"`
	Rating         *int            `json:"rating"`
	Feedback       string          `json:"feedback"`
	SurveyAnswers  json.RawMessage `json:"surveyAnswers,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// EvaluationPatch holds the optional fields of a partial evaluation update.
type EvaluationPatch struct {
	RespondentType *RespondentType
	Rating         *int
	Feedback       *string
	SurveyAnswers  json.RawMessage
}
