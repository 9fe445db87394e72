package quiz

import "github.com/google/uuid"

type SubmitQuizDTO struct {
	Answers map[string]string `json:"answers"`
}

type AnswerResult struct {
	Selected  uuid.UUID `json:"selected"`
	IsCorrect bool      `json:"is_correct"`
	Reason    string    `json:"reason,omitempty"`
}

type SubmissionResponse struct {
	Results             map[string]AnswerResult `json:"quiz"`
	Mark                float64                 `json:"mark"`
	NextCooldownSeconds int                     `json:"remaining_time"`
}

type QuizStateResponse struct {
	Completed                bool    `json:"completed"`
	Mark                     float64 `json:"mark"`
	RemainingCooldownSeconds int     `json:"remaining_time"`
}

type TopicQuizResponse struct {
	Questions []*Question `json:"quiz"`
	QuizStateResponse
}

type CreateOptionDTO struct {
	Option    string `json:"option"`
	Reason    string `json:"reason"`
	IsCorrect bool   `json:"is_correct"`
}

type CreateQuestionDTO struct {
	Question string            `json:"question"`
	Options  []CreateOptionDTO `json:"options"`
}
