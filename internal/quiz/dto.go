package quiz

import "github.com/google/uuid"

type CreateQuizRequest struct {
	CourseID     string `json:"course_id" validate:"required,uuid4"`
	Title        string `json:"title" validate:"required,min=2,max=200"`
	Duration     int    `json:"duration" validate:"required,gt=0"`
	PassingScore int    `json:"passing_score" validate:"gte=0,lte=100"`
}

type UpdateQuizRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=2,max=200"`
	Duration     *int    `json:"duration" validate:"omitempty,gt=0"`
	PassingScore *int    `json:"passing_score" validate:"omitempty,gte=0,lte=100"`
}

type CreateQuestionRequest struct {
	Name          string   `json:"name" validate:"required,min=2"`
	Options       []string `json:"options" validate:"required,min=2,max=6,dive,required"`
	CorrectAnswer int      `json:"correct_answer" validate:"gte=0"`
}

type UpdateQuestionRequest struct {
	Name          *string  `json:"name" validate:"omitempty,min=2"`
	Options       []string `json:"options" validate:"omitempty,min=2,max=6,dive,required"`
	CorrectAnswer *int     `json:"correct_answer" validate:"omitempty,gte=0"`
}

// QuestionView is the read shape of a question. CorrectAnswer is only
// populated for the course instructor or an admin.
type QuestionView struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Options       []string  `json:"options"`
	CorrectAnswer *int      `json:"correct_answer,omitempty"`
}

type QuizView struct {
	Quiz      *Quiz          `json:"quiz"`
	Questions []QuestionView `json:"questions"`
}
