package lesson

type CreateLessonRequest struct {
	Title    string `json:"title" validate:"required,min=2,max=200"`
	Duration string `json:"duration" validate:"required"`
}

type UpdateLessonRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=2,max=200"`
	Duration *string `json:"duration"`
}
