package course

type CreateCourseRequest struct {
	Title       string  `json:"title" validate:"required,min=2,max=500"`
	Description string  `json:"description" validate:"required,min=6"`
	Category    string  `json:"category" validate:"required,oneof=programming design business"`
	Price       float64 `json:"price" validate:"gte=0"`
	Duration    int     `json:"duration" validate:"required,gt=0"`
}

type UpdateCourseRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=2,max=500"`
	Description *string  `json:"description" validate:"omitempty,min=6"`
	Category    *string  `json:"category" validate:"omitempty,oneof=programming design business"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Duration    *int     `json:"duration" validate:"omitempty,gt=0"`
}

type RateCourseRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Review string `json:"review"`
}
