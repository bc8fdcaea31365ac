package enrollment

type SubmitScoreRequest struct {
	Score    int `json:"score" validate:"gte=0,lte=100"`
	TimeUsed int `json:"time_used" validate:"gte=0"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=pending completed failed"`
}

type UpdateProgressRequest struct {
	Progress  int   `json:"progress" validate:"gte=0,lte=100"`
	Completed *bool `json:"completed"`
}
