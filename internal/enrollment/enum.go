package enrollment

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

var allPaymentStatuses = []PaymentStatus{PaymentPending, PaymentCompleted, PaymentFailed}

func (p PaymentStatus) IsValid() bool {
	for _, v := range allPaymentStatuses {
		if p == v {
			return true
		}
	}
	return false
}
