package domain

// PaymentStatus is the derived three-way payment state of a lead.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPartial  PaymentStatus = "Partial"
	PaymentComplete PaymentStatus = "Complete"
)

// ServicePaymentStatus is the payment state of a service request. Free
// services stay "Not Applicable" for their whole life.
type ServicePaymentStatus string

const (
	ServicePaymentNotApplicable ServicePaymentStatus = "Not Applicable"
	ServicePaymentPending       ServicePaymentStatus = "Pending"
	ServicePaymentPaid          ServicePaymentStatus = "Paid"
)

// ReconcilePayment derives the pending amount and payment status from the
// latest total/paid figures. pendingAmount and paymentStatus are never set
// directly; every write path touching either amount goes through here.
func ReconcilePayment(totalAmount, paidAmount float64) (float64, PaymentStatus) {
	pending := totalAmount - paidAmount
	switch {
	case paidAmount == 0:
		return pending, PaymentPending
	case paidAmount < totalAmount:
		return pending, PaymentPartial
	default:
		return pending, PaymentComplete
	}
}

// ProposalFinalPrice derives the one-shot proposal price after subsidy.
func ProposalFinalPrice(price, subsidy float64) float64 {
	return price - subsidy
}
