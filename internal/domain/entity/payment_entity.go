package entity

// PaymentRequest is what the storefront sends to the payment gateway for one purchase.
// Amount is in minor units, formatted as an integer string.
type PaymentRequest struct {
	OrderID   string
	OrderDesc string
	Currency  string
	Amount    string
}
