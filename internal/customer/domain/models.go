package domain

// Customer is one registered customer record.
type Customer struct {
	ID      int
	Name    string
	Phone   string
	Email   string
	Address string
}
