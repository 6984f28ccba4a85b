package model

// Account is an issued credit card together with its balance.
type Account struct {
	ID      int    `json:"id"`
	Number  string `json:"number" validate:"cardnumber"`
	PIN     string `json:"-" validate:"pin"`
	Balance int64  `json:"balance" validate:"gte=0"`
}
