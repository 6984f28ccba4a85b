// file: model/request.go

package model

// IncomeRequest carries an income deposit typed at the account menu.
type IncomeRequest struct {
	Amount int64 `validate:"gte=0"`
}

// TransferRequest carries a transfer to another card. The destination
// number is not validated here: the ledger checks it so that each failure
// maps to its own outcome.
type TransferRequest struct {
	ToCardNumber string
	Amount       int64 `validate:"gte=0"`
}
