package repository

import (
	"context"
	"errors"
	"go-card-bank/model"
)

var (
	ErrCardNotFound        = errors.New("card not found")
	ErrDuplicateCardNumber = errors.New("card number already exists")
)

// ICardRepository is the durable mirror of the ledger. The ledger reads it
// once at startup and writes through it after that.
type ICardRepository interface {
	InitStore(ctx context.Context) error
	InsertAccount(ctx context.Context, number, pin string) error
	FetchAllAccounts(ctx context.Context) ([]*model.Account, error)
	UpdateBalance(ctx context.Context, number string, balance int64) error
	DeleteAccount(ctx context.Context, number string) error
	// TransferRecord stores both new balances and the transfer row atomically.
	TransferRecord(ctx context.Context, fromNumber, toNumber string, fromBalance, toBalance, amount int64) (*model.Transfer, error)
}

var (
	_ ICardRepository = (*CardRepository)(nil)
	_ ICardRepository = (*MemoryCardRepository)(nil)
)
