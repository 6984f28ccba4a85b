package service

import (
	"context"
	"errors"
	"fmt"
	"go-card-bank/logger"
	"go-card-bank/model"
	"math"

	"github.com/sirupsen/logrus"
)

var (
	ErrAccountNotFound         = errors.New("account not found")
	ErrSenderAccountNotFound   = errors.New("sender account not found")
	ErrReceiverAccountNotFound = errors.New("receiver account not found")
	ErrInvalidCardNumber       = errors.New("card number is malformed")
	ErrSameAccountTransfer     = errors.New("cannot transfer money to the same account")
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrInvalidAmount           = errors.New("amount must not be negative")
	ErrBalanceOverflow         = errors.New("balance would overflow")
	ErrCardNumberExhausted     = errors.New("could not generate an unused card number")
)

// Transfer moves amount from one account to another. Each failed check is
// reported by its own error and changes nothing; on success both balances
// and the transfer row are stored in one repository transaction before
// memory is updated.
func (s *LedgerService) Transfer(ctx context.Context, fromNumber, toNumber string, amount int64) (*model.Transfer, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"from_card_number": fromNumber,
		"to_card_number":   toNumber,
		"amount":           amount,
	})

	log.Info("Starting money transfer process")

	if amount < 0 {
		return nil, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from, ok := s.accounts[fromNumber]
	if !ok {
		return nil, ErrSenderAccountNotFound
	}
	if err := s.checkTarget(fromNumber, toNumber); err != nil {
		return nil, err
	}
	to := s.accounts[toNumber]
	if from.Balance < amount {
		return nil, ErrInsufficientFunds
	}
	if to.Balance > math.MaxInt64-amount {
		return nil, ErrBalanceOverflow
	}

	fromBalance := from.Balance - amount
	toBalance := to.Balance + amount

	transfer, err := s.repo.TransferRecord(ctx, fromNumber, toNumber, fromBalance, toBalance, amount)
	if err != nil {
		return nil, fmt.Errorf("could not record transfer: %w", err)
	}

	from.Balance = fromBalance
	to.Balance = toBalance

	log.Info("Transfer completed successfully")
	return transfer, nil
}

// CheckTransferTarget runs the destination checks of Transfer without
// moving funds, so a caller can reject a bad card before asking for an
// amount.
func (s *LedgerService) CheckTransferTarget(fromNumber, toNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[fromNumber]; !ok {
		return ErrSenderAccountNotFound
	}
	return s.checkTarget(fromNumber, toNumber)
}

func (s *LedgerService) checkTarget(fromNumber, toNumber string) error {
	if !s.wellFormed(toNumber) {
		return ErrInvalidCardNumber
	}
	if fromNumber == toNumber {
		return ErrSameAccountTransfer
	}
	if _, ok := s.accounts[toNumber]; !ok {
		return ErrReceiverAccountNotFound
	}
	return nil
}
