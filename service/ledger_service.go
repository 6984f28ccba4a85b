// file: service/ledger_service.go

package service

import (
	"context"
	"errors"
	"fmt"
	"go-card-bank/card"
	"go-card-bank/common"
	"go-card-bank/logger"
	"go-card-bank/model"
	"go-card-bank/repository"
	"math"
	"sync"

	"github.com/sirupsen/logrus"
)

// LoginStatus is the outcome of a login attempt.
type LoginStatus int

const (
	LoginSuccess LoginStatus = iota + 1
	LoginWrongPin
	LoginWrongCardNumber
	LoginNoSuchAccount
)

func (s LoginStatus) String() string {
	switch s {
	case LoginSuccess:
		return "success"
	case LoginWrongPin:
		return "wrong_pin"
	case LoginWrongCardNumber:
		return "wrong_card_number"
	case LoginNoSuchAccount:
		return "no_such_account"
	default:
		return fmt.Sprintf("LoginStatus(%d)", int(s))
	}
}

const defaultMaxGenerateAttempts = 10

// IdentityGenerator mints card numbers and PINs. *card.Generator
// implements it.
type IdentityGenerator interface {
	GenerateCardNumber() string
	GeneratePin() string
}

type LedgerOptions struct {
	// StrictLuhn makes login and transfer reject card numbers whose check
	// digit is wrong, in addition to the length/digit check.
	StrictLuhn bool
	// MaxGenerateAttempts bounds how many fresh numbers CreateAccount tries
	// before giving up on collisions.
	MaxGenerateAttempts int
}

// LedgerService owns every account of the running process. The repository
// is written before memory on each mutation, so a failed write leaves the
// in-memory state untouched.
type LedgerService struct {
	mu       sync.Mutex
	repo     repository.ICardRepository
	gen      IdentityGenerator
	opts     LedgerOptions
	accounts map[string]*model.Account
}

func NewLedgerService(repo repository.ICardRepository, gen IdentityGenerator, opts LedgerOptions) *LedgerService {
	if opts.MaxGenerateAttempts <= 0 {
		opts.MaxGenerateAttempts = defaultMaxGenerateAttempts
	}
	return &LedgerService{
		repo:     repo,
		gen:      gen,
		opts:     opts,
		accounts: make(map[string]*model.Account),
	}
}

// Load replaces the in-memory accounts with the repository's records.
// A record that is not a valid account aborts the load.
func (s *LedgerService) Load(ctx context.Context) error {
	rows, err := s.repo.FetchAllAccounts(ctx)
	if err != nil {
		return fmt.Errorf("could not fetch accounts: %w", err)
	}

	accounts := make(map[string]*model.Account, len(rows))
	for _, acc := range rows {
		if err := common.Validate(acc); err != nil {
			return fmt.Errorf("stored card %q is invalid: %w", acc.Number, err)
		}
		accounts[acc.Number] = acc
	}

	s.mu.Lock()
	s.accounts = accounts
	s.mu.Unlock()

	logger.Log.WithField("accounts", len(accounts)).Info("Ledger loaded")
	return nil
}

// CreateAccount issues a new card with a zero balance. The returned copy is
// the only place the PIN is surfaced.
func (s *LedgerService) CreateAccount(ctx context.Context) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 1; attempt <= s.opts.MaxGenerateAttempts; attempt++ {
		number := s.gen.GenerateCardNumber()
		if _, taken := s.accounts[number]; taken {
			logger.Log.WithField("attempt", attempt).Warn("Generated card number collides, regenerating")
			continue
		}
		pin := s.gen.GeneratePin()

		err := s.repo.InsertAccount(ctx, number, pin)
		if errors.Is(err, repository.ErrDuplicateCardNumber) {
			logger.Log.WithField("attempt", attempt).Warn("Card number taken in store, regenerating")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("could not store new card: %w", err)
		}

		acc := &model.Account{Number: number, PIN: pin}
		s.accounts[number] = acc
		logger.Log.WithField("card_number", number).Info("Card created")

		cp := *acc
		return &cp, nil
	}
	return nil, ErrCardNumberExhausted
}

// Login checks, in order: card number structure, existence, PIN.
func (s *LedgerService) Login(number, pin string) LoginStatus {
	if !s.wellFormed(number) {
		return LoginWrongCardNumber
	}

	s.mu.Lock()
	acc, ok := s.accounts[number]
	s.mu.Unlock()

	if !ok {
		return LoginNoSuchAccount
	}
	if acc.PIN != pin {
		return LoginWrongPin
	}
	return LoginSuccess
}

// Exists reports whether number belongs to an open account.
func (s *LedgerService) Exists(number string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.accounts[number]
	return ok
}

// Balance returns the current balance of an account.
func (s *LedgerService) Balance(number string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[number]
	if !ok {
		return 0, ErrAccountNotFound
	}
	return acc.Balance, nil
}

// AccountCount returns how many accounts are open.
func (s *LedgerService) AccountCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accounts)
}

// AddIncome credits amount to an account.
func (s *LedgerService) AddIncome(ctx context.Context, number string, amount int64) (*model.Account, error) {
	if amount < 0 {
		return nil, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[number]
	if !ok {
		return nil, ErrAccountNotFound
	}
	if acc.Balance > math.MaxInt64-amount {
		return nil, ErrBalanceOverflow
	}

	newBalance := acc.Balance + amount
	if err := s.repo.UpdateBalance(ctx, number, newBalance); err != nil {
		return nil, fmt.Errorf("could not store new balance: %w", err)
	}
	acc.Balance = newBalance

	logger.Log.WithFields(logrus.Fields{
		"card_number": number,
		"amount":      amount,
	}).Info("Income added")

	cp := *acc
	return &cp, nil
}

// CloseAccount deletes an account. Its number is never reopened.
func (s *LedgerService) CloseAccount(ctx context.Context, number string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[number]; !ok {
		return ErrAccountNotFound
	}
	if err := s.repo.DeleteAccount(ctx, number); err != nil {
		return fmt.Errorf("could not delete card: %w", err)
	}
	delete(s.accounts, number)

	logger.Log.WithField("card_number", number).Info("Card closed")
	return nil
}

func (s *LedgerService) wellFormed(number string) bool {
	if s.opts.StrictLuhn {
		return card.VerifyLuhn(number)
	}
	return card.IsWellFormed(number)
}
