package repository

import (
	"context"
	"fmt"
	"go-card-bank/model"
	"sort"
	"sync"
	"time"
)

// MemoryCardRepository keeps cards in process memory. State is lost on exit;
// it backs the "memory" storage driver and tests.
type MemoryCardRepository struct {
	mu        sync.RWMutex
	nextID    int
	nextTxID  int
	cards     map[string]*model.Account
	transfers []*model.Transfer
}

func NewMemoryCardRepository() *MemoryCardRepository {
	return &MemoryCardRepository{cards: make(map[string]*model.Account)}
}

func (r *MemoryCardRepository) InitStore(ctx context.Context) error {
	return nil
}

func (r *MemoryCardRepository) InsertAccount(ctx context.Context, number, pin string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.cards[number]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCardNumber, number)
	}
	r.nextID++
	r.cards[number] = &model.Account{ID: r.nextID, Number: number, PIN: pin}
	return nil
}

func (r *MemoryCardRepository) FetchAllAccounts(ctx context.Context) ([]*model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*model.Account, 0, len(r.cards))
	for _, acc := range r.cards {
		cp := *acc
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryCardRepository) UpdateBalance(ctx context.Context, number string, balance int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acc, exists := r.cards[number]
	if !exists {
		return fmt.Errorf("%w: %s", ErrCardNotFound, number)
	}
	acc.Balance = balance
	return nil
}

func (r *MemoryCardRepository) DeleteAccount(ctx context.Context, number string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.cards[number]; !exists {
		return fmt.Errorf("%w: %s", ErrCardNotFound, number)
	}
	delete(r.cards, number)

	kept := r.transfers[:0]
	for _, t := range r.transfers {
		if t.FromNumber != number && t.ToNumber != number {
			kept = append(kept, t)
		}
	}
	r.transfers = kept
	return nil
}

func (r *MemoryCardRepository) TransferRecord(ctx context.Context, fromNumber, toNumber string, fromBalance, toBalance, amount int64) (*model.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	from, ok := r.cards[fromNumber]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCardNotFound, fromNumber)
	}
	to, ok := r.cards[toNumber]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCardNotFound, toNumber)
	}

	from.Balance = fromBalance
	to.Balance = toBalance
	r.nextTxID++
	transfer := &model.Transfer{
		ID:         r.nextTxID,
		FromNumber: fromNumber,
		ToNumber:   toNumber,
		Amount:     amount,
		CreatedAt:  time.Now(),
	}
	r.transfers = append(r.transfers, transfer)

	cp := *transfer
	return &cp, nil
}

// Transfers returns a copy of the recorded transfers, oldest first.
func (r *MemoryCardRepository) Transfers() []model.Transfer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Transfer, len(r.transfers))
	for i, t := range r.transfers {
		out[i] = *t
	}
	return out
}
