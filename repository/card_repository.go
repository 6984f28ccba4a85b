package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"go-card-bank/db"
	"go-card-bank/logger"
	"go-card-bank/model"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const uniqueViolation = "23505"

// CardRepository stores cards in PostgreSQL.
type CardRepository struct {
	DB        *sql.DB
	transfers *TransferRepository
}

func NewCardRepository(database *sql.DB) *CardRepository {
	return &CardRepository{DB: database, transfers: NewTransferRepository()}
}

// InitStore creates or upgrades the card schema.
func (r *CardRepository) InitStore(ctx context.Context) error {
	logger.Log.Info("Ensuring card schema exists")
	return db.Migrate(r.DB)
}

// InsertAccount adds a new card with a zero balance.
func (r *CardRepository) InsertAccount(ctx context.Context, number, pin string) error {
	log := logger.Log.WithField("card_number", number)
	log.Info("Executing query to create a new card")

	query := `INSERT INTO card (number, pin) VALUES ($1, $2)`
	_, err := r.DB.ExecContext(ctx, query, number, pin)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			log.Warn("Card number already taken")
			return ErrDuplicateCardNumber
		}
		log.WithError(err).Error("Failed to execute create card query")
		return err
	}
	return nil
}

// FetchAllAccounts returns every stored card ordered by insertion.
func (r *CardRepository) FetchAllAccounts(ctx context.Context) ([]*model.Account, error) {
	log := logger.Log
	log.Info("Executing query to get all cards")

	query := `SELECT id, number, pin, balance FROM card ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for all cards")
		return nil, err
	}
	defer rows.Close()

	var accounts []*model.Account
	for rows.Next() {
		var acc model.Account
		if err := rows.Scan(&acc.ID, &acc.Number, &acc.PIN, &acc.Balance); err != nil {
			log.WithError(err).Error("Failed to scan card row")
			return nil, err
		}
		accounts = append(accounts, &acc)
	}
	if err := rows.Err(); err != nil {
		log.WithError(err).Error("Failed to iterate card rows")
		return nil, err
	}
	return accounts, nil
}

// UpdateBalance overwrites the stored balance of a card.
func (r *CardRepository) UpdateBalance(ctx context.Context, number string, balance int64) error {
	return updateBalance(ctx, r.DB, number, balance)
}

// DeleteAccount removes a card and every transfer it took part in.
func (r *CardRepository) DeleteAccount(ctx context.Context, number string) error {
	log := logger.Log.WithField("card_number", number)
	log.Info("Executing queries to delete a card")

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := r.transfers.DeleteByCardNumber(ctx, tx, number); err != nil {
		return fmt.Errorf("could not delete transfers: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM card WHERE number = $1`, number)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete card query")
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return ErrCardNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// TransferRecord writes both balances and the transfer row in one
// transaction.
func (r *CardRepository) TransferRecord(ctx context.Context, fromNumber, toNumber string, fromBalance, toBalance, amount int64) (*model.Transfer, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"from_card_number": fromNumber,
		"to_card_number":   toNumber,
		"amount":           amount,
	})
	log.Info("Recording transfer")

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := updateBalance(ctx, tx, fromNumber, fromBalance); err != nil {
		return nil, fmt.Errorf("could not update sender balance: %w", err)
	}
	if err := updateBalance(ctx, tx, toNumber, toBalance); err != nil {
		return nil, fmt.Errorf("could not update receiver balance: %w", err)
	}

	transfer := &model.Transfer{
		FromNumber: fromNumber,
		ToNumber:   toNumber,
		Amount:     amount,
	}
	if err := r.transfers.CreateTransfer(ctx, tx, transfer); err != nil {
		return nil, fmt.Errorf("could not create transfer record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}
	return transfer, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func updateBalance(ctx context.Context, e execer, number string, balance int64) error {
	log := logger.Log.WithFields(logrus.Fields{
		"card_number": number,
		"new_balance": balance,
	})
	log.Info("Executing query to update card balance")

	res, err := e.ExecContext(ctx, `UPDATE card SET balance = $1 WHERE number = $2`, balance, number)
	if err != nil {
		log.WithError(err).Error("Failed to execute update card balance query")
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		log.Warn("No card to update")
		return ErrCardNotFound
	}
	return nil
}
