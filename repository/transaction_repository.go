package repository

import (
	"context"
	"database/sql"
	"go-card-bank/logger"
	"go-card-bank/model"

	"github.com/sirupsen/logrus"
)

// TransferRepository writes transfer audit rows. It always runs inside a
// transaction owned by CardRepository.
type TransferRepository struct{}

func NewTransferRepository() *TransferRepository {
	return &TransferRepository{}
}

func (r *TransferRepository) CreateTransfer(ctx context.Context, tx *sql.Tx, transfer *model.Transfer) error {
	log := logger.Log.WithFields(logrus.Fields{
		"from_card_number": transfer.FromNumber,
		"to_card_number":   transfer.ToNumber,
		"amount":           transfer.Amount,
	})
	log.Info("Executing query to create a new transfer")

	query := `INSERT INTO transfers (from_number, to_number, amount) VALUES ($1, $2, $3) RETURNING id, created_at`
	err := tx.QueryRowContext(ctx, query, transfer.FromNumber, transfer.ToNumber, transfer.Amount).Scan(&transfer.ID, &transfer.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create transfer query")
		return err
	}
	return nil
}

// DeleteByCardNumber removes every transfer a card sent or received.
func (r *TransferRepository) DeleteByCardNumber(ctx context.Context, tx *sql.Tx, number string) error {
	log := logger.Log.WithField("card_number", number)
	log.Info("Executing query to delete transfers of a card")

	_, err := tx.ExecContext(ctx, `DELETE FROM transfers WHERE from_number = $1 OR to_number = $1`, number)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete transfers query")
		return err
	}
	return nil
}
