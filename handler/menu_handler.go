// file: handler/menu_handler.go

package handler

import (
	"context"
	"errors"
	"go-card-bank/common"
	"go-card-bank/logger"
	"go-card-bank/model"
	"go-card-bank/service"
	"strconv"

	"github.com/sirupsen/logrus"
)

// MenuHandler implements the console commands on top of the ledger. It
// keeps the session token of the logged-in card, if any.
type MenuHandler struct {
	ledger   *service.LedgerService
	sessions *service.SessionService
	console  *Console
	token    string
}

func NewMenuHandler(ledger *service.LedgerService, sessions *service.SessionService, console *Console) *MenuHandler {
	return &MenuHandler{
		ledger:   ledger,
		sessions: sessions,
		console:  console,
	}
}

func (h *MenuHandler) LoggedIn() bool {
	return h.token != ""
}

// OpenAccounts reports how many accounts the ledger holds.
func (h *MenuHandler) OpenAccounts() int {
	return h.ledger.AccountCount()
}

func (h *MenuHandler) CreateAccount(ctx context.Context) *common.AppError {
	account, err := h.ledger.CreateAccount(ctx)
	if err != nil {
		return common.NewAppError(common.KindInternal, MsgInternal, err)
	}

	h.console.Println()
	h.console.Println(MsgCardCreated)
	h.console.Println(MsgYourCardNumber)
	h.console.Println(account.Number)
	h.console.Println(MsgYourCardPin)
	h.console.Println(account.PIN)
	h.console.Println()
	return nil
}

func (h *MenuHandler) Login(ctx context.Context) *common.AppError {
	h.console.Println()
	number := h.console.Prompt(MsgEnterCardNumber)
	pin := h.console.Prompt(MsgEnterPin)
	h.console.Println()

	status := h.ledger.Login(number, pin)
	logger.Log.WithFields(logrus.Fields{
		"card_number": number,
		"status":      status.String(),
	}).Info("Login attempt")

	switch status {
	case service.LoginSuccess:
	case service.LoginWrongCardNumber:
		return common.NewAppError(common.KindValidation, MsgWrongCredentials, nil)
	case service.LoginNoSuchAccount:
		return common.NewAppError(common.KindNotFound, MsgWrongCredentials, nil)
	default:
		return common.NewAppError(common.KindUnauthorized, MsgWrongCredentials, nil)
	}

	token, err := h.sessions.Issue(number)
	if err != nil {
		return common.NewAppError(common.KindInternal, MsgInternal, err)
	}
	h.token = token

	h.console.Println(MsgLoggedIn)
	h.console.Println()
	return nil
}

func (h *MenuHandler) Balance(ctx context.Context) *common.AppError {
	number, appErr := cardNumberFrom(ctx)
	if appErr != nil {
		return appErr
	}

	balance, err := h.ledger.Balance(number)
	if err != nil {
		return h.accountGone(err)
	}

	h.console.Println()
	h.console.Printf(MsgBalance, balance)
	h.console.Println()
	return nil
}

func (h *MenuHandler) AddIncome(ctx context.Context) *common.AppError {
	number, appErr := cardNumberFrom(ctx)
	if appErr != nil {
		return appErr
	}

	h.console.Println()
	amount, appErr := parseAmount(h.console.Prompt(MsgEnterIncome))
	if appErr != nil {
		return appErr
	}
	if appErr := common.ValidateAndReport(model.IncomeRequest{Amount: amount}, MsgBadAmount); appErr != nil {
		return appErr
	}

	if _, err := h.ledger.AddIncome(ctx, number, amount); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount):
			return common.NewAppError(common.KindValidation, MsgBadAmount, err)
		case errors.Is(err, service.ErrBalanceOverflow):
			return common.NewAppError(common.KindValidation, MsgAmountTooLarge, err)
		default:
			return h.accountGone(err)
		}
	}

	h.console.Println(MsgIncomeAdded)
	h.console.Println()
	return nil
}

func (h *MenuHandler) Transfer(ctx context.Context) *common.AppError {
	number, appErr := cardNumberFrom(ctx)
	if appErr != nil {
		return appErr
	}

	h.console.Println()
	h.console.Println(MsgTransfer)
	req := model.TransferRequest{ToCardNumber: h.console.Prompt(MsgEnterTarget)}

	if err := h.ledger.CheckTransferTarget(number, req.ToCardNumber); err != nil {
		return transferError(err)
	}

	amount, appErr := parseAmount(h.console.Prompt(MsgEnterTransfer))
	if appErr != nil {
		return appErr
	}
	req.Amount = amount
	if appErr := common.ValidateAndReport(req, MsgBadAmount); appErr != nil {
		return appErr
	}

	if _, err := h.ledger.Transfer(ctx, number, req.ToCardNumber, req.Amount); err != nil {
		return transferError(err)
	}

	h.console.Println(MsgTransferDone)
	h.console.Println()
	return nil
}

func (h *MenuHandler) CloseAccount(ctx context.Context) *common.AppError {
	number, appErr := cardNumberFrom(ctx)
	if appErr != nil {
		return appErr
	}

	if err := h.ledger.CloseAccount(ctx, number); err != nil {
		return h.accountGone(err)
	}
	h.token = ""

	h.console.Println()
	h.console.Println(MsgAccountClosed)
	h.console.Println()
	return nil
}

func (h *MenuHandler) Logout(ctx context.Context) *common.AppError {
	h.token = ""

	h.console.Println()
	h.console.Println(MsgLoggedOut)
	h.console.Println()
	return nil
}

func (h *MenuHandler) Exit(ctx context.Context) *common.AppError {
	h.token = ""

	h.console.Println()
	h.console.Println(MsgBye)
	return nil
}

// accountGone maps a ledger error on the logged-in card. A missing account
// ends the session.
func (h *MenuHandler) accountGone(err error) *common.AppError {
	if errors.Is(err, service.ErrAccountNotFound) {
		h.token = ""
		return common.NewAppError(common.KindNotFound, MsgNotLoggedIn, err)
	}
	return common.NewAppError(common.KindInternal, MsgInternal, err)
}

func transferError(err error) *common.AppError {
	switch {
	case errors.Is(err, service.ErrInvalidCardNumber):
		return common.NewAppError(common.KindValidation, MsgBadCardNumber, err)
	case errors.Is(err, service.ErrSameAccountTransfer):
		return common.NewAppError(common.KindValidation, MsgSameAccount, err)
	case errors.Is(err, service.ErrReceiverAccountNotFound):
		return common.NewAppError(common.KindNotFound, MsgNoSuchCard, err)
	case errors.Is(err, service.ErrInsufficientFunds):
		return common.NewAppError(common.KindInsufficientFunds, MsgNotEnoughMoney, err)
	case errors.Is(err, service.ErrInvalidAmount):
		return common.NewAppError(common.KindValidation, MsgBadAmount, err)
	case errors.Is(err, service.ErrBalanceOverflow):
		return common.NewAppError(common.KindValidation, MsgAmountTooLarge, err)
	case errors.Is(err, service.ErrSenderAccountNotFound):
		return common.NewAppError(common.KindNotFound, MsgNotLoggedIn, err)
	default:
		return common.NewAppError(common.KindInternal, MsgInternal, err)
	}
}

func parseAmount(input string) (int64, *common.AppError) {
	amount, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return 0, common.NewAppError(common.KindValidation, MsgBadAmount, err)
	}
	return amount, nil
}
