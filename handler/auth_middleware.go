package handler

import (
	"context"
	"go-card-bank/common"
)

type contextKey string

const CardNumberKey contextKey = "cardNumber"

// SessionMiddleware resolves the current session token to a card number and
// passes it to next through the context. An invalid or expired session
// logs the user out.
func (h *MenuHandler) SessionMiddleware(next Command) Command {
	return func(ctx context.Context) *common.AppError {
		if h.token == "" {
			return common.NewAppError(common.KindUnauthorized, MsgNotLoggedIn, nil)
		}

		number, err := h.sessions.CardNumber(h.token)
		if err != nil {
			h.token = ""
			return common.NewAppError(common.KindUnauthorized, MsgSessionExpired, err)
		}

		return next(context.WithValue(ctx, CardNumberKey, number))
	}
}

func cardNumberFrom(ctx context.Context) (string, *common.AppError) {
	number, ok := ctx.Value(CardNumberKey).(string)
	if !ok || number == "" {
		return "", common.NewAppError(common.KindUnauthorized, MsgNotLoggedIn, nil)
	}
	return number, nil
}
