// file: service/session_service.go

package service

import (
	"errors"
	"fmt"
	"go-card-bank/logger"
	"go-card-bank/model"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidSession = errors.New("session is invalid or expired")

// SessionService issues signed tokens naming the card a console session is
// logged into.
type SessionService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionService(secret string, ttl time.Duration) *SessionService {
	return &SessionService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue returns a token for cardNumber valid for the configured TTL.
func (s *SessionService) Issue(cardNumber string) (string, error) {
	now := s.now()
	claims := &model.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   cardNumber,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		logger.Log.WithError(err).WithField("card_number", cardNumber).Error("Failed to sign session token")
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return tokenString, nil
}

// CardNumber validates tokenString and returns the card it was issued for.
func (s *SessionService) CardNumber(tokenString string) (string, error) {
	claims := &model.SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if claims.Subject == "" {
		return "", ErrInvalidSession
	}
	return claims.Subject, nil
}
