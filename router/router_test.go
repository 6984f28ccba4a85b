// file: router/router_test.go

package router_test

import (
	"bytes"
	"context"
	"fmt"
	"go-card-bank/card"
	"go-card-bank/handler"
	"go-card-bank/logger"
	"go-card-bank/metrics"
	"go-card-bank/model"
	"go-card-bank/repository"
	"go-card-bank/router"
	"go-card-bank/service"
	"math/rand/v2"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	logger.Discard()
	os.Exit(m.Run())
}

type testApp struct {
	ledger *service.LedgerService
	repo   *repository.MemoryCardRepository
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	repo := repository.NewMemoryCardRepository()
	ledger := service.NewLedgerService(repo, card.NewGenerator(rand.NewPCG(11, 13)), service.LedgerOptions{})
	require.NoError(t, ledger.Load(context.Background()))
	return &testApp{ledger: ledger, repo: repo}
}

func (a *testApp) createAccount(t *testing.T, balance int64) *model.Account {
	t.Helper()
	acc, err := a.ledger.CreateAccount(context.Background())
	require.NoError(t, err)
	if balance > 0 {
		_, err = a.ledger.AddIncome(context.Background(), acc.Number, balance)
		require.NoError(t, err)
	}
	return acc
}

// run feeds lines to a fresh console session and returns everything printed.
func (a *testApp) run(t *testing.T, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	console := handler.NewConsole(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	sessions := service.NewSessionService("test-secret", time.Minute)
	h := handler.NewMenuHandler(a.ledger, sessions, console)
	r := router.NewRouter(h, console, metrics.NewMetricsCollector())

	r.Serve(context.Background())
	return out.String()
}

func balance(t *testing.T, ledger *service.LedgerService, number string) int64 {
	t.Helper()
	b, err := ledger.Balance(number)
	require.NoError(t, err)
	return b
}

func TestCreateAccount_Console(t *testing.T) {
	app := newTestApp(t)

	out := app.run(t, "1", "0")

	assert.Contains(t, out, "1. Create an account\n2. Log into account\n0. Exit\n")
	assert.Contains(t, out, handler.MsgCardCreated)
	assert.Contains(t, out, handler.MsgBye)
	assert.Equal(t, 1, app.ledger.AccountCount())

	lines := strings.Split(out, "\n")
	for i, line := range lines {
		if line == handler.MsgYourCardNumber {
			number := lines[i+1]
			assert.True(t, card.VerifyLuhn(number), number)
			assert.True(t, app.ledger.Exists(number))
		}
		if line == handler.MsgYourCardPin {
			assert.True(t, card.IsWellFormedPin(lines[i+1]))
		}
	}
}

func TestLogin_Console(t *testing.T) {
	app := newTestApp(t)
	acc := app.createAccount(t, 0)

	t.Run("successful login shows account menu", func(t *testing.T) {
		out := app.run(t, "2", acc.Number, acc.PIN, "5", "0")

		assert.Contains(t, out, handler.MsgLoggedIn)
		assert.Contains(t, out, "1. Balance\n2. Add income\n3. Do transfer\n4. Close account\n5. Log out\n0. Exit\n")
		assert.Contains(t, out, handler.MsgLoggedOut)
	})

	t.Run("wrong pin", func(t *testing.T) {
		wrongPin := "0000"
		if acc.PIN == wrongPin {
			wrongPin = "1111"
		}
		out := app.run(t, "2", acc.Number, wrongPin, "0")

		assert.Contains(t, out, handler.MsgWrongCredentials)
		assert.NotContains(t, out, handler.MsgLoggedIn)
	})

	t.Run("malformed card number", func(t *testing.T) {
		out := app.run(t, "2", "12345", acc.PIN, "0")

		assert.Contains(t, out, handler.MsgWrongCredentials)
	})
}

func TestBalanceAndIncome_Console(t *testing.T) {
	app := newTestApp(t)
	acc := app.createAccount(t, 0)

	out := app.run(t, "2", acc.Number, acc.PIN, "2", "500", "1", "2", "-3", "2", "ten", "0")

	assert.Contains(t, out, handler.MsgIncomeAdded)
	assert.Contains(t, out, "Balance: 500\n")
	assert.Equal(t, 2, strings.Count(out, handler.MsgBadAmount))
	assert.Equal(t, int64(500), balance(t, app.ledger, acc.Number))

	stored, err := app.repo.FetchAllAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(500), stored[0].Balance, "durable record reflects the income")
}

func TestTransfer_Console(t *testing.T) {
	app := newTestApp(t)
	from := app.createAccount(t, 100)
	to := app.createAccount(t, 0)

	tests := []struct {
		name  string
		input []string
		want  string
	}{
		{"malformed target", []string{"12345"}, handler.MsgBadCardNumber},
		{"same account", []string{from.Number}, handler.MsgSameAccount},
		{"unknown target", []string{"4000008449433403"}, handler.MsgNoSuchCard},
		{"not enough money", []string{to.Number, "1000"}, handler.MsgNotEnoughMoney},
		{"success", []string{to.Number, "100"}, handler.MsgTransferDone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := append([]string{"2", from.Number, from.PIN, "3"}, tt.input...)
			out := app.run(t, append(input, "0")...)
			assert.Contains(t, out, tt.want)
		})
	}

	assert.Equal(t, int64(0), balance(t, app.ledger, from.Number))
	assert.Equal(t, int64(100), balance(t, app.ledger, to.Number))
	require.Len(t, app.repo.Transfers(), 1)
	assert.Equal(t, int64(100), app.repo.Transfers()[0].Amount)
}

func TestCloseAccount_Console(t *testing.T) {
	app := newTestApp(t)
	acc := app.createAccount(t, 10)

	out := app.run(t, "2", acc.Number, acc.PIN, "4", "2", acc.Number, acc.PIN, "0")

	assert.Contains(t, out, handler.MsgAccountClosed)
	assert.Contains(t, out, handler.MsgWrongCredentials, "closed card can no longer log in")
	assert.False(t, app.ledger.Exists(acc.Number))
	assert.Equal(t, service.LoginNoSuchAccount, app.ledger.Login(acc.Number, acc.PIN))
}

func TestUnknownCommandAndEOF_Console(t *testing.T) {
	app := newTestApp(t)

	out := app.run(t, "9")

	assert.Contains(t, out, handler.MsgUnknownCommand)
	assert.NotContains(t, out, handler.MsgBye)
}

func TestMetrics_Console(t *testing.T) {
	app := newTestApp(t)
	var out bytes.Buffer
	console := handler.NewConsole(strings.NewReader("1\n1\n2\n0000000000000000\n0000\n0\n"), &out)
	collector := metrics.NewMetricsCollector()
	h := handler.NewMenuHandler(app.ledger, service.NewSessionService("s", time.Minute), console)

	router.NewRouter(h, console, collector).Serve(context.Background())

	body := scrape(t, collector)
	assert.Contains(t, body, `bank_commands_total{command="create_account",outcome="ok"} 2`)
	assert.Contains(t, body, `bank_commands_total{command="login",outcome="not_found"} 1`)
	assert.Contains(t, body, fmt.Sprintf("bank_open_accounts %d", 2))
}
