package router

import (
	"context"
	"go-card-bank/handler"
)

// Route binds a menu key to a command.
type Route struct {
	Key     string
	Title   string
	Name    string
	Command handler.Command
	Quit    bool
}

// Router shows the main menu while logged out and the account menu while
// logged in, and dispatches each choice through the middleware chain.
type Router struct {
	handler *handler.MenuHandler
	console *handler.Console
	metrics Metrics
	main    []Route
	account []Route
}

// Metrics is what the router reports to after each command.
type Metrics interface {
	handler.CommandRecorder
	SetOpenAccounts(n int)
}

func NewRouter(h *handler.MenuHandler, console *handler.Console, m Metrics) *Router {
	r := &Router{handler: h, console: console, metrics: m}

	r.main = []Route{
		r.route("1", "Create an account", "create_account", h.CreateAccount, false),
		r.route("2", "Log into account", "login", h.Login, false),
		r.route("0", "Exit", "exit", h.Exit, true),
	}
	r.account = []Route{
		r.route("1", "Balance", "balance", h.SessionMiddleware(h.Balance), false),
		r.route("2", "Add income", "add_income", h.SessionMiddleware(h.AddIncome), false),
		r.route("3", "Do transfer", "transfer", h.SessionMiddleware(h.Transfer), false),
		r.route("4", "Close account", "close_account", h.SessionMiddleware(h.CloseAccount), false),
		r.route("5", "Log out", "logout", h.Logout, false),
		r.route("0", "Exit", "exit", h.Exit, true),
	}
	return r
}

func (r *Router) route(key, title, name string, cmd handler.Command, quit bool) Route {
	return Route{
		Key:     key,
		Title:   title,
		Name:    name,
		Command: handler.ErrorHandlingMiddleware(r.console.Out(), handler.InstrumentMiddleware(r.metrics, name, cmd)),
		Quit:    quit,
	}
}

// Routes returns the menu for the current session state.
func (r *Router) Routes() []Route {
	if r.handler.LoggedIn() {
		return r.account
	}
	return r.main
}

func (r *Router) Render() {
	for _, rt := range r.Routes() {
		r.console.Printf("%s. %s\n", rt.Key, rt.Title)
	}
}

// Dispatch runs the command bound to choice and reports whether the session
// should end.
func (r *Router) Dispatch(ctx context.Context, choice string) bool {
	for _, rt := range r.Routes() {
		if rt.Key != choice {
			continue
		}
		rt.Command(ctx)
		r.metrics.SetOpenAccounts(r.handler.OpenAccounts())
		return rt.Quit
	}

	r.console.Println()
	r.console.Println(handler.MsgUnknownCommand)
	r.console.Println()
	return false
}

// Serve runs the menu loop until the user exits, input ends or ctx is done.
func (r *Router) Serve(ctx context.Context) {
	r.metrics.SetOpenAccounts(r.handler.OpenAccounts())
	for ctx.Err() == nil {
		r.Render()
		choice, ok := r.console.ReadLine()
		if !ok {
			return
		}
		if r.Dispatch(ctx, choice) {
			return
		}
	}
}
