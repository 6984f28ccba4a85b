package handler

// Console messages.
const (
	MsgCardCreated      = "Your card has been created"
	MsgYourCardNumber   = "Your card number:"
	MsgYourCardPin      = "Your card PIN:"
	MsgEnterCardNumber  = "Enter your card number:"
	MsgEnterPin         = "Enter your PIN:"
	MsgLoggedIn         = "You have successfully logged in!"
	MsgWrongCredentials = "Wrong card number or PIN!"
	MsgBalance          = "Balance: %d\n"
	MsgEnterIncome      = "Enter income:"
	MsgIncomeAdded      = "Income was added!"
	MsgTransfer         = "Transfer"
	MsgEnterTarget      = "Enter card number:"
	MsgEnterTransfer    = "Enter how much money you want to transfer:"
	MsgBadCardNumber    = "Probably you made a mistake in the card number. Please try again!"
	MsgSameAccount      = "You can't transfer money to the same account!"
	MsgNoSuchCard       = "Such a card does not exist."
	MsgNotEnoughMoney   = "Not enough money!"
	MsgTransferDone     = "Success!"
	MsgAccountClosed    = "The account has been closed!"
	MsgLoggedOut        = "You have successfully logged out!"
	MsgBye              = "Bye!"
	MsgBadAmount        = "Please enter a whole non-negative amount."
	MsgAmountTooLarge   = "That amount is too large."
	MsgNotLoggedIn      = "You are not logged in."
	MsgSessionExpired   = "Your session has expired. Please log in again."
	MsgUnknownCommand   = "Unknown command."
	MsgInternal         = "Something went wrong. Please try again later."
)
