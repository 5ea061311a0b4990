package postgres

// Error message fragments shared across repositories
const (
	errMsgBeginTx = "failed to begin transaction"
)
