package models

// StrequeRequest asks the tally server to put an article on a user's tab
type StrequeRequest struct {
	UserID    uint `json:"user_id"`
	ArticleID uint `json:"article_id"`
}

// StrequeResult is the tally server's answer to a tally request
type StrequeResult struct {
	UserID uint `json:"user_id"`
	// Value of the streque in öre, negative for purchases
	Value int `json:"value"`
	// The new balance - only returned when users tally for themselves
	Balance *int `json:"balance,omitempty"`
}

// VoidStrequeRequest asks the tally server to void a streque
type VoidStrequeRequest struct {
	StrequeID uint `json:"streque_id"`
}

// VoidStrequeResult is the tally server's answer to a void request
type VoidStrequeResult struct {
	StrequeID uint `json:"streque_id"`
	UserID    uint `json:"user_id"`
	Value     int  `json:"value"`
	Balance   int  `json:"balance"`
}

// VoidTransactionRequest asks the tally server to void an arbitrary transaction (admin only)
type VoidTransactionRequest struct {
	TransactionID uint `json:"transaction_id"`
}

// VoidTransactionResult is the tally server's answer to a transaction void
type VoidTransactionResult struct {
	TransactionID uint `json:"transaction_id"`
	UserID        uint `json:"user_id"`
	Value         int  `json:"value"`
	Balance       int  `json:"balance"`
}
