package models

// LedgerReceipt is the confirmation returned by the on-chain settlement
// layer. Receipts are informational; no core state transition waits on one.
type LedgerReceipt struct {
	Mocked    bool   `json:"mocked"`
	Confirmed bool   `json:"confirmed"`
	Digest    string `json:"digest"`
}

// Winner is one payout recipient passed to the ledger.
type Winner struct {
	Address string  `json:"address"`
	Amount  float64 `json:"amount"`
}
