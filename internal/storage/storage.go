// Package storage defines the key-value persistence capability the
// engines are built against. Each ledger is stored under its own key as
// one JSON document; there is no partial write and no transaction
// spanning keys.
package storage

// KV is a minimal key-value store for JSON payloads.
type KV interface {
	// Get returns the stored payload for key, or ok=false when the key
	// has never been written.
	Get(key string) (value []byte, ok bool, err error)

	// Set overwrites the payload for key.
	Set(key string, value []byte) error
}

// Keys under which the engines persist their state.
const (
	KeyTransactions        = "financeProTransactions"
	KeyAccountTransactions = "financeProAccountTransactions"
	KeyAccounts            = "financeProAccounts"
	KeySavings             = "financeProSavings"
	KeyNotifications       = "financeProNotifications"
)
