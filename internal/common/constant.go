package common

// Keys under which the core persists its state in the key-value backend.
const (
	KeyAccounts   = "accounts"
	KeySession    = "session"
	KeyChecklists = "checklists"
)
