package auth

// User is a registered identity. Records are immutable once created and
// live as a JSON array under the registry key. Passwords never appear
// here; digests are stored under their own key.
type User struct {
	Username  string `json:"username"`
	UserID    string `json:"userId"`
	CreatedAt int64  `json:"createdAt"` // unix millis
}

// Session is the singleton record for the currently logged-in identity.
// One slot for the whole store: each login overwrites it, logout clears
// it, and a record older than the configured TTL reads as absent.
type Session struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	LoginTime int64  `json:"loginTime"` // unix millis
	SessionID string `json:"sessionId"`
}
