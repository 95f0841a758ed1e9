package ports

// TokenClaims is the decoded payload of a verified token.
type TokenClaims struct {
	UserID string
	Role   string
}

// TokenIssuer signs and verifies the bearer tokens used by the directory.
// Verification is stateless; revocation, when enabled, is layered on top by
// the authentication gate.
type TokenIssuer interface {
	Issue(userID, role string) (string, error)
	Verify(token string) (*TokenClaims, error)
}
