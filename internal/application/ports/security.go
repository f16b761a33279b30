package ports

// PasswordHasher hashes and verifies secrets (Argon2id). The same hasher
// covers passwords and passphrases; both are stored only as encoded digests.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, hash string) bool
}

// PassphraseGenerator produces the multi-word secondary secret issued once at
// registration. Implementations must draw from a cryptographically sound
// random source.
type PassphraseGenerator interface {
	Generate() (string, error)
}

// TokenIssuer signs and validates bearer tokens (HS256). Tokens are stateless:
// verification needs only the server-held secret, no session store.
type TokenIssuer interface {
	Issue(userID, role string, expiresInSeconds int64) (string, error)
	// Validate returns the user id and role, rejecting expired tokens,
	// malformed tokens, and tokens signed with a different secret.
	Validate(tokenString string) (userID, role string, err error)
}
