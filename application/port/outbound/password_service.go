package outbound

// PasswordService hashes user passwords. Hashes are opaque strings.
type PasswordService interface {
	Hash(password string) (string, error)
	// Matches reports whether password produced hash. An empty hash never matches.
	Matches(hash, password string) bool
}
