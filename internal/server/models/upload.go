package models

// UploadGrant is a time-bounded write authorization for exactly one storage
// key and content type. It is never persisted; it exists only for the
// duration of one transfer attempt.
type UploadGrant struct {
	UploadURL  string
	StorageKey string
	// ExpiresIn is the validity window in seconds.
	ExpiresIn int
}
