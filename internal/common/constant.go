package common

// AuthHeaderName is the HTTP header used to carry the access token on
// outbound requests ("Authorization: Bearer <token>").
const AuthHeaderName = "Authorization"

// Batch limits, checked before a file record is ever created.
const (
	// MaxBatchFiles is the upper bound on batch cardinality.
	MaxBatchFiles = 20

	// MaxFileSizeBytes is the per-file byte-size ceiling (3 GiB).
	MaxFileSizeBytes = int64(3) << 30
)

// AllowedVideoTypes is the content-type allowlist for upload authorizations.
// Both issuance (server) and selection-time validation (client) check
// against this set.
var AllowedVideoTypes = []string{
	"video/mp4",
	"video/quicktime",
	"video/x-msvideo",
	"video/webm",
}

// IsAllowedVideoType reports whether t is a member of AllowedVideoTypes.
func IsAllowedVideoType(t string) bool {
	for _, a := range AllowedVideoTypes {
		if t == a {
			return true
		}
	}
	return false
}
