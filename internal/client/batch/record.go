package batch

// Status is the lifecycle state of one file record.
type Status string

const (
	StatusPending   Status = "pending"
	StatusUploading Status = "uploading"
	StatusSuccess   Status = "success"
	StatusError     Status = "error"
)

// FileRecord tracks one selected file through the upload lifecycle.
// Records are owned by a Batch; callers receive copies and must not expect
// writes through them to stick.
type FileRecord struct {
	ID          string
	Path        string
	FileName    string
	ContentType string
	Category    string
	Size        int64

	Status     Status
	Progress   float64
	ErrMessage string
	StorageKey string
}
