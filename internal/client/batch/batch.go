// Package batch orchestrates bounded multi-file uploads. A Batch owns its
// record collection; all mutation goes through Batch methods under a single
// lock, and transfers run strictly one at a time in selection order.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/mkorotkov/clipstream/internal/client/api"
	"github.com/mkorotkov/clipstream/internal/client/transfer"
	"github.com/mkorotkov/clipstream/internal/client/validate"
	"github.com/mkorotkov/clipstream/internal/common"
)

// checkFile is a test seam for selection-time validation.
var checkFile = validate.Check

// CredentialSource issues a fresh write authorization for one file.
// *api.Client satisfies it.
type CredentialSource interface {
	CreateUpload(ctx context.Context, fileName, contentType, category string) (*api.UploadGrant, error)
}

// Uploader moves one file to a presigned URL. *transfer.Executor satisfies it.
type Uploader interface {
	Put(ctx context.Context, url, path, contentType string) (<-chan transfer.Update, error)
}

// Outcome summarizes one Run over the whole batch.
type Outcome struct {
	Total     int
	Succeeded int
	Failed    int
}

type Batch struct {
	creds    CredentialSource
	uploader Uploader

	mu      sync.Mutex
	records []*FileRecord
	running bool
}

func NewBatch(creds CredentialSource, uploader Uploader) *Batch {
	return &Batch{creds: creds, uploader: uploader}
}

// Add validates every candidate path and appends a pending record per valid
// file. A file failing validation is skipped with its reason folded into the
// returned error; valid siblings still enter the batch. Only a cardinality
// overflow rejects the whole selection. The category tags each record and
// ends up in its storage key.
func (b *Batch) Add(category string, paths ...string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		return common.ErrBatchBusy
	}

	if len(b.records)+len(paths) > common.MaxBatchFiles {
		return common.ErrBatchFull
	}

	var rejected []error
	for _, path := range paths {
		contentType, size, err := checkFile(path)
		if err != nil {
			rejected = append(rejected, fmt.Errorf("%s: %w", path, err))
			continue
		}
		b.records = append(b.records, &FileRecord{
			ID:          uuid.NewString(),
			Path:        path,
			FileName:    filepath.Base(path),
			ContentType: contentType,
			Category:    category,
			Size:        size,
			Status:      StatusPending,
		})
	}

	return errors.Join(rejected...)
}

// Remove drops a record by id. Records in flight or already transferred stay;
// only pending and error records can be removed.
func (b *Batch) Remove(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		return common.ErrBatchBusy
	}

	for i, r := range b.records {
		if r.ID != id {
			continue
		}
		if r.Status != StatusPending && r.Status != StatusError {
			return fmt.Errorf("record %s is %s and cannot be removed", id, r.Status)
		}
		b.records = append(b.records[:i], b.records[i+1:]...)
		return nil
	}
	return common.ErrorNotFound
}

// Clear drops every record.
func (b *Batch) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		return common.ErrBatchBusy
	}
	b.records = nil
	return nil
}

// Retry re-queues a failed record. This is the only way a record leaves the
// error state; the next Run will request a fresh credential for it.
func (b *Batch) Retry(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.running {
		return common.ErrBatchBusy
	}

	for _, r := range b.records {
		if r.ID != id {
			continue
		}
		if r.Status != StatusError {
			return fmt.Errorf("record %s is %s, only failed records can be retried", id, r.Status)
		}
		r.Status = StatusPending
		r.Progress = 0
		r.ErrMessage = ""
		return nil
	}
	return common.ErrorNotFound
}

// Records returns a snapshot of the batch in selection order.
func (b *Batch) Records() []FileRecord {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]FileRecord, len(b.records))
	for i, r := range b.records {
		out[i] = *r
	}
	return out
}

// Progress returns the mean progress over all records, in [0,1]. An empty
// batch reports 0.
func (b *Batch) Progress() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.records) == 0 {
		return 0
	}
	sum := lo.SumBy(b.records, func(r *FileRecord) float64 { return r.Progress })
	return sum / float64(len(b.records))
}

// Run transfers every pending and previously failed record, one at a time,
// in selection order. Each record gets a fresh credential immediately before
// its transfer; a failure marks that record and moves on to the next.
// A missing login aborts the whole run before any record leaves pending.
// Concurrent Runs are rejected. Cancellation via ctx stops before the next
// transfer starts.
func (b *Batch) Run(ctx context.Context) (Outcome, error) {

	if auth, ok := b.creds.(interface{ Authenticated() bool }); ok && !auth.Authenticated() {
		return b.outcome(), common.ErrorUnauthorized
	}

	b.mu.Lock()
	if b.running {
		b.mu.Unlock()
		return Outcome{}, common.ErrBatchBusy
	}
	b.running = true
	queued := lo.Filter(b.records, func(r *FileRecord, _ int) bool {
		return r.Status == StatusPending || r.Status == StatusError
	})
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.running = false
		b.mu.Unlock()
	}()

	for _, r := range queued {
		if err := ctx.Err(); err != nil {
			return b.outcome(), err
		}
		b.uploadOne(ctx, r)
	}

	return b.outcome(), nil
}

func (b *Batch) uploadOne(ctx context.Context, r *FileRecord) {

	b.mu.Lock()
	r.Status = StatusUploading
	r.Progress = 0
	r.ErrMessage = ""
	b.mu.Unlock()

	grant, err := b.creds.CreateUpload(ctx, r.FileName, r.ContentType, r.Category)
	if err != nil {
		b.setStatus(r, StatusError, err.Error())
		return
	}

	b.mu.Lock()
	r.StorageKey = grant.StorageKey
	b.mu.Unlock()

	updates, err := b.uploader.Put(ctx, grant.UploadURL, r.Path, r.ContentType)
	if err != nil {
		b.setStatus(r, StatusError, err.Error())
		return
	}

	for u := range updates {
		if u.Done {
			if u.Err != nil {
				b.setStatus(r, StatusError, u.Err.Error())
			} else {
				b.mu.Lock()
				r.Status = StatusSuccess
				r.Progress = 1
				r.ErrMessage = ""
				b.mu.Unlock()
			}
			continue
		}
		b.mu.Lock()
		r.Progress = u.Fraction
		b.mu.Unlock()
	}
}

func (b *Batch) setStatus(r *FileRecord, s Status, errMessage string) {
	b.mu.Lock()
	r.Status = s
	r.ErrMessage = errMessage
	b.mu.Unlock()
}

func (b *Batch) outcome() Outcome {
	b.mu.Lock()
	defer b.mu.Unlock()

	counts := lo.CountValuesBy(b.records, func(r *FileRecord) Status { return r.Status })
	return Outcome{
		Total:     len(b.records),
		Succeeded: counts[StatusSuccess],
		Failed:    counts[StatusError],
	}
}
