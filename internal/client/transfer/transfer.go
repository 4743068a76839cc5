// Package transfer moves file bytes to presigned storage URLs with an HTTP
// PUT, streaming progress to the caller as the body is read.
package transfer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Update is one progress event of a running transfer. Intermediate updates
// carry a Fraction in [0,1]; the final update has Done set and, on failure,
// a non-nil Err.
type Update struct {
	Fraction float64
	Done     bool
	Err      error
}

// StatusError reports a storage backend response outside the 2xx range.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upload failed: %s", e.Status)
}

// ErrConnection marks transport-level faults: DNS, refused connections,
// resets mid-stream. Distinct from a served non-2xx response.
var ErrConnection = fmt.Errorf("upload failed: connection error")

// Executor performs uploads over a shared HTTP client. The zero value is not
// usable; construct with NewExecutor.
type Executor struct {
	httpClient *http.Client
}

// NewExecutor returns an Executor. The underlying client carries no overall
// timeout; large files legitimately take a long time, and cancellation is
// handled through the request context.
func NewExecutor() *Executor {
	return &Executor{httpClient: &http.Client{}}
}

// countingReader reports cumulative read progress to its updates channel.
// Sends never block the transfer; a slow receiver just misses intermediate
// fractions.
type countingReader struct {
	r       io.Reader
	total   int64
	read    int64
	updates chan<- Update
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.read += int64(n)
		fraction := 1.0
		if c.total > 0 {
			fraction = float64(c.read) / float64(c.total)
		}
		select {
		case c.updates <- Update{Fraction: fraction}:
		default:
		}
	}
	return n, err
}

// Put uploads the file at path to url. It returns immediately with a channel
// of progress updates; the channel is closed after the final Done update is
// delivered. The final update is never dropped.
func (e *Executor) Put(ctx context.Context, url, path, contentType string) (<-chan Update, error) {

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("cannot stat file: %w", err)
	}

	updates := make(chan Update, 16)

	go func() {
		defer close(updates)
		defer file.Close()

		err := e.put(ctx, url, contentType, file, info.Size(), updates)
		updates <- Update{Fraction: 1, Done: true, Err: err}
	}()

	return updates, nil
}

func (e *Executor) put(ctx context.Context, url, contentType string, file *os.File, size int64, updates chan<- Update) error {

	body := &countingReader{r: file, total: size, updates: updates}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = size

	resp, err := e.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	return nil
}
