package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mkorotkov/clipstream/internal/client/batch"
	"github.com/mkorotkov/clipstream/internal/client/history"
)

// Upload transfers every pending record, one at a time, then prints the
// outcome and appends finished records to the local history.
func (a *App) Upload(ctx context.Context) error {

	records := a.batch.Records()
	if len(records) == 0 {
		fmt.Println("Batch is empty, nothing to upload")
		return nil
	}

	done := make(chan struct{})
	go a.printProgress(done)

	outcome, err := a.batch.Run(ctx)
	close(done)

	if err != nil {
		log.Printf("Upload interrupted: %s", err.Error())
	}

	fmt.Printf("Done: %d total, %d succeeded, %d failed\n", outcome.Total, outcome.Succeeded, outcome.Failed)

	a.appendHistory(ctx)
	return err
}

// printProgress periodically reports overall batch progress until done is
// closed.
func (a *App) printProgress(done <-chan struct{}) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			fmt.Printf("... %.0f%%\n", a.batch.Progress()*100)
		case <-done:
			return
		}
	}
}

// appendHistory writes every newly finished record to the history store.
func (a *App) appendHistory(ctx context.Context) {
	for _, r := range a.batch.Records() {
		if r.Status != batch.StatusSuccess && r.Status != batch.StatusError {
			continue
		}
		if a.recorded[r.ID] {
			continue
		}

		err := a.history.Append(ctx, &history.Entry{
			ID:         r.ID,
			FileName:   r.FileName,
			StorageKey: r.StorageKey,
			Category:   r.Category,
			Size:       r.Size,
			Status:     string(r.Status),
			ErrMessage: r.ErrMessage,
			UploadedAt: time.Now().UTC(),
		})
		if err != nil {
			log.Printf("history write failed: %s", err.Error())
			continue
		}
		a.recorded[r.ID] = true
	}
}

// History prints the most recent finished transfers.
func (a *App) History(ctx context.Context) error {

	entries, err := a.history.List(ctx, 50)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No uploads yet")
		return nil
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s [%s] %s", e.UploadedAt.Format(time.RFC3339), e.Status, e.FileName)
		if e.StorageKey != "" {
			line += " -> " + e.StorageKey
		}
		if e.ErrMessage != "" {
			line += " error: " + e.ErrMessage
		}
		fmt.Println(line)
	}
	return nil
}
