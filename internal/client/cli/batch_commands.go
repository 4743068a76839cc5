package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

// Add prompts for a category and one or more file paths, validates them, and
// appends the valid ones to the batch, reporting any file that was rejected.
func (a *App) Add(ctx context.Context) error {

	category, err := GetSimpleText(a.reader, "Enter category (meeting/interview, empty for none)", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	line, err := GetSimpleText(a.reader, "Enter file path(s), space separated", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	paths := strings.Fields(line)
	if len(paths) == 0 {
		fmt.Println("Nothing to add")
		return nil
	}

	before := len(a.batch.Records())
	err = a.batch.Add(category, paths...)
	added := len(a.batch.Records()) - before

	if err != nil {
		log.Printf("Rejected: %s", err.Error())
	}
	fmt.Printf("Added %d of %d file(s)\n", added, len(paths))
	return err
}

func (a *App) List(ctx context.Context) error {

	records := a.batch.Records()
	if len(records) == 0 {
		fmt.Println("Batch is empty")
		return nil
	}

	for i, r := range records {
		line := fmt.Sprintf("%2d. [%s] %s (%s, %d bytes) %.0f%%", i+1, r.Status, r.FileName, r.ContentType, r.Size, r.Progress*100)
		if r.ErrMessage != "" {
			line += " error: " + r.ErrMessage
		}
		fmt.Println(line)
		fmt.Println("    id:", r.ID)
	}

	fmt.Printf("Total progress: %.0f%%\n", a.batch.Progress()*100)
	return nil
}

func (a *App) Remove(ctx context.Context) error {

	id, err := GetSimpleText(a.reader, "Enter record id", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.batch.Remove(id); err != nil {
		log.Printf("Not removed: %s", err.Error())
		return err
	}

	fmt.Println("Removed")
	return nil
}

func (a *App) Clear(ctx context.Context) error {
	if err := a.batch.Clear(); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	a.recorded = make(map[string]bool)
	fmt.Println("Batch cleared")
	return nil
}

func (a *App) Retry(ctx context.Context) error {

	id, err := GetSimpleText(a.reader, "Enter record id", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if err := a.batch.Retry(id); err != nil {
		log.Printf("Not retried: %s", err.Error())
		return err
	}

	delete(a.recorded, id)
	fmt.Println("Re-queued. Run 'upload' to transfer.")
	return nil
}
