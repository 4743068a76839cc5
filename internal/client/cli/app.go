package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log"
	"os"

	_ "modernc.org/sqlite"

	"github.com/mkorotkov/clipstream/internal/client/api"
	"github.com/mkorotkov/clipstream/internal/client/batch"
	"github.com/mkorotkov/clipstream/internal/client/config"
	"github.com/mkorotkov/clipstream/internal/client/history"
	"github.com/mkorotkov/clipstream/internal/client/transfer"
)

type App struct {
	config   *config.Config
	client   *api.Client
	batch    *batch.Batch
	history  history.Repository
	db       *sql.DB
	userName string
	reader   *bufio.Reader

	// record ids already written to history, so a re-run of the batch does
	// not duplicate rows
	recorded map[string]bool
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	db, err := history.InitDatabase(ctx, c.HistoryDBPath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient := api.NewClient(c.ServerURL, c.RequestTimeout)
	b := batch.NewBatch(apiClient, transfer.NewExecutor())

	return &App{
		config:   c,
		client:   apiClient,
		batch:    b,
		history:  history.NewSQLiteRepository(db),
		db:       db,
		reader:   bufio.NewReader(os.Stdin),
		recorded: make(map[string]bool),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.client.Authenticated()
}
