package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName
	}
	if n := len(a.batch.Records()); n > 0 {
		s = fmt.Sprintf("%s %d file(s)", s, n)
	}
	return s
}

func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to clipstream CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
