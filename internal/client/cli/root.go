package cli

import (
	"bufio"
	"context"
	"log"
	"os"
)

func (a *App) getStatus() string {
	if a.userName != "" {
		return a.userName
	}
	return "not logged in"
}

func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to MedVault CLI (type 'help' for commands)")

	if err := a.client.Ping(ctx); err != nil {
		log.Printf("Warning: server unreachable at %s", a.config.ServerEndpointAddr)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
