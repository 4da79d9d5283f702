// Package cli implements the interactive operator console for MedVault:
// account registration, login, and patient-record upload and queries.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/medvault/medvault/internal/client/api"
	"github.com/medvault/medvault/internal/client/config"
)

type App struct {
	config   *config.Config
	client   *api.Client
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	client := api.NewClient(c.ServerEndpointAddr, c.RequestTimeout)
	return &App{config: c, client: client, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) isLoggedIn() bool {
	return a.client.Token() != ""
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
