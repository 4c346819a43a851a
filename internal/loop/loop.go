// Package loop runs a local single-player terminal session.
package loop

import (
	"bufio"
	"io"

	"github.com/tomz197/bullseye/internal/loop/client"
	"github.com/tomz197/bullseye/internal/loop/server"
)

// Run plays on the local terminal until the player quits. A private hub keeps
// the best scores of this run for the game-over screen.
func Run(r *bufio.Reader, w io.Writer, opts client.ClientOptions) error {
	hub := server.NewServer(opts.Logger)
	return client.NewClient(hub, r, w, opts).Run()
}
