// Package cli parses btxd's command-line flags, matching the original
// script's --modem / --user= / --page= / --compress surface.
package cli

import (
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"
)

// Options holds the command-line flags parsed by go-flags.
type Options struct {
	Modem    bool   `long:"modem" description:"wait for an AT dial command on stdin before starting the navigation loop"`
	User     string `long:"user" description:"auto-login this subscriber id (extension 1) before the first page"`
	Page     string `long:"page" default:"00000" description:"initial desired page id"`
	Compress bool   `long:"compress" description:"enable CEPT run compression on outgoing page data"`
	Rcfile   string `long:"rcfile" description:"path to the server's config file"`
}

// Parse parses argv (excluding the program name) into Options.
func Parse(argv []string) (Options, error) {
	var opts Options
	p := flags.NewParser(&opts, flags.PrintErrors)
	if _, err := p.ParseArgs(argv); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		return Options{}, fmt.Errorf("cli: invalid command line options: %w", err)
	}
	return opts, nil
}
