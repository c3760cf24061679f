// Command btxd serves the BTX navigation loop over stdin/stdout (after an
// AT dial handshake with --modem, or when no listen address is configured)
// or over a TCP listener, serving accepted connections concurrently, each
// with its own session and history independent of every other connection.
package main

import (
	"fmt"
	"net"
	"os"

	"github.com/lestrrat-go/pdebug"
	"github.com/pkg/errors"

	"github.com/dostermann/bildschirmtext/cli"
	"github.com/dostermann/bildschirmtext/genpage"
	"github.com/dostermann/bildschirmtext/messaging"
	"github.com/dostermann/bildschirmtext/nav"
	"github.com/dostermann/bildschirmtext/resolver"
	"github.com/dostermann/bildschirmtext/serverconfig"
	"github.com/dostermann/bildschirmtext/session"
	"github.com/dostermann/bildschirmtext/terminal"
	"github.com/dostermann/bildschirmtext/transport"
	"github.com/dostermann/bildschirmtext/userstore"
	"github.com/dostermann/bildschirmtext/validate"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	opts, err := cli.Parse(argv)
	if err != nil {
		return err
	}

	rcfile := opts.Rcfile
	if rcfile == "" {
		rcfile, err = serverconfig.LocateRcfile(serverconfig.DefaultLocator())
		if err != nil {
			return errors.Wrap(err, "btxd: locating config")
		}
	}
	cfg, err := serverconfig.Load(rcfile)
	if err != nil {
		return errors.Wrap(err, "btxd: loading config")
	}
	if cfg.Compress {
		opts.Compress = true
	}

	res, err := resolver.New(cfg.DataRoot, genpage.Login{}, genpage.UserManagement{}, genpage.Messaging{})
	if err != nil {
		return errors.Wrap(err, "btxd: building resolver")
	}

	store := userstore.NewMemory()
	sink := messaging.NewMemory()

	if opts.Modem {
		if err := transport.WaitForDialCommand(os.Stdin, os.Stdout); err != nil {
			return errors.Wrap(err, "btxd: waiting for dial command")
		}
		return serveOne(transport.New(os.Stdin, os.Stdout), res, store, sink, opts)
	}

	if cfg.Listen == "" {
		return serveOne(transport.New(os.Stdin, os.Stdout), res, store, sink, opts)
	}

	ln, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return errors.Wrap(err, "btxd: listening")
	}
	defer ln.Close()

	if pdebug.Enabled {
		pdebug.Printf("btxd: listening on %s", cfg.Listen)
	}

	for {
		conn, err := ln.Accept()
		if err != nil {
			return errors.Wrap(err, "btxd: accepting connection")
		}
		go func() {
			defer conn.Close()
			if err := serveOne(transport.New(conn, conn), res, store, sink, opts); err != nil {
				if pdebug.Enabled {
					pdebug.Printf("btxd: connection ended: %s", err)
				}
			}
		}()
	}
}

func serveOne(term terminal.Terminal, res *resolver.Resolver, store userstore.UserStore, sink messaging.Sink, opts cli.Options) error {
	sess := session.New()
	if opts.User != "" {
		sess.Login(opts.User)
	}

	loop := &nav.Loop{
		Term:       term,
		Resolver:   res,
		Session:    sess,
		Store:      store,
		Messaging:  sink,
		Validators: validate.NewRegistry(),
		Targets:    validate.NewTargetRegistry(),
		Compress:   opts.Compress,
	}
	return loop.Run(opts.Page)
}
