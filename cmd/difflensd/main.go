// difflensd is a small HTTP service that accepts two texts, computes a
// unified diff with the textdiff package, and serves the rendered result at
// a short, pasteable URL.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.etcd.io/bbolt"
	"go.uber.org/multierr"

	"difflens.dev/difflens/cmd/difflensd/internal/db"
	"difflens.dev/difflens/cmd/difflensd/internal/server"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("difflensd", flag.ContinueOnError)
	addr := fs.String("addr", ":8080", "address to listen on")
	publicURL := fs.String("public-url", "http://localhost:8080", "externally visible base URL, used to build short links")
	dbPath := fs.String("db", "difflensd.bolt", "path to the bolt database file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	bdb, err := bbolt.Open(*dbPath, 0o600, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: opening database: %v\n", err)
		return 1
	}

	srv := &server.Server{
		PublicURL: *publicURL,
		DB:        &db.DB{DB: bdb},
	}

	fmt.Fprintf(os.Stderr, "listening on %s\n", *addr)
	err = http.ListenAndServe(*addr, srv.Router())
	// ListenAndServe only returns once the server has stopped handling
	// requests, so it's always safe to close the database here.
	err = multierr.Combine(err, bdb.Close())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
