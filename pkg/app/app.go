// Package app provides the application runner for the storefront.
//
// # Usage
//
//	package main
//
//	import (
//	    "github.com/shashiranjanraj/shakkar/app/routes"
//	    "github.com/shashiranjanraj/shakkar/pkg/app"
//	)
//
//	func main() {
//	    app.New().Routes(routes.Register).Run()
//	}
//
// Then:
//
//	go build -o shakkar ./cmd/server && ./shakkar serve
//	./shakkar route:list
package app

import (
	"fmt"
	"os"

	"github.com/shashiranjanraj/shakkar/pkg/router"
)

// Application is the central configuration object for the storefront.
// Build one with New(), attach your routes, then call Run().
type Application struct {
	routesFns []func(*router.Router)
}

// New creates a new Application instance.
func New() *Application {
	return &Application{}
}

// Routes registers a route-registration callback that will be called when
// the HTTP kernel is built. You may call Routes() multiple times; all
// callbacks are executed in order.
func (a *Application) Routes(fn func(*router.Router)) *Application {
	a.routesFns = append(a.routesFns, fn)
	return a
}

// Run reads os.Args and dispatches to the appropriate command.
// This is the ONLY function you need to call from your main().
func (a *Application) Run() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	var err error
	switch cmd {
	case "serve", "start", "run", "s":
		err = cmdServe(a)
	case "route:list", "routes":
		err = cmdRouteList(a)
	case "help", "--help", "-h":
		printHelp()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %q\n\nRun with --help for usage.\n", cmd)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Print(`Shakkar storefront

Usage:
  <program> <command>

Commands:
  serve            Start the HTTP server  (aliases: start, run)
  route:list       List registered routes

`)
}
