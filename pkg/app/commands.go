package app

// pkg/app/commands.go holds the implementations for the CLI sub-commands.
// These are called from Application.Run() and use only framework packages.

import (
	"fmt"
	"strings"

	"github.com/shashiranjanraj/shakkar/pkg/router"
)

// cmdServe boots the HTTP server using the Application's handler.
func cmdServe(a *Application) error {
	return startServer(a)
}

// cmdRouteList prints all registered routes.
func cmdRouteList(a *Application) error {
	r := router.New()
	for _, fn := range a.routesFns {
		fn(r)
	}

	routes := r.Routes()
	if len(routes) == 0 {
		fmt.Println("No routes registered.")
		return nil
	}

	fmt.Printf("%-8s  %-50s  %s\n", "METHOD", "PATH", "NAME")
	fmt.Println(strings.Repeat("-", 80))
	for _, ri := range routes {
		fmt.Printf("%-8s  %-50s  %s\n", ri.Method, ri.Path, ri.Name)
	}
	return nil
}
