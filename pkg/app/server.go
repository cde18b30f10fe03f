package app

// pkg/app/server.go bridges Application to internal/server. Its only job is
// to build the HTTP handler (via kernel.go) and pass it to the internal
// server that binds the port.

import "github.com/shashiranjanraj/shakkar/internal/server"

func startServer(a *Application) error {
	handler := buildHandler(a)
	return server.Start(handler)
}
