// The project server binary. All commands go through the pkg/app runner:
//
//	./shakkar serve
//	./shakkar route:list
package main

import (
	"github.com/shashiranjanraj/shakkar/app/routes"
	"github.com/shashiranjanraj/shakkar/pkg/app"
)

func main() {
	app.New().Routes(routes.Register).Run()
}
