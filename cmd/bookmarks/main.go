// The bookmarks server: a multi-user bookmark-management backend with
// token-based authentication and per-owner access control.
package main

import (
	"log"

	"github.com/patric-chuzhbe/bookmarks/internal/app"
)

func main() {
	if err := run(); err != nil {
		log.Fatalln(err)
	}
}

func run() error {
	application, err := app.New()
	if err != nil {
		return err
	}
	defer application.Close()

	return application.Run()
}
