package main

import (
	"github.com/reporthub/backend/cmd/app"
)

func main() {
	app.Run()
}
