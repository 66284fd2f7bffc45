package main

import (
	"os"

	"github.com/vidyodaya/vidyodaya-api/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
