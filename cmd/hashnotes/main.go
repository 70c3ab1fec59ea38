package main

import (
	"os"
)

var (
	version = "dev"
	// apiURL is the default server, set at build time with
	// -ldflags "-X main.apiURL=https://notes.example.com".
	apiURL = "http://localhost:5000"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
