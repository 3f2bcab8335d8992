// Command exportdoc runs extraction and template filling on local files,
// without the database or object storage the API needs.
package main

import (
	"os"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
