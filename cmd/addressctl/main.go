// Command addressctl imports and exports a user's address book from the
// command line, against the same store the server uses.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(openStore).Execute(); err != nil {
		os.Exit(1)
	}
}
