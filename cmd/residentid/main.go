// Command residentid validates a single resident identifier and prints the
// attributes it encodes.
//
//	residentid 110102200002290014
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
