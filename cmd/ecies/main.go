// Command ecies is a developer tool for the ECIES boundary: key generation,
// public key derivation and file or stdin encryption.
package main

import "github.com/kochabx/ecies/cmd/ecies/commands"

func main() {
	commands.Execute()
}
