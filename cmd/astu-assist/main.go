// Command astu-assist is the CLI entrypoint.
package main

import "github.com/csec-astu/astu-assist/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
