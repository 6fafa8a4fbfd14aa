// stubkit CLI - load a fixture and dispatch requests against it.
package main

import "github.com/stubkit/stubkit/pkg/cli"

func main() {
	cli.Execute()
}
