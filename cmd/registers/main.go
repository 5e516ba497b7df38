// Command registers manages typed record registers from the command line.
package main

import "github.com/mesh-intelligence/registers/internal/cli"

func main() {
	cli.Execute()
}
