// Command boxctl works with comments and metadata templates from the
// command line and runs a local sandbox of those endpoints.
package main

import "github.com/mesh-intelligence/boxsdk/internal/cli"

func main() {
	cli.Execute()
}
