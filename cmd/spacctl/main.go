// spacctl is the SPAC-Sentinel command-line tool.
package main

import "github.com/turtacn/SPAC-Sentinel/internal/interfaces/cli"

func main() {
	cli.Execute()
}
