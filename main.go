// The main package for the clara-discovery executable.
package main

import "github.com/ASUCICREPO/ADA-Clara-sub003/cmd"

func main() {
	cmd.Execute()
}
