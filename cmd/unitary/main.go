// Command unitary parses SI dimensions, loads unit catalogs and converts
// quantities between units.
package main

import "github.com/papapumpkin/unitary/cmd"

func main() {
	cmd.Execute()
}
