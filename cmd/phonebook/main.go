// Package main provides the phonebook CLI.
package main

import "github.com/mesh-intelligence/phonebook/internal/cli"

func main() {
	cli.Execute()
}
