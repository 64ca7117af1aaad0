// Package main is the entry point for the ribscrape CLI tool, which scrapes
// pro Valorant match results from rib.gg and exports them as tabular data.
package main

import "github.com/ribtools/ribscrape/cmd"

func main() {
	cmd.Execute()
}
