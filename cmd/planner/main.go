package main

import "diet-menu-planner/internal/cli"

// main is the composition root; all wiring lives in internal/cli.
func main() {
	cli.Execute()
}
