// Package aocrun runs Advent of Code solutions from a single main function.
//
// A solutions binary registers its days and hands control to Main:
//
//	func main() {
//		aocrun.Main(2024, day01.New(), day02.New())
//	}
package aocrun

import (
	"fmt"
	"os"

	"github.com/verte-zerg/aocrun/day"
	"github.com/verte-zerg/aocrun/internal/cli"
)

// Main parses the command line, runs the selected days of year and exits.
func Main(year int, days ...day.Day) {
	os.Exit(Run(year, os.Args[1:], days...))
}

// Run is Main without the exit. It returns the process exit code.
func Run(year int, args []string, days ...day.Day) int {
	reg, err := day.NewRegistry(days...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return cli.Execute(cli.App{Registry: reg, Year: year}, args)
}
