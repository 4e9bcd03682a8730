// Package main is a sample solutions binary for the 2024 puzzles.
package main

import (
	"github.com/verte-zerg/aocrun"
)

func main() {
	aocrun.Main(2024, day01(), day02())
}
