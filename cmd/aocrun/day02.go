package main

import (
	"strconv"
	"strings"

	"github.com/verte-zerg/aocrun/day"
)

func parseReports(input string) ([][]int, error) {
	var reports [][]int
	for _, line := range strings.Split(strings.TrimSpace(input), "\n") {
		fields := strings.Fields(line)
		levels := make([]int, 0, len(fields))
		for _, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, err
			}
			levels = append(levels, v)
		}
		reports = append(reports, levels)
	}
	return reports, nil
}

func safe(levels []int) bool {
	if len(levels) < 2 {
		return true
	}
	increasing := levels[1] > levels[0]
	for i := 1; i < len(levels); i++ {
		d := levels[i] - levels[i-1]
		if !increasing {
			d = -d
		}
		if d < 1 || d > 3 {
			return false
		}
	}
	return true
}

// safeDampened reports whether removing at most one level makes the report safe.
func safeDampened(levels []int) bool {
	if safe(levels) {
		return true
	}
	trimmed := make([]int, 0, len(levels)-1)
	for skip := range levels {
		trimmed = trimmed[:0]
		trimmed = append(trimmed, levels[:skip]...)
		trimmed = append(trimmed, levels[skip+1:]...)
		if safe(trimmed) {
			return true
		}
	}
	return false
}

func day02() day.Day {
	return day.New[int, [][]int](2, day.Funcs[int, [][]int]{
		Part1Func: func(input string) (int, [][]int, error) {
			reports, err := parseReports(input)
			if err != nil {
				return 0, nil, err
			}
			n := 0
			for _, r := range reports {
				if safe(r) {
					n++
				}
			}
			return n, reports, nil
		},
		Part2Func: func(_ string, reports [][]int) (int, error) {
			n := 0
			for _, r := range reports {
				if safeDampened(r) {
					n++
				}
			}
			return n, nil
		},
	}).WithExample(day.Example[int]{
		Input: "7 6 4 2 1\n1 2 7 8 9\n9 7 6 2 1\n1 3 2 4 5\n8 6 4 4 1\n1 3 6 7 9\n",
		Part1: day.Expect(2),
		Part2: day.Expect(4),
	})
}
