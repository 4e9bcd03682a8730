package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/verte-zerg/aocrun/day"
)

type locationLists struct {
	left, right []int
}

func parseLocationLists(input string) (locationLists, error) {
	var lists locationLists
	for i, line := range strings.Split(strings.TrimSpace(input), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return locationLists{}, fmt.Errorf("line %d: expected two numbers, got %q", i+1, line)
		}
		l, err := strconv.Atoi(fields[0])
		if err != nil {
			return locationLists{}, fmt.Errorf("line %d: %w", i+1, err)
		}
		r, err := strconv.Atoi(fields[1])
		if err != nil {
			return locationLists{}, fmt.Errorf("line %d: %w", i+1, err)
		}
		lists.left = append(lists.left, l)
		lists.right = append(lists.right, r)
	}
	return lists, nil
}

func day01() day.Day {
	return day.New[int, locationLists](1, day.Funcs[int, locationLists]{
		Part1Func: func(input string) (int, locationLists, error) {
			lists, err := parseLocationLists(input)
			if err != nil {
				return 0, locationLists{}, err
			}
			left := append([]int(nil), lists.left...)
			right := append([]int(nil), lists.right...)
			sort.Ints(left)
			sort.Ints(right)
			total := 0
			for i := range left {
				d := left[i] - right[i]
				if d < 0 {
					d = -d
				}
				total += d
			}
			return total, lists, nil
		},
		Part2Func: func(_ string, lists locationLists) (int, error) {
			counts := make(map[int]int, len(lists.right))
			for _, r := range lists.right {
				counts[r]++
			}
			score := 0
			for _, l := range lists.left {
				score += l * counts[l]
			}
			return score, nil
		},
	}).WithExample(day.Example[int]{
		Input: "3   4\n4   3\n2   5\n1   3\n3   9\n3   3\n",
		Part1: day.Expect(11),
		Part2: day.Expect(31),
	})
}
