// Copyright (c) 2015, Arbo von Monkiewitsch All rights reserved.
// Use of this source code is governed by a BSD-style
// license.

// Package levenshtein calculates edit distances and finds the nearest
// declared name to a misspelled one.
package levenshtein

import (
	"cmp"
	"iter"
	"unicode/utf8"
)

// Context reuses its scratch column across calls. It is not safe for
// concurrent use.
type Context struct {
	column []int
}

func (ctx *Context) scratch(length int) []int {
	if cap(ctx.column) < length {
		ctx.column = make([]int, length)
	}

	return ctx.column[:length]
}

// Distance returns the minimum number of single-rune insertions, deletions
// or substitutions turning str1 into str2. Uses O(min(m,n)) space.
func (ctx *Context) Distance(str1, str2 string) int {
	s1 := []rune(str1)
	s2 := []rune(str2)

	if len(s1) > len(s2) {
		s1, s2 = s2, s1
	}

	if len(s1) == 0 {
		return len(s2)
	}

	column := ctx.scratch(len(s1) + 1)
	for idx := range column {
		column[idx] = idx
	}

	for col, r2 := range s2 {
		column[0] = col + 1
		lastdiag := col

		for row, r1 := range s1 {
			olddiag := column[row+1]

			cost := 0
			if r1 != r2 {
				cost = 1
			}

			column[row+1] = min(column[row+1]+1, column[row]+1, lastdiag+cost)
			lastdiag = olddiag
		}
	}

	return column[len(s1)]
}

// Closest returns the candidate nearest to target within maxDistance edits.
// An exact match is never a suggestion. Ties go to the lexically smaller
// candidate so the result does not depend on iteration order.
func (ctx *Context) Closest(target string, candidates iter.Seq[string], maxDistance int) (string, bool) {
	best, bestDist := "", maxDistance+1
	targetLen := utf8.RuneCountInString(target)

	for cand := range candidates {
		if cand == target {
			continue
		}

		if diff := utf8.RuneCountInString(cand) - targetLen; diff > maxDistance || -diff > maxDistance {
			continue
		}

		d := ctx.Distance(target, cand)
		if d < bestDist || (d == bestDist && cmp.Less(cand, best)) {
			best, bestDist = cand, d
		}
	}

	return best, bestDist <= maxDistance
}

// Threshold is the edit budget used for suggestions: a third of the name,
// capped at two edits. Names shorter than three runes get none.
func Threshold(name string) int {
	const maxEdits = 2

	return min(len([]rune(name))/3, maxEdits)
}
