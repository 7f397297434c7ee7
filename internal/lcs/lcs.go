// Package lcs provides functions for finding the longest common prefix and
// suffix of a slice of strings, and for suggesting the nearest known name to a
// misspelled one.
package lcs

import (
	"slices"
)

// Nearest returns the candidate sharing the longest common prefix and suffix
// with name. A candidate qualifies only if the shared part covers at least
// half of it. Ties are broken by the order of candidates.
//
//	Nearest("contxt", []string{"context", "source"}) => "context", true
func Nearest(name string, candidates []string) (string, bool) {
	best, bestScore := "", 0
	for _, c := range candidates {
		if c == "" || c == name {
			continue
		}

		pair := []string{name, c}
		prefix := CommonPrefix(pair)
		suffix := CommonSuffix(pair)
		score := min(len(prefix)+len(suffix), len(c), len(name))

		if score*2 < len(c) {
			continue
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, bestScore != 0
}

// CommonPrefix returns the longest common prefix of the strings in ss.
func CommonPrefix(ss []string) string {
	// This implementation is based on os.path.commonprefix in Python.
	// https://github.com/python/cpython/blob/ed24702bd0f9925908ce48584c31dfad732208b2/Lib/genericpath.py#L105
	if len(ss) == 0 {
		return ""
	}

	// Find the lexicographically smallest and largest strings in ss.
	ss = slices.Clone(ss)
	slices.Sort(ss)

	min := slices.Min(ss)
	max := slices.Max(ss)

	// The longest common prefix of min and max is the longest common prefix of
	// ss because ss is lexicographically sorted.
	for i := range []byte(min) {
		if min[i] != max[i] {
			return min[:i]
		}
	}

	// min itself is the longest common prefix.
	return min
}

// CommonSuffix returns the longest common suffix of the strings in ss.
func CommonSuffix(ss []string) string {
	ss = slices.Clone(ss)
	for i := range ss {
		s := []byte(ss[i])
		slices.Reverse(s)
		ss[i] = string(s)
	}

	reversedSuffix := []byte(CommonPrefix(ss))
	slices.Reverse(reversedSuffix)
	suffix := string(reversedSuffix)
	return suffix
}
