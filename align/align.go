// Package align implements longest-common-subsequence sequence alignment.
//
// The Matcher produces equal/insert/delete/replace opcodes over two
// sequences, with deterministic leftmost-match tie-breaking: among equally
// long matches the one starting earliest in the first sequence wins, then
// earliest in the second. It also computes a similarity ratio in [0,1]
// defined as 2*M/T, where M is the number of matched elements and T the
// total length of both sequences.
//
// The same algorithm aligns text lines, table rows (by concatenated cell
// text), characters within a line, and top-level document blocks (by
// content fingerprint), so tie-breaking is consistent everywhere.
package align

import "sort"

// OpTag identifies an alignment operation.
type OpTag string

const (
	OpEqual   OpTag = "equal"
	OpInsert  OpTag = "insert"
	OpDelete  OpTag = "delete"
	OpReplace OpTag = "replace"
)

// OpCode describes one alignment operation. The element ranges
// a[I1:I2] and b[J1:J2] are half-open.
//
//	equal:   a[I1:I2] == b[J1:J2]
//	insert:  b[J1:J2] inserted (I1 == I2)
//	delete:  a[I1:I2] deleted (J1 == J2)
//	replace: a[I1:I2] replaced by b[J1:J2]
type OpCode struct {
	Tag            OpTag
	I1, I2, J1, J2 int
}

// Match is a maximal run of equal elements: a[A:A+Size] == b[B:B+Size].
type Match struct {
	A, B, Size int
}

// Matcher aligns two sequences of comparable elements.
type Matcher[T comparable] struct {
	a, b   []T
	b2j    map[T][]int
	blocks []Match
	ops    []OpCode
}

// NewMatcher creates a matcher for the two sequences. The sequences must
// not be mutated while the matcher is in use.
func NewMatcher[T comparable](a, b []T) *Matcher[T] {
	m := &Matcher[T]{a: a, b: b, b2j: make(map[T][]int, len(b))}
	for j, v := range b {
		m.b2j[v] = append(m.b2j[v], j)
	}
	return m
}

// findLongestMatch finds the longest matching run within
// a[alo:ahi] and b[blo:bhi], preferring the leftmost on ties.
func (m *Matcher[T]) findLongestMatch(alo, ahi, blo, bhi int) Match {
	besti, bestj, bestsize := alo, blo, 0
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return Match{A: besti, B: bestj, Size: bestsize}
}

// MatchingBlocks returns all maximal matching runs in order, terminated
// by a zero-size sentinel at (len(a), len(b)).
func (m *Matcher[T]) MatchingBlocks() []Match {
	if m.blocks != nil {
		return m.blocks
	}

	type span struct{ alo, ahi, blo, bhi int }
	queue := []span{{0, len(m.a), 0, len(m.b)}}
	var matched []Match
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		mt := m.findLongestMatch(s.alo, s.ahi, s.blo, s.bhi)
		if mt.Size == 0 {
			continue
		}
		matched = append(matched, mt)
		if s.alo < mt.A && s.blo < mt.B {
			queue = append(queue, span{s.alo, mt.A, s.blo, mt.B})
		}
		if mt.A+mt.Size < s.ahi && mt.B+mt.Size < s.bhi {
			queue = append(queue, span{mt.A + mt.Size, s.ahi, mt.B + mt.Size, s.bhi})
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].A != matched[j].A {
			return matched[i].A < matched[j].A
		}
		return matched[i].B < matched[j].B
	})

	// Merge adjacent runs.
	var merged []Match
	for _, mt := range matched {
		n := len(merged)
		if n > 0 && merged[n-1].A+merged[n-1].Size == mt.A && merged[n-1].B+merged[n-1].Size == mt.B {
			merged[n-1].Size += mt.Size
			continue
		}
		merged = append(merged, mt)
	}
	merged = append(merged, Match{A: len(m.a), B: len(m.b), Size: 0})

	m.blocks = merged
	return merged
}

// Opcodes returns the ordered alignment operations covering both
// sequences end to end.
func (m *Matcher[T]) Opcodes() []OpCode {
	if m.ops != nil {
		return m.ops
	}

	var ops []OpCode
	i, j := 0, 0
	for _, mt := range m.MatchingBlocks() {
		var tag OpTag
		switch {
		case i < mt.A && j < mt.B:
			tag = OpReplace
		case i < mt.A:
			tag = OpDelete
		case j < mt.B:
			tag = OpInsert
		}
		if tag != "" {
			ops = append(ops, OpCode{Tag: tag, I1: i, I2: mt.A, J1: j, J2: mt.B})
		}
		i, j = mt.A+mt.Size, mt.B+mt.Size
		if mt.Size > 0 {
			ops = append(ops, OpCode{Tag: OpEqual, I1: mt.A, I2: i, J1: mt.B, J2: j})
		}
	}

	m.ops = ops
	return ops
}

// Ratio returns the similarity of the two sequences in [0,1].
// Equal sequences score 1; disjoint sequences score 0. Two empty
// sequences are considered identical.
func (m *Matcher[T]) Ratio() float64 {
	total := len(m.a) + len(m.b)
	if total == 0 {
		return 1.0
	}
	matches := 0
	for _, mt := range m.MatchingBlocks() {
		matches += mt.Size
	}
	return 2.0 * float64(matches) / float64(total)
}

// StringRatio returns the character-level similarity of two strings,
// computed with the same alignment and ratio definition as Matcher.
func StringRatio(a, b string) float64 {
	return NewMatcher([]rune(a), []rune(b)).Ratio()
}
