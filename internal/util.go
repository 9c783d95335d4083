package internal

import "math"

const Tolerance = 1e-6

// To compensate for imprecision in floats, equality is tolerance based. This is
// only used for geometric predicates; structural checks use exact equality.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

// A common convention in our geometry is that if two points have the same Y
// value, the one with the smaller X value is "lower". This simulates a slightly
// rotated coordinate system, allowing us to assume Y values are never equal.
func (p Point) Below(otherPoint Point) bool {
	if Equal(p.Y, otherPoint.Y) {
		return p.X < otherPoint.X
	}
	return p.Y < otherPoint.Y
}

func (p Point) Above(otherPoint Point) bool {
	return !p.Below(otherPoint)
}

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

// Stack of vertex indices.
type IndexStack []int

func (s *IndexStack) Push(i int) {
	*s = append(*s, i)
}

// Pop returns -1 when the stack is empty.
func (s *IndexStack) Pop() int {
	if len(*s) == 0 {
		return -1
	}
	i := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return i
}

func (s *IndexStack) Peek() int {
	if len(*s) == 0 {
		return -1
	}
	return (*s)[len(*s)-1]
}

func (s *IndexStack) Empty() bool {
	return len(*s) == 0
}

// Set of vertex indices.
type IndexSet map[int]struct{}

func (s IndexSet) Add(i int) {
	s[i] = struct{}{}
}

func (s IndexSet) Has(i int) bool {
	_, ok := s[i]
	return ok
}

func (s IndexSet) Remove(i int) {
	delete(s, i)
}
