// Package generics covers generic functions and methods.
package generics

func must[T any](v T, err error) T { // want `possible panic spot found in "generics.must"`
	if err != nil {
		panic(err)
	}
	return v
}

func badInt() int { // want `possible panic spot found in "generics.badInt"`
	return must(1, nil)
}

func badString() string { // want `possible panic spot found in "generics.badString"`
	return must("s", nil)
}

type Stack[T any] struct {
	items []T
}

func (s *Stack[T]) Pop() T { // want `possible panic spot found in "generics.Stack.Pop"`
	if len(s.items) == 0 {
		panic("empty stack")
	}
	v := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return v
}

func (s *Stack[T]) Push(v T) {
	s.items = append(s.items, v)
}

func badPop() int { // want `possible panic spot found in "generics.badPop"`
	var s Stack[int]
	s.Push(1)
	return s.Pop()
}

func identity[T any](v T) T {
	return v
}

func goodIdentity() int {
	return identity(1)
}
