package world

import (
	"sort"

	"gopkg.in/yaml.v3"
)

// IdSet is an unordered set of entity ids. It serializes as a sorted list so
// that saves of equal worlds are byte-identical.
type IdSet map[Id]struct{}

func NewIdSet(ids ...Id) IdSet {
	s := make(IdSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IdSet) Has(id Id) bool {
	_, ok := s[id]
	return ok
}

func (s *IdSet) Add(id Id) {
	if *s == nil {
		*s = make(IdSet)
	}
	(*s)[id] = struct{}{}
}

func (s IdSet) Remove(id Id) {
	delete(s, id)
}

// Sorted returns the members in ascending order.
func (s IdSet) Sorted() []Id {
	out := make([]Id, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s IdSet) MarshalYAML() (interface{}, error) {
	return s.Sorted(), nil
}

func (s *IdSet) UnmarshalYAML(node *yaml.Node) error {
	var ids []Id
	if err := node.Decode(&ids); err != nil {
		return err
	}
	*s = NewIdSet(ids...)
	return nil
}
