package display

import (
	"sort"
	"strconv"
	"strings"
)

// Set is an immutable set of display IDs. The zero value is the empty set.
type Set struct {
	ids map[ID]struct{}
}

func NewSet(ids ...ID) Set {
	if len(ids) == 0 {
		return Set{}
	}
	m := make(map[ID]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return Set{ids: m}
}

func (s Set) Contains(id ID) bool {
	_, ok := s.ids[id]
	return ok
}

func (s Set) Len() int { return len(s.ids) }

// Toggle returns a copy of s with id removed when present and added otherwise.
func (s Set) Toggle(id ID) Set {
	m := make(map[ID]struct{}, len(s.ids)+1)
	for k := range s.ids {
		m[k] = struct{}{}
	}
	if _, ok := m[id]; ok {
		delete(m, id)
	} else {
		m[id] = struct{}{}
	}
	return Set{ids: m}
}

// IDs returns the members in ascending order.
func (s Set) IDs() []ID {
	out := make([]ID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s Set) Equal(o Set) bool {
	if s.Len() != o.Len() {
		return false
	}
	for id := range s.ids {
		if !o.Contains(id) {
			return false
		}
	}
	return true
}

func (s Set) String() string {
	parts := make([]string, 0, s.Len())
	for _, id := range s.IDs() {
		parts = append(parts, strconv.FormatUint(uint64(id), 10))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
