// Package mapping derives lookup dictionaries from pairs of table columns.
//
// Both builders walk the two columns together and stop at the shorter one.
// Pairs with an empty key or an empty value are skipped.
package mapping

import "sort"

// Set is an unordered collection of distinct strings.
type Set map[string]struct{}

// NewSet returns a set holding values
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s.Add(v)
	}
	return s
}

func (s Set) Add(v string) {
	s[v] = struct{}{}
}

func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

// Sorted returns the members in ascending order
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Lists replaces every set of m with its sorted members, the form mappings are encoded in.
func Lists(m map[string]Set) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, s := range m {
		out[k] = s.Sorted()
	}
	return out
}

// Encodable returns v with sets turned into sorted slices. Other values are returned as is.
func Encodable(v any) any {
	switch val := v.(type) {
	case map[string]Set:
		return Lists(val)
	case Set:
		return val.Sorted()
	}
	return v
}

// BuildUnique maps every key to the last value seen for it.
func BuildUnique(keys, values []string) map[string]string {
	out := make(map[string]string)
	for i := 0; i < len(keys) && i < len(values); i++ {
		if keys[i] == "" || values[i] == "" {
			continue
		}
		out[keys[i]] = values[i]
	}
	return out
}

// BuildSet maps every key to the set of all values seen for it.
func BuildSet(keys, values []string) map[string]Set {
	out := make(map[string]Set)
	for i := 0; i < len(keys) && i < len(values); i++ {
		if keys[i] == "" || values[i] == "" {
			continue
		}
		s, ok := out[keys[i]]
		if !ok {
			s = make(Set)
			out[keys[i]] = s
		}
		s.Add(values[i])
	}
	return out
}

// Duplicates reports keys that are paired with more than one distinct value,
// i.e. the keys for which BuildUnique silently overwrote an earlier value.
func Duplicates(keys, values []string) map[string][]string {
	out := make(map[string][]string)
	for k, s := range BuildSet(keys, values) {
		if s.Len() > 1 {
			out[k] = s.Sorted()
		}
	}
	return out
}
