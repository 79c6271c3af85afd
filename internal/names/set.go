package names

// Set is a set of full names compared by exact string match.
type Set map[string]struct{}

// NewSet builds a set from the given names.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// Has reports whether name is in the set. A nil set contains nothing.
func (s Set) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Add inserts name.
func (s Set) Add(name string) {
	s[name] = struct{}{}
}

// Len returns the number of names.
func (s Set) Len() int { return len(s) }

// Clone returns an independent copy.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// Union returns a new set holding s plus every name in more.
func (s Set) Union(more ...string) Set {
	out := make(Set, len(s)+len(more))
	for k := range s {
		out[k] = struct{}{}
	}
	for _, m := range more {
		out[m] = struct{}{}
	}
	return out
}
