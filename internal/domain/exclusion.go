package domain

// ExclusionList is a read-only membership set of sense keys or word forms.
type ExclusionList struct {
	items map[string]struct{}
}

// NewExclusionList builds a list from items; duplicates collapse.
func NewExclusionList(items ...string) ExclusionList {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return ExclusionList{items: m}
}

// Contains reports whether s is excluded. The zero ExclusionList excludes nothing.
func (l ExclusionList) Contains(s string) bool {
	_, ok := l.items[s]
	return ok
}

// Len returns the number of distinct entries.
func (l ExclusionList) Len() int {
	return len(l.items)
}
