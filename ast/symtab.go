package ast

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// RuleMap is grammar.rules (spec §3.1): a mapping from rule name to *Rule
// that also remembers insertion order, so passes and the emitter can walk
// it either in the order rules were declared or in a sorted, reproducible
// order (Design Notes §9 — "iterate keys in sorted order to make builds
// reproducible"). Adapted from the teacher's grammar/symbol.go, which gave
// every symbol a stable numeric handle precisely so iteration order never
// depended on Go's randomized map order.
type RuleMap struct {
	order []string
	rules map[string]*Rule
}

// NewRuleMap returns an empty RuleMap.
func NewRuleMap() *RuleMap {
	return &RuleMap{rules: map[string]*Rule{}}
}

// Set inserts or replaces the rule named name. A replacement keeps its
// original insertion position.
func (m *RuleMap) Set(name string, r *Rule) {
	if _, ok := m.rules[name]; !ok {
		m.order = append(m.order, name)
	}
	m.rules[name] = r
}

// Get looks up a rule by name.
func (m *RuleMap) Get(name string) (*Rule, bool) {
	r, ok := m.rules[name]
	return r, ok
}

// Delete removes a rule, if present.
func (m *RuleMap) Delete(name string) {
	if _, ok := m.rules[name]; !ok {
		return
	}
	delete(m.rules, name)
	if i := slices.Index(m.order, name); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
}

// Len returns the number of rules.
func (m *RuleMap) Len() int {
	return len(m.rules)
}

// Names returns rule names in insertion order.
func (m *RuleMap) Names() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// SortedNames returns rule names sorted lexically, independent of
// insertion order, for builds that must be byte-for-byte reproducible
// regardless of how the AST was constructed.
func (m *RuleMap) SortedNames() []string {
	names := maps.Keys(m.rules)
	slices.Sort(names)
	return names
}

// Each calls fn once per rule, in insertion order.
func (m *RuleMap) Each(fn func(name string, r *Rule)) {
	for _, name := range m.order {
		fn(name, m.rules[name])
	}
}

// Clone returns a shallow copy: same *Rule pointers, independent ordering
// and membership. The passes do not use it: passes/proxy.go deletes rules
// from the grammar's own RuleMap in place.
func (m *RuleMap) Clone() *RuleMap {
	c := NewRuleMap()
	m.Each(func(name string, r *Rule) {
		c.Set(name, r)
	})
	return c
}
