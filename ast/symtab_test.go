package ast

import (
	"reflect"
	"testing"
)

func TestRuleMapOrderingAndSort(t *testing.T) {
	m := NewRuleMap()
	m.Set("start", &Rule{Name: "start"})
	m.Set("zeta", &Rule{Name: "zeta"})
	m.Set("alpha", &Rule{Name: "alpha"})

	if got, want := m.Names(), []string{"start", "zeta", "alpha"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	if got, want := m.SortedNames(), []string{"alpha", "start", "zeta"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("SortedNames() = %v, want %v", got, want)
	}
	if m.Len() != 3 {
		t.Fatalf("Len() = %v, want 3", m.Len())
	}

	m.Delete("zeta")
	if _, ok := m.Get("zeta"); ok {
		t.Fatalf("zeta should have been deleted")
	}
	if got, want := m.Names(), []string{"start", "alpha"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() after delete = %v, want %v", got, want)
	}
}

func TestRuleMapCloneIsIndependent(t *testing.T) {
	m := NewRuleMap()
	m.Set("a", &Rule{Name: "a"})
	c := m.Clone()
	c.Set("b", &Rule{Name: "b"})

	if m.Len() != 1 {
		t.Fatalf("original RuleMap was mutated by clone: Len() = %v", m.Len())
	}
	if c.Len() != 2 {
		t.Fatalf("clone Len() = %v, want 2", c.Len())
	}
}
