package ast

import "testing"

func TestVisitorDispatch(t *testing.T) {
	v := NewVisitor(map[NodeType]HandlerFunc{
		TypeLiteral: func(n Node, args ...interface{}) interface{} {
			return n.(*Literal).Value
		},
	})

	got := v.Visit(&Literal{Value: "hello"})
	if got != "hello" {
		t.Fatalf("Visit returned %v, want %q", got, "hello")
	}
}

func TestVisitorMissingHandlerPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Visit to panic for an unregistered node type")
		}
	}()
	v := NewVisitor(nil)
	v.Visit(&Any{})
}

func TestVisitorForwardsArgs(t *testing.T) {
	v := NewVisitor(map[NodeType]HandlerFunc{
		TypeAny: func(n Node, args ...interface{}) interface{} {
			return args[0].(int) + 1
		},
	})
	got := v.Visit(&Any{}, 41)
	if got != 42 {
		t.Fatalf("Visit returned %v, want 42", got)
	}
}
