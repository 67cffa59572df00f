package command

import (
	"context"
	"reflect"
	"testing"
)

func TestKindNames(t *testing.T) {
	seen := map[string]Kind{}
	for _, k := range Kinds() {
		name := k.String()
		if name == "" {
			t.Errorf("kind %d has no name", int(k))
		}
		if prev, ok := seen[name]; ok {
			t.Errorf("%v and %v share name %q", prev, k, name)
		}
		seen[name] = k

		got, ok := ParseKind(name)
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", name, got, ok, k)
		}
	}
	if _, ok := ParseKind("explode"); ok {
		t.Error("ParseKind accepted an unknown name")
	}
	if s := Kind(999).String(); s != "kind(999)" {
		t.Errorf("String() of unknown kind = %q", s)
	}
}

func TestChainOrder(t *testing.T) {
	var trace []string
	mark := func(name string) Middleware {
		return func(next HandlerFunc) HandlerFunc {
			return func(ctx context.Context, req Request) (Result, error) {
				trace = append(trace, name)
				return next(ctx, req)
			}
		}
	}
	h := Chain(func(context.Context, Request) (Result, error) {
		trace = append(trace, "handler")
		return Result{}, nil
	}, mark("outer"), mark("inner"))

	if _, err := h(context.Background(), Request{Kind: Undo}); err != nil {
		t.Fatal(err)
	}
	want := []string{"outer", "inner", "handler"}
	if !reflect.DeepEqual(trace, want) {
		t.Errorf("trace = %v, want %v", trace, want)
	}
}
