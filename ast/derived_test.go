package ast_test

import (
	"strings"
	"testing"

	"github.com/strukt-dev/strukt/ast"
)

func userSchema() *ast.Struct {
	return ast.MustStruct([]ast.Field{
		{Key: ast.StringKey("id"), Type: ast.StringKeyword()},
		{Key: ast.StringKey("name"), Type: ast.StringKeyword()},
		{Key: ast.StringKey("age"), Type: ast.NumberKeyword(), IsOptional: true},
	}, nil)
}

func fieldByName(fields []ast.Field, name string) (ast.Field, bool) {
	for _, f := range fields {
		if f.Key.Name == name {
			return f, true
		}
	}
	return ast.Field{}, false
}

func TestGetFields_UnionCommonKeys(t *testing.T) {
	a := ast.MustStruct([]ast.Field{
		{Key: ast.StringKey("id"), Type: ast.StringKeyword()},
		{Key: ast.StringKey("a"), Type: ast.StringKeyword()},
	}, nil)
	b := ast.MustStruct([]ast.Field{
		{Key: ast.StringKey("id"), Type: ast.NumberKeyword(), IsOptional: true},
		{Key: ast.StringKey("b"), Type: ast.StringKeyword()},
	}, nil)

	fields := ast.GetFields(ast.NewUnion(a, b))
	if len(fields) != 1 {
		t.Fatalf("expected only the shared key, got %v", fields)
	}
	f := fields[0]
	if f.Key.Name != "id" {
		t.Fatalf("expected id, got %q", f.Key.Name)
	}
	if !f.IsOptional {
		t.Fatalf("optionality should widen across members")
	}
	u, ok := f.Type.(*ast.Union)
	if !ok || len(u.Members) != 2 {
		t.Fatalf("field type should union member types, got %#v", f.Type)
	}
}

func TestPropertyKeys(t *testing.T) {
	keys := ast.PropertyKeys(userSchema())
	if len(keys) != 3 {
		t.Fatalf("expected 3 keys, got %v", keys)
	}
	if ast.PropertyKeys(ast.StringKeyword()) != nil {
		t.Fatalf("non-keyed nodes have no property keys")
	}
}

func TestPick(t *testing.T) {
	s := userSchema()
	picked, err := ast.Pick(s, ast.StringKey("id"), ast.StringKey("age"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(picked.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %v", picked.Fields)
	}
	if _, ok := fieldByName(picked.Fields, "name"); ok {
		t.Fatalf("name should not survive pick")
	}

	_, err = ast.Pick(s, ast.StringKey("missing"))
	if err == nil || !strings.Contains(err.Error(), "not present") {
		t.Fatalf("expected missing-key error, got %v", err)
	}
}

func TestOmit(t *testing.T) {
	s := userSchema()
	rest, err := ast.Omit(s, ast.StringKey("age"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rest.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %v", rest.Fields)
	}
	if _, ok := fieldByName(rest.Fields, "age"); ok {
		t.Fatalf("age should be omitted")
	}
	// omitting an absent key is not an error
	if _, err := ast.Omit(s, ast.StringKey("missing")); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestPartial_Struct(t *testing.T) {
	p := ast.Partial(userSchema())
	st, ok := p.(*ast.Struct)
	if !ok {
		t.Fatalf("expected struct, got %#v", p)
	}
	for _, f := range st.Fields {
		if !f.IsOptional {
			t.Fatalf("field %s should be optional after partial", f.Key)
		}
	}
}

func TestPartial_TupleWidensRest(t *testing.T) {
	tp := ast.MustTuple(
		[]ast.Element{{Type: ast.StringKeyword()}},
		[]ast.AST{ast.NumberKeyword()},
		false,
	)
	p := ast.Partial(tp)
	got, ok := p.(*ast.Tuple)
	if !ok {
		t.Fatalf("expected tuple, got %#v", p)
	}
	if !got.Elements[0].IsOptional {
		t.Fatalf("tuple element should be optional after partial")
	}
	u, ok := got.Rest[0].(*ast.Union)
	if !ok {
		t.Fatalf("rest type should widen to a union, got %#v", got.Rest[0])
	}
	sawUndefined := false
	for _, m := range u.Members {
		if m.Kind() == ast.KindUndefined {
			sawUndefined = true
		}
	}
	if !sawUndefined {
		t.Fatalf("rest union should include undefined, got %#v", u.Members)
	}
}

func TestPartial_UnionDistributesAndLazyStaysLazy(t *testing.T) {
	u := ast.NewUnion(userSchema(), ast.MustStruct([]ast.Field{
		{Key: ast.StringKey("x"), Type: ast.StringKeyword()},
		{Key: ast.StringKey("y"), Type: ast.NumberKeyword()},
	}, nil))
	p, ok := ast.Partial(u).(*ast.Union)
	if !ok {
		t.Fatalf("expected union, got %#v", ast.Partial(u))
	}
	for _, m := range p.Members {
		st := m.(*ast.Struct)
		for _, f := range st.Fields {
			if !f.IsOptional {
				t.Fatalf("member field %s should be optional", f.Key)
			}
		}
	}

	calls := 0
	l := ast.NewLazy(func() ast.AST {
		calls++
		return userSchema()
	})
	pl := ast.Partial(l)
	if calls != 0 {
		t.Fatalf("partial must not force the lazy producer")
	}
	resolved := pl.(*ast.Lazy).Resolve().(*ast.Struct)
	for _, f := range resolved.Fields {
		if !f.IsOptional {
			t.Fatalf("resolved field %s should be optional", f.Key)
		}
	}
}
