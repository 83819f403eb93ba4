package dex

import "testing"

func TestMethod_String(t *testing.T) {
	m := Method{Owner: "Lfoo/Bar;", Name: "baz", Params: []string{"I", "Ljava/lang/String;"}, Return: "V"}
	want := "Lfoo/Bar;->baz(ILjava/lang/String;)V"
	if got := m.String(); got != want {
		t.Errorf("Method.String() = %q, want %q", got, want)
	}
}

func TestMethod_Equal(t *testing.T) {
	a := Method{Owner: "Lfoo;", Name: "m", Params: []string{"I"}, Return: "V"}
	b := Method{Owner: "Lfoo;", Name: "m", Params: []string{"I"}, Return: "V"}
	c := Method{Owner: "Lfoo;", Name: "m", Params: []string{"J"}, Return: "V"}
	if !a.Equal(b) {
		t.Error("expected identical methods to be Equal")
	}
	if a.Equal(c) {
		t.Error("expected methods with different params to not be Equal")
	}
}

func TestField_String(t *testing.T) {
	f := Field{Owner: "Lfoo;", Name: "count", Type: "I"}
	want := "Lfoo;->count:I"
	if got := f.String(); got != want {
		t.Errorf("Field.String() = %q, want %q", got, want)
	}
}

func TestVisibility_String(t *testing.T) {
	tests := []struct {
		v    Visibility
		want string
	}{
		{VisibilityBuild, "BUILD"},
		{VisibilityRuntime, "RUNTIME"},
		{VisibilitySystem, "SYSTEM"},
		{Visibility(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("Visibility(%d).String() = %q, want %q", tt.v, got, tt.want)
		}
	}
}
