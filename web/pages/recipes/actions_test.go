package recipes

import "testing"

func TestCallbacksDispatch(t *testing.T) {
	var incs, decs []string
	cb := Callbacks{
		OnIncrement: func(id string) { incs = append(incs, id) },
		OnDecrement: func(id string) { decs = append(decs, id) },
	}

	if err := cb.Dispatch(ActionIncrement, "r-1"); err != nil {
		t.Fatalf("Dispatch(increment) unexpected error: %v", err)
	}
	if len(incs) != 1 || incs[0] != "r-1" || len(decs) != 0 {
		t.Errorf("increment should fire once with r-1, got incs=%v decs=%v", incs, decs)
	}

	if err := cb.Dispatch(ActionDecrement, "r-2"); err != nil {
		t.Fatalf("Dispatch(decrement) unexpected error: %v", err)
	}
	if len(decs) != 1 || decs[0] != "r-2" || len(incs) != 1 {
		t.Errorf("decrement should fire once with r-2, got incs=%v decs=%v", incs, decs)
	}
}

func TestCallbacksDispatchErrors(t *testing.T) {
	called := false
	cb := Callbacks{OnIncrement: func(string) { called = true }}

	if err := cb.Dispatch(Action("explode"), "r-1"); err == nil {
		t.Error("expected error for unknown action")
	}
	if err := cb.Dispatch(ActionDecrement, "r-1"); err == nil {
		t.Error("expected error for missing callback")
	}
	if called {
		t.Error("no callback should fire on error")
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in      string
		want    Action
		wantErr bool
	}{
		{"increment", ActionIncrement, false},
		{"DECREMENT", ActionDecrement, false},
		{"", "", true},
		{"add", "", true},
	}

	for _, tt := range tests {
		got, err := ParseAction(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseAction(%q) = %q, %v; want %q, wantErr %v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestActionURL(t *testing.T) {
	tests := []struct {
		base, id string
		action   Action
		want     string
	}{
		{"/box/recipes", "r-1", ActionIncrement, "/box/recipes/r-1/increment"},
		{"/box/recipes/", "r-1", ActionDecrement, "/box/recipes/r-1/decrement"},
		{"/box/recipes", "a b", ActionIncrement, "/box/recipes/a%20b/increment"},
	}

	for _, tt := range tests {
		if got := ActionURL(tt.base, tt.id, tt.action); got != tt.want {
			t.Errorf("ActionURL(%q, %q, %q) = %q; want %q", tt.base, tt.id, tt.action, got, tt.want)
		}
	}
}
