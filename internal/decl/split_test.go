package decl

import "testing"

func TestSplitItems(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "blank", input: " ", expected: nil},
		{name: "single", input: "int a", expected: []string{"int a"}},
		{name: "top-level commas", input: "a,b,c", expected: []string{"a", "b", "c"}},
		{name: "comma in parens", input: "f(a, b), g()", expected: []string{"f(a, b)", " g()"}},
		{name: "comma in angles", input: "map<a, b> m, int n", expected: []string{"map<a, b> m", " int n"}},
		{name: "trailing comma", input: "a,", expected: []string{"a", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitItems(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %d items, got %d", len(tt.expected), len(got))
			}
			for i, it := range got {
				if it.text != tt.expected[i] {
					t.Errorf("Item %d: expected %q, got %q", i, tt.expected[i], it.text)
				}
				if it.pos != i+1 {
					t.Errorf("Item %d: expected position %d, got %d", i, i+1, it.pos)
				}
				if it.problem != "" {
					t.Errorf("Item %d: unexpected problem %q", i, it.problem)
				}
			}
		})
	}
}

func TestSplitItemsFlagsBrokenNesting(t *testing.T) {
	got := splitItems("void f(int a, void g())")
	if len(got) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(got))
	}

	got = splitItems("void f(int a")
	if len(got) != 1 || got[0].problem != "unbalanced parentheses" {
		t.Errorf("Expected unbalanced parentheses, got %+v", got)
	}

	got = splitItems("void f()), int b")
	if len(got) != 2 || got[0].problem == "" || got[1].problem != "" {
		t.Errorf("Expected only the first item flagged, got %+v", got)
	}
}

func TestMatchParen(t *testing.T) {
	tests := []struct {
		input    string
		open     int
		expected int
	}{
		{"f()", 1, 2},
		{"f(g(x))", 1, 6},
		{"f(g(x)", 1, -1},
	}
	for _, tt := range tests {
		if got := matchParen(tt.input, tt.open); got != tt.expected {
			t.Errorf("matchParen(%q, %d): expected %d, got %d", tt.input, tt.open, tt.expected, got)
		}
	}
}
