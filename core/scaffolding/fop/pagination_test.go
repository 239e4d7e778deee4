package fop_test

import (
	"testing"

	"github.com/jharlan/tasklane/core/scaffolding/fop"
)

func TestParsePageDefaults(t *testing.T) {
	p, err := fop.ParsePage("", "")
	if err != nil {
		t.Fatalf("ParsePage: %v", err)
	}
	if p.Number != 1 || p.Size != 20 {
		t.Errorf("page = %+v, want {1 20}", p)
	}
	if p.Offset() != 0 {
		t.Errorf("Offset = %d, want 0", p.Offset())
	}
}

func TestParsePageOffset(t *testing.T) {
	p, err := fop.ParsePage("3", "25")
	if err != nil {
		t.Fatalf("ParsePage: %v", err)
	}
	if p.Offset() != 50 {
		t.Errorf("Offset = %d, want 50", p.Offset())
	}
}

func TestParsePageRejectsBadInput(t *testing.T) {
	cases := []struct{ page, size string }{
		{"0", ""},
		{"-1", ""},
		{"x", ""},
		{"1", "0"},
		{"1", "101"},
		{"1", "x"},
	}
	for _, c := range cases {
		if _, err := fop.ParsePage(c.page, c.size); err == nil {
			t.Errorf("ParsePage(%q, %q) should fail", c.page, c.size)
		}
	}
}
