package styles

import (
	"strings"
	"testing"
)

func TestRule(t *testing.T) {
	if got := Rule(0); got != "" {
		t.Errorf("Rule(0) = %q, want empty", got)
	}
	if got := Rule(5); !strings.Contains(got, "=====") {
		t.Errorf("Rule(5) = %q, want five '='", got)
	}
}

func TestTitle_PreservesText(t *testing.T) {
	if got := Title.Render("Extraction Summary"); !strings.Contains(got, "Extraction Summary") {
		t.Errorf("Title.Render() = %q, text lost", got)
	}
}
