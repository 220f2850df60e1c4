package extract

import (
	"testing"

	"github.com/leadforge/giscrawl/browser"
)

func TestNameFromHeading(t *testing.T) {
	p := &fakePage{els: map[string][]browser.Element{
		"h1": {textEl("  Coffee House  ")},
	}}
	if got := Name(p); got != "Coffee House" {
		t.Errorf("Name() = %q, want %q", got, "Coffee House")
	}
}

func TestNameFallsBackDownChain(t *testing.T) {
	p := &fakePage{els: map[string][]browser.Element{
		"h1":                {textEl("")},
		`[class*="title"]`:  {textEl("Кофейня Арома")},
		`[class*="header"]`: {textEl("never reached")},
	}}
	if got := Name(p); got != "Кофейня Арома" {
		t.Errorf("Name() = %q, want %q", got, "Кофейня Арома")
	}
}

func TestNameMissing(t *testing.T) {
	p := &fakePage{}
	if got := Name(p); got != "" {
		t.Errorf("Name() on empty page = %q, want empty", got)
	}
}
