package crawl

import (
	"context"
	"fmt"
	"testing"
)

func hrefs(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("/firm/%s%d", prefix, i)
	}
	return out
}

func TestCollectStopsAtLimitOnFirstPage(t *testing.T) {
	listing := &fakeListing{pages: [][]string{hrefs("a", 20), hrefs("b", 20)}}
	pg := NewPaginator(listing, fastCrawler(), testLogger())

	links, err := pg.Collect(context.Background(), 20)
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}
	if len(links) != 20 {
		t.Fatalf("Collect() returned %d links, want 20", len(links))
	}
	if listing.idx != 0 {
		t.Errorf("listing advanced to page %d, want stop on page 1", listing.idx+1)
	}
}

func TestCollectTruncatesToLimit(t *testing.T) {
	listing := &fakeListing{pages: [][]string{hrefs("a", 25)}}
	pg := NewPaginator(listing, fastCrawler(), testLogger())

	links, err := pg.Collect(context.Background(), 10)
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}
	if len(links) != 10 {
		t.Errorf("Collect() returned %d links, want 10", len(links))
	}
}

func TestCollectHaltsAfterConsecutiveAdvanceFailures(t *testing.T) {
	listing := &fakeListing{
		pages:      [][]string{{"/firm/1", "/firm/2"}},
		noControls: true,
	}
	pg := NewPaginator(listing, fastCrawler(), testLogger())

	links, err := pg.Collect(context.Background(), 100)
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}
	want := []string{baseURL + "/firm/1", baseURL + "/firm/2"}
	if len(links) != len(want) {
		t.Fatalf("Collect() returned %v, want %v", links, want)
	}
	for i := range want {
		if links[i] != want[i] {
			t.Errorf("links[%d] = %q, want %q", i, links[i], want[i])
		}
	}
}

func TestCollectStopsOnZeroNewLinks(t *testing.T) {
	listing := &fakeListing{pages: [][]string{
		{"/firm/L1", "/firm/L2"},
		{"/firm/L2", "/firm/L3"},
		{},
	}}
	pg := NewPaginator(listing, fastCrawler(), testLogger())

	links, err := pg.Collect(context.Background(), 100)
	if err != nil {
		t.Fatalf("Collect() error: %v", err)
	}
	want := []string{baseURL + "/firm/L1", baseURL + "/firm/L2", baseURL + "/firm/L3"}
	if len(links) != len(want) {
		t.Fatalf("Collect() returned %v, want %v", links, want)
	}
	for i := range want {
		if links[i] != want[i] {
			t.Errorf("links[%d] = %q, want %q", i, links[i], want[i])
		}
	}
	if listing.idx != 2 {
		t.Errorf("halted on page %d, want page 3", listing.idx+1)
	}
}

func TestCollectHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	listing := &fakeListing{pages: [][]string{hrefs("a", 5)}}
	pg := NewPaginator(listing, fastCrawler(), testLogger())

	if _, err := pg.Collect(ctx, 100); err == nil {
		t.Error("Collect() with cancelled context returned nil error")
	}
}

func TestAbsoluteLink(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"/firm/123", baseURL + "/firm/123"},
		{"https://2gis.kz/firm/123", "https://2gis.kz/firm/123"},
		{"javascript:void(0)", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := absoluteLink(tt.href); got != tt.want {
			t.Errorf("absoluteLink(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}
