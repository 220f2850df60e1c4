package decode

import (
	"encoding/base64"
	"strings"
	"testing"
)

// redirect builds a link.2gis.com URL whose payload is the base64 of text
// with the padding stripped, the way the platform serves them.
func redirect(text string) string {
	encoded := strings.TrimRight(base64.StdEncoding.EncodeToString([]byte(text)), "=")
	return "https://" + RedirectHost + "/" + encoded
}

func TestWebsite_PaddingVariants(t *testing.T) {
	// Payload lengths chosen so the stripped base64 requires zero, one and
	// two padding characters respectively.
	tests := []struct {
		name string
		text string
		want string
	}{
		{"no padding", "https://coffeeshop.kz", "https://coffeeshop.kz"},
		{"one pad", "x https://coffeeshop.kz", "https://coffeeshop.kz"},
		{"two pads", " https://coffeeshop.kz", "https://coffeeshop.kz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Website(redirect(tt.text))
			if !ok {
				t.Fatalf("Website(%q payload) found nothing", tt.text)
			}
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("Website = %q, want prefix %q", got, tt.want)
			}
		})
	}
}

func TestWebsite_BareDomain(t *testing.T) {
	got, ok := Website(redirect("follow redirect to bestcoffee.com today"))
	if !ok {
		t.Fatal("expected a decoded website")
	}
	if got != "https://bestcoffee.com" {
		t.Errorf("Website = %q, want %q", got, "https://bestcoffee.com")
	}
}

func TestWebsite_ExcludedHosts(t *testing.T) {
	for _, text := range []string{
		"https://2gis.kz/astana/firm/123",
		"https://maps.google.com/place",
		"https://market.yandex.ru/shop",
	} {
		if got, ok := Website(redirect(text)); ok {
			t.Errorf("Website decoded excluded host %q into %q", text, got)
		}
	}
}

func TestWebsite_NonRedirectLink(t *testing.T) {
	if _, ok := Website("https://example.com/aGVsbG8"); ok {
		t.Error("non-redirect link must not decode")
	}
}

func TestWebsite_QueryAndFragmentStripped(t *testing.T) {
	link := redirect("visit https://coffeeshop.kz") + "?utm=app#frag"
	got, ok := Website(link)
	if !ok || !strings.HasPrefix(got, "https://coffeeshop.kz") {
		t.Errorf("Website with query/fragment = %q, %v", got, ok)
	}
}

func TestWebsite_GarbagePayload(t *testing.T) {
	if got, ok := Website("https://" + RedirectHost + "/!!!not-base64!!!"); ok {
		t.Errorf("garbage payload decoded to %q", got)
	}
}

func TestWhatsApp(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"full link", "open https://wa.me/77011234567 in app", "https://wa.me/77011234567"},
		{"bare path", "contact wa.me/77011234567 please", "https://wa.me/77011234567"},
		{"send scheme", "whatsapp://send?phone=77011234567", "https://wa.me/77011234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WhatsApp(redirect(tt.text))
			if !ok {
				t.Fatal("expected a decoded WhatsApp link")
			}
			if got != tt.want {
				t.Errorf("WhatsApp = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWhatsApp_NoMatch(t *testing.T) {
	if got, ok := WhatsApp(redirect("nothing interesting here")); ok {
		t.Errorf("expected no match, got %q", got)
	}
}
