package extract

import (
	"testing"

	"github.com/leadforge/giscrawl/browser"
)

func TestAddressFromContainer(t *testing.T) {
	p := &fakePage{els: map[string][]browser.Element{
		`[class*="address"]`: {textEl("улица Абая, 10")},
	}}
	if got := Address(p); got != "улица Абая, 10" {
		t.Errorf("Address() = %q, want %q", got, "улица Абая, 10")
	}
}

func TestAddressFromPageText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "street with number",
			text: "Кофейня находится по адресу улица Абая, 10 в центре города",
			want: "улица Абая, 10 в центре города",
		},
		{
			name: "avenue",
			text: "Адрес: проспект Мангилик Ел, 55",
			want: "проспект Мангилик Ел, 55",
		},
		{
			name: "no address",
			text: "Лучший кофе в городе",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakePage{fullText: tt.text}
			if got := Address(p); got != tt.want {
				t.Errorf("Address() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAddressPrefersContainerOverText(t *testing.T) {
	p := &fakePage{
		els: map[string][]browser.Element{
			`[class*="location"]`: {textEl("проспект Республики, 3")},
		},
		fullText: "улица Абая, 10",
	}
	if got := Address(p); got != "проспект Республики, 3" {
		t.Errorf("Address() = %q, want container value", got)
	}
}
