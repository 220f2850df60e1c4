package dedup

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase and trim", "  Coffee House  ", "coffee house"},
		{"collapse whitespace", "Coffee   House", "coffee house"},
		{"punctuation stripped", `"Coffee-House!"`, "coffeehouse"},
		{"numero suffix", "Coffee House №3", "coffee house"},
		{"branch suffix", "Кофейня филиал 2", "кофейня"},
		{"department suffix", "Банк отделение 14", "банк"},
		{"shop suffix", "Пекарня магазин", "пекарня"},
		{"trailing digits", "Аптека 24", "аптека"},
		{"mall token", "Кофейня ТЦ Керуен", "кофейнякеруен"},
		{"parenthetical", "Кофейня (второй этаж)", "кофейня"},
		{"after comma", "Кофейня, правое крыло", "кофейня"},
		{"suffix before comma", "Кофейня филиал 2, правое крыло", "кофейня"},
		{"placeholder", "Не указано", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Re-applying Normalize to an already normalized name must change nothing.
func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Coffee House №3",
		"Кофейня филиал 2 (ТЦ Хан Шатыр)",
		"Sushi Bar, фудкорт",
		"Аптека 24",
		"plain name",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestSimilar(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical", "улица Кенесары, 40", "улица Кенесары, 40", true},
		{"house number differs", "Main St 12", "Main St 12-A", true},
		{"different street", "Main St 12", "Side St 45", false},
		{"empty left", "", "Main St 12", false},
		{"empty right", "Main St 12", "", false},
		{"both empty", "", "", false},
		{"digits only", "12 34", "12 34", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similar(tt.a, tt.b); got != tt.want {
				t.Errorf("Similar(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := Similar(tt.b, tt.a); got != tt.want {
				t.Errorf("Similar(%q, %q) = %v, want %v (asymmetric)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}
