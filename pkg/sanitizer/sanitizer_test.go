package sanitizer

import "testing"

func TestSanitizeCboCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already normalized", "2521-05", "2521-05"},
		{"bare digits", "252105", "2521-05"},
		{"dot separator", "2521.05", "2521-05"},
		{"surrounding spaces", "  2521-05 ", "2521-05"},
		{"empty passes through", "", ""},
		{"too few digits untouched", "2521-5", "2521-5"},
		{"letters untouched", "abcd-ef", "abcd-ef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeCboCode(tt.input); got != tt.want {
				t.Errorf("SanitizeCboCode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeCountry(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"br", "BR"},
		{" us ", "US"},
		{"BR", "BR"},
		{"Brazil", "Brazil"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SanitizeCountry(tt.input); got != tt.want {
			t.Errorf("SanitizeCountry(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims edges", "  São Paulo  ", "São Paulo"},
		{"collapses runs", "Porto\t\tAlegre", "Porto Alegre"},
		{"newlines become spaces", "Rio de\nJaneiro", "Rio de Janeiro"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail(" Consul@Example.COM "); got != "consul@example.com" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}
