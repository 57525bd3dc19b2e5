package locale

import "testing"

func TestTranslatorLookup(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		key    string
		args   []any
		want   string
	}{
		{
			name:   "english message with args",
			locale: English,
			key:    "validation.required",
			args:   []any{"name"},
			want:   "name is required",
		},
		{
			name:   "portuguese message with args",
			locale: BrazilianPortuguese,
			key:    "validation.required",
			args:   []any{"name"},
			want:   "name é obrigatório",
		},
		{
			name:   "unknown locale falls back to english",
			locale: "fr",
			key:    "relationship.end_before_start",
			want:   "end date must be after start date",
		},
		{
			name:   "unknown key returns the key",
			locale: English,
			key:    "does.not.exist",
			want:   "does.not.exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTranslator(tt.locale)
			got := tr.T(tt.key, tt.args...)
			if got != tt.want {
				t.Errorf("T(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestSupported(t *testing.T) {
	if !Supported(English) || !Supported(BrazilianPortuguese) {
		t.Error("expected en and pt-BR catalogs to exist")
	}
	if Supported("de") {
		t.Error("did not expect a German catalog")
	}
}

func TestCatalogsCoverSameKeys(t *testing.T) {
	en := catalogs[English]
	for loc, catalog := range catalogs {
		if loc == English {
			continue
		}
		for key := range en {
			if _, ok := catalog[key]; !ok {
				t.Errorf("locale %s is missing key %s", loc, key)
			}
		}
		for key := range catalog {
			if _, ok := en[key]; !ok {
				t.Errorf("locale %s has key %s absent from english", loc, key)
			}
		}
	}
}
