package sanitizer

import "testing"

func TestSanitizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"e164 brazilian number kept", "+5511999990000", "+5511999990000"},
		{"missing plus gets parsed", "5511999990000", "+5511999990000"},
		{"us number with prefix", "+12125550123", "+12125550123"},
		{"separators stripped", "+1 (212) 555-0123", "+12125550123"},
		{"empty passes through", "", ""},
		{"garbage passes through for validator", "not-a-phone", "not-a-phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizePhone(tt.input); got != tt.want {
				t.Errorf("SanitizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
