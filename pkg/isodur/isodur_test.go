package isodur

import "testing"

func TestParseSeconds(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"seconds only", "PT45S", 45, false},
		{"minutes seconds", "PT4M13S", 253, false},
		{"hours minutes seconds", "PT1H2M3S", 3723, false},
		{"hours only", "PT2H", 7200, false},
		{"days and time", "P1DT4H", 100800, false},
		{"weeks", "P2W", 1209600, false},
		{"zero", "PT0S", 0, false},
		{"live placeholder", "P0D", 0, false},
		{"empty", "", 0, true},
		{"no P prefix", "T1H", 0, true},
		{"bare P", "P", 0, true},
		{"minutes without T are months", "P10M", 0, true},
		{"designator without value", "PTS", 0, true},
		{"trailing number", "PT5", 0, true},
		{"garbage", "1:02:03", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSeconds(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseSeconds(%q) = %d, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSeconds(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseSeconds(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
