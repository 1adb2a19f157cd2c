package config

import "testing"

func TestRange(t *testing.T) {
	r := Range{Min: 1, Max: 10}

	tests := []struct {
		name      string
		in        float64
		clamp     float64
		normalize float64
		contains  bool
	}{
		{"下界", 1, 1, 0, true},
		{"上界", 10, 10, 1, true},
		{"中间", 5.5, 5.5, 0.5, true},
		{"低于下界", -3, 1, 0, false},
		{"高于上界", 20, 10, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Clamp(tt.in); got != tt.clamp {
				t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.clamp)
			}
			if got := r.Normalize(tt.in); got != tt.normalize {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.normalize)
			}
			if got := r.Contains(tt.in); got != tt.contains {
				t.Errorf("Contains(%v) = %v, want %v", tt.in, got, tt.contains)
			}
		})
	}

	if got := r.Lerp(0.5); got != 5.5 {
		t.Errorf("Lerp(0.5) = %v, want 5.5", got)
	}
	if got := (Range{Min: 2, Max: 2}).Normalize(2); got != 0 {
		t.Errorf("退化区间 Normalize = %v, want 0", got)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
		wantErr bool
	}{
		{"#FFA500", 0xff, 0xa5, 0x00, false},
		{"3366ff", 0x33, 0x66, 0xff, false},
		{" #cccccc ", 0xcc, 0xcc, 0xcc, false},
		{"#FFF", 0, 0, 0, true},
		{"#GGGGGG", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseHexColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHexColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				if MustParseHexColor(tt.in).R != 0xff {
					t.Error("MustParseHexColor 失败时应返回白色")
				}
				return
			}
			if c.R != tt.r || c.G != tt.g || c.B != tt.b || c.A != 0xff {
				t.Errorf("ParseHexColor(%q) = %v", tt.in, c)
			}
		})
	}
}
