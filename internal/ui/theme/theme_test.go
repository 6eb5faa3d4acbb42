package theme

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"", "dark", false},
		{"dark", "dark", false},
		{"light", "light", false},
		{"solarized", "", true},
	}

	for _, tt := range tests {
		th, err := Lookup(tt.name)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Lookup(%q): expected error", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("Lookup(%q): %v", tt.name, err)
			continue
		}
		if th.Name != tt.want {
			t.Errorf("Lookup(%q).Name = %q, want %q", tt.name, th.Name, tt.want)
		}
	}
}

func TestPalettesDiffer(t *testing.T) {
	if Light.Text == Dark.Text {
		t.Error("light and dark text colors should differ")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 2 || names[0] != "dark" || names[1] != "light" {
		t.Errorf("Names() = %v", names)
	}
}
