package browse

import "testing"

func TestJoaat(t *testing.T) {
	tests := map[string]string{
		"adder":       "0xB779A091",
		"ADDER":       "0xB779A091",
		"player_zero": "0x0D7114C9",
		"a":           "0xCA2E9442",
		"":            "0x00000000",
	}
	for in, want := range tests {
		if got := FormatHash32(Joaat(in)); got != want {
			t.Errorf("Joaat(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestConvertNumber(t *testing.T) {
	tests := []struct {
		base  NumberBase
		value string
		want  NumberForms
	}{
		{BaseSigned, "-1", NumberForms{Signed: -1, Unsigned: 0xFFFFFFFF, Hex: "0xFFFFFFFF", Binary: "0b11111111111111111111111111111111"}},
		{BaseUnsigned, "255", NumberForms{Signed: 255, Unsigned: 255, Hex: "0x000000FF", Binary: "0b00000000000000000000000011111111"}},
		{BaseHex, "0XB779A091", NumberForms{Signed: -1216765807, Unsigned: 0xB779A091, Hex: "0xB779A091", Binary: "0b10110111011110011010000010010001"}},
		{BaseBinary, "0b101", NumberForms{Signed: 5, Unsigned: 5, Hex: "0x00000005", Binary: "0b00000000000000000000000000000101"}},
	}
	for _, tt := range tests {
		got, err := ConvertNumber(tt.base, tt.value)
		if err != nil {
			t.Fatalf("ConvertNumber(%s, %q): %v", tt.base, tt.value, err)
		}
		if got != tt.want {
			t.Errorf("ConvertNumber(%s, %q) = %+v, want %+v", tt.base, tt.value, got, tt.want)
		}
	}

	for _, bad := range []struct {
		base  NumberBase
		value string
	}{{BaseHex, "zz"}, {BaseSigned, ""}, {NumberBase("oct"), "7"}} {
		if _, err := ConvertNumber(bad.base, bad.value); err == nil {
			t.Errorf("ConvertNumber(%s, %q): expected error", bad.base, bad.value)
		}
	}
}
