package generator

import (
	"testing"

	"github.com/saffronjam/nativedb/internal/common"
)

func TestFormatName(t *testing.T) {
	tests := []struct {
		raw        string
		convention common.NamingConvention
		want       string
	}{
		{"GET_PLAYER_PED", common.NamingDefault, "GET_PLAYER_PED"},
		{"GET_PLAYER_PED", "", "GET_PLAYER_PED"},
		{"GET_PLAYER_PED", common.NamingCamel, "getPlayerPed"},
		{"GET_PLAYER_PED", common.NamingPascal, "GetPlayerPed"},
		{"GET_PLAYER_PED", common.NamingSnake, "get_player_ped"},
		{"GET_PLAYER_PED", common.NamingLowercase, "getplayerped"},
		{"DoSomethingCool", common.NamingDefault, "DO_SOMETHING_COOL"},
		{"DoSomethingCool", common.NamingCamel, "doSomethingCool"},
		{"DoSomethingCool", common.NamingPascal, "DoSomethingCool"},
		{"SetCharCoordinates", common.NamingSnake, "set_char_coordinates"},
		{"_GET_ENTITY_LEGACY", common.NamingPascal, "GetEntityLegacy"},
		{"SET_VEHICLE_MOD_2", common.NamingCamel, "setVehicleMod2"},
		{"A__B", common.NamingPascal, "AB"},
		{"0x1A2B3C4D", common.NamingDefault, "0X1A2B3C4D"},
		{"0xABCD", common.NamingDefault, "0X_ABCD"},
		{"0xABCD", common.NamingSnake, "0x_abcd"},
		{"ÉtatGlobal", common.NamingCamel, "étatGlobal"},
		{"état_global", common.NamingPascal, "ÉtatGlobal"},
		{"", common.NamingPascal, ""},
	}
	for _, tt := range tests {
		if got := FormatName(tt.raw, tt.convention); got != tt.want {
			t.Errorf("FormatName(%q, %q) = %q, want %q", tt.raw, tt.convention, got, tt.want)
		}
	}
}

func TestFormatNamePascalRoundTrip(t *testing.T) {
	pascal := FormatName("DoSomethingCool", common.NamingPascal)
	if got := FormatName(pascal, common.NamingSnake); got != "do_something_cool" {
		t.Fatalf("snake_case of %q = %q, want do_something_cool", pascal, got)
	}
}

func TestFormatNameConvertsEveryUnderscore(t *testing.T) {
	got := FormatName("A_B_C_D_E", common.NamingCamel)
	if got != "aBCDE" {
		t.Fatalf("got %q, want aBCDE", got)
	}
}
