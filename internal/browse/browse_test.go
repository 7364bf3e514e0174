package browse

import (
	"reflect"
	"testing"

	"github.com/saffronjam/nativedb/internal/common"
)

func testCatalog() *common.Catalog {
	return common.NewCatalog(
		common.Namespace{Name: "PLAYER", Entries: []common.Entry{
			{Name: "PLAYER_PED_ID", Hash: "0xD80958FC74E988A6", Params: []common.Param{}, Returns: "Ped"},
			{Name: "GET_PLAYER_PED", Hash: "0x43A66C31C68491C0", Params: []common.Param{{Type: "Player", Name: "player"}}, Returns: "Ped"},
		}},
		common.Namespace{Name: "ENTITY", Entries: []common.Entry{
			{Name: "SET_ENTITY_COORDS", Hash: "0x06843DA7060A026B", Params: []common.Param{
				{Type: "Entity", Name: "entity"},
				{Type: "float", Name: "xPos"},
			}, Returns: "void"},
			{Name: "GET_ENTITY_MODEL", Hash: "0x9F47B058362C84B5", Params: []common.Param{{Type: "Entity", Name: "entity"}}},
		}},
		common.Namespace{Name: "AUDIO", Entries: []common.Entry{}},
	)
}

func TestNamespaces(t *testing.T) {
	cat := testCatalog()

	all := Namespaces(cat, "")
	want := []NamespaceSummary{{"AUDIO", 0}, {"ENTITY", 2}, {"PLAYER", 2}}
	if !reflect.DeepEqual(all, want) {
		t.Fatalf("Namespaces = %v, want %v", all, want)
	}

	filtered := Namespaces(cat, "ti")
	if !reflect.DeepEqual(filtered, []NamespaceSummary{{"ENTITY", 2}}) {
		t.Fatalf("filtered = %v", filtered)
	}

	if got := Namespaces(cat, "nothing"); len(got) != 0 || got == nil {
		t.Fatalf("expected empty non-nil result, got %#v", got)
	}
	if Total(cat) != 4 {
		t.Fatalf("Total = %d, want 4", Total(cat))
	}
}

func TestSearch(t *testing.T) {
	cat := testCatalog()

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{"global by name", Query{Text: "player_ped"}, []string{"PLAYER_PED_ID", "GET_PLAYER_PED"}},
		{"global by hash", Query{Text: "9f47b0"}, []string{"GET_ENTITY_MODEL"}},
		{"namespace only", Query{Namespace: "ENTITY"}, []string{"SET_ENTITY_COORDS", "GET_ENTITY_MODEL"}},
		{"unknown namespace", Query{Namespace: "NOPE"}, []string{}},
		{"return type", Query{ReturnType: "ped"}, []string{"PLAYER_PED_ID", "GET_PLAYER_PED"}},
		{"missing return counts as void", Query{Namespace: "ENTITY", ReturnType: "void"}, []string{"SET_ENTITY_COORDS", "GET_ENTITY_MODEL"}},
		{"param type", Query{ParamType: "FLOAT"}, []string{"SET_ENTITY_COORDS"}},
		{"combined", Query{Text: "get", ParamType: "entity"}, []string{"GET_ENTITY_MODEL"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, m := range Search(cat, tt.query) {
				got = append(got, m.Entry.Name)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Search(%+v) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestSearchReportsNamespace(t *testing.T) {
	matches := Search(testCatalog(), Query{Text: "COORDS"})
	if len(matches) != 1 || matches[0].Namespace != "ENTITY" {
		t.Fatalf("unexpected matches %+v", matches)
	}
}

func TestFindByHash(t *testing.T) {
	cat := common.NewCatalog(common.Namespace{Name: "NS", Entries: []common.Entry{
		{Name: "A", Hash: "0x00ab"},
		{Name: "B", Hash: "NOT_HEX"},
	}})

	tests := []struct {
		hash  string
		name  string
		found bool
	}{
		{"0xAB", "A", true},
		{"ab", "A", true},
		{"0x0000000000AB", "A", true},
		{"not_hex", "B", true},
		{"0xAC", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		m, ok := FindByHash(cat, tt.hash)
		if ok != tt.found || m.Entry.Name != tt.name {
			t.Errorf("FindByHash(%q) = %+v, %v; want %q, %v", tt.hash, m, ok, tt.name, tt.found)
		}
	}
	if _, ok := FindByHash(nil, "0x1"); ok {
		t.Fatalf("nil catalog must not match")
	}
}
