package schema

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestMarshal(t *testing.T) {
	data, err := Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		t.Fatalf("schema should end with a newline")
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("schema is not valid JSON: %v", err)
	}
	if doc["title"] != title {
		t.Fatalf("title = %v, want %q", doc["title"], title)
	}

	text := string(data)
	for _, want := range []string{`"namespaces"`, `"entries"`, `"hash"`, `"returns"`, `^0[xX][0-9A-Fa-f]+$`} {
		if !strings.Contains(text, want) {
			t.Fatalf("schema missing %s:\n%s", want, text)
		}
	}
}

func TestCatalogIsStable(t *testing.T) {
	first, err := Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	second, err := Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("schema output is not deterministic")
	}
}
