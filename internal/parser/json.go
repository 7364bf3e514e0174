package parser

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/iancoleman/orderedmap"

	"github.com/saffronjam/nativedb/internal/common"
)

// Field aliases in priority order. Upstream databases disagree on naming.
var (
	nameKeys    = []string{"name", "NativeName", "hashName"}
	hashKeys    = []string{"hash", "Hash", "native"}
	commentKeys = []string{"comment", "desc", "description"}
	paramsKeys  = []string{"params", "Params", "arguments", "args"}
	returnsKeys = []string{"returns", "return", "return_type"}
)

type jsonParser struct{}

func (jsonParser) Format() common.Format { return common.FormatJSON }

func (jsonParser) Parse(data []byte) (*common.Catalog, Stats, error) {
	return parseJSON(data)
}

// ParseJSON converts a namespace → hash → record JSON object into a catalog.
// Namespaces and entries keep the key order of the input document.
func ParseJSON(data []byte) (*common.Catalog, error) {
	cat, _, err := parseJSON(data)
	return cat, err
}

func parseJSON(data []byte) (*common.Catalog, Stats, error) {
	var stats Stats

	root := orderedmap.New()
	if err := json.Unmarshal(data, root); err != nil {
		return nil, stats, fmt.Errorf("decode native json: %w", err)
	}

	b := common.NewCatalogBuilder()
	for _, ns := range root.Keys() {
		value, _ := root.Get(ns)
		raw, err := json.Marshal(value)
		if err != nil || !isJSONObject(raw) {
			stats.Skipped++
			continue
		}

		records := orderedmap.New()
		if err := json.Unmarshal(raw, records); err != nil {
			return nil, stats, fmt.Errorf("decode namespace %s: %w", ns, err)
		}

		b.Ensure(ns)
		for _, key := range records.Keys() {
			value, _ := records.Get(key)
			raw, err := json.Marshal(value)
			if err != nil {
				stats.Skipped++
				continue
			}
			entry, ok := decodeRecord(key, raw)
			if !ok {
				stats.Skipped++
				continue
			}
			b.Add(ns, entry)
			stats.Entries++
		}
	}

	return b.Catalog(), stats, nil
}

// decodeRecord normalizes one native record stored under key. Records are
// objects with aliased fields, or positional [name, hash] arrays.
func decodeRecord(key string, raw []byte) (common.Entry, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return common.Entry{}, false
	}

	switch raw[0] {
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return common.Entry{}, false
		}
		hash := common.FirstNonEmpty(stringField(fields, hashKeys...), key)
		return common.Entry{
			Name:    common.FirstNonEmpty(stringField(fields, nameKeys...), hash),
			Hash:    hash,
			Comment: stringField(fields, commentKeys...),
			Params:  common.DefaultParams(paramsField(fields)),
			Returns: common.FirstNonEmpty(stringField(fields, returnsKeys...), common.DefaultType),
		}, true
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return common.Entry{}, false
		}
		var name, hash string
		if len(items) > 0 {
			name = asString(items[0])
		}
		if len(items) > 1 {
			hash = asString(items[1])
		}
		hash = common.FirstNonEmpty(hash, key)
		return common.Entry{
			Name:    common.FirstNonEmpty(name, hash),
			Hash:    hash,
			Params:  []common.Param{},
			Returns: common.DefaultType,
		}, true
	default:
		return common.Entry{}, false
	}
}

func stringField(fields map[string]json.RawMessage, keys ...string) string {
	for _, k := range keys {
		if v := asString(fields[k]); v != "" {
			return v
		}
	}
	return ""
}

func paramsField(fields map[string]json.RawMessage) []common.Param {
	for _, k := range paramsKeys {
		raw, ok := fields[k]
		if !ok {
			continue
		}
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil || items == nil {
			continue
		}
		params := make([]common.Param, 0, len(items))
		for _, item := range items {
			var p map[string]json.RawMessage
			if err := json.Unmarshal(item, &p); err != nil {
				params = append(params, common.Param{})
				continue
			}
			params = append(params, common.Param{
				Type: asString(p["type"]),
				Name: asString(p["name"]),
			})
		}
		return params
	}
	return []common.Param{}
}

func asString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func isJSONObject(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}
