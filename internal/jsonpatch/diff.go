package jsonpatch

import (
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Op is a single RFC 6902 patch operation.
type Op struct {
	Op    string      `json:"op"`
	Path  string      `json:"path"`
	Value interface{} `json:"value,omitempty"`
}

var emptyPatch = []byte("[]")

// Diff computes an RFC 6902 JSON Patch that transforms a into b, marshaled
// for embedding in a response. Both values must come from unmarshaling
// JSON into interface{}. Object keys are visited in sorted order so the
// patch is deterministic.
func Diff(a, b interface{}) []byte {
	ops := diffValue(a, b, "")
	if len(ops) == 0 {
		return emptyPatch
	}
	buf, err := json.Marshal(ops)
	if err != nil {
		return emptyPatch
	}
	return buf
}

func diffValue(a, b interface{}, path string) []Op {
	if a == nil && b == nil {
		return nil
	}
	if a == nil || b == nil {
		return []Op{{Op: "replace", Path: path, Value: b}}
	}

	if aObj, ok := a.(map[string]interface{}); ok {
		if bObj, ok := b.(map[string]interface{}); ok {
			return diffObjects(aObj, bObj, path)
		}
	}

	if aArr, ok := a.([]interface{}); ok {
		if bArr, ok := b.([]interface{}); ok {
			return diffArrays(aArr, bArr, path)
		}
	}

	// Different types or different primitive values
	if a != b {
		return []Op{{Op: "replace", Path: path, Value: b}}
	}
	return nil
}

func diffObjects(a, b map[string]interface{}, path string) []Op {
	var ops []Op

	for _, k := range sortedKeys(a) {
		if _, ok := b[k]; !ok {
			ops = append(ops, Op{Op: "remove", Path: path + "/" + escapeKey(k)})
		}
	}

	for _, k := range sortedKeys(b) {
		childPath := path + "/" + escapeKey(k)
		av, inA := a[k]
		if !inA {
			ops = append(ops, Op{Op: "add", Path: childPath, Value: b[k]})
			continue
		}
		ops = append(ops, diffValue(av, b[k], childPath)...)
	}

	return ops
}

func diffArrays(a, b []interface{}, path string) []Op {
	var ops []Op

	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	for i := 0; i < minLen; i++ {
		ops = append(ops, diffValue(a[i], b[i], path+"/"+strconv.Itoa(i))...)
	}
	for i := minLen; i < len(b); i++ {
		ops = append(ops, Op{Op: "add", Path: path + "/" + strconv.Itoa(i), Value: b[i]})
	}
	// Remove trailing elements back to front so indexes stay valid.
	for i := len(a) - 1; i >= minLen; i-- {
		ops = append(ops, Op{Op: "remove", Path: path + "/" + strconv.Itoa(i)})
	}

	return ops
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func escapeKey(k string) string {
	if !strings.ContainsAny(k, "~/") {
		return k
	}
	k = strings.ReplaceAll(k, "~", "~0")
	return strings.ReplaceAll(k, "/", "~1")
}
