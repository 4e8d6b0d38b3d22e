package jsonpatch

import (
	"testing"

	json "github.com/goccy/go-json"
)

func decode(t *testing.T, s string) interface{} {
	t.Helper()
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("unmarshal %s: %v", s, err)
	}
	return v
}

func TestDiffNoChange(t *testing.T) {
	a := decode(t, `{"treaty": null}`)
	b := decode(t, `{"treaty": null}`)

	if got := string(Diff(a, b)); got != "[]" {
		t.Fatalf("expected empty patch, got %s", got)
	}
}

func TestDiffReplace(t *testing.T) {
	a := decode(t, `{"treaty": null}`)
	b := decode(t, `{"treaty": {"status": "BOUND"}}`)

	got := string(Diff(a, b))
	want := `[{"op":"replace","path":"/treaty","value":{"status":"BOUND"}}]`
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestDiffArrayAppend(t *testing.T) {
	a := decode(t, `{"splits": [{"gross": 1}]}`)
	b := decode(t, `{"splits": [{"gross": 1}, {"gross": 2}]}`)

	got := string(Diff(a, b))
	want := `[{"op":"add","path":"/splits/1","value":{"gross":2}}]`
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestDiffRemoveAndEscape(t *testing.T) {
	a := decode(t, `{"a/b": 1, "keep": 2}`)
	b := decode(t, `{"keep": 2}`)

	got := string(Diff(a, b))
	want := `[{"op":"remove","path":"/a~1b"}]`
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}
