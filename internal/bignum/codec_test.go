package bignum

import (
	"encoding/json"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func TestJSON(t *testing.T) {
	type payload struct {
		Value Int `json:"value"`
	}
	in := payload{Value: MustParse("-123456789012345678901234567890")}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"value":"-123456789012345678901234567890"}` {
		t.Fatalf("unexpected JSON %s", data)
	}
	var out payload
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if !out.Value.Equal(in.Value) {
		t.Fatalf("got %s, want %s", out.Value, in.Value)
	}

	if err := json.Unmarshal([]byte(`{"value":12345678901234567890123}`), &out); err != nil {
		t.Fatal(err)
	}
	mustEqual(t, out.Value, "12345678901234567890123")

	if err := json.Unmarshal([]byte(`{"value":"x"}`), &out); err == nil {
		t.Fatalf("expected error for malformed value")
	}
}

func TestMsgpack(t *testing.T) {
	values := []Int{Zero(), MustParse("-1"), MustParse("98765432109876543210987654321")}
	for _, v := range values {
		data, err := msgpack.Marshal(v)
		if err != nil {
			t.Fatal(err)
		}
		var out Int
		if err := msgpack.Unmarshal(data, &out); err != nil {
			t.Fatal(err)
		}
		checkCanonical(t, out)
		if !out.Equal(v) {
			t.Fatalf("got %s, want %s", out, v)
		}
	}
}

func TestText(t *testing.T) {
	var x Int
	if err := x.UnmarshalText([]byte("-77")); err != nil {
		t.Fatal(err)
	}
	b, err := x.MarshalText()
	if err != nil || string(b) != "-77" {
		t.Fatalf("MarshalText = %q, %v", b, err)
	}
}
