package wire

import (
	"encoding/json"
	"testing"
)

func TestActionItemOriginString(t *testing.T) {
	var item ActionItem
	if err := json.Unmarshal([]byte(`{"type":"pointerMove","origin":"pointer"}`), &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if item.Origin == nil || item.Origin.Kind != OriginPointer {
		t.Fatalf("expected OriginPointer, got %+v", item.Origin)
	}
}

func TestActionItemOriginElement(t *testing.T) {
	body := `{"type":"pointerMove","origin":{"` + ElementKey + `":"elem-1"}}`
	var item ActionItem
	if err := json.Unmarshal([]byte(body), &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if item.Origin == nil || item.Origin.Kind != OriginElement || item.Origin.Element != "elem-1" {
		t.Fatalf("expected element origin elem-1, got %+v", item.Origin)
	}
}

func TestActionItemOriginAbsent(t *testing.T) {
	var item ActionItem
	if err := json.Unmarshal([]byte(`{"type":"pause","duration":10}`), &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if item.Origin != nil {
		t.Fatalf("expected nil origin, got %+v", item.Origin)
	}
}

func TestActionItemOriginInvalidString(t *testing.T) {
	var item ActionItem
	err := json.Unmarshal([]byte(`{"type":"pointerMove","origin":"bogus"}`), &item)
	if err == nil {
		t.Fatal("expected error for unrecognized origin string")
	}
}

func TestSwitchToFrameParametersNull(t *testing.T) {
	var p SwitchToFrameParameters
	if err := json.Unmarshal([]byte(`{"id":null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.ID != nil {
		t.Fatalf("expected nil frame id, got %+v", p.ID)
	}
}

func TestSwitchToFrameParametersElement(t *testing.T) {
	body := `{"id":{"` + ElementKey + `":"elem-7"}}`
	var p SwitchToFrameParameters
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.ID == nil || p.ID.Element == nil || *p.ID.Element != "elem-7" {
		t.Fatalf("expected element frame id elem-7, got %+v", p.ID)
	}
}

func TestSwitchToFrameParametersNumeric(t *testing.T) {
	var p SwitchToFrameParameters
	if err := json.Unmarshal([]byte(`{"id":0}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.ID == nil || p.ID.Element != nil {
		t.Fatalf("expected present-but-unsupported frame id, got %+v", p.ID)
	}
}

func TestPrefsResponseMarshalPreservesOrder(t *testing.T) {
	r := PrefsResponse{Prefs: []NamedPref{
		{Name: "b", Value: IntPref(2)},
		{Name: "a", Value: StringPref("x")},
	}}
	out, err := r.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"b":2,"a":"x"}`
	if string(out) != want {
		t.Fatalf("got %s, want %s", out, want)
	}
}

func TestErrorHTTPStatusDefaultsTo500(t *testing.T) {
	if HTTPStatus(ErrorStatus("made up")) != 500 {
		t.Fatal("expected unrecognized status to default to 500")
	}
}
