package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PrefKind tags the underlying JSON primitive a PrefValue carries.
type PrefKind int

const (
	PrefMissing PrefKind = iota
	PrefBool
	PrefString
	PrefFloat
	PrefInt
)

// PrefValue is a tagged variant over bool/string/float/int/missing,
// serialized as the underlying JSON primitive and deserialized by
// dispatch on token kind — the Go equivalent of the original's
// serde Visitor-based WebDriverPrefValue (de)serializer.
type PrefValue struct {
	Kind PrefKind
	B    bool
	S    string
	F    float64
	I    int64
}

func BoolPref(b bool) PrefValue     { return PrefValue{Kind: PrefBool, B: b} }
func StringPref(s string) PrefValue { return PrefValue{Kind: PrefString, S: s} }
func FloatPref(f float64) PrefValue { return PrefValue{Kind: PrefFloat, F: f} }
func IntPref(i int64) PrefValue     { return PrefValue{Kind: PrefInt, I: i} }
func MissingPref() PrefValue        { return PrefValue{Kind: PrefMissing} }

func (p PrefValue) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case PrefBool:
		return json.Marshal(p.B)
	case PrefString:
		return json.Marshal(p.S)
	case PrefFloat:
		return json.Marshal(p.F)
	case PrefInt:
		return json.Marshal(p.I)
	default:
		return json.Marshal(nil)
	}
}

func (p *PrefValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*p = MissingPref()
		return nil
	case bytes.Equal(data, []byte("true")):
		*p = BoolPref(true)
		return nil
	case bytes.Equal(data, []byte("false")):
		*p = BoolPref(false)
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = StringPref(s)
		return nil
	case len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')):
		var i int64
		if err := json.Unmarshal(data, &i); err == nil && !bytes.ContainsAny(data, ".eE") {
			*p = IntPref(i)
			return nil
		}
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		*p = FloatPref(f)
		return nil
	default:
		return fmt.Errorf("wire: unrecognized preference value %q", data)
	}
}

// GetPrefsParameters is the body of /servo/prefs/get and /servo/prefs/reset.
type GetPrefsParameters struct {
	Prefs []string `json:"prefs"`
}

// NamedPref is one (name, value) pair, preserving caller-specified order.
type NamedPref struct {
	Name  string
	Value PrefValue
}

// SetPrefsParameters is the body of /servo/prefs/set: an ordered sequence
// of (name, value) pairs decoded from a JSON object, preserving the
// caller's key order (the Go analogue of the original's
// TupleVecMapVisitor over a serde map).
type SetPrefsParameters struct {
	Prefs []NamedPref
}

func (p *SetPrefsParameters) UnmarshalJSON(data []byte) error {
	var envelope struct {
		Prefs json.RawMessage `json:"prefs"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	if len(envelope.Prefs) == 0 || bytes.Equal(bytes.TrimSpace(envelope.Prefs), []byte("null")) {
		p.Prefs = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(envelope.Prefs))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("wire: prefs must be a JSON object")
	}
	var pairs []NamedPref
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("wire: preference key must be a string")
		}
		var v PrefValue
		if err := dec.Decode(&v); err != nil {
			return err
		}
		pairs = append(pairs, NamedPref{Name: key, Value: v})
	}
	p.Prefs = pairs
	return nil
}

// PrefsResponse is the response to GetPrefs and ResetPrefs: an ordered sequence of
// (name, value) pairs serialized as a JSON object, preserving the order
// the caller's prefs list (or the store's iteration order) produced —
// mirroring SetPrefsParameters' order-preserving decode on the way out.
type PrefsResponse struct {
	Prefs []NamedPref
}

func (r PrefsResponse) responseValue() any { return r }

func (r PrefsResponse) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, pair := range r.Prefs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(pair.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(pair.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
