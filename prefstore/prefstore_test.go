package prefstore

import (
	"testing"

	"github.com/use-agent/wdbridge/wire"
)

func TestSetGetRoundTrip(t *testing.T) {
	s := New()
	s.Set([]wire.NamedPref{{Name: "custom.flag", Value: wire.BoolPref(true)}})

	got := s.Get([]string{"custom.flag"})
	if len(got) != 1 || got[0].Value.Kind != wire.PrefBool || !got[0].Value.B {
		t.Fatalf("unexpected get result: %+v", got)
	}
}

func TestGetMissingReturnsMissingKind(t *testing.T) {
	s := New()
	got := s.Get([]string{"does.not.exist"})
	if len(got) != 1 || got[0].Value.Kind != wire.PrefMissing {
		t.Fatalf("expected missing pref, got %+v", got)
	}
}

func TestResetAllRestoresDefaults(t *testing.T) {
	s := New()
	s.Set([]wire.NamedPref{{Name: "dom.webdriver.enabled", Value: wire.BoolPref(false)}})
	s.Reset(nil)

	got := s.Get([]string{"dom.webdriver.enabled"})
	if !got[0].Value.B {
		t.Fatalf("expected reset to restore default true, got %+v", got[0].Value)
	}
}

func TestResetNamedWithNoDefaultDeletes(t *testing.T) {
	s := New()
	s.Set([]wire.NamedPref{{Name: "custom.flag", Value: wire.BoolPref(true)}})
	s.Reset([]string{"custom.flag"})

	got := s.Get([]string{"custom.flag"})
	if got[0].Value.Kind != wire.PrefMissing {
		t.Fatalf("expected reset of undefaulted pref to clear it, got %+v", got[0].Value)
	}
}
