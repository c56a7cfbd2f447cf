package session

import "testing"

func TestNewAppliesDefaults(t *testing.T) {
	s := New("ctx-1")

	if s.ScriptTimeoutMs == nil || *s.ScriptTimeoutMs != DefaultScriptTimeoutMs {
		t.Fatalf("expected script timeout default %d, got %v", DefaultScriptTimeoutMs, s.ScriptTimeoutMs)
	}
	if s.PageLoadTimeoutMs != DefaultLoadTimeoutMs {
		t.Fatalf("expected page load timeout default %d, got %d", DefaultLoadTimeoutMs, s.PageLoadTimeoutMs)
	}
	if s.ImplicitWaitMs != DefaultImplicitWaitMs {
		t.Fatalf("expected implicit wait default %d, got %d", DefaultImplicitWaitMs, s.ImplicitWaitMs)
	}
	if s.PageLoadStrategy != DefaultPageLoadStrategy {
		t.Fatalf("expected page load strategy %q, got %q", DefaultPageLoadStrategy, s.PageLoadStrategy)
	}
	if s.StrictFileInteractability {
		t.Fatalf("expected strict file interactability false by default")
	}
	if s.UnhandledPromptBehavior != DismissAndNotify {
		t.Fatalf("expected dismiss and notify, got %q", s.UnhandledPromptBehavior)
	}
	if s.ID == "" {
		t.Fatalf("expected a generated session id")
	}
}

func TestCancelListReplayIsReversed(t *testing.T) {
	table := NewInputStateTable()
	table.PushCancel(CancelAction{SourceID: "a", Type: "keyUp", Value: "1"})
	table.PushCancel(CancelAction{SourceID: "a", Type: "keyUp", Value: "2"})
	table.PushCancel(CancelAction{SourceID: "a", Type: "keyUp", Value: "3"})

	got := table.DrainCancelReversed()
	want := []string{"3", "2", "1"}
	for i, w := range want {
		if got[i].Value != w {
			t.Fatalf("index %d: want %q, got %q", i, w, got[i].Value)
		}
	}

	if more := table.DrainCancelReversed(); len(more) != 0 {
		t.Fatalf("expected cancel list to be drained, got %v", more)
	}
}

func TestGetOrCreatePersistsState(t *testing.T) {
	table := NewInputStateTable()
	s1 := table.GetOrCreate("mouse", PointerSource)
	s1.X, s1.Y = 10, 20

	s2 := table.GetOrCreate("mouse", PointerSource)
	if s2.X != 10 || s2.Y != 20 {
		t.Fatalf("expected the same source state to persist, got %+v", s2)
	}
}
