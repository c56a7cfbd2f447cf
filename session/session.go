// Package session holds per-session WebDriver state: timeouts, the
// active browsing context, and the live input device table that
// PerformActions/ReleaseActions mutate.
package session

import (
	"github.com/google/uuid"
)

// Default timeout values applied to a freshly created session, mirroring
// the defaults Servo's WebDriverSession assigns.
const (
	DefaultScriptTimeoutMs  int64 = 30000
	DefaultLoadTimeoutMs    int64 = 300000
	DefaultImplicitWaitMs   int64 = 0
	DefaultPageLoadStrategy       = "normal"
)

// PromptBehavior is the unhandled-prompt-behavior capability value.
type PromptBehavior string

const DismissAndNotify PromptBehavior = "dismiss and notify"

// Session is the server-side record for one WebDriver session. A
// *Session is only ever touched from the Handler goroutine that owns
// the HTTP request currently being served; the Handler itself
// serializes access to it (see handler.Handler), so Session carries no
// locking of its own.
type Session struct {
	ID string

	// BrowsingContextID and TopLevelBrowsingContextID identify the
	// Controller-side page this session is bound to. They are equal
	// until frame-switching support grows beyond "top level only".
	BrowsingContextID         string
	TopLevelBrowsingContextID string

	ScriptTimeoutMs   *int64 // nil means "no timeout"
	PageLoadTimeoutMs int64
	ImplicitWaitMs    int64

	PageLoadStrategy          string
	StrictFileInteractability bool
	UnhandledPromptBehavior   PromptBehavior

	// Inputs is the live input-source state table, keyed by source id.
	Inputs *InputStateTable
}

// New creates a Session bound to the given browsing context, with the
// default timeouts and prompt behavior the WebDriver spec requires of a
// freshly negotiated session.
func New(browsingContextID string) *Session {
	return &Session{
		ID:                        uuid.NewString(),
		BrowsingContextID:         browsingContextID,
		TopLevelBrowsingContextID: browsingContextID,
		ScriptTimeoutMs:           int64Ptr(DefaultScriptTimeoutMs),
		PageLoadTimeoutMs:         DefaultLoadTimeoutMs,
		ImplicitWaitMs:            DefaultImplicitWaitMs,
		PageLoadStrategy:          DefaultPageLoadStrategy,
		StrictFileInteractability: false,
		UnhandledPromptBehavior:   DismissAndNotify,
		Inputs:                    NewInputStateTable(),
	}
}

func int64Ptr(v int64) *int64 { return &v }
