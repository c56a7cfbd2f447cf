package handler

import (
	"encoding/json"

	"github.com/use-agent/wdbridge/session"
)

// processCapabilities merges the capabilities a NewSession request
// asked for into sess (timeouts, page load strategy, strict file
// interactability, unhandled prompt behavior) and returns the
// processed capability object the response hands back to the client.
// Only a W3C-shaped capabilities object (a "capabilities.alwaysMatch"
// object, or a bare flat object as a lenient fallback) is honored;
// legacy (non-W3C) negotiation is acknowledged but never produces
// different behavior, per the Non-goals.
func processCapabilities(sess *session.Session, requested map[string]any) map[string]any {
	flat := flattenCapabilities(requested)

	if v, ok := flat["pageLoadStrategy"].(string); ok && v != "" {
		sess.PageLoadStrategy = v
	}
	if v, ok := flat["strictFileInteractability"].(bool); ok {
		sess.StrictFileInteractability = v
	}
	if v, ok := flat["unhandledPromptBehavior"].(string); ok && v != "" {
		sess.UnhandledPromptBehavior = session.PromptBehavior(v)
	}
	if timeouts, ok := flat["timeouts"].(map[string]any); ok {
		applyTimeouts(sess, timeouts)
	}

	processed := map[string]any{
		"browserName":               "wdbridge",
		"browserVersion":            "",
		"platformName":              "linux",
		"acceptInsecureCerts":       boolOr(flat["acceptInsecureCerts"], false),
		"pageLoadStrategy":          sess.PageLoadStrategy,
		"strictFileInteractability": sess.StrictFileInteractability,
		"unhandledPromptBehavior":   string(sess.UnhandledPromptBehavior),
		"setWindowRect":             true,
		"timeouts":                  currentTimeoutsMap(sess),
	}
	if proxy, ok := flat["proxy"]; ok {
		processed["proxy"] = proxy
	}
	return processed
}

// flattenCapabilities accepts either the full W3C {capabilities:
// {alwaysMatch: {...}, firstMatch: [...]}} envelope or a bare
// capabilities object, and returns a single merged map: alwaysMatch
// plus the first entry of firstMatch, if present.
func flattenCapabilities(requested map[string]any) map[string]any {
	out := map[string]any{}
	caps, ok := requested["capabilities"].(map[string]any)
	if !ok {
		// Legacy shape or already-flat: treat the whole body as the
		// capability set.
		for k, v := range requested {
			out[k] = v
		}
		return out
	}
	if always, ok := caps["alwaysMatch"].(map[string]any); ok {
		for k, v := range always {
			out[k] = v
		}
	}
	if first, ok := caps["firstMatch"].([]any); ok && len(first) > 0 {
		if m, ok := first[0].(map[string]any); ok {
			for k, v := range m {
				out[k] = v
			}
		}
	}
	return out
}

func applyTimeouts(sess *session.Session, timeouts map[string]any) {
	if v, ok := numberOr(timeouts["script"]); ok {
		ms := int64(v)
		sess.ScriptTimeoutMs = &ms
	}
	if v, ok := numberOr(timeouts["pageLoad"]); ok {
		sess.PageLoadTimeoutMs = int64(v)
	}
	if v, ok := numberOr(timeouts["implicit"]); ok {
		sess.ImplicitWaitMs = int64(v)
	}
}

func currentTimeoutsMap(sess *session.Session) map[string]any {
	m := map[string]any{
		"pageLoad": sess.PageLoadTimeoutMs,
		"implicit": sess.ImplicitWaitMs,
	}
	if sess.ScriptTimeoutMs != nil {
		m["script"] = *sess.ScriptTimeoutMs
	} else {
		m["script"] = nil
	}
	return m
}

func boolOr(v any, fallback bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return fallback
}

func numberOr(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

func marshalJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}
