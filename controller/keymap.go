package controller

import "github.com/go-rod/rod/lib/input"

// specialKeys maps the W3C "normalized key value" private-use-area
// codepoints (see the Keys glossary in the selenium reference client)
// to go-rod's named key constants. Characters outside this table but
// present in input.Keys (ordinary letters, digits, punctuation) are
// resolved through that map directly; anything in neither map is
// rejected by resolveKey.
var specialKeys = map[rune]input.Key{
	'': input.Backspace,
	'': input.Tab,
	'': input.Enter,
	'': input.Enter,
	'': input.AltLeft,
	'': input.ControlLeft,
	'': input.ShiftLeft,
	'': input.Escape,
	'': input.Space,
	'': input.ArrowLeft,
	'': input.ArrowUp,
	'': input.ArrowRight,
	'': input.ArrowDown,
	'': input.Delete,
	'': input.MetaLeft,
}

// resolveKey translates a single W3C key value into a go-rod input key.
// Multi-rune values (a full string passed to KeyDown/KeyUp rather than
// one code point) are never valid per the actions wire format and are
// rejected.
func resolveKey(value string) (input.Key, bool) {
	runes := []rune(value)
	if len(runes) != 1 {
		return 0, false
	}
	if k, ok := specialKeys[runes[0]]; ok {
		return k, true
	}
	if k, ok := input.Keys[runes[0]]; ok {
		return k, true
	}
	return 0, false
}
