package provider

import (
	"fmt"
	"strings"
)

// Static is the deterministic bottom tier. It never fails: every role and
// context maps to some canned response, with generic role-interpolated
// templates backing the per-role tables.
type Static struct {
	lib *Library
}

// NewStatic wraps a response library. A nil library gets the defaults.
func NewStatic(lib *Library) *Static {
	if lib == nil {
		lib = DefaultLibrary()
	}
	return &Static{lib: lib}
}

// Name identifies this tier in attempts and logs.
func (s *Static) Name() string {
	return "static"
}

// Library exposes the backing library, e.g. for the hot-reload watcher.
func (s *Static) Library() *Library {
	return s.lib
}

// Respond picks a canned response for the role and context. The variant
// index is a pure function of the context string, so identical inputs
// always produce identical output.
func (s *Static) Respond(role, context string) string {
	cat := CategorizeContext(context)

	if variants := s.lib.Variants(role, cat); len(variants) > 0 {
		idx := len(strings.TrimSpace(context)) % len(variants)
		return variants[idx]
	}
	return genericResponse(role, cat)
}

// genericResponse covers roles or categories with no table entry.
func genericResponse(role string, cat ResponseCategory) string {
	if role == "" {
		role = "counsel"
	}
	switch cat {
	case CategoryOpening:
		return fmt.Sprintf("As the %s, I will present my case according to legal standards and professional ethics.", role)
	case CategoryEvidence:
		return fmt.Sprintf("I will address this evidence according to the rules of evidence and my professional obligations as %s.", role)
	case CategoryClosing:
		return fmt.Sprintf("In conclusion, based on the evidence and legal principles presented, I maintain my position as %s.", role)
	case CategoryObjection:
		return "I will consider this matter according to legal precedent and procedural rules."
	case CategoryCross:
		return "I will conduct this examination according to professional standards and legal ethics."
	default:
		return fmt.Sprintf("As %s, I will proceed according to legal protocol and professional standards.", role)
	}
}
