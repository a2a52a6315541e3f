// Package feature routes assistant requests to mode-specific handlers
// that share one chat completion backend.
package feature

import (
	"errors"
	"fmt"
)

// Kind identifies an assistant mode.
type Kind string

const (
	KindTutor     Kind = "tutor"
	KindExplainer Kind = "explainer"
	KindTeacher   Kind = "teacher"
	KindGenerator Kind = "generator"
)

// ErrUnknownKind is returned when a request names a mode that is not
// registered.
var ErrUnknownKind = errors.New("unknown assistant mode")

// Feature is one assistant mode: a system prompt that steers the shared
// backend toward that mode's behavior.
type Feature interface {
	Kind() Kind
	SystemPrompt() string
}

type feature struct {
	kind   Kind
	prompt string
}

func (f feature) Kind() Kind           { return f.kind }
func (f feature) SystemPrompt() string { return f.prompt }

var registry = map[Kind]Feature{
	KindTutor: feature{
		kind: KindTutor,
		prompt: "You are a patient programming tutor. Answer questions step by " +
			"step, check the student's understanding, and prefer guiding " +
			"questions over finished solutions.",
	},
	KindExplainer: feature{
		kind: KindExplainer,
		prompt: "You explain code. Given a snippet, describe what it does, walk " +
			"through the control flow, and point out pitfalls or idioms worth " +
			"knowing.",
	},
	KindTeacher: feature{
		kind: KindTeacher,
		prompt: "You teach programming concepts. Introduce the concept, give a " +
			"minimal example, then build up to realistic usage. Keep each " +
			"lesson self-contained.",
	},
	KindGenerator: feature{
		kind: KindGenerator,
		prompt: "You generate code. Produce a complete, runnable solution for " +
			"the request, with brief notes on the choices made. No placeholder " +
			"stubs.",
	},
}

// Lookup resolves a mode name to its Feature.
func Lookup(kind Kind) (Feature, error) {
	f, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("lookup %q: %w", kind, ErrUnknownKind)
	}
	return f, nil
}

// Kinds returns the registered mode names in a stable order.
func Kinds() []Kind {
	return []Kind{KindTutor, KindExplainer, KindTeacher, KindGenerator}
}
