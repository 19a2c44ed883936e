package llm

import (
	"errors"
	"strings"
)

// Kind tags an upstream failure so callers can map it without re-parsing text.
type Kind int

const (
	KindOther Kind = iota
	KindAuth
	KindQuota
	KindModelNotFound
)

// Error is a classified upstream failure produced by a concrete client.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Classify resolves the failure kind for err. Typed errors built by a concrete
// client are trusted as-is; anything opaque falls back to substring matching on
// the message text.
func Classify(err error) Kind {
	var uerr *Error
	if errors.As(err, &uerr) {
		return uerr.Kind
	}
	return ClassifyMessage(err.Error())
}

// ClassifyMessage matches msg against the known upstream failure signatures,
// case-insensitively. Order matters: first match wins.
func ClassifyMessage(msg string) Kind {
	m := strings.ToLower(msg)
	switch {
	case strings.Contains(m, "api key not valid"):
		return KindAuth
	case strings.Contains(m, "quota"):
		return KindQuota
	case strings.Contains(m, "model not found"):
		return KindModelNotFound
	default:
		return KindOther
	}
}
