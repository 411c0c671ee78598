// Package agent defines the handler boundary the dispatcher calls into.
// Handlers are black boxes from the dispatcher's point of view: they get
// the session, the user, the input and the typed history, and give back
// one answer string.
package agent

import (
	"context"

	"nihongo-tutor-be/pkg/chat"
)

type Request struct {
	SessionID int64
	UserID    string
	Input     string
	History   []chat.Turn
}

type Response struct {
	Output string
}

type Handler interface {
	Handle(ctx context.Context, request *Request) (*Response, error)
}

// Registry maps intents to handlers. Built once at bootstrap; read-only
// afterwards, so no locking.
type Registry struct {
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

func (r *Registry) Register(intent string, handler Handler) {
	r.handlers[intent] = handler
}

func (r *Registry) Lookup(intent string) (Handler, bool) {
	handler, ok := r.handlers[intent]
	return handler, ok
}
