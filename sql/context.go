package sql

import (
	"context"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
)

// Context carries a query's cancellation signal, session state and
// observability hooks through every layer of the core: expression
// evaluation, optimizer rule application and physical execution. It is the
// single piece of ambient state threaded through the pull-based producer
// tree (spec.md §4.3's "mutable transaction handle" is a
// storage.Transaction passed to the executor alongside Context, not held by
// Context or its Session).
type Context struct {
	context.Context
	Session *Session
	logger  *logrus.Entry
}

// NewContext wraps a context.Context with a Session, attaching a
// session-scoped structured logger.
func NewContext(parent context.Context, session *Session) *Context {
	if parent == nil {
		parent = context.Background()
	}
	logger := logrus.WithField("session", session.ID)
	return &Context{Context: parent, Session: session, logger: logger}
}

// NewEmptyContext builds a Context over a fresh Session and
// context.Background(), for tests and simple embeddings.
func NewEmptyContext() *Context {
	return NewContext(context.Background(), NewSession())
}

// GetLogger returns the session-scoped structured logger.
func (c *Context) GetLogger() *logrus.Entry { return c.logger }

// Span starts an opentracing span for the named operation, mirroring the
// teacher's per-operator execution spans. The returned finish function must
// be called (typically deferred) when the traced operation completes.
func (c *Context) Span(name string) (opentracing.Span, func()) {
	span := opentracing.StartSpan(name)
	return span, span.Finish
}
