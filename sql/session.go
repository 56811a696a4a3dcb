package sql

import "github.com/google/uuid"

// Session holds per-connection configuration: the ambient "config" surface
// for this embeddable engine (spec.md's AMBIENT STACK). A real deployment
// would also carry the current database/schema and authenticated user;
// those are out of the query-processing core's scope.
type Session struct {
	ID uuid.UUID

	// OptimizerBatchIterationCap bounds how many passes a single HepGraph
	// rule batch may run before the driver gives up waiting for a fixpoint
	// (spec.md §4.2's "per-batch iteration cap").
	OptimizerBatchIterationCap int

	variables map[string]interface{}
}

// NewSession creates a Session with default configuration.
func NewSession() *Session {
	return &Session{
		ID:                         uuid.New(),
		OptimizerBatchIterationCap: 64,
		variables:                  make(map[string]interface{}),
	}
}

func (s *Session) SetVariable(name string, value interface{}) {
	s.variables[name] = value
}

func (s *Session) GetVariable(name string) (interface{}, bool) {
	v, ok := s.variables[name]
	return v, ok
}
