package graph

import (
	"context"
	"maps"
	"sync"
)

// MemoryClient is an in-memory Client for tests. Canned results are keyed by
// access mode and statement, so callers issuing queries concurrently still
// receive the right rows.
type MemoryClient struct {
	mu          sync.Mutex
	calls       []ExecutedQuery
	responses   map[statementKey][]Result
	failures    map[string]error
	failAll     error
	unreachable error
}

type statementKey struct {
	mode   AccessMode
	cypher string
}

// ExecutedQuery records one statement run against the client.
type ExecutedQuery struct {
	Mode   AccessMode
	Query  string
	Params map[string]any
}

// NewMemoryClient returns a client that answers every statement with no rows.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		responses: make(map[statementKey][]Result),
		failures:  make(map[string]error),
	}
}

// Respond queues res for the next run of cypher in mode.
func (m *MemoryClient) Respond(mode AccessMode, cypher string, res Result) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := statementKey{mode: mode, cypher: cypher}
	m.responses[key] = append(m.responses[key], res)
	return m
}

// Fail makes every run of cypher return err.
func (m *MemoryClient) Fail(cypher string, err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[cypher] = err
	return m
}

// FailAll makes every statement return err.
func (m *MemoryClient) FailAll(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failAll = err
	return m
}

// Unreachable makes VerifyConnectivity return err.
func (m *MemoryClient) Unreachable(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unreachable = err
	return m
}

func (m *MemoryClient) Execute(_ context.Context, mode AccessMode, cypher string, params map[string]any) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failAll != nil {
		return Result{}, m.failAll
	}
	if err := m.failures[cypher]; err != nil {
		return Result{}, err
	}
	m.calls = append(m.calls, ExecutedQuery{Mode: mode, Query: cypher, Params: maps.Clone(params)})

	key := statementKey{mode: mode, cypher: cypher}
	queued := m.responses[key]
	if len(queued) == 0 {
		return Result{}, nil
	}
	m.responses[key] = queued[1:]
	return queued[0], nil
}

func (m *MemoryClient) VerifyConnectivity(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unreachable
}

func (m *MemoryClient) Close(context.Context) error {
	return nil
}

// Calls returns the statements run in mode, in execution order.
func (m *MemoryClient) Calls(mode AccessMode) []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ExecutedQuery
	for _, c := range m.calls {
		if c.Mode == mode {
			out = append(out, c)
		}
	}
	return out
}
