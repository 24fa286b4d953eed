// Package graph wraps the Neo4j driver behind a single-statement interface so
// the repository can be exercised against an in-memory double.
package graph

import (
	"context"
	"errors"
	"time"
)

// AccessMode routes a statement to a reader or writer.
type AccessMode int

const (
	ReadAccess AccessMode = iota
	WriteAccess
)

func (m AccessMode) String() string {
	if m == WriteAccess {
		return "write"
	}
	return "read"
}

// Client runs one Cypher statement per call inside a retried transaction.
type Client interface {
	Execute(ctx context.Context, mode AccessMode, cypher string, params map[string]any) (Result, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Result holds the records returned by one statement.
type Result struct {
	Records []Record
}

// Record maps returned column names to values.
type Record map[string]any

// Options configures a Neo4j client.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
	// QueryTimeout bounds each transaction server-side; zero uses the server default.
	QueryTimeout time.Duration
}

// ErrMissingURI indicates the graph URI is not provided.
var ErrMissingURI = errors.New("graph URI is required")
