package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type neo4jClient struct {
	driver   neo4j.DriverWithContext
	database string
	txConfig []func(*neo4j.TransactionConfig)
}

// NewNeo4jClient opens a Bolt driver and checks the server is reachable.
func NewNeo4jClient(ctx context.Context, opts Options) (Client, error) {
	if opts.URI == "" {
		return nil, ErrMissingURI
	}

	auth := neo4j.NoAuth()
	if opts.Username != "" {
		auth = neo4j.BasicAuth(opts.Username, opts.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(opts.URI, auth, func(c *neo4j.Config) {
		if opts.MaxConnections > 0 {
			c.MaxConnectionPoolSize = opts.MaxConnections
		}
	})
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify graph connectivity: %w", err)
	}

	client := &neo4jClient{driver: driver, database: opts.Database}
	if opts.QueryTimeout > 0 {
		client.txConfig = append(client.txConfig, neo4j.WithTxTimeout(opts.QueryTimeout))
	}
	return client, nil
}

// Execute runs cypher in a managed transaction, which the driver retries on
// transient failures such as leader switches. Records are collected before
// the transaction commits.
func (c *neo4jClient) Execute(ctx context.Context, mode AccessMode, cypher string, params map[string]any) (Result, error) {
	driverMode := neo4j.AccessModeRead
	if mode == WriteAccess {
		driverMode = neo4j.AccessModeWrite
	}
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.database,
		AccessMode:   driverMode,
	})
	defer session.Close(ctx)

	work := func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		rows, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		records := make([]Record, 0, len(rows))
		for _, row := range rows {
			records = append(records, Record(row.AsMap()))
		}
		return records, nil
	}

	var (
		out any
		err error
	)
	if mode == WriteAccess {
		out, err = session.ExecuteWrite(ctx, work, c.txConfig...)
	} else {
		out, err = session.ExecuteRead(ctx, work, c.txConfig...)
	}
	if err != nil {
		return Result{}, fmt.Errorf("%s transaction: %w", mode, err)
	}
	return Result{Records: out.([]Record)}, nil
}

func (c *neo4jClient) VerifyConnectivity(ctx context.Context) error {
	return c.driver.VerifyConnectivity(ctx)
}

func (c *neo4jClient) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}
