// Package supabase wires the PostgREST client for the Supabase REST API
// (https://<project>.supabase.co/rest/v1).
package supabase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/supabase-community/postgrest-go"

	"gpevim-backend/internal/config"
)

type Client struct {
	rest    *postgrest.Client
	timeout time.Duration
}

func NewClient(cfg config.SupabaseConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	schema := cfg.Schema
	if schema == "" {
		schema = "public"
	}

	rest := postgrest.NewClient(strings.TrimRight(cfg.URL, "/")+"/rest/v1", schema, map[string]string{
		"apikey":        cfg.Key,
		"Authorization": "Bearer " + cfg.Key,
	})
	return &Client{rest: rest, timeout: timeout}
}

// From starts a query on table.
func (c *Client) From(table string) *postgrest.QueryBuilder {
	return c.rest.From(table)
}

// Run executes a built query and returns early when ctx is done or the
// client timeout elapses. The query itself is not cancellable.
func (c *Client) Run(ctx context.Context, op string, exec func() error) error {
	if c.rest.ClientError != nil {
		return fmt.Errorf("supabase: %s: %w", op, c.rest.ClientError)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- exec() }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("supabase: %s: %w", op, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("supabase: %s: %w", op, ctx.Err())
	}
}

// Ping asks for at most one id of table to check reachability and credentials.
func (c *Client) Ping(ctx context.Context, table string) error {
	return c.Run(ctx, "ping "+table, func() error {
		_, _, err := c.From(table).Select("id", "", false).Limit(1, "").Execute()
		return err
	})
}
