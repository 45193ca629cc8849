package main

import (
	"context"
	"fmt"

	// Packages
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	api "github.com/mutablelogic/go-cdp/pkg/api"
	block "github.com/mutablelogic/go-cdp/pkg/block"
	journal "github.com/mutablelogic/go-cdp/pkg/journal"
	manager "github.com/mutablelogic/go-cdp/pkg/manager"
	schema "github.com/mutablelogic/go-cdp/pkg/schema"
	server "github.com/mutablelogic/go-server"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Config embeds a CDP server into a larger go-server-hosted process: unlike
// the standalone cmd/cdpd binary, the HTTP router and (optionally) a
// Postgres connection pool are supplied by the host process rather than
// parsed from the command line.
type Config struct {
	Router      server.HTTPRouter `kong:"-"` // HTTP Router
	Conn        server.PG         `kong:"-"` // Connection Pool, for the Postgres journal backend
	Store       string            `name:"store" env:"CDP_STORE" help:"Block store URL (file://, mem://, s3://)" default:"file:///var/lib/cdp/blocks"`
	JournalDir  string            `name:"journal-dir" env:"CDP_JOURNAL_DIR" help:"Directory for the file-based metadata journal, ignored when Conn is set" default:"/var/lib/cdp/meta"`
	S3Endpoint  string            `name:"s3-endpoint" help:"Custom S3-compatible endpoint for the s3:// block store, e.g. a MinIO instance"`
	S3Anonymous bool              `name:"s3-anonymous" help:"Use anonymous, unsigned S3 requests for the s3:// block store"`
}

type task struct {
	mgr *manager.Manager
}

var _ server.Plugin = Config{}
var _ server.Task = task{}

////////////////////////////////////////////////////////////////////////////////
// MODULE

func (c Config) New(ctx context.Context) (server.Task, error) {
	var blockOpts []block.Opt
	if c.S3Anonymous || c.S3Endpoint != "" {
		cfg := awssdk.Config{}
		if c.S3Anonymous {
			cfg.Credentials = awssdk.AnonymousCredentials{}
		}
		blockOpts = append(blockOpts, block.WithAWSConfig(cfg))
		if c.S3Endpoint != "" {
			blockOpts = append(blockOpts, block.WithEndpoint(c.S3Endpoint))
		}
	}

	store, err := block.New(ctx, c.Store, schema.DefaultFanoutLevel, blockOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open block store: %w", err)
	}
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize block store: %w", err)
	}

	var j journal.Journal
	if c.Conn != nil {
		j, err = journal.NewPostgresJournal(ctx, c.Conn.Conn())
	} else {
		j, err = journal.NewFileJournal(c.JournalDir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	mgr, err := manager.New(ctx, store, j)
	if err != nil {
		return nil, fmt.Errorf("failed to create manager: %w", err)
	}

	if c.Router != nil {
		api.RegisterHandlers(ctx, "", c.Router, mgr, "cdp")
	}

	// Drive the writer pool in the background; Run below only tracks the
	// task's own lifecycle, matching the other plugins in this process.
	go func() {
		_ = mgr.Run(ctx)
	}()

	return &task{mgr}, nil
}

func (Config) Name() string {
	return "cdp"
}

func (Config) Description() string {
	return "Continuous data protection backup server"
}

////////////////////////////////////////////////////////////////////////////////
// TASK

func (t task) Run(ctx context.Context) error {
	// Wait for context to be done
	<-ctx.Done()

	// Return success
	return t.mgr.Close()
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func Plugin() server.Plugin {
	return Config{}
}
