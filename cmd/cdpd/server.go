package main

import (
	"context"
	"fmt"
	"net/http"

	// Packages
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"
	errgroup "golang.org/x/sync/errgroup"

	api "github.com/mutablelogic/go-cdp/pkg/api"
	block "github.com/mutablelogic/go-cdp/pkg/block"
	journal "github.com/mutablelogic/go-cdp/pkg/journal"
	manager "github.com/mutablelogic/go-cdp/pkg/manager"
	schema "github.com/mutablelogic/go-cdp/pkg/schema"
	version "github.com/mutablelogic/go-cdp/pkg/version"
	server "github.com/mutablelogic/go-server"
	httprouter "github.com/mutablelogic/go-server/pkg/httprouter"
	httpserver "github.com/mutablelogic/go-server/pkg/httpserver"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ServerCommands struct {
	Run RunServerCommand `cmd:"" name:"run" help:"Run the backup server." group:"SERVER"`
}

// AWSConfig carries the flags needed to resolve S3 credentials for an
// s3:// block store, mirroring the credential sources the AWS SDK itself
// supports: a named profile, static keys, or anonymous (unsigned) access.
type AWSConfig struct {
	Region    string `name:"aws-region" env:"AWS_REGION" help:"AWS region for the s3:// block store."`
	Profile   string `name:"aws-profile" env:"AWS_PROFILE" help:"AWS credentials profile for the s3:// block store."`
	AccessKey string `name:"aws-access-key" env:"AWS_ACCESS_KEY_ID" help:"Static AWS access key, used with aws-secret-key."`
	SecretKey string `name:"aws-secret-key" env:"AWS_SECRET_ACCESS_KEY" help:"Static AWS secret key, used with aws-access-key."`
	Endpoint  string `name:"aws-endpoint" help:"Custom S3-compatible endpoint, e.g. a MinIO instance."`
	Anonymous bool   `name:"aws-anonymous" help:"Use anonymous, unsigned S3 requests (public buckets only)."`
}

type RunServerCommand struct {
	Store      string `name:"store" env:"CDP_STORE" help:"Block store URL (file://, mem://, s3://)." default:"file:///var/lib/cdp/blocks"`
	JournalDir string `name:"journal-dir" env:"CDP_JOURNAL_DIR" help:"Directory for the per-host metadata journal." default:"/var/lib/cdp/meta"`
	QueueDepth int    `name:"queue-depth" help:"Writer pool queue depth." default:"64"`
	AWSConfig  `embed:""`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

// blockOpts resolves a.Region/Profile/AccessKey/SecretKey/Anonymous/Endpoint
// into block.Opt values. Returns no options when none of the AWS flags were
// set, so file:// and mem:// stores never pay for a credential lookup.
func (a AWSConfig) blockOpts(ctx context.Context) ([]block.Opt, error) {
	if a.Region == "" && a.Profile == "" && a.AccessKey == "" && !a.Anonymous && a.Endpoint == "" {
		return nil, nil
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if a.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(a.Region))
	}
	if a.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(a.Profile))
	}
	switch {
	case a.Anonymous:
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(awssdk.AnonymousCredentials{}))
	case a.AccessKey != "":
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			awscreds.NewStaticCredentialsProvider(a.AccessKey, a.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve aws config: %w", err)
	}

	opts := []block.Opt{block.WithAWSConfig(cfg)}
	if a.Endpoint != "" {
		opts = append(opts, block.WithEndpoint(a.Endpoint))
	}
	return opts, nil
}

func (cmd *RunServerCommand) Run(ctx *Globals) error {
	blockOpts, err := cmd.AWSConfig.blockOpts(ctx.ctx)
	if err != nil {
		return err
	}

	store, err := block.New(ctx.ctx, cmd.Store, schema.DefaultFanoutLevel, blockOpts...)
	if err != nil {
		return fmt.Errorf("failed to open block store: %w", err)
	}
	defer store.Close()

	if err := store.Init(ctx.ctx); err != nil {
		return fmt.Errorf("failed to initialize block store: %w", err)
	}

	j, err := journal.NewFileJournal(cmd.JournalDir)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}

	mgrOpts := []manager.Opt{manager.WithLogger(ctx.logger), manager.WithQueueDepth(cmd.QueueDepth)}
	if ctx.tracer != nil {
		mgrOpts = append(mgrOpts, manager.WithTracer(ctx.tracer))
	}
	mgr, err := manager.New(ctx.ctx, store, j, mgrOpts...)
	if err != nil {
		return fmt.Errorf("failed to create manager: %w", err)
	}

	ctx.logger.Printf(ctx.ctx, "store %s", cmd.Store)
	ctx.logger.Printf(ctx.ctx, "journal %s", cmd.JournalDir)

	return serve(ctx, mgr)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// serve registers HTTP handlers and runs the writer pool and the HTTP
// server concurrently, until either fails or ctx is cancelled.
func serve(ctx *Globals, mgr *manager.Manager) error {
	// Build middleware
	middleware := []httprouter.HTTPMiddlewareFunc{}
	if mw, ok := ctx.logger.(server.HTTPMiddleware); ok {
		middleware = append(middleware, mw.WrapFunc)
	}

	// Create the router
	router, err := httprouter.NewRouter(ctx.ctx, ctx.HTTP.Prefix, ctx.HTTP.Origin, "cdp", version.Version(), middleware...)
	if err != nil {
		return fmt.Errorf("failed to create router: %w", err)
	}

	// Register CDP HTTP handlers. The wire protocol's routes are fixed
	// (GET /Version.json, POST /Meta.json, ...), so no further per-plugin
	// prefix is added here: ctx.HTTP.Prefix already governs the router's
	// external mount point.
	api.RegisterHandlers(ctx.ctx, "", router, mgr, ctx.execName)

	// Create the HTTP server
	srv, err := httpserver.New(ctx.HTTP.Addr, http.Handler(router), nil)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	grp, grpCtx := errgroup.WithContext(ctx.ctx)
	grp.Go(func() error {
		return mgr.Run(grpCtx)
	})
	grp.Go(func() error {
		ctx.logger.Printf(grpCtx, "cdp@%s started on %s", version.Version(), ctx.HTTP.Addr)
		return srv.Run(grpCtx)
	})

	if err := grp.Wait(); err != nil {
		return err
	}
	ctx.logger.Printf(context.Background(), "cdp stopped")
	return nil
}
