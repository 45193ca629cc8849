package block

import (
	"context"
	"fmt"
	"net/url"

	// Packages
	"github.com/aws/aws-sdk-go-v2/aws"
	blob "gocloud.dev/blob"
	s3blob "gocloud.dev/blob/s3blob"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type opt struct {
	awsConfig    *aws.Config
	endpoint     string
	bucketOpener func(ctx context.Context, u *url.URL) (*blob.Bucket, error)
}

// Opt is a functional option for block store configuration.
type Opt func(*opt) error

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// WithAWSConfig provides an AWS SDK v2 Config used to open s3:// backends,
// allowing full control over credential resolution (profile, static keys,
// or anonymous).
func WithAWSConfig(cfg aws.Config) Opt {
	return func(o *opt) error {
		o.awsConfig = &cfg
		return nil
	}
}

// WithEndpoint sets a custom S3-compatible endpoint (e.g. for MinIO).
func WithEndpoint(endpoint string) Opt {
	return func(o *opt) error {
		if _, err := url.Parse(endpoint); err != nil {
			return fmt.Errorf("invalid s3 endpoint %q: %w", endpoint, err)
		}
		o.endpoint = endpoint
		return nil
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func applyOpts(opts []Opt) (*opt, error) {
	o := new(opt)
	for _, fn := range opts {
		if err := fn(o); err != nil {
			return nil, err
		}
	}
	if o.awsConfig != nil {
		o.bucketOpener = func(ctx context.Context, u *url.URL) (*blob.Bucket, error) {
			cfg := *o.awsConfig
			if o.endpoint != "" {
				endpoint := o.endpoint
				cfg.EndpointResolverWithOptions = aws.EndpointResolverWithOptionsFunc(
					func(service, region string, options ...interface{}) (aws.Endpoint, error) {
						return aws.Endpoint{URL: endpoint, HostnameImmutable: true}, nil
					},
				)
			}
			client := s3blob.Dial(cfg)
			return s3blob.OpenBucket(ctx, client, u.Host, nil)
		}
	}
	return o, nil
}
