// Package s3 loads archived audit documents from an S3 bucket prefix.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/crimson-sun/trailshift/internal/source"
)

func init() {
	source.Register("s3", func(cfg source.Config) (source.Source, error) {
		return New(cfg)
	})
}

// API is the subset of the S3 client used by Source.
type API interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Source implements source.Source for s3://bucket/prefix locations.
type Source struct {
	api     API
	cfg     source.Config
	matcher *source.Matcher
}

// New creates an S3 source. The client is built from the default AWS
// credential chain on first use.
func New(cfg source.Config) (*Source, error) {
	return NewWithClient(nil, cfg)
}

// NewWithClient creates an S3 source backed by an existing client. A nil
// api defers to the default credential chain.
func NewWithClient(api API, cfg source.Config) (*Source, error) {
	m, err := source.NewMatcher(cfg.Patterns)
	if err != nil {
		return nil, fmt.Errorf("s3 source: %w", err)
	}
	return &Source{api: api, cfg: cfg, matcher: m}, nil
}

// ParseLocation splits s3://bucket/prefix into its parts.
func ParseLocation(location string) (bucket, prefix string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", fmt.Errorf("s3 source: %w", err)
	}
	if u.Scheme != "s3" || u.Host == "" {
		return "", "", fmt.Errorf("s3 source: invalid location %q", location)
	}
	return u.Host, strings.TrimPrefix(u.Path, "/"), nil
}

// Load reads every matching object under the prefix in key order. A prefix
// that names a single object is read regardless of the patterns.
func (s *Source) Load(ctx context.Context, location string) (*source.Batch, error) {
	bucket, prefix, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}
	if err := s.ensureClient(ctx); err != nil {
		return nil, err
	}

	keys, err := s.list(ctx, bucket, prefix)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("s3 source: %w: %s", source.ErrNotFound, location)
	}

	b := &source.Batch{}
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := s.get(ctx, bucket, key)
		name := "s3://" + bucket + "/" + key
		if err != nil {
			b.Fail(name, err)
			continue
		}
		b.Add(name, data)
	}
	return b, nil
}

func (s *Source) ensureClient(ctx context.Context) error {
	if s.api != nil {
		return nil
	}
	var opts []func(*config.LoadOptions) error
	if s.cfg.Region != "" {
		opts = append(opts, config.WithRegion(s.cfg.Region))
	}
	if s.cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(s.cfg.Profile))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return fmt.Errorf("s3 source: failed to load aws config: %w", err)
	}
	s.api = s3.NewFromConfig(awsCfg)
	return nil
}

func (s *Source) list(ctx context.Context, bucket, prefix string) ([]string, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}

	var keys []string
	paginator := s3.NewListObjectsV2Paginator(s.api, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3 source: list s3://%s/%s: %w", bucket, prefix, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, "/") {
				continue
			}
			if key == prefix || s.matcher.Match(key) {
				keys = append(keys, key)
			}
		}
	}
	return keys, nil
}

func (s *Source) get(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	if out.Body == nil {
		return nil, errors.New("empty object body")
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}
