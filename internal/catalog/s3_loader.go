package catalog

import (
	"compress/gzip"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Loader implements Loader for reading gzipped catalogue feeds from AWS S3.
type s3Loader struct {
	client *s3.Client
	bucket string
	logger zerolog.Logger
}

// NewS3Loader creates a new S3-based catalogue loader.
func NewS3Loader(ctx context.Context, bucket, region string, logger zerolog.Logger) (Loader, error) {
	logger = logger.With().Str("component", "s3-catalog-loader").Logger()

	// Load AWS configuration
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 catalogue loader initialised")

	return &s3Loader{
		client: client,
		bucket: bucket,
		logger: logger,
	}, nil
}

// Load reads a gzipped JSON-lines catalogue feed from S3. The source
// parameter is the full object key.
func (l *s3Loader) Load(ctx context.Context, source string) ([]Entry, error) {
	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", source).
		Msg("loading catalogue feed from S3")

	result, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(source),
	})
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", source).
			Msg("failed to get object from S3")
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", l.bucket, source, err)
	}
	defer result.Body.Close()

	gzipReader, err := gzip.NewReader(result.Body)
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", source).
			Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for S3 object %s: %w", source, err)
	}
	defer gzipReader.Close()

	entries, err := decodeEntries(ctx, gzipReader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode catalogue feed %s: %w", source, err)
	}

	l.logger.Info().
		Str("key", source).
		Int("entries", len(entries)).
		Msg("catalogue feed loaded from S3")

	return entries, nil
}
