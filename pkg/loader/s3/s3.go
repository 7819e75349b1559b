package s3

import (
	"bytes"
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/OFFIS-RIT/chatlens/pkg/loader"
)

// ObjectGetter is the part of the S3 client the loader needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3TranscriptLoader loads transcripts from an S3 bucket. The file Path is
// the object key.
type S3TranscriptLoader struct {
	bucket string
	client ObjectGetter
	cache  *loader.Cache
}

// NewS3TranscriptLoaderWithClient creates a loader that reuses an existing
// client, for example the one shared by the worker.
func NewS3TranscriptLoaderWithClient(bucket string, client ObjectGetter) *S3TranscriptLoader {
	return &S3TranscriptLoader{
		bucket: bucket,
		client: client,
		cache:  loader.NewCache(),
	}
}

// NewS3TranscriptLoaderParams defines the configuration parameters for
// creating a new S3TranscriptLoader.
//
// Endpoint allows overriding the S3 endpoint (useful for S3-compatible
// storage like MinIO).
type NewS3TranscriptLoaderParams struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// NewS3TranscriptLoader creates a loader with its own client using static
// credentials.
func NewS3TranscriptLoader(ctx context.Context, params NewS3TranscriptLoaderParams) (*S3TranscriptLoader, error) {
	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(params.Region),
		config.WithBaseEndpoint(params.Endpoint),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			params.AccessKey,
			params.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return NewS3TranscriptLoaderWithClient(params.Bucket, client), nil
}

// Load retrieves the object at file.Path. Results are cached per file.
func (l *S3TranscriptLoader) Load(ctx context.Context, file loader.TranscriptFile) ([]byte, error) {
	return l.cache.Do(loader.CacheKey(file), func() ([]byte, error) {
		out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(l.bucket),
			Key:    aws.String(file.Path),
		})
		if err != nil {
			return nil, err
		}
		defer out.Body.Close()

		buf := new(bytes.Buffer)
		if _, err := io.Copy(buf, out.Body); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
}

// Forget drops the cached bytes of file.
func (l *S3TranscriptLoader) Forget(file loader.TranscriptFile) {
	l.cache.Forget(loader.CacheKey(file))
}
