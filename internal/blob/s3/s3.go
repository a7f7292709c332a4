package s3

import (
	"context"
	"errors"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3pkg "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	blobpkg "github.com/naieum/omni/internal/blob"
	"io"
	"net/url"
)

// S3 is a durable blob store backed by an S3-compatible bucket. Racing
// PutObject calls to the same key are safe: for a given key all writers
// carry identical content, so last-writer-wins is a no-op.
type S3 struct {
	client *s3pkg.Client
	bucket string
}

type Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
}

func New(ctx context.Context, bucket string) (*S3, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	return &S3{
		client: s3pkg.NewFromConfig(cfg),
		bucket: bucket,
	}, nil
}

func NewFromConfig(ctx context.Context, config *Config) (*S3, error) {
	awsConfig := aws.Config{
		Region: config.Region,
	}

	if config.AccessKeyID != "" {
		awsConfig.Credentials = credentials.NewStaticCredentialsProvider(
			config.AccessKeyID,
			config.AccessKeySecret,
			"",
		)
	}

	s3EndpointURL, err := url.Parse(config.Endpoint)
	if err != nil {
		return nil, err
	}

	client := s3pkg.NewFromConfig(awsConfig, func(options *s3pkg.Options) {
		options.EndpointResolverV2 = &s3EndpointResolver{url: s3EndpointURL}
	})

	_, err = client.CreateBucket(ctx, &s3pkg.CreateBucketInput{
		Bucket: aws.String(config.Bucket),
	})
	if err != nil && !bucketAlreadyExists(err) {
		return nil, err
	}

	return &S3{
		client: client,
		bucket: config.Bucket,
	}, nil
}

func (s3 *S3) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s3.client.HeadObject(ctx, &s3pkg.HeadObjectInput{
		Bucket: aws.String(s3.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if errors.Is(convertErr(err), blobpkg.ErrNotFound) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (s3 *S3) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	result, err := s3.client.GetObject(ctx, &s3pkg.GetObjectInput{
		Bucket: aws.String(s3.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", convertErr(err)
	}

	return result.Body, aws.ToString(result.ContentType), nil
}

func (s3 *S3) Put(ctx context.Context, key string, contentType string, blobReader io.Reader) error {
	_, err := s3.client.PutObject(ctx, &s3pkg.PutObjectInput{
		Bucket:      aws.String(s3.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        blobReader,
	})

	return err
}

func convertErr(err error) error {
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey

	if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
		return blobpkg.ErrNotFound
	}

	return err
}

func bucketAlreadyExists(err error) bool {
	var alreadyExists *types.BucketAlreadyExists
	var alreadyOwned *types.BucketAlreadyOwnedByYou

	return errors.As(err, &alreadyExists) || errors.As(err, &alreadyOwned)
}
