package storage

import (
	"bytes"
	"context"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Store keeps one object per donation reference in a bucket, the object
// body being the provider payment id. The bucket is treated as an
// append-only lookup table; nothing here deletes or rewrites objects.
type S3Store struct {
	client *s3.S3
	bucket string
}

func NewS3Store(bucket string, region string, endpoint string) (*S3Store, error) {
	cfg := aws.NewConfig().WithRegion(region)
	if endpoint != "" {
		// Custom endpoint is for S3-compatible stores (minio and the like),
		// which want path-style addressing.
		cfg = cfg.WithEndpoint(endpoint).WithS3ForcePathStyle(true)
	}

	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}

	return &S3Store{
		client: s3.New(sess),
		bucket: bucket,
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key string, value string) error {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader([]byte(value)),
		ContentType: aws.String("text/plain"),
	})
	return err
}

func (s *S3Store) Get(ctx context.Context, key string) (string, error) {
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && (aerr.Code() == s3.ErrCodeNoSuchKey || aerr.Code() == "NotFound") {
			return "", ErrNotFound
		}
		return "", err
	}
	defer out.Body.Close()

	value, err := io.ReadAll(out.Body)
	if err != nil {
		return "", err
	}
	return string(value), nil
}
