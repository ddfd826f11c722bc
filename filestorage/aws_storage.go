package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const acl = "public-read"

// S3Client stores assets in an S3 bucket.
type S3Client struct {
	bucket   string
	region   string
	client   *s3.S3
	uploader *s3manager.Uploader
}

// NewS3Storage uses static credentials when given, and the default AWS
// credential chain otherwise.
func NewS3Storage(bucket, region, accessKeyID, secretAccessKey string) (FileStorage, error) {
	cfg := aws.NewConfig().WithRegion(region)
	if accessKeyID != "" && secretAccessKey != "" {
		cfg = cfg.WithCredentials(credentials.NewStaticCredentials(accessKeyID, secretAccessKey, ""))
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}
	return &S3Client{
		bucket:   bucket,
		region:   region,
		client:   s3.New(sess),
		uploader: s3manager.NewUploader(sess),
	}, nil
}

func (c *S3Client) Save(ctx context.Context, key string, r io.Reader) (string, error) {
	up, err := c.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(c.bucket),
		ACL:    aws.String(acl),
		Key:    aws.String(key),
		Body:   r,
	})
	if err != nil {
		return "", fmt.Errorf("failed to send %s to bucket %s: %w", key, c.bucket, err)
	}
	return up.Location, nil
}

func (c *S3Client) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := c.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from bucket %s: %w", key, c.bucket, err)
	}
	return out.Body, nil
}

func (c *S3Client) Delete(ctx context.Context, key string) error {
	_, err := c.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	var aerr awserr.Error
	if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s from bucket %s: %w", key, c.bucket, err)
	}
	return nil
}

func (c *S3Client) URL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}
