package s3repo

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/devstats/social-card-service/internal/config"
)

type ObjectInfo struct {
	Key          string
	LastModified time.Time
}

type Objects interface {
	// Head returns object metadata, or nil when no object exists at key.
	Head(ctx context.Context, key string) (*ObjectInfo, error)
	Upload(ctx context.Context, key string, body []byte, contentType string) error
	PublicURL(key string) string
}

type S3Repository struct {
	Objects
}

func New(client *s3.Client, cfg config.S3Config) *S3Repository {
	return &S3Repository{
		Objects: newObjectsRepo(client, cfg),
	}
}

type objectsRepo struct {
	client    *s3.Client
	bucket    string
	cdnOrigin string
}

func newObjectsRepo(client *s3.Client, cfg config.S3Config) Objects {
	return &objectsRepo{
		client:    client,
		bucket:    cfg.Bucket,
		cdnOrigin: strings.TrimSuffix(cfg.CDNOrigin, "/"),
	}
}

func (r *objectsRepo) Head(ctx context.Context, key string) (*ObjectInfo, error) {
	out, err := r.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}

	return &ObjectInfo{
		Key:          key,
		LastModified: aws.ToTime(out.LastModified),
	}, nil
}

func (r *objectsRepo) Upload(ctx context.Context, key string, body []byte, contentType string) error {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})

	return err
}

func (r *objectsRepo) PublicURL(key string) string {
	return r.cdnOrigin + "/" + key
}
