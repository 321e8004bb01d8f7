package inputfile

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Getter is the subset of *s3.S3 used to stream objects.
type S3Getter interface {
	GetObjectWithContext(ctx aws.Context, input *s3.GetObjectInput, opts ...request.Option) (*s3.GetObjectOutput, error)
}

// S3Object streams an S3 object as an upload.
type S3Object struct {
	Client S3Getter
	Bucket string
	Key    string
}

// Open starts the GetObject download. The body is closed with the request.
func (o S3Object) Open(ctx context.Context) (Content, error) {
	out, err := o.Client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(o.Bucket),
		Key:    aws.String(o.Key),
	})
	if err != nil {
		return Content{}, fmt.Errorf("inputfile: get s3://%s/%s: %w", o.Bucket, o.Key, err)
	}
	return Content{Reader: out.Body, Filename: path.Base(o.Key)}, nil
}

// ParseS3URI splits "s3://bucket/key" into its bucket and key.
func ParseS3URI(uri string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(uri, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}
