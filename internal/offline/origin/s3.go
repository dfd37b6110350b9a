package origin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Test seams for the AWS SDK constructors.
var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Config locates the bucket that holds the shell assets.
type S3Config struct {
	Bucket       string
	Prefix       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// ObjectGetter is the part of *s3.Client S3Origin uses.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Origin serves request paths as objects of one bucket. Directory paths
// map to their index.html. Missing objects answer 404; other SDK errors are
// returned as transport failures.
type S3Origin struct {
	client ObjectGetter
	bucket string
	prefix string
}

func NewS3Origin(client ObjectGetter, bucket, prefix string) *S3Origin {
	return &S3Origin{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// NewS3Client builds an S3 client. Static credentials are used when an
// access key is set, otherwise the default credential chain applies. A base
// endpoint switches to path-style addressing for S3-compatible servers.
func NewS3Client(ctx context.Context, c S3Config) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(c.Region)}
	if c.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if c.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// ObjectKey maps a request path to the object key.
func (o *S3Origin) ObjectKey(urlPath string) string {
	key := strings.TrimPrefix(urlPath, "/")
	if key == "" || strings.HasSuffix(key, "/") {
		key += "index.html"
	}
	if o.prefix != "" {
		key = o.prefix + "/" + key
	}
	return key
}

func (o *S3Origin) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		return textResponse(req, http.StatusMethodNotAllowed), nil
	}

	key := o.ObjectKey(req.URL.Path)
	out, err := o.client.GetObject(req.Context(), &s3.GetObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return textResponse(req, http.StatusNotFound), nil
		}
		return nil, fmt.Errorf("s3 get %s/%s: %w", o.bucket, key, err)
	}

	header := http.Header{}
	contentType := aws.ToString(out.ContentType)
	if contentType == "" || contentType == "binary/octet-stream" {
		if byExt := mime.TypeByExtension(path.Ext(key)); byExt != "" {
			contentType = byExt
		}
	}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	if etag := aws.ToString(out.ETag); etag != "" {
		header.Set("ETag", etag)
	}
	if out.LastModified != nil {
		header.Set("Last-Modified", out.LastModified.UTC().Format(http.TimeFormat))
	}

	length := int64(-1)
	if out.ContentLength != nil {
		length = *out.ContentLength
		header.Set("Content-Length", strconv.FormatInt(length, 10))
	}

	body := out.Body
	if body == nil {
		body = io.NopCloser(strings.NewReader(""))
	}
	if req.Method == http.MethodHead {
		_ = body.Close()
		body = http.NoBody
	}

	return &http.Response{
		Status:        "200 OK",
		StatusCode:    http.StatusOK,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          body,
		ContentLength: length,
		Request:       req,
	}, nil
}

func isNotFound(err error) bool {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}

func textResponse(req *http.Request, status int) *http.Response {
	text := http.StatusText(status)
	return &http.Response{
		Status:        strconv.Itoa(status) + " " + text,
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        http.Header{"Content-Type": {"text/plain; charset=utf-8"}},
		Body:          io.NopCloser(strings.NewReader(text)),
		ContentLength: int64(len(text)),
		Request:       req,
	}
}
