package shaderpixel

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// UploadTimeout bounds a single object upload.
const UploadTimeout = 30 * time.Second

// UploadCfg points at an S3-compatible bucket. Empty Bucket disables uploads.
type UploadCfg struct {
	AccessKey string `json:"-"`
	SecretKey string `json:"-"`
	Endpoint  string `json:"endpoint,omitempty"`
	Region    string `json:"region,omitempty"`
	Bucket    string `json:"bucket,omitempty"`
	Prefix    string `json:"prefix,omitempty"`
	ACL       string `json:"acl,omitempty"`
}

// Enabled reports whether uploads are configured.
func (c UploadCfg) Enabled() bool { return c.Bucket != "" }

// FromEnv fills credentials and any unset fields from S3_* environment variables.
func (c UploadCfg) FromEnv() UploadCfg {
	set := func(dst *string, key string) {
		if *dst == "" {
			*dst = os.Getenv(key)
		}
	}
	set(&c.AccessKey, "S3_ACCESS_KEY")
	set(&c.SecretKey, "S3_SECRET_KEY")
	set(&c.Endpoint, "S3_ENDPOINT")
	set(&c.Region, "S3_REGION")
	set(&c.Bucket, "S3_BUCKET")
	return c
}

type objectPutter interface {
	PutObjectWithContext(ctx aws.Context, in *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// Uploader pushes rendered files to a bucket.
type Uploader struct {
	cfg    UploadCfg
	client objectPutter
}

func NewUploader(cfg UploadCfg) (*Uploader, error) {
	awsCfg := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return &Uploader{cfg: cfg, client: s3.New(sess)}, nil
}

// ObjectKey maps a local file to its key under the configured prefix.
func (u *Uploader) ObjectKey(file string) string {
	return path.Join(u.cfg.Prefix, filepath.Base(file))
}

func contentType(file string) string {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	}
	return "application/octet-stream"
}

// Upload sends one file.
func (u *Uploader) Upload(ctx context.Context, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := u.ObjectKey(file)
	in := &s3.PutObjectInput{
		Bucket:        aws.String(u.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType(file)),
	}
	if u.cfg.ACL != "" {
		in.ACL = aws.String(u.cfg.ACL)
	}
	if _, err := u.client.PutObjectWithContext(ctx, in); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	Logger().Info("uploaded", "key", key, "bytes", len(data))
	return nil
}

// UploadAll sends files in order and stops at the first failure.
func (u *Uploader) UploadAll(ctx context.Context, files []string) error {
	for _, f := range files {
		if err := u.Upload(ctx, f); err != nil {
			return err
		}
	}
	return nil
}
