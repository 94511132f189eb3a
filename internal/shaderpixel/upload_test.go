package shaderpixel

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
)

type fakePutter struct {
	keys   []string
	bodies [][]byte
	types  []string
	fail   error
}

func (f *fakePutter) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.keys = append(f.keys, aws.StringValue(in.Key))
	f.bodies = append(f.bodies, b)
	f.types = append(f.types, aws.StringValue(in.ContentType))
	return &s3.PutObjectOutput{}, nil
}

func TestUploaderUploadAll(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.gif")
	for _, p := range []string{a, b} {
		if err := os.WriteFile(p, []byte(filepath.Base(p)), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	fp := &fakePutter{}
	u := &Uploader{cfg: UploadCfg{Bucket: "bkt", Prefix: "renders/today"}, client: fp}
	if err := u.UploadAll(context.Background(), []string{a, b}); err != nil {
		t.Fatal(err)
	}
	if len(fp.keys) != 2 || fp.keys[0] != "renders/today/a.png" || fp.keys[1] != "renders/today/b.gif" {
		t.Fatalf("keys %v", fp.keys)
	}
	if fp.types[0] != "image/png" || fp.types[1] != "image/gif" {
		t.Fatalf("content types %v", fp.types)
	}
	if string(fp.bodies[1]) != "b.gif" {
		t.Fatalf("body %q", fp.bodies[1])
	}
}

func TestUploaderErrors(t *testing.T) {
	boom := errors.New("boom")
	u := &Uploader{cfg: UploadCfg{Bucket: "bkt"}, client: &fakePutter{fail: boom}}
	p := filepath.Join(t.TempDir(), "x.png")
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := u.Upload(context.Background(), p); !errors.Is(err, boom) {
		t.Fatalf("want wrapped client error, got %v", err)
	}
	if err := u.Upload(context.Background(), filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatal("missing file uploaded")
	}
}

func TestUploadCfgFromEnv(t *testing.T) {
	t.Setenv("S3_BUCKET", "env-bucket")
	t.Setenv("S3_ACCESS_KEY", "ak")
	c := UploadCfg{Region: "eu-west-1"}.FromEnv()
	if !c.Enabled() || c.Bucket != "env-bucket" || c.AccessKey != "ak" || c.Region != "eu-west-1" {
		t.Fatalf("cfg %+v", c)
	}
	c = UploadCfg{Bucket: "json-bucket"}.FromEnv()
	if c.Bucket != "json-bucket" {
		t.Fatal("config value must win over the environment")
	}
	if contentType("x.bin") != "application/octet-stream" {
		t.Fatal("default content type")
	}
}

func TestNewUploader(t *testing.T) {
	u, err := NewUploader(UploadCfg{Bucket: "b", Region: "us-east-1", Endpoint: "http://127.0.0.1:9000", AccessKey: "a", SecretKey: "s"})
	if err != nil {
		t.Fatal(err)
	}
	if u.ObjectKey("/tmp/x/render.png") != "render.png" {
		t.Fatalf("key %q", u.ObjectKey("/tmp/x/render.png"))
	}
}
