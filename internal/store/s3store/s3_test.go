package s3store

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/absfs/objpack/internal/store"
)

// fakeS3 keeps objects in memory and mimics the SDK's not-found errors.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte), types: make(map[string]string)}
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Key)] = data
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{ContentLength: aws.Int64(int64(len(data)))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestWithPrefix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"prefix", "prefix/"},
		{"prefix/", "prefix/"},
		{"a/b/c", "a/b/c/"},
		{"a/b/c/", "a/b/c/"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := &Store{}
			if err := WithPrefix(tt.input)(s); err != nil {
				t.Fatalf("WithPrefix() error = %v", err)
			}
			if s.prefix != tt.want {
				t.Errorf("prefix = %q, want %q", s.prefix, tt.want)
			}
		})
	}
}

func TestStore_objectKey(t *testing.T) {
	s := &Store{prefix: "data/v1/"}
	got, err := s.objectKey("users/42")
	if err != nil {
		t.Fatalf("objectKey() error = %v", err)
	}
	if want := "data/v1/artifacts/users/42"; got != want {
		t.Errorf("objectKey() = %q, want %q", got, want)
	}

	if _, err := s.objectKey("../x"); !errors.Is(err, store.ErrInvalidKey) {
		t.Errorf("objectKey(../x) error = %v, want ErrInvalidKey", err)
	}
}

func TestStore_RoundTrip(t *testing.T) {
	fake := newFakeS3()
	s := &Store{client: fake, bucket: "bucket"}
	ctx := context.Background()

	if err := s.Put(ctx, "k", []byte("artifact")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if got := fake.types["artifacts/k"]; got != ContentType {
		t.Errorf("content type = %q, want %q", got, ContentType)
	}

	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "artifact" {
		t.Errorf("Get() = %q, want %q", got, "artifact")
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "k"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Delete() of missing key error = %v, want ErrNotFound", err)
	}
}

func TestNew_RegionAndEndpoint(t *testing.T) {
	// Both options apply to the one client New builds.
	s, err := New(context.Background(), "bucket",
		WithRegion("eu-west-1"),
		WithEndpoint("http://127.0.0.1:9000"),
		WithPrefix("objpack"),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	client, ok := s.client.(*s3.Client)
	if !ok {
		t.Fatalf("client is %T, want *s3.Client", s.client)
	}
	o := client.Options()
	if o.Region != "eu-west-1" {
		t.Errorf("region = %q, want eu-west-1", o.Region)
	}
	if aws.ToString(o.BaseEndpoint) != "http://127.0.0.1:9000" || !o.UsePathStyle {
		t.Errorf("endpoint = %q, path style = %v", aws.ToString(o.BaseEndpoint), o.UsePathStyle)
	}
	if s.prefix != "objpack/" {
		t.Errorf("prefix = %q, want objpack/", s.prefix)
	}
}

func TestNew_EmptyOptions(t *testing.T) {
	if _, err := New(context.Background(), "bucket", WithRegion("")); err == nil {
		t.Error("New() with an empty region should fail")
	}
	if _, err := New(context.Background(), "bucket", WithEndpoint("")); err == nil {
		t.Error("New() with an empty endpoint should fail")
	}
}
