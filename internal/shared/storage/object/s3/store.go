// Package s3 implements object.Store on Amazon S3 for deployments that keep
// the local provider but want durable storage.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"journal-backend/internal/identity"
	"journal-backend/internal/shared/storage/object"
)

// Store is a bucket-and-prefix scoped S3 adapter.
type Store struct {
	client   *s3.Client
	bucket   string
	prefix   string
	kmsKeyID string
}

// New creates a new S3-backed object store.
func New(ctx context.Context, region, bucket, prefix, kmsKeyID string) (*Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Store{
		client:   s3.NewFromConfig(cfg),
		bucket:   bucket,
		prefix:   strings.Trim(strings.TrimSpace(prefix), "/"),
		kmsKeyID: strings.TrimSpace(kmsKeyID),
	}, nil
}

var _ object.Store = (*Store)(nil)

func (s *Store) List(ctx context.Context, scope identity.Scope, prefix string, limit, offset int) ([]object.ObjectInfo, error) {
	keyPrefix := s.applyPrefix(prefix)
	if !strings.HasSuffix(keyPrefix, "/") {
		keyPrefix += "/"
	}

	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(keyPrefix),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 list bucket=%s prefix=%s: %w", s.bucket, keyPrefix, err)
	}

	infos := make([]object.ObjectInfo, 0, len(out.Contents))
	for _, obj := range out.Contents {
		key := aws.ToString(obj.Key)
		name := path.Base(key)
		if name == "" || strings.HasSuffix(key, "/") {
			continue
		}
		info := object.ObjectInfo{
			ID:   strings.TrimPrefix(key, s.prefixSlash()),
			Name: name,
			Size: aws.ToInt64(obj.Size),
		}
		if obj.LastModified != nil {
			info.CreatedAt = obj.LastModified.UTC()
			info.UpdatedAt = obj.LastModified.UTC()
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})

	if offset >= len(infos) {
		return []object.ObjectInfo{}, nil
	}
	infos = infos[offset:]
	if limit > 0 && limit < len(infos) {
		infos = infos[:limit]
	}
	return infos, nil
}

// Put uploads with a preflight existence check. S3 has no native
// create-if-absent on this path, so two same-key writers can still race;
// the second one wins, which callers accept.
func (s *Store) Put(ctx context.Context, scope identity.Scope, key string, r io.Reader, size int64, contentType string) error {
	objectKey := s.applyPrefix(key)

	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	}); err == nil {
		return object.ErrExists
	} else if !isNotFound(err) {
		return fmt.Errorf("s3 head bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          r,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	}
	if s.kmsKeyID != "" {
		input.ServerSideEncryption = s3types.ServerSideEncryptionAwsKms
		input.SSEKMSKeyId = aws.String(s.kmsKeyID)
	} else {
		input.ServerSideEncryption = s3types.ServerSideEncryptionAes256
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3 put object bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, scope identity.Scope, key string) error {
	objectKey := s.applyPrefix(key)
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	}); err != nil {
		return fmt.Errorf("s3 delete object bucket=%s key=%s: %w", s.bucket, objectKey, err)
	}
	return nil
}

func (s *Store) applyPrefix(key string) string {
	cleanKey := strings.TrimLeft(key, "/")
	if s.prefix == "" {
		return cleanKey
	}
	if cleanKey == "" {
		return s.prefix
	}
	return s.prefix + "/" + cleanKey
}

func (s *Store) prefixSlash() string {
	if s.prefix == "" {
		return ""
	}
	return s.prefix + "/"
}

func isNotFound(err error) bool {
	var notFound *s3types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var noSuchKey *s3types.NoSuchKey
	return errors.As(err, &noSuchKey)
}
