// Package storage reads uploaded documents from the local filesystem or an
// S3-compatible object store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrNoObjectStore is returned for s3:// URIs when no S3 client is configured.
var ErrNoObjectStore = errors.New("object storage is not configured")

// TooLargeError reports a document above the configured size limit.
type TooLargeError struct {
	URI   string
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("document %s exceeds %d bytes", e.URI, e.Limit)
}

// Location is a parsed document URI. Bucket is empty for local files.
type Location struct {
	Bucket string
	Key    string
	Path   string
}

// Filename returns the base name of the document.
func (l Location) Filename() string {
	if l.Bucket != "" {
		return path.Base(l.Key)
	}
	return path.Base(strings.ReplaceAll(l.Path, "\\", "/"))
}

// ParseURI accepts s3://bucket/key, file:///path and bare filesystem paths.
func ParseURI(uri string) (Location, error) {
	if uri == "" {
		return Location{}, fmt.Errorf("document URI is empty")
	}
	if !strings.Contains(uri, "://") {
		return Location{Path: uri}, nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return Location{}, fmt.Errorf("invalid document URI %q: %w", uri, err)
	}
	switch u.Scheme {
	case "s3":
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return Location{}, fmt.Errorf("invalid document URI %q: expected s3://bucket/key", uri)
		}
		return Location{Bucket: u.Host, Key: key}, nil
	case "file":
		if u.Path == "" {
			return Location{}, fmt.Errorf("invalid document URI %q: empty path", uri)
		}
		return Location{Path: u.Path}, nil
	default:
		return Location{}, fmt.Errorf("unsupported document URI scheme %q", u.Scheme)
	}
}

// ObjectGetter is the subset of the S3 client used to download documents.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Store reads documents by URI.
type Store struct {
	objects  ObjectGetter
	maxBytes int64
}

// NewStore creates a Store. objects may be nil to allow local files only.
func NewStore(objects ObjectGetter, maxBytes int64) *Store {
	return &Store{objects: objects, maxBytes: maxBytes}
}

// Read returns the bytes of the document at uri.
func (s *Store) Read(ctx context.Context, uri string) ([]byte, error) {
	loc, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}
	if loc.Bucket == "" {
		return s.readFile(uri, loc.Path)
	}
	if s.objects == nil {
		return nil, ErrNoObjectStore
	}

	out, err := s.objects.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", uri, err)
	}
	defer func() { _ = out.Body.Close() }()

	return s.readAll(uri, out.Body)
}

func (s *Store) readFile(uri, p string) ([]byte, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", p, err)
	}
	defer func() { _ = f.Close() }()
	return s.readAll(uri, f)
}

func (s *Store) readAll(uri string, r io.Reader) ([]byte, error) {
	if s.maxBytes > 0 {
		r = io.LimitReader(r, s.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", uri, err)
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, &TooLargeError{URI: uri, Limit: s.maxBytes}
	}
	return data, nil
}

// S3Config configures the object store client.
type S3Config struct {
	Region       string `mapstructure:"region"`
	Endpoint     string `mapstructure:"endpoint"`
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	UsePathStyle bool   `mapstructure:"use_path_style"`
}

// NewS3Client builds an S3 client. Static credentials are used when both
// keys are set, otherwise the default AWS credential chain applies. Endpoint
// points the client at an S3-compatible store such as R2 or MinIO.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}
