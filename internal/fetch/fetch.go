// Package fetch resolves document references to local files. Inputs may be
// plain paths, file://, http(s):// or s3:// refs; outputs may be plain paths
// or s3:// refs.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// IsS3 reports whether ref addresses an S3 object.
func IsS3(ref string) bool { return strings.HasPrefix(ref, "s3://") }

// EnsureLocal returns a local file path for ref. When the ref had to be
// downloaded, tmp names the temporary file the caller must remove.
func EnsureLocal(ctx context.Context, ref string) (local string, tmp string, err error) {
	switch {
	case strings.HasPrefix(ref, "file://"):
		return strings.TrimPrefix(ref, "file://"), "", nil
	case strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://"):
		p, err := downloadHTTPToTemp(ctx, ref)
		return p, p, err
	case IsS3(ref):
		p, err := downloadS3ToTemp(ctx, ref)
		return p, p, err
	default:
		return ref, "", nil
	}
}

// Upload writes the local file to the s3:// ref.
func Upload(ctx context.Context, ref, localPath string) error {
	bucket, key, err := splitS3(ref)
	if err != nil {
		return err
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx)
	if err != nil {
		return err
	}
	cli := s3.NewFromConfig(cfg)

	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()

	uploader := manager.NewUploader(cli)
	if _, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   f,
	}); err != nil {
		return fmt.Errorf("upload to %s: %w", ref, err)
	}

	log.Info().Str("bucket", bucket).Str("key", key).Msg("uploaded output pdf to s3")
	return nil
}

func downloadHTTPToTemp(ctx context.Context, url string) (string, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("http %d fetching %s", resp.StatusCode, url)
	}

	f, err := os.CreateTemp("", "pressclip-in-*.pdf")
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func downloadS3ToTemp(ctx context.Context, ref string) (string, error) {
	bucket, key, err := splitS3(ref)
	if err != nil {
		return "", err
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx)
	if err != nil {
		return "", err
	}
	cli := s3.NewFromConfig(cfg)

	out, err := cli.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
	if err != nil {
		return "", err
	}
	defer out.Body.Close()

	f, err := os.CreateTemp("", "pressclip-s3-*.pdf")
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, out.Body); err != nil {
		os.Remove(f.Name())
		return "", err
	}

	log.Info().Str("bucket", bucket).Str("key", key).Msg("downloaded s3 pdf to temp")
	return f.Name(), nil
}

func splitS3(ref string) (bucket, key string, err error) {
	path := strings.TrimPrefix(ref, "s3://")
	slash := strings.Index(path, "/")
	if slash <= 0 || slash == len(path)-1 {
		return "", "", fmt.Errorf("invalid s3 url: %s", ref)
	}
	return path[:slash], path[slash+1:], nil
}
