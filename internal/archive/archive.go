// Package archive mirrors finished downloads to an S3 bucket so the local
// platform directories can be pruned without losing the media.
package archive

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

type Uploader struct {
	uploader *manager.Uploader
}

func NewUploader(ctx context.Context, profile string) (*Uploader, error) {
	if profile == "" {
		profile = "default"
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithSharedConfigProfile(profile),
		awsconfig.WithRetryMode("adaptive"),
	)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %v", err)
	}
	client := s3.NewFromConfig(cfg)
	return &Uploader{uploader: manager.NewUploader(client)}, nil
}

// UploadDir walks dir and uploads every regular file under
// s3://bucket/prefix/, preserving the relative layout. Returns the number
// of files uploaded and the total bytes sent; the first upload error aborts.
func (u *Uploader) UploadDir(ctx context.Context, dir, bucket, prefix string) (int, int64, error) {
	uploaded := 0
	var total int64
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if prefix != "" {
			key = strings.TrimSuffix(prefix, "/") + "/" + key
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("error opening %s: %v", path, err)
		}
		defer f.Close()

		log.Debug().Str("op", "archive/upload").Msgf("Uploading %s to s3://%s/%s", rel, bucket, key)
		_, err = u.uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
			Body:   f,
		})
		if err != nil {
			return fmt.Errorf("error uploading %s: %v", rel, err)
		}
		uploaded++
		total += info.Size()
		return nil
	})
	if err != nil {
		return uploaded, total, err
	}
	log.Info().Str("op", "archive/upload").Msgf("Archived %d files to s3://%s", uploaded, bucket)
	return uploaded, total, nil
}
