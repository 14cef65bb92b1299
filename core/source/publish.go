package source

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"world-manager/core/storage"
)

// PublishReport summarizes a publish run.
type PublishReport struct {
	Uploaded []string `json:"uploaded"`
	Removed  []string `json:"removed"`
}

// Publish uploads every JSON document under cfg.Dir to the bucket under
// cfg.Prefix, creating the bucket when missing. With prune, remote documents
// that no longer exist locally are removed.
func Publish(ctx context.Context, client storage.Client, bucket string, cfg Config, prune bool, logger *zap.Logger) (*PublishReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
		logger.Info("Created bucket", zap.String("bucket", bucket))
	}

	local := NewFileSource(cfg.Dir)
	remote := NewBucketSource(client, bucket, cfg.Prefix)

	names, err := local.List(ctx)
	if err != nil {
		return nil, err
	}

	report := &PublishReport{}
	for _, name := range names {
		data, err := local.Read(ctx, name)
		if err != nil {
			return report, err
		}

		key := remote.prefix + name
		_, err = client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType: "application/json",
		})
		if err != nil {
			return report, fmt.Errorf("failed to upload document %s: %w", name, err)
		}
		report.Uploaded = append(report.Uploaded, name)
		logger.Info("Published document", zap.String("document", name), zap.Int("bytes", len(data)))
	}

	if prune {
		keep := make(map[string]bool, len(names))
		for _, name := range names {
			keep[name] = true
		}

		remoteNames, err := remote.List(ctx)
		if err != nil {
			return report, err
		}
		for _, name := range remoteNames {
			if keep[name] {
				continue
			}
			if err := client.RemoveObject(ctx, bucket, remote.prefix+name, minio.RemoveObjectOptions{}); err != nil {
				return report, fmt.Errorf("failed to remove stale document %s: %w", name, err)
			}
			report.Removed = append(report.Removed, name)
			logger.Info("Removed stale document", zap.String("document", name))
		}
	}

	return report, nil
}
