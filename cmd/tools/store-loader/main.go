// cmd/tools/store-loader/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"dining-concierge/internal/common/aws"
	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/logger"
	"dining-concierge/internal/ingest"
	"dining-concierge/internal/restaurants"
)

func main() {
	snapshotPath := flag.String("snapshot", "", "Snapshot source: local path or s3://bucket/key")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	source := *snapshotPath
	if source == "" && cfg.AWS.S3.SnapshotBucket != "" {
		source = fmt.Sprintf("s3://%s/%s", cfg.AWS.S3.SnapshotBucket, cfg.AWS.S3.SnapshotKey)
	}
	if source == "" {
		fmt.Println("Error: -snapshot (or aws.s3.snapshot_bucket in config) is required")
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	ctx := context.Background()

	reader, err := openSnapshot(ctx, cfg, source)
	if err != nil {
		fmt.Printf("Error opening snapshot %s: %v\n", source, err)
		os.Exit(1)
	}
	defer reader.Close()

	records, err := ingest.ReadSnapshot(reader)
	if err != nil {
		fmt.Printf("Error parsing snapshot: %v\n", err)
		os.Exit(1)
	}

	dynamoClient, err := aws.NewDynamoDBClient(ctx, cfg.AWS.Region)
	if err != nil {
		fmt.Printf("Error creating DynamoDB client: %v\n", err)
		os.Exit(1)
	}
	store, err := restaurants.NewStore(dynamoClient, cfg.AWS.DynamoDB.RestaurantsTable, log)
	if err != nil {
		fmt.Printf("Error creating store: %v\n", err)
		os.Exit(1)
	}

	loaded := 0
	for i := range records {
		if err := store.Put(ctx, records[i]); err != nil {
			fmt.Printf("Error storing %s: %v\n", records[i].BusinessID, err)
			os.Exit(1)
		}
		loaded++
	}

	fmt.Printf("Loaded %d restaurants into %s from %s\n", loaded, cfg.AWS.DynamoDB.RestaurantsTable, source)
}

// openSnapshot resolves the snapshot source, downloading it when the path
// uses the s3:// scheme.
func openSnapshot(ctx context.Context, cfg *config.Config, source string) (io.ReadCloser, error) {
	if !strings.HasPrefix(source, "s3://") {
		return os.Open(source)
	}

	trimmed := strings.TrimPrefix(source, "s3://")
	bucket, key, ok := strings.Cut(trimmed, "/")
	if !ok || bucket == "" || key == "" {
		return nil, fmt.Errorf("malformed s3 path %q, want s3://bucket/key", source)
	}

	s3Client, err := aws.NewS3Client(ctx, cfg.AWS.Region)
	if err != nil {
		return nil, err
	}
	out, err := s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: awssdk.String(bucket),
		Key:    awssdk.String(key),
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}
