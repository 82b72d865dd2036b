package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pinkcat015/todolist/infrastructure/storage"
	"github.com/pinkcat015/todolist/pkg/di"
	"github.com/pinkcat015/todolist/pkg/logger"
)

func newBucketCmd() *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:   "bucket",
		Short: "Create the S3 bucket and allow public reads of avatars",
		RunE: func(cmd *cobra.Command, args []string) error {
			s3, err := storage.NewS3Client(di.S3Config(cfg))
			if err != nil {
				return fmt.Errorf("s3 client: %w", err)
			}

			ctx := cmd.Context()
			if err := s3.EnsureBucket(ctx); err != nil {
				return err
			}

			policy, err := s3.SetPublicReadPolicy(ctx, prefix)
			if err != nil {
				return fmt.Errorf("set bucket policy: %w", err)
			}

			logger.Info("Bucket ready", "bucket", cfg.Storage.S3.Bucket, "public_prefix", prefix)
			fmt.Println(policy)
			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "avatars", "object prefix readable without credentials")
	return cmd
}
