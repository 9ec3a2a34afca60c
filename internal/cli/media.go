package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/iudanet/blackbook/internal/models"
	"github.com/iudanet/blackbook/internal/records"
	"github.com/iudanet/blackbook/internal/storage"
	"github.com/iudanet/blackbook/internal/worker"
)

func (c *Cli) newPortraitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "portrait RECORD [FILE]",
		Short: "Replace the record's photo.jpg with FILE",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(store *records.Store) error {
				rec, err := store.Find(args[0])
				if err != nil {
					return err
				}

				src := ""
				if len(args) == 2 {
					src = args[1]
				} else {
					src, err = c.io.ReadFilePath("Portrait file: ")
					if err != nil {
						return fmt.Errorf("failed to read portrait path: %w", err)
					}
				}

				if err := store.SetPortrait(rec, src); err != nil {
					return err
				}
				c.io.Printf("%s: portrait set from %s\n", rec.Name, src)
				return nil
			})
		},
	}
}

func (c *Cli) newMediaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Manage media buckets (photos, videos, private)",
	}
	cmd.AddCommand(c.newMediaAddCommand(), c.newMediaListCommand())
	return cmd
}

func parseBucket(arg string) (models.Bucket, error) {
	bucket, ok := models.ParseBucket(arg)
	if !ok {
		names := make([]string, 0, len(models.Buckets))
		for _, b := range models.Buckets {
			names = append(names, string(b))
		}
		return "", fmt.Errorf("%w: %q (use %s)", storage.ErrUnknownBucket, arg, strings.Join(names, ", "))
	}
	return bucket, nil
}

func (c *Cli) newMediaAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add RECORD BUCKET FILE...",
		Short: "Copy files into a media bucket",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			bucket, err := parseBucket(args[1])
			if err != nil {
				return err
			}
			files := args[2:]

			return c.withStore(ctx, func(store *records.Store) error {
				rec, err := store.Find(args[0])
				if err != nil {
					return err
				}

				// Копирование идет в отдельной горутине; уже скопированные файлы не откатываются
				done := worker.Go(ctx, func() ([]string, error) {
					added := make([]string, 0, len(files))
					for _, src := range files {
						dst, err := store.AddMediaFile(rec, bucket, src)
						if err != nil {
							return added, err
						}
						added = append(added, dst)
					}
					return added, nil
				})

				added, err := worker.Wait(ctx, done)
				for _, dst := range added {
					c.io.Printf("Added %s\n", dst)
				}
				if err != nil {
					return err
				}

				c.logger.Debug("media imported", "key", rec.Key, "bucket", bucket, "count", len(added))
				return nil
			})
		},
	}
}

func (c *Cli) newMediaListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "ls RECORD BUCKET",
		Aliases: []string{"list"},
		Short:   "List files in a media bucket, newest first",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bucket, err := parseBucket(args[1])
			if err != nil {
				return err
			}

			return c.withStore(cmd.Context(), func(store *records.Store) error {
				rec, err := store.Find(args[0])
				if err != nil {
					return err
				}

				files, err := store.MediaFiles(rec, bucket)
				if err != nil {
					return err
				}
				if len(files) == 0 {
					c.io.Printf("%s: no files in %s\n", rec.Name, bucket)
					return nil
				}

				rows := make([][]string, 0, len(files))
				for _, f := range files {
					rows = append(rows, []string{
						f.Name,
						humanize.Bytes(uint64(f.Size)),
						f.ModTime.Format("2006-01-02 15:04"),
					})
				}
				c.io.Println(renderTable([]string{"Name", "Size", "Modified"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft}))
				return nil
			})
		},
	}
}
