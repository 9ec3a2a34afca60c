package cli

import (
	"errors"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/iudanet/blackbook/internal/models"
	"github.com/iudanet/blackbook/internal/records"
	"github.com/iudanet/blackbook/internal/storage"
)

func (c *Cli) newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME|KEY",
		Short: "Show every document of a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(store *records.Store) error {
				rec, err := store.Find(args[0])
				if err != nil {
					return err
				}

				c.io.Printf("=== %s ===\n", rec.Name)
				c.io.Printf("Key:      %s\n", rec.Key)
				c.io.Printf("Folder:   %s\n", rec.Dir)
				c.io.Printf("Portrait: %s\n", yesNo(rec.Portrait != ""))

				entry, err := store.CatalogEntry(ctx, rec)
				switch {
				case err == nil:
					c.io.Printf("ID:       %s\n", entry.ID)
					if entry.CreatedAt > 0 {
						c.io.Printf("Created:  %s\n", humanize.Time(time.Unix(entry.CreatedAt, 0)))
					}
					if entry.SavedAt > 0 {
						c.io.Printf("Saved:    %s\n", humanize.Time(time.Unix(entry.SavedAt, 0)))
					}
				case !errors.Is(err, storage.ErrCatalogNotFound):
					return err
				}
				c.io.Println()

				c.printProfile(rec.Profile)
				c.printList("Memories", rec.Notes)
				c.printList("Likes", rec.Preferences.Likes)
				c.printList("Dislikes", rec.Preferences.Dislikes)
				c.printLinks(rec.Links)
				c.printEvents(rec.Events)
				c.printList("Tags", rec.Tags)

				return c.printMediaSummary(store, rec)
			})
		},
	}
}

func (c *Cli) printProfile(p models.Profile) {
	rows := make([][]string, 0, len(p))
	for _, f := range models.ProfileFields {
		rows = append(rows, []string{f, p[f]})
	}
	// Неизвестные ключи показываем после фиксированных полей
	for _, k := range slices.Sorted(maps.Keys(p)) {
		if !models.IsProfileField(k) {
			rows = append(rows, []string{k, p[k]})
		}
	}
	c.io.Println(renderTable([]string{"Field", "Value"}, rows, nil))
}

func (c *Cli) printList(title string, items []string) {
	if len(items) == 0 {
		c.io.Printf("%s: none\n", title)
		return
	}
	c.io.Printf("%s:\n", title)
	for i, item := range items {
		c.io.Printf("  %d. %s\n", i+1, item)
	}
}

func (c *Cli) printLinks(links models.Links) {
	if len(links) == 0 {
		c.io.Println("Social media: none")
		return
	}
	rows := make([][]string, 0, len(links))
	for _, platform := range slices.Sorted(maps.Keys(links)) {
		rows = append(rows, []string{platform, links[platform]})
	}
	c.io.Println(renderTable([]string{"Platform", "URL"}, rows, nil))
}

func (c *Cli) printEvents(events []models.Event) {
	if len(events) == 0 {
		c.io.Println("Important dates: none")
		return
	}
	rows := make([][]string, 0, len(events))
	for i, ev := range events {
		rows = append(rows, []string{strconv.Itoa(i + 1), ev.Date.String(), ev.Description})
	}
	c.io.Println(renderTable([]string{"#", "Date", "Description"}, rows, []columnAlignment{alignRight}))
}

func (c *Cli) printMediaSummary(store *records.Store, rec *records.Record) error {
	rows := make([][]string, 0, len(models.Buckets))
	for _, bucket := range models.Buckets {
		files, err := store.MediaFiles(rec, bucket)
		if err != nil {
			return err
		}
		var size int64
		for _, f := range files {
			size += f.Size
		}
		rows = append(rows, []string{
			string(bucket),
			bucket.Dir() + "/",
			humanize.Comma(int64(len(files))),
			humanize.Bytes(uint64(size)),
		})
	}
	c.io.Println(renderTable([]string{"Bucket", "Folder", "Files", "Size"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight, alignRight}))
	return nil
}
