package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/blackbook/internal/models"
	"github.com/iudanet/blackbook/internal/records"
)

func (c *Cli) newProfileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Edit profile fields",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set RECORD FIELD VALUE",
		Short: "Set a profile field (" + strings.Join(models.ProfileFields, ", ") + ")",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			field := profileField(args[1])

			// Профиль сохраняется отдельно от остальных документов
			return c.withStore(ctx, func(store *records.Store) error {
				rec, err := store.Find(args[0])
				if err != nil {
					return err
				}
				if err := rec.SetProfileField(field, args[2]); err != nil {
					return err
				}
				if err := store.SaveDocument(ctx, rec, models.DocumentProfile); err != nil {
					return err
				}
				c.io.Printf("%s: %s = %q\n", rec.Name, field, args[2])
				return nil
			})
		},
	})

	return cmd
}

// profileField maps "full-name", "full_name" or "FULL NAME" to "Full Name".
func profileField(arg string) string {
	normalized := strings.Join(strings.FieldsFunc(arg, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	}), " ")
	for _, f := range models.ProfileFields {
		if strings.EqualFold(f, normalized) {
			return f
		}
	}
	return arg
}

// listDocument describes one of the plain string lists edited by index.
type listDocument struct {
	name   string
	short  string
	kind   models.DocumentKind
	add    func(*records.Record, string)
	set    func(*records.Record, int, string) error
	remove func(*records.Record, int) error
}

var (
	noteDocument = listDocument{
		name: "note", short: "Manage memories", kind: models.DocumentNotes,
		add: (*records.Record).AddNote, set: (*records.Record).SetNote, remove: (*records.Record).RemoveNote,
	}
	likeDocument = listDocument{
		name: "like", short: "Manage likes", kind: models.DocumentPreferences,
		add: (*records.Record).AddLike, set: (*records.Record).SetLike, remove: (*records.Record).RemoveLike,
	}
	dislikeDocument = listDocument{
		name: "dislike", short: "Manage dislikes", kind: models.DocumentPreferences,
		add: (*records.Record).AddDislike, set: (*records.Record).SetDislike, remove: (*records.Record).RemoveDislike,
	}
)

// parseIndex converts the 1-based INDEX shown by "show" into a slice index.
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid index %q: must be a positive number", arg)
	}
	return n - 1, nil
}

// newListDocumentCommand builds "<name> add|set|rm" for the plain string lists.
func (c *Cli) newListDocumentCommand(doc listDocument) *cobra.Command {
	cmd := &cobra.Command{
		Use:   doc.name,
		Short: doc.short,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add RECORD TEXT",
		Short: "Append an entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(args[1])
			if text == "" {
				return fmt.Errorf("%s cannot be empty", doc.name)
			}
			return c.editRecord(cmd.Context(), args[0], doc.kind, func(rec *records.Record) error {
				doc.add(rec, text)
				c.io.Printf("Added %s to %s\n", doc.name, rec.Name)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set RECORD INDEX TEXT",
		Short: "Replace the entry at INDEX (1-based, as shown by show)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			text := strings.TrimSpace(args[2])
			if text == "" {
				return fmt.Errorf("%s cannot be empty", doc.name)
			}
			return c.editRecord(cmd.Context(), args[0], doc.kind, func(rec *records.Record) error {
				if err := doc.set(rec, i, text); err != nil {
					return err
				}
				c.io.Printf("%s: %s %d = %q\n", rec.Name, doc.name, i+1, text)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm RECORD INDEX",
		Aliases: []string{"remove"},
		Short:   "Remove the entry at INDEX (1-based, as shown by show)",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			return c.editRecord(cmd.Context(), args[0], doc.kind, func(rec *records.Record) error {
				if err := doc.remove(rec, i); err != nil {
					return err
				}
				c.io.Printf("%s: removed %s %d\n", rec.Name, doc.name, i+1)
				return nil
			})
		},
	})

	return cmd
}

func (c *Cli) newLinkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Manage social media links",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set RECORD PLATFORM URL",
		Short: "Set the link for a platform",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.editRecord(cmd.Context(), args[0], models.DocumentLinks, func(rec *records.Record) error {
				rec.SetLink(args[1], args[2])
				c.io.Printf("%s: %s -> %s\n", rec.Name, args[1], args[2])
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm RECORD PLATFORM",
		Aliases: []string{"remove"},
		Short:   "Remove the link for a platform",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.editRecord(cmd.Context(), args[0], models.DocumentLinks, func(rec *records.Record) error {
				if !rec.RemoveLink(args[1]) {
					return fmt.Errorf("record %q has no %s link", rec.Name, args[1])
				}
				c.io.Printf("%s: removed %s\n", rec.Name, args[1])
				return nil
			})
		},
	})

	return cmd
}

func (c *Cli) newEventCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage important dates",
	}

	var addDate string
	add := &cobra.Command{
		Use:   "add RECORD [DESCRIPTION]",
		Short: "Add an important date (defaults to today)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseOptionalDate(addDate)
			if err != nil {
				return err
			}
			description := ""
			if len(args) == 2 {
				description = args[1]
			}

			return c.editRecord(cmd.Context(), args[0], models.DocumentEvents, func(rec *records.Record) error {
				ev := rec.AddEvent(d, description)
				c.io.Printf("%s: %s %s\n", rec.Name, ev.Date, ev.Description)
				return nil
			})
		},
	}
	add.Flags().StringVar(&addDate, "date", "", "Event date, YYYY-MM-DD")
	cmd.AddCommand(add)

	var setDate string
	set := &cobra.Command{
		Use:   "set RECORD INDEX [DESCRIPTION]",
		Short: "Change the date or description of the event at INDEX",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			d, err := parseOptionalDate(setDate)
			if err != nil {
				return err
			}
			description := ""
			if len(args) == 3 {
				description = args[2]
			}
			if d.IsZero() && strings.TrimSpace(description) == "" {
				return fmt.Errorf("nothing to change: pass --date or DESCRIPTION")
			}

			return c.editRecord(cmd.Context(), args[0], models.DocumentEvents, func(rec *records.Record) error {
				ev, err := rec.SetEvent(i, d, description)
				if err != nil {
					return err
				}
				c.io.Printf("%s: event %d = %s %s\n", rec.Name, i+1, ev.Date, ev.Description)
				return nil
			})
		},
	}
	set.Flags().StringVar(&setDate, "date", "", "New event date, YYYY-MM-DD")
	cmd.AddCommand(set)

	cmd.AddCommand(&cobra.Command{
		Use:     "rm RECORD INDEX",
		Aliases: []string{"remove"},
		Short:   "Remove the event at INDEX",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[1])
			if err != nil {
				return err
			}
			return c.editRecord(cmd.Context(), args[0], models.DocumentEvents, func(rec *records.Record) error {
				if err := rec.RemoveEvent(i); err != nil {
					return err
				}
				c.io.Printf("%s: removed event %d\n", rec.Name, i+1)
				return nil
			})
		},
	})

	return cmd
}

// parseOptionalDate returns the zero Date for an empty flag value.
func parseOptionalDate(value string) (models.Date, error) {
	if value == "" {
		return models.Date{}, nil
	}
	return models.ParseDate(value)
}

func (c *Cli) newTagCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add RECORD TAG",
		Short: "Add a tag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.editRecord(cmd.Context(), args[0], models.DocumentTags, func(rec *records.Record) error {
				if err := rec.AddTag(args[1]); err != nil {
					return err
				}
				c.io.Printf("%s: tagged %s\n", rec.Name, strings.TrimSpace(args[1]))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm RECORD TAG",
		Aliases: []string{"remove"},
		Short:   "Remove a tag",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.editRecord(cmd.Context(), args[0], models.DocumentTags, func(rec *records.Record) error {
				if !rec.RemoveTag(args[1]) {
					return fmt.Errorf("record %q has no tag %q", rec.Name, args[1])
				}
				c.io.Printf("%s: untagged %s\n", rec.Name, args[1])
				return nil
			})
		},
	})

	return cmd
}
