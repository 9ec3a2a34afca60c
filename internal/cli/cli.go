// Package cli implements the blackbook command line on top of the record store.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/blackbook/internal/iocli"
	"github.com/iudanet/blackbook/internal/models"
	"github.com/iudanet/blackbook/internal/records"
	"github.com/iudanet/blackbook/internal/settings"
	"github.com/iudanet/blackbook/internal/storage"
	"github.com/iudanet/blackbook/internal/storage/boltdb"
)

type Cli struct {
	io     iocli.IO
	logger *slog.Logger
	level  *slog.LevelVar

	settingsPath string
	rootOverride string
	verbose      bool
}

// New returns a Cli that talks to the user through term and logs to logOut.
func New(term iocli.IO, logOut io.Writer) *Cli {
	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)

	return &Cli{
		io:     term,
		logger: slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level})),
		level:  level,
	}
}

// RootCommand builds the blackbook command tree.
func (c *Cli) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "blackbook",
		Short:         "Social blackbook: contact records with notes, dates, tags and media",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.level.Set(slog.LevelDebug)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&c.settingsPath, "settings", "", "Path to settings.json (default: user config dir)")
	root.PersistentFlags().StringVar(&c.rootOverride, "root", "", "Store root directory (overrides social_folder)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		c.newInitCommand(),
		c.newListCommand(),
		c.newAddCommand(),
		c.newShowCommand(),
		c.newProfileCommand(),
		c.newListDocumentCommand(noteDocument),
		c.newListDocumentCommand(likeDocument),
		c.newListDocumentCommand(dislikeDocument),
		c.newLinkCommand(),
		c.newEventCommand(),
		c.newTagCommand(),
		c.newPortraitCommand(),
		c.newMediaCommand(),
		c.newWarningsCommand(),
	)

	return root
}

func (c *Cli) loadSettings() (*settings.Settings, error) {
	path := strings.TrimSpace(c.settingsPath)
	if path == "" {
		var err error
		path, err = settings.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return settings.Load(path)
}

// resolveRoot picks the store root: --root, then social_folder, then an
// interactive prompt whose answer is written back to settings.json.
func (c *Cli) resolveRoot(s *settings.Settings) (string, error) {
	if c.rootOverride != "" {
		return iocli.ExpandPath(c.rootOverride)
	}
	if s.SocialFolder != "" {
		return s.SocialFolder, nil
	}

	if !c.io.IsInteractive() {
		return "", fmt.Errorf("%w: social_folder is not set in %s; run 'blackbook init DIR'", storage.ErrConfiguration, s.Path())
	}

	dir, err := c.io.ReadDirectory("Select the social folder: ")
	if err != nil {
		return "", fmt.Errorf("%w: %w", storage.ErrConfiguration, err)
	}
	s.SocialFolder = dir
	if err := s.Save(); err != nil {
		return "", err
	}
	c.logger.Info("social folder saved", "path", dir, "settings", s.Path())

	return dir, nil
}

// withStore opens the record store for the duration of fn.
func (c *Cli) withStore(ctx context.Context, fn func(*records.Store) error) error {
	s, err := c.loadSettings()
	if err != nil {
		return err
	}

	root, err := c.resolveRoot(s)
	if err != nil {
		return err
	}

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: store root %s is not a directory", storage.ErrConfiguration, root)
	}

	catalog, err := boltdb.New(ctx, filepath.Join(root, boltdb.FileName))
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer func() {
		if err := catalog.Close(); err != nil {
			c.logger.Error("failed to close catalog", "error", err)
		}
	}()

	store, err := records.Open(ctx, records.Config{
		Catalog:         catalog,
		Logger:          c.logger,
		Root:            root,
		DuplicatePolicy: s.DuplicatePolicy,
	})
	if err != nil {
		return err
	}

	return fn(store)
}

// editRecord loads the store, applies edit to one record and saves the
// edited document only. A document that failed to load is not overwritten.
func (c *Cli) editRecord(ctx context.Context, ref string, kind models.DocumentKind, edit func(*records.Record) error) error {
	return c.withStore(ctx, func(store *records.Store) error {
		rec, err := store.Find(ref)
		if err != nil {
			return err
		}
		if err := edit(rec); err != nil {
			return err
		}
		return store.SaveDocument(ctx, rec, kind)
	})
}
