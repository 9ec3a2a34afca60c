package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iudanet/blackbook/internal/iocli"
)

func (c *Cli) newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [DIR]",
		Short: "Set the social folder (store root) in settings.json",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.loadSettings()
			if err != nil {
				return err
			}

			var dir string
			if len(args) == 1 {
				dir, err = iocli.ExpandPath(args[0])
				if err != nil {
					return err
				}
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create %s: %w", dir, err)
				}
			} else {
				dir, err = c.io.ReadDirectory("Social folder: ")
				if err != nil {
					return fmt.Errorf("failed to read social folder: %w", err)
				}
			}

			s.SocialFolder = dir
			if err := s.Save(); err != nil {
				return err
			}

			c.io.Printf("Social folder set to %s\n", dir)
			c.io.Printf("Settings: %s\n", s.Path())
			return nil
		},
	}
}
