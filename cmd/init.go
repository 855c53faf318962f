package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vybdev/testobjects/config"
)

// objectsDir is the conventional sub-directory of the fixture root holding
// test objects.
const objectsDir = "objects"

func newInitCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Creates the fixture and schema directories and a default .testobjects.yaml at the module root.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, dir := range []string{
				filepath.Join(s.root, s.cfg.Resources, objectsDir),
				filepath.Join(s.root, s.cfg.Schemas),
			} {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("error creating %s: %w", dir, err)
				}
				fmt.Fprintf(out, "Created %s\n", dir)
			}

			cfgPath := filepath.Join(s.root, config.FileName)
			if _, err := os.Stat(cfgPath); err == nil {
				fmt.Fprintf(out, "Keeping existing %s\n", cfgPath)
				return nil
			} else if !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("error inspecting %s: %w", cfgPath, err)
			}

			data, err := s.cfg.Marshal()
			if err != nil {
				return fmt.Errorf("error encoding configuration: %w", err)
			}
			if err := os.WriteFile(cfgPath, data, 0644); err != nil {
				return fmt.Errorf("error writing %s: %w", cfgPath, err)
			}
			fmt.Fprintf(out, "Wrote %s\n", cfgPath)
			return nil
		},
	}
}
