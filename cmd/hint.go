package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vybdev/testobjects/schema"
	"github.com/vybdev/testobjects/workspace/matcher"
)

func newHintCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "hint <TypeName>",
		Short: "Explains how to map a type's schema onto its fixtures and lists the fixtures it would cover.",
		Long: `Prints the editor setup for the schema of TypeName, using the schemas
directory and fixture format configured in .testobjects.yaml, followed by the
fixtures under the resources directory that the file patterns cover.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typeName := args[0]
			ser, err := s.cfg.Serializer()
			if err != nil {
				return err
			}

			g := schema.New(ser,
				schema.WithBaseDir(s.root),
				schema.WithSchemasDir(s.cfg.Schemas),
				schema.WithPrettyPrint(s.cfg.Pretty()),
			)
			target, err := g.Target(typeName, "")
			if err != nil {
				return err
			}
			if rel, err := filepath.Rel(s.root, target); err == nil {
				target = rel
			}

			hint := g.Hint(typeName, target)
			text, err := hint.Render()
			if err != nil {
				return fmt.Errorf("error rendering hint: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, text)

			resources := filepath.Join(s.root, s.cfg.Resources)
			found, err := matcher.Find(os.DirFS(resources), hint.Patterns)
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if len(found) == 0 {
				fmt.Fprintf(out, "\nNo fixtures under %s match yet.\n", resources)
				return nil
			}
			fmt.Fprintf(out, "\nFixtures under %s matching these patterns:\n", resources)
			for _, f := range found {
				fmt.Fprintf(out, "  %s\n", f)
			}
			return nil
		},
	}
}
