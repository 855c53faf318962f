package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vybdev/testobjects/fixture"
	"github.com/vybdev/testobjects/serializer"
)

func newConvertCmd(s *session) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "convert <fixture>",
		Short: "Prints a fixture re-encoded in another format.",
		Long: `Reads a fixture file, relative to the configured resources directory, and
prints it encoded with the serializer selected by --to. The input format is
inferred from the file extension. Without --to, the format configured in
.testobjects.yaml is used.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			src, err := serializer.ForFile(name)
			if err != nil {
				return err
			}
			dst, err := s.cfg.Serializer()
			if to != "" {
				dst, err = serializer.ForFormat(to)
			}
			if err != nil {
				return err
			}

			r := fixture.New(src, fixture.WithDir(filepath.Join(s.root, s.cfg.Resources)))
			var data any
			if err := r.ReadInto(name, &data); err != nil {
				return err
			}

			out, err := dst.Encode(data, s.cfg.Pretty())
			if err != nil {
				return fmt.Errorf("error encoding %s as %s: %w", name, dst.Name(), err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "output format (json, yaml or toml); defaults to the configured format")
	return cmd
}
