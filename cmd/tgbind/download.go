package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edouard/tgbind/internal/platform"
)

func (a *app) downloadCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "download <file_id>",
		Short: "Download a file by id (to stdout unless --output is set)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, _, err := c.Download(cmd.Context(), args[0], a.stdout)
				return err
			}

			var buf bytes.Buffer
			f, n, err := c.Download(cmd.Context(), args[0], &buf)
			if err != nil {
				return err
			}
			if err := platform.AtomicWrite(output, buf.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Fprintf(a.stderr, "saved %s (%d bytes) to %s\n", f.FilePath(), n, output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write")
	return cmd
}
