package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/deppfellow/locallibrary/internal/lib/email"
	"github.com/spf13/cobra"
)

func newEmailPreviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "email-preview [template]",
		Short: "Render an email template with sample data",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, name := range previewNames() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			name := email.Template(args[0])
			data, ok := email.PreviewData[name]
			if !ok {
				return fmt.Errorf("unknown template %q (available: %s)", args[0], strings.Join(previewNames(), ", "))
			}

			html, err := email.Render(name, data)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
			return err
		},
	}
}

func previewNames() []string {
	names := make([]string, 0, len(email.PreviewData))
	for name := range email.PreviewData {
		names = append(names, string(name))
	}
	slices.Sort(names)
	return names
}
