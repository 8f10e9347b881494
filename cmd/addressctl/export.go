package main

import (
	"fmt"
	"strings"

	"github.com/jlutz777/SimpleAddress/internal/domain/schema"
	"github.com/jlutz777/SimpleAddress/internal/infrastructure/persistence"
	"github.com/spf13/cobra"
)

func newExportCmd(open storeOpener) *cobra.Command {
	var user, format, subset, sortField string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a user's addresses to stdout as CSV or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts persistence.ListOptions
			switch format {
			case "csv":
				if sortField != "" {
					return fmt.Errorf("--sort is only supported with --format json")
				}
			case "json":
				if subset != "" {
					if _, ok := schema.Address.Subset(subset); !ok {
						return fmt.Errorf("unknown subset %q (known: %s)", subset, strings.Join(schema.Address.SubsetNames(), ", "))
					}
					opts.Filter = schema.Address.SubsetFilter(subset)
				}
				opts.SortField = sortField
			default:
				return fmt.Errorf("unsupported format %q (want csv or json)", format)
			}

			svc, release, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			var out []byte
			if format == "csv" {
				out, err = svc.ExportCSV(cmd.Context(), user, subset)
			} else {
				out, err = svc.ExportJSON(cmd.Context(), user, opts)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "owner whose records are exported")
	cmd.Flags().StringVar(&format, "format", "csv", "output format: csv or json")
	cmd.Flags().StringVar(&subset, "subset", "", "named field subset, e.g. christmas")
	cmd.Flags().StringVar(&sortField, "sort", "", "sort field for json output")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
