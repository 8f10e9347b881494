package main

import (
	"fmt"

	"github.com/jlutz777/SimpleAddress/pkg/codec"
	"github.com/spf13/cobra"
)

func newImportCmd(open storeOpener) *cobra.Command {
	var user, file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Create one address per row of a CSV file",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := codec.FromCSVFile(file)
			if err != nil {
				return err
			}

			svc, release, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			result, err := svc.Import(cmd.Context(), user, rows)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d rows\n", result.Created, len(rows))
			if !result.OK() {
				return fmt.Errorf("%d rows failed to import", result.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "owner of the imported records")
	cmd.Flags().StringVar(&file, "file", "", "CSV file with a header row")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
