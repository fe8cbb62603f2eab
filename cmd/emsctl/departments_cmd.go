package main

import (
	"github.com/spf13/cobra"
)

func newDepartmentsCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "departments",
		Short: "Department queries",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every department",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := root.client()
			if err != nil {
				return err
			}
			departments, err := client.ListDepartments(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSONLine(map[string]any{"departments": departments})
		},
	})
	return cmd
}
