package main

import (
	"github.com/spf13/cobra"

	"github.com/emstack/ems-console/internal/emsapi"
)

func newEmployeesCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employees",
		Short: "Employee queries",
	}
	cmd.AddCommand(newEmployeesListCmd(root))
	cmd.AddCommand(newEmployeesTotalCmd(root))
	return cmd
}

func newEmployeesListCmd(root *rootOptions) *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of employees, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := root.client()
			if err != nil {
				return err
			}
			res, err := client.ListEmployees(cmd.Context(), page, limit, emsapi.SortNewestFirst)
			if err != nil {
				return err
			}
			return writeJSONLine(res)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 10, "Rows per page")
	return cmd
}

func newEmployeesTotalCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "Print the total employee count",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := root.client()
			if err != nil {
				return err
			}
			total, err := client.TotalEmployees(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSONLine(map[string]int{"totalEmployees": total})
		},
	}
}
