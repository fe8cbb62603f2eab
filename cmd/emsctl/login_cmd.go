package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(root *rootOptions) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange credentials for a bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(email) == "" || password == "" {
				return fmt.Errorf("--email and --password are required")
			}
			client, err := root.client()
			if err != nil {
				return err
			}
			res, err := client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			return writeJSONLine(map[string]string{
				"token":  res.Token,
				"userId": res.User.ID,
				"role":   res.User.Role,
			})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
