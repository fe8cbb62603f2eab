package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/emstack/ems-console/internal/emsapi"
	"github.com/emstack/ems-console/pkg/logging"

	"github.com/sirupsen/logrus"
)

type rootOptions struct {
	baseURL string
	token   string
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:           "emsctl",
		Short:         "Inspect the EMS API from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "http://localhost:3000/api", "EMS API base URL")
	cmd.PersistentFlags().StringVar(&opts.token, "token", "", "Bearer token (from `emsctl login`)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")

	cmd.AddCommand(newLoginCmd(&opts))
	cmd.AddCommand(newEmployeesCmd(&opts))
	cmd.AddCommand(newDepartmentsCmd(&opts))
	return cmd
}

func (o *rootOptions) client() (*emsapi.Client, error) {
	return emsapi.New(emsapi.Options{
		BaseURL: o.baseURL,
		Tokens:  emsapi.StaticTokenSource(o.token),
		Timeout: o.timeout,
		Logger:  logging.ConsoleLogger(logrus.ErrorLevel),
	})
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
