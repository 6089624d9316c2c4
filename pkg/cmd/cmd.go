// Package cmd contains the command line applications for the project.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tidyvault/tidyvault/pkg/app"
	"github.com/tidyvault/tidyvault/pkg/configs"
)

var (
	configPath string
	debug      bool

	rootCmd = &cobra.Command{
		Use:     "tidyvault",
		Short:   "A document organization service backed by S3-compatible object storage",
		Version: configs.AppVersion,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.NewApp(configPath).Run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose config debug output")

	rootCmd.AddCommand(serveCmd)
	registerConfigsCommands()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
