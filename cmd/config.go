package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quocvuong92/qw/internal/config"
)

// NewConfigCmd creates the config command
func NewConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the qw config file",
	}
	configCmd.AddCommand(newConfigInitCmd())
	return configCmd
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file",
		Long: `Write a commented default config file.

The file is created under the user config directory and documents every
setting together with its default. An existing file is never overwritten.

Examples:
  qw config init`,
		RunE: runConfigInit,
	}
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := config.CreateDefaultConfigFile()
	if err != nil {
		return err
	}
	fmt.Printf("Created %s\n", path)
	fmt.Println("Edit it to change the default model, host, or relay timeout.")
	return nil
}
