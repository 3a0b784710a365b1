package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the alarmcord configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("✓ project_name: %s\n", cfg.ProjectName)
		fmt.Printf("✓ ssm_name: %s\n", cfg.SSMName)
		for i := range cfg.Mirrors {
			fmt.Printf("✓ mirrors[%d]: %s\n", i, mirrorLabel(cfg.Mirrors[i]))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
