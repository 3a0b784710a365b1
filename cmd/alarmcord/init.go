package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sznuper/alarmcord/internal/config"
)

const exampleConfig = `# alarmcord configuration. ${VAR} references are expanded from the environment.

# Posted as the message content above the alarm embed.
project_name: ${PROJECT_NAME}

# SSM parameter (SecureString) holding the Discord webhook URL.
ssm_name: /alarmcord/discord-webhook

# Optional Shoutrrr URLs that also receive a one-line summary.
# mirrors:
#   - telegram://${TELEGRAM_TOKEN}@telegram?chats=${TELEGRAM_CHAT_ID}
# mirror_template: "{{alarm.state_emoji}} {{alarm.state}} {{alarm.name}}: {{alarm.reason}}"

log:
  level: info
  format: auto
`

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example alarmcord configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultConfigPaths()[0]
		if len(args) == 1 {
			path = args[0]
		}
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating config dir: %w", err)
		}
		if err := os.WriteFile(path, []byte(exampleConfig), 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
