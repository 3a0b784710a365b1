package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/spf13/cobra"

	"github.com/sznuper/alarmcord/internal/discord"
	"github.com/sznuper/alarmcord/internal/relay"
	"github.com/sznuper/alarmcord/internal/secret"
)

var invokeCmd = &cobra.Command{
	Use:   "invoke <event.json>",
	Short: "Relay a single event file once",
	Long: "Reads an SNS event (or, with --raw, a bare CloudWatch alarm message) from a file and relays it " +
		"exactly as the Lambda handler would. Use --dry-run to print the payload without fetching the " +
		"webhook or sending anything. Pass - to read from stdin.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		raw, _ := cmd.Flags().GetBool("raw")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := setupLogger(cfg)

		event, err := readEvent(args[0], raw)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		var store secret.Store = noStore{}
		if !dryRun {
			if store, err = secret.LoadSSMStore(ctx); err != nil {
				return err
			}
		}

		n := relay.New(cfg, store, discord.NewClient(&http.Client{}), logger)
		res := n.Run(ctx, event, dryRun)
		printResult(res)

		if res.Err != nil {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	invokeCmd.Flags().Bool("dry-run", false, "build the payload without fetching the webhook or sending")
	invokeCmd.Flags().Bool("raw", false, "the file holds a CloudWatch alarm message, not an SNS event")
	rootCmd.AddCommand(invokeCmd)
}

func readEvent(path string, raw bool) (events.SNSEvent, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return events.SNSEvent{}, fmt.Errorf("reading event: %w", err)
	}

	if raw {
		return events.SNSEvent{Records: []events.SNSEventRecord{
			{EventSource: "aws:sns", SNS: events.SNSEntity{Message: string(data)}},
		}}, nil
	}

	var event events.SNSEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return events.SNSEvent{}, fmt.Errorf("parsing event: %w", err)
	}
	return event, nil
}

// noStore stands in for SSM during dry runs, which never look up secrets.
type noStore struct{}

func (noStore) Lookup(context.Context, string) (string, error) {
	return "", fmt.Errorf("secret lookup not available in dry run")
}

func printResult(r relay.Result) {
	if r.Err != nil {
		fmt.Printf("✗ Alarm: %s\n", orUnknown(r.AlarmName))
		fmt.Printf("  Error (%s): %s\n", r.ErrStage, r.Err)
		return
	}

	fmt.Printf("✓ Alarm: %s (%s)\n", r.AlarmName, r.State)
	if r.DryRun && r.Payload != nil {
		body, _ := json.MarshalIndent(r.Payload, "  ", "  ")
		fmt.Printf("  Payload: %s\n", body)
	} else {
		fmt.Printf("  Status: %d\n", r.StatusCode)
	}

	if len(r.Mirrored) > 0 {
		label := "Mirrored"
		if r.DryRun {
			label = "Would mirror"
		}
		fmt.Printf("  %s: %s\n", label, strings.Join(r.Mirrored, ", "))
	}
	for svc, msg := range r.MirrorErrors {
		fmt.Printf("  Mirror error (%s): %s\n", svc, msg)
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "<unknown>"
	}
	return s
}

// mirrorLabel hides everything after the scheme, since mirror URLs carry
// tokens.
func mirrorLabel(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return "<invalid>"
	}
	return u.Scheme + "://…"
}
