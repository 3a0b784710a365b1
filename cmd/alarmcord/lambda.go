package main

import (
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/spf13/cobra"

	"github.com/sznuper/alarmcord/internal/config"
	"github.com/sznuper/alarmcord/internal/discord"
	"github.com/sznuper/alarmcord/internal/relay"
	"github.com/sznuper/alarmcord/internal/secret"
)

// runtimeAPIEnv is set by the Lambda runtime, including custom runtimes that
// exec the binary as bootstrap with no arguments.
const runtimeAPIEnv = "AWS_LAMBDA_RUNTIME_API"

// runLambda is swapped out in tests so dispatch can be checked without
// starting the runtime.
var runLambda = serveLambda

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Serve SNS events as an AWS Lambda handler",
	Long: "Reads configuration from the environment (project_name, ssm_name, ...) and hands control to the Lambda runtime. " +
		"Running alarmcord without a subcommand does the same when " + runtimeAPIEnv + " is set.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLambda(cmd, args)
	},
}

func serveLambda(cmd *cobra.Command, args []string) error {
	cfg := config.FromEnv(os.LookupEnv)
	applyOptionFlags(cmd, cfg)
	if err := config.Validate(cfg); err != nil {
		return err
	}
	logger := setupLogger(cfg)

	store, err := secret.LoadSSMStore(cmd.Context())
	if err != nil {
		return err
	}

	n := relay.New(cfg, store, discord.NewClient(&http.Client{}), logger)
	logger.Info("starting lambda handler", "ssm_name", cfg.SSMName, "mirrors", len(cfg.Mirrors))
	lambda.Start(n.Handle)
	return nil
}

func init() {
	rootCmd.AddCommand(lambdaCmd)
}
