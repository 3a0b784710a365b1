package relay

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/sznuper/alarmcord/internal/alarm"
	"github.com/sznuper/alarmcord/internal/config"
	"github.com/sznuper/alarmcord/internal/discord"
	"github.com/sznuper/alarmcord/internal/notify"
	"github.com/sznuper/alarmcord/internal/secret"
)

// Poster delivers a Discord payload and reports the response status.
type Poster interface {
	Post(ctx context.Context, url string, p discord.Payload) (int, error)
}

// Notifier orchestrates the parse → build → secret → post → mirror pipeline.
type Notifier struct {
	cfg     *config.Config
	secrets secret.Store
	poster  Poster
	logger  *slog.Logger
}

// New creates a Notifier. cfg must already be validated.
func New(cfg *config.Config, secrets secret.Store, poster Poster, logger *slog.Logger) *Notifier {
	return &Notifier{cfg: cfg, secrets: secrets, poster: poster, logger: logger}
}

// Handle is the Lambda entry point. It returns the webhook's status code.
func (n *Notifier) Handle(ctx context.Context, event events.SNSEvent) (int, error) {
	res := n.Run(ctx, event, false)
	if res.Err != nil {
		return 0, res.Err
	}
	return res.StatusCode, nil
}

// Run relays a single SNS event. With dryRun the payload is built and mirror
// URLs are validated, but no secret is fetched and nothing is sent.
func (n *Notifier) Run(ctx context.Context, event events.SNSEvent, dryRun bool) Result {
	log := n.logger
	start := time.Now()
	result := Result{DryRun: dryRun}

	fail := func(stage string, err error) Result {
		result.Err = err
		result.ErrStage = stage
		result.Duration = time.Since(start)
		log.Error(stage+" failed", "error", err)
		return result
	}

	// Stage 1: Parse the alarm out of the SNS message.
	if len(event.Records) > 0 {
		log.Info("received event", "records", len(event.Records), "message", event.Records[0].SNS.Message)
	} else {
		log.Warn("received event without records")
	}
	a, err := alarm.FromSNS(event)
	if err != nil {
		return fail(StageParse, err)
	}
	log = log.With("alarm", a.Name)
	result.AlarmName = a.Name
	result.State = a.State
	log.Info("alarm parsed", "state", a.State, "metric", a.MetricName)

	// Stage 2: Build the Discord payload.
	payload := discord.Build(a, n.cfg.ProjectName)
	result.Payload = &payload

	targets, err := notify.ResolveTargets(n.cfg.Mirrors, n.cfg.MirrorTemplate, notify.BuildTemplateData(n.cfg.ProjectName, a))
	if err != nil {
		if dryRun {
			return fail(StageMirror, err)
		}
		result.MirrorErrors = map[string]string{"template": err.Error()}
		log.Warn("mirror template failed", "error", err)
	}

	if dryRun {
		for _, t := range targets {
			if err := notify.Validate(t); err != nil {
				return fail(StageMirror, err)
			}
			result.Mirrored = append(result.Mirrored, t.ServiceName)
			log.Debug("would mirror (dry-run)", "service", t.ServiceName, "message", t.Message)
		}
		result.Duration = time.Since(start)
		log.Info("dry run completed", "duration", result.Duration)
		return result
	}

	// Stage 3: Fetch the webhook URL.
	log.Debug("looking up webhook", "parameter", n.cfg.SSMName)
	url, err := n.secrets.Lookup(ctx, n.cfg.SSMName)
	if err != nil {
		return fail(StageSecret, err)
	}

	// Stage 4: Post to Discord.
	code, err := n.poster.Post(ctx, url, payload)
	if err != nil {
		return fail(StagePost, err)
	}
	result.StatusCode = code
	log.Info("webhook posted", "status_code", code)

	// Stage 5: Mirror to other services. Failures are reported, not fatal.
	for _, t := range targets {
		if err := notify.Send(t); err != nil {
			if result.MirrorErrors == nil {
				result.MirrorErrors = make(map[string]string)
			}
			result.MirrorErrors[t.ServiceName] = err.Error()
			log.Warn("mirror failed", "service", t.ServiceName, "error", err)
			continue
		}
		result.Mirrored = append(result.Mirrored, t.ServiceName)
		log.Debug("mirror sent", "service", t.ServiceName)
	}

	result.Duration = time.Since(start)
	log.Info("alarm relayed", "status_code", code, "duration", result.Duration)
	return result
}
