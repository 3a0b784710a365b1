package notify

import (
	"fmt"
	"net/url"

	"github.com/nicholas-fedor/shoutrrr"
	"github.com/nicholas-fedor/shoutrrr/pkg/types"
)

// Target holds a fully resolved mirror ready to send.
type Target struct {
	ServiceName string
	URL         string
	Message     string
}

// ResolveTargets renders the mirror template once and pairs it with every
// mirror URL. An empty template falls back to DefaultTemplate.
func ResolveTargets(mirrors []string, tmplStr string, data TemplateData) ([]Target, error) {
	if len(mirrors) == 0 {
		return nil, nil
	}
	if tmplStr == "" {
		tmplStr = DefaultTemplate
	}

	msg, err := Render(tmplStr, data)
	if err != nil {
		return nil, fmt.Errorf("rendering mirror template: %w", err)
	}

	targets := make([]Target, 0, len(mirrors))
	for _, m := range mirrors {
		targets = append(targets, Target{
			ServiceName: serviceName(m),
			URL:         m,
			Message:     msg,
		})
	}
	return targets, nil
}

// serviceName is the URL scheme, which keeps credentials out of logs.
func serviceName(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return "unknown"
	}
	return u.Scheme
}

// Validate checks that a target's URL maps to a Shoutrrr service without
// sending anything.
func Validate(t Target) error {
	if _, err := shoutrrr.CreateSender(t.URL); err != nil {
		return fmt.Errorf("invalid URL for %s: %w", t.ServiceName, err)
	}
	return nil
}

// Send delivers a message to a single target via Shoutrrr.
func Send(t Target) error {
	sender, err := shoutrrr.CreateSender(t.URL)
	if err != nil {
		return fmt.Errorf("creating sender for %s: %w", t.ServiceName, err)
	}

	params := types.Params{}
	errs := sender.Send(t.Message, &params)
	for _, e := range errs {
		if e != nil {
			return fmt.Errorf("sending to %s: %w", t.ServiceName, e)
		}
	}

	return nil
}
