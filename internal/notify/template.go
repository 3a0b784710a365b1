package notify

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/sznuper/alarmcord/internal/alarm"
)

// DefaultTemplate renders a one-line summary of an alarm.
const DefaultTemplate = `{{alarm.state_emoji}} {{alarm.state}} {{alarm.name}}: {{alarm.reason}}`

// TemplateData holds all data available to mirror templates.
type TemplateData struct {
	Project string
	Alarm   map[string]string
}

// BuildTemplateData flattens an alarm into template data.
func BuildTemplateData(project string, a *alarm.Alarm) TemplateData {
	return TemplateData{
		Project: project,
		Alarm: map[string]string{
			"name":        a.Name,
			"description": a.Description,
			"state":       a.State,
			"state_emoji": stateEmoji(a.State),
			"reason":      a.Reason,
			"metric":      a.MetricName,
		},
	}
}

func stateEmoji(state string) string {
	switch state {
	case "ALARM":
		return "\U0001f534" // 🔴
	case "INSUFFICIENT_DATA":
		return "\U0001f7e1" // 🟡
	case "OK":
		return "\U0001f7e2" // 🟢
	default:
		return "\u2753" // ❓
	}
}

// Render executes a Go text/template string with Sprig functions and the
// accessor functions alarm and project, so {{alarm.name}} works.
func Render(tmplStr string, data TemplateData) (string, error) {
	funcMap := sprig.TxtFuncMap()
	funcMap["alarm"] = func() map[string]string { return data.Alarm }
	funcMap["project"] = func() string { return data.Project }

	t, err := template.New("notify").Funcs(funcMap).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}
