package discord

import "github.com/sznuper/alarmcord/internal/alarm"

const (
	Username  = "AWS"
	AvatarURL = "https://i.imgflip.com/29s5ao.jpg"
	Title     = ":rotating_light: AWS Alarm was triggered! :rotating_light:"
	Color     = 15204352
)

// Payload is the body of a Discord webhook execute request.
type Payload struct {
	Username  string  `json:"username"`
	AvatarURL string  `json:"avatar_url"`
	Content   string  `json:"content"`
	Embeds    []Embed `json:"embeds"`
}

type Embed struct {
	Title  string  `json:"title"`
	Color  int     `json:"color"`
	Fields []Field `json:"fields"`
}

type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Build lays out an alarm as a single embed. Field order is fixed:
// name, description, state, trigger, reason. State and trigger render inline.
func Build(a *alarm.Alarm, content string) Payload {
	return Payload{
		Username:  Username,
		AvatarURL: AvatarURL,
		Content:   content,
		Embeds: []Embed{{
			Title: Title,
			Color: Color,
			Fields: []Field{
				{Name: "Alarm name", Value: a.Name},
				{Name: "Alarm description", Value: a.Description},
				{Name: "Alarm state", Value: a.State, Inline: true},
				{Name: "Alarm trigger", Value: a.MetricName, Inline: true},
				{Name: "Reason", Value: a.Reason},
			},
		}},
	}
}
