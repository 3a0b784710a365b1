package alarm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// Alarm holds the fields of a CloudWatch alarm notification that get relayed.
type Alarm struct {
	Name        string
	Description string
	State       string
	Reason      string
	MetricName  string
}

// MalformedEventError reports an event that is missing required data.
type MalformedEventError struct {
	Missing []string
	Err     error
}

func (e *MalformedEventError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("malformed alarm event: %v", e.Err)
	case len(e.Missing) > 0:
		return fmt.Sprintf("malformed alarm event: missing %s", strings.Join(e.Missing, ", "))
	default:
		return "malformed alarm event"
	}
}

func (e *MalformedEventError) Unwrap() error { return e.Err }

// FromSNS extracts the alarm carried in the first record of an SNS event.
func FromSNS(event events.SNSEvent) (*Alarm, error) {
	if len(event.Records) == 0 {
		return nil, &MalformedEventError{Missing: []string{"Records[0]"}}
	}
	return Parse([]byte(event.Records[0].SNS.Message))
}

// Parse decodes a CloudWatch alarm message. Every relayed key must be present;
// empty strings and JSON nulls are relayed as empty values.
func Parse(data []byte) (*Alarm, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &MalformedEventError{Err: fmt.Errorf("decoding message: %w", err)}
	}

	var missing []string
	need := func(obj map[string]json.RawMessage, key, path string) string {
		raw, ok := obj[key]
		if !ok {
			missing = append(missing, path)
			return ""
		}
		return text(raw)
	}

	a := &Alarm{
		Name:        need(m, "AlarmName", "AlarmName"),
		State:       need(m, "NewStateValue", "NewStateValue"),
		Reason:      need(m, "NewStateReason", "NewStateReason"),
		Description: need(m, "AlarmDescription", "AlarmDescription"),
	}

	var trig map[string]json.RawMessage
	if raw, ok := m["Trigger"]; ok {
		if err := json.Unmarshal(raw, &trig); err != nil {
			return nil, &MalformedEventError{Err: fmt.Errorf("decoding Trigger: %w", err)}
		}
	}
	a.MetricName = need(trig, "MetricName", "Trigger.MetricName")

	if len(missing) > 0 {
		return nil, &MalformedEventError{Missing: missing}
	}
	return a, nil
}

// text renders a raw JSON value as the string relayed to Discord. Strings are
// unquoted, null becomes empty and anything else keeps its JSON form.
func text(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if string(raw) == "null" {
		return ""
	}
	return string(raw)
}
