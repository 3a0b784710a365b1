package discord

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sznuper/alarmcord/internal/alarm"
)

var cpuHigh = &alarm.Alarm{
	Name:        "CPUHigh",
	Description: "CPU too high",
	State:       "ALARM",
	Reason:      "threshold breached",
	MetricName:  "CPUUtilization",
}

func TestBuild_FieldOrder(t *testing.T) {
	p := Build(cpuHigh, "my-project")

	if p.Username != "AWS" || p.AvatarURL != AvatarURL || p.Content != "my-project" {
		t.Errorf("header = %q %q %q", p.Username, p.AvatarURL, p.Content)
	}
	if len(p.Embeds) != 1 {
		t.Fatalf("embeds = %d, want 1", len(p.Embeds))
	}
	e := p.Embeds[0]
	if e.Title != Title || e.Color != 15204352 {
		t.Errorf("embed title/color = %q/%d", e.Title, e.Color)
	}

	want := []Field{
		{"Alarm name", "CPUHigh", false},
		{"Alarm description", "CPU too high", false},
		{"Alarm state", "ALARM", true},
		{"Alarm trigger", "CPUUtilization", true},
		{"Reason", "threshold breached", false},
	}
	if len(e.Fields) != len(want) {
		t.Fatalf("fields = %d, want %d", len(e.Fields), len(want))
	}
	for i, f := range e.Fields {
		if f != want[i] {
			t.Errorf("fields[%d] = %+v, want %+v", i, f, want[i])
		}
	}
}

func TestBuild_InlineOmitted(t *testing.T) {
	b, err := json.Marshal(Build(cpuHigh, "p"))
	if err != nil {
		t.Fatal(err)
	}

	var raw struct {
		Embeds []struct {
			Fields []map[string]any `json:"fields"`
		} `json:"embeds"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatal(err)
	}
	fields := raw.Embeds[0].Fields
	if _, ok := fields[0]["inline"]; ok {
		t.Error("fields[0] should not carry inline")
	}
	if fields[2]["inline"] != true {
		t.Errorf("fields[2].inline = %v, want true", fields[2]["inline"])
	}
}

func TestPost(t *testing.T) {
	var gotBody []byte
	var gotType, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	code, err := NewClient(srv.Client()).Post(context.Background(), srv.URL, Build(cpuHigh, "p"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", code)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if gotType != "application/json" {
		t.Errorf("content-type = %q", gotType)
	}

	var p Payload
	if err := json.Unmarshal(gotBody, &p); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if p.Embeds[0].Fields[3].Value != "CPUUtilization" {
		t.Errorf("fields[3].value = %q", p.Embeds[0].Fields[3].Value)
	}
}

func TestPost_ErrorStatusReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	code, err := NewClient(nil).Post(context.Background(), srv.URL, Build(cpuHigh, "p"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", code)
	}
}

func TestPost_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if _, err := NewClient(nil).Post(context.Background(), url, Build(cpuHigh, "p")); err == nil {
		t.Fatal("expected error for closed server")
	}
}
