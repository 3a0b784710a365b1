package main

import (
	"reflect"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sznuper/alarmcord/internal/config"
)

// optionField is a string config field reachable from the CLI.
type optionField struct {
	key   string // dotted yaml path, e.g. log.level
	index []int
}

// flag derives the flag name from the yaml path (snake_case and dots →
// kebab-case).
func (f optionField) flag() string {
	return strings.NewReplacer("_", "-", ".", "-").Replace(f.key)
}

// registerOptionFlags adds a persistent --flag for every string field in
// config.Config, including nested sections such as log.
func registerOptionFlags(cmd *cobra.Command) {
	for _, f := range optionFields() {
		cmd.PersistentFlags().String(f.flag(), "", "override "+f.key)
	}
}

// applyOptionFlags overlays CLI flag values onto the config. Only flags
// explicitly set by the user are applied.
func applyOptionFlags(cmd *cobra.Command, cfg *config.Config) {
	v := reflect.ValueOf(cfg).Elem()
	for _, f := range optionFields() {
		if cmd.Flags().Changed(f.flag()) {
			val, _ := cmd.Flags().GetString(f.flag())
			v.FieldByIndex(f.index).SetString(val)
		}
	}
}

func optionFields() []optionField {
	return collectFields(reflect.TypeOf(config.Config{}), "", nil)
}

func collectFields(t reflect.Type, prefix string, index []int) []optionField {
	var out []optionField
	for i := range t.NumField() {
		sf := t.Field(i)
		tag := strings.SplitN(sf.Tag.Get("yaml"), ",", 2)[0]
		if tag == "" || tag == "-" {
			continue
		}
		idx := append(append([]int(nil), index...), i)

		switch sf.Type.Kind() {
		case reflect.String:
			out = append(out, optionField{key: prefix + tag, index: idx})
		case reflect.Struct:
			out = append(out, collectFields(sf.Type, prefix+tag+".", idx)...)
		}
	}
	return out
}
