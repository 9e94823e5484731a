package config_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/DevMountain/dmget/pkg/cli/config"
	"github.com/DevMountain/dmget/pkg/domain/model"
)

func TestLogger_Configure(t *testing.T) {
	all := []string{"debug", "info", "warn", "error"}

	tests := []struct {
		name    string
		level   string
		json    bool
		want    []string
		wantErr bool
	}{
		{name: "debug keeps everything", level: "debug", want: all},
		{name: "level is case insensitive", level: "DEBUG", json: true, want: all},
		{name: "info drops debug", level: "info", want: []string{"info", "warn", "error"}},
		{name: "default warn level", level: "warn", json: true, want: []string{"warn", "error"}},
		{name: "error only", level: "ERROR", want: []string{"error"}},
		{name: "unknown level", level: "verbose", wantErr: true},
		{name: "empty level", level: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := &config.Logger{
				Level:  tt.level,
				JSON:   tt.json,
				Output: &buf,
			}

			result, err := logger.Configure()
			if tt.wantErr {
				gt.Error(t, err)
				gt.Value(t, goerr.HasTag(err, model.ErrTagInvalidRequest)).Equal(true)
				gt.Value(t, result).Nil()
				return
			}
			gt.NoError(t, err)

			result.Debug("debug message")
			result.Info("info message")
			result.Warn("warn message")
			result.Error("error message", "slug", "making-decisions")

			for _, level := range all {
				kept := false
				for _, w := range tt.want {
					kept = kept || w == level
				}
				gt.Value(t, strings.Contains(buf.String(), level+" message")).Equal(kept)
			}
			if tt.json {
				gt.String(t, buf.String()).Contains(`"slug":"making-decisions"`)
			}
		})
	}
}

func TestLogger_Flags(t *testing.T) {
	logger := &config.Logger{}
	flags := logger.Flags()
	gt.Number(t, len(flags)).Equal(2)

	var names []string
	for _, flag := range flags {
		names = append(names, flag.Names()[0])
	}
	gt.Value(t, names).Equal([]string{"log-level", "log-json"})
}
