package log

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"
)

func TestConfig_WithDefaults_ResetsEverything(t *testing.T) {
	cfg := makeConfig(nil,
		WithLevel(LevelError),
		WithFormat(FormatText),
		WithCaller(true),
		WithPretty(true),
	)

	cfg = apply(cfg, WithDefaults(nil))

	if cfg.output != io.Discard {
		t.Error("expected nil writer to be replaced by io.Discard")
	}
	if cfg.level != DefaultLevel {
		t.Errorf("level = %v, want %v", cfg.level, DefaultLevel)
	}
	if cfg.format != DefaultFormat {
		t.Errorf("format = %v, want %v", cfg.format, DefaultFormat)
	}
	if cfg.caller != DefaultCaller || cfg.pretty != DefaultPretty {
		t.Errorf("caller/pretty = %v/%v, want defaults", cfg.caller, cfg.pretty)
	}
}

func TestConfig_Options_DoNotMutateBase(t *testing.T) {
	base := makeConfig(io.Discard)
	derived := apply(base, WithLevel(LevelTrace), nil)

	if base.level != DefaultLevel {
		t.Errorf("base level changed to %v", base.level)
	}
	if derived.level != LevelTrace {
		t.Errorf("derived level = %v, want %v", derived.level, LevelTrace)
	}
}

func TestConfig_formatTime_FormatsTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 5, 14, 7, 9, 123456789, time.UTC)

	tests := []struct {
		layout string
		want   string
	}{
		{"RFC3339", "2024-03-05T14:07:09Z"},
		{"rfc-3339", "2024-03-05T14:07:09Z"},
		{"RFC3339Nano", "2024-03-05T14:07:09.123456789Z"},
		{"Kitchen", "2:07PM"},
		{"DateTime", "2024-03-05 14:07:09"},
		{"2006/01/02", "2024/03/05"},
		{"none", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			if got := makeFormatTimeFunc(tt.layout)(ts); got != tt.want {
				t.Errorf("format(%q) = %q, want %q", tt.layout, got, tt.want)
			}
		})
	}
}

func TestConfig_formatTime_EmptyFormat_DisablesTimestamp(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithTimeLayout("none")).Info("no time")

	if strings.Contains(buf.String(), `"time"`) {
		t.Errorf("expected no timestamp, got: %s", buf.String())
	}
}

func TestConfig_handler_SelectsFormat(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		pretty bool
		want   string
	}{
		{"json", FormatJSON, false, "*slog.JSONHandler"},
		{"text", FormatText, false, "*slog.TextHandler"},
		{"pretty json", FormatJSON, true, "*log.prettyJSONHandler"},
		{"pretty text", FormatText, true, "*log.prettyTextHandler"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := makeConfig(io.Discard, WithFormat(tt.format), WithPretty(tt.pretty)).handler()
			if got := typeName(h); got != tt.want {
				t.Errorf("handler type = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{" TRACE ", LevelTrace},
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", DefaultLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if got := ParseFormat("Text"); got != FormatText {
		t.Errorf("ParseFormat(Text) = %v", got)
	}
	if got := ParseFormat("yaml"); got != DefaultFormat {
		t.Errorf("ParseFormat(yaml) = %v, want default", got)
	}
}

func BenchmarkConfig_formatTime_SecondResolution(b *testing.B) {
	format := makeFormatTimeFunc("RFC3339")
	now := time.Now()

	for b.Loop() {
		_ = format(now)
	}
}
