package log

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// prettyTextHandler writes one styled line per record:
//
//	TIME LEVEL message key=value ...
//
// Colors are only emitted when the output supports them.
type prettyTextHandler struct {
	opts   *slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	style  textStyle
	attrs  []slog.Attr
	groups []string
}

type textStyle struct {
	time  lipgloss.Style
	key   lipgloss.Style
	msg   lipgloss.Style
	level map[slog.Level]lipgloss.Style
}

func newTextStyle(w io.Writer) textStyle {
	r := lipgloss.NewRenderer(w)

	return textStyle{
		time: r.NewStyle().Foreground(lipgloss.Color("8")),
		key:  r.NewStyle().Foreground(lipgloss.Color("8")),
		msg:  r.NewStyle().Bold(true),
		level: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): r.NewStyle().Foreground(lipgloss.Color("5")),
			slog.Level(LevelDebug): r.NewStyle().Foreground(lipgloss.Color("4")),
			slog.Level(LevelInfo):  r.NewStyle().Foreground(lipgloss.Color("2")),
			slog.Level(LevelWarn):  r.NewStyle().Foreground(lipgloss.Color("3")),
			slog.Level(LevelError): r.NewStyle().Foreground(lipgloss.Color("1")),
		},
	}
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyTextHandler {
	return &prettyTextHandler{
		opts:  opts,
		mu:    &sync.Mutex{},
		w:     w,
		style: newTextStyle(w),
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		if a := h.replace(nil, slog.Time(slog.TimeKey, r.Time)); !a.Equal(slog.Attr{}) {
			buf.WriteString(h.style.time.Render(a.Value.String()))
			buf.WriteByte(' ')
		}
	}

	level := h.replace(nil, slog.Any(slog.LevelKey, r.Level))
	buf.WriteString(h.levelStyle(r.Level).Render(level.Value.String()))
	buf.WriteByte(' ')
	buf.WriteString(h.style.msg.Render(r.Message))

	for _, a := range h.attrs {
		h.writeAttr(&buf, nil, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, h.groups, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h

	nh.attrs = slices.Clone(h.attrs)
	for _, a := range attrs {
		nh.attrs = append(nh.attrs, qualify(h.groups, a))
	}

	return &nh
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	nh := *h
	nh.groups = append(slices.Clone(h.groups), name)

	return &nh
}

func (h *prettyTextHandler) levelStyle(level slog.Level) lipgloss.Style {
	for _, l := range slices.Backward(levels) {
		if level >= slog.Level(l) {
			return h.style.level[slog.Level(l)]
		}
	}

	return h.style.level[slog.Level(LevelTrace)]
}

func (h *prettyTextHandler) replace(groups []string, a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(groups, a)
}

func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, groups []string, a slog.Attr) {
	a = h.replace(groups, a)
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		sub := groups
		if a.Key != "" {
			sub = append(slices.Clone(groups), a.Key)
		}

		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, sub, ga)
		}

		return
	}

	key := strings.Join(append(slices.Clone(groups), a.Key), ".")

	buf.WriteByte(' ')
	buf.WriteString(h.style.key.Render(key + "="))
	buf.WriteString(textValue(a.Value))
}

// qualify prefixes the key of a with the open groups.
func qualify(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 {
		return a
	}

	return slog.Attr{
		Key:   strings.Join(append(slices.Clone(groups), a.Key), "."),
		Value: a.Value,
	}
}

func textValue(v slog.Value) string {
	s := v.String()
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}

	return s
}

// prettyJSONHandler writes each record as indented JSON.
type prettyJSONHandler struct {
	slog.Handler

	mu  *sync.Mutex
	w   io.Writer
	buf *bytes.Buffer
}

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyJSONHandler {
	buf := new(bytes.Buffer)

	return &prettyJSONHandler{
		Handler: slog.NewJSONHandler(buf, opts),
		mu:      &sync.Mutex{},
		w:       w,
		buf:     buf,
	}
}

func (h *prettyJSONHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf.Reset()

	if err := h.Handler.Handle(ctx, r); err != nil {
		return err
	}

	var out bytes.Buffer

	if err := json.Indent(&out, bytes.TrimSpace(h.buf.Bytes()), "", "  "); err != nil {
		return err
	}

	out.WriteByte('\n')

	_, err := h.w.Write(out.Bytes())

	return err
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{
		Handler: h.Handler.WithAttrs(attrs),
		mu:      h.mu,
		w:       h.w,
		buf:     h.buf,
	}
}

func (h *prettyJSONHandler) WithGroup(name string) slog.Handler {
	return &prettyJSONHandler{
		Handler: h.Handler.WithGroup(name),
		mu:      h.mu,
		w:       h.w,
		buf:     h.buf,
	}
}
