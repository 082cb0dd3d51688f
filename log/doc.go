// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Configuration is applied at logger creation time using functional
// options. A configured [Logger] is immutable; [Logger.Wrap] and
// [Logger.With] return new loggers.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("parsed", slog.String("method", "sample"))
//
// The zero [Logger] discards everything, so it can sit in an options struct
// without being initialized.
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"),
//		log.WithPretty(true))
//
// # Levels
//
// Five levels are defined: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn] and [LevelError]. Messages below the configured level are
// discarded.
//
// # Context
//
// Each level has a context-aware variant. The context-unaware variants use
// [DefaultContextProvider], which returns [context.TODO] by default.
//
// # Output Formats
//
// [FormatJSON] (default) and [FormatText] are supported. With
// [WithPretty], text output is colored per level using lipgloss and JSON
// output is indented.
package log
