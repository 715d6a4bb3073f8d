/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package logging adapts standard library loggers to apis.Logger.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"dirpx.dev/flex/apis"
)

// NewSlog wraps l as an apis.Logger. A nil l uses slog.Default().
func NewSlog(l *slog.Logger) apis.Logger {
	if l == nil {
		l = slog.Default()
	}
	return slogLogger{l: l}
}

// NewText builds an apis.Logger writing slog text records at or above level to w.
func NewText(w io.Writer, level slog.Level) apis.Logger {
	return NewSlog(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
// Unknown or empty strings map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type slogLogger struct {
	l *slog.Logger
}

var _ apis.Logger = slogLogger{}

func (s slogLogger) Debug(msg string, kv ...any) { s.log(slog.LevelDebug, msg, kv) }
func (s slogLogger) Info(msg string, kv ...any)  { s.log(slog.LevelInfo, msg, kv) }
func (s slogLogger) Warn(msg string, kv ...any)  { s.log(slog.LevelWarn, msg, kv) }
func (s slogLogger) Error(msg string, kv ...any) { s.log(slog.LevelError, msg, kv) }

func (s slogLogger) log(level slog.Level, msg string, kv []any) {
	ctx := context.Background()
	if !s.l.Enabled(ctx, level) {
		return
	}
	s.l.Log(ctx, level, msg, kv...)
}
