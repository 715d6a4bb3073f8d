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

package apis

// Logger is the structured logging sink used across flex.
// Arguments after msg are alternating key/value pairs.
// Implementations should be safe for concurrent use.
type Logger interface {
	// Debug logs diagnostic messages (registrations, casts, drops).
	Debug(msg string, kv ...any)
	// Info logs informational messages.
	Info(msg string, kv ...any)
	// Warn logs recoverable anomalies such as ignored duplicate registrations.
	Warn(msg string, kv ...any)
	// Error logs failures.
	Error(msg string, kv ...any)
}

// NopLogger is a Logger that does nothing.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}

// OrNop returns l, or a NopLogger if l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}
