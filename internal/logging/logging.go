// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging builds the logrus loggers used by the inference
// packages and the infer command.
package logging

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

var discard = func() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	l.SetLevel(log.PanicLevel)
	return l
}()

// Discard returns a logger that drops everything.
func Discard() log.FieldLogger {
	return discard
}

// OrDiscard returns l, or Discard() if l is nil.
func OrDiscard(l log.FieldLogger) log.FieldLogger {
	if l == nil {
		return discard
	}
	return l
}

// New returns a text logger writing to w at the named level
// ("debug", "info", "warn", ...).
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	l := log.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	l.SetFormatter(&log.TextFormatter{
		DisableTimestamp: true,
	})
	return l, nil
}
