// logger.go - leveled logging backend shared by the daemon and oracle.
// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

// Package logger wraps go-logging with a single configured backend so every
// component logs through the same sink and level.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/op/go-logging.v1"
)

const fmtString = `%{color}%{time:15:04:05.000} %{module}/%{shortfunc} ▶ %{level:.4s} %{id:03x}%{color:reset} %{message}`

// Logger holds the shared leveled backend.
type Logger struct {
	backend logging.LeveledBackend
}

func levelFromString(l string) (logging.Level, error) {
	switch strings.ToUpper(l) {
	case "ERROR":
		return logging.ERROR, nil
	case "WARNING":
		return logging.WARNING, nil
	case "NOTICE":
		return logging.NOTICE, nil
	case "INFO":
		return logging.INFO, nil
	case "DEBUG":
		return logging.DEBUG, nil
	default:
		return logging.CRITICAL, fmt.Errorf("log: invalid level: '%v'", l)
	}
}

// GetLogger returns a per-module logger bound to the shared backend.
func (l *Logger) GetLogger(module string) *logging.Logger {
	log := logging.MustGetLogger(module)
	log.SetBackend(l.backend)
	return log
}

// New creates a logger writing to file f, or stdout when f is empty. When
// disable is set all output is dropped.
func New(f string, level string, disable bool) (*Logger, error) {
	logFmt := logging.MustStringFormatter(fmtString)

	lvl, err := levelFromString(level)
	if err != nil {
		return nil, err
	}

	var logOut io.Writer
	if disable {
		logOut = io.Discard
	} else if f == "" {
		logOut = os.Stdout
	} else {
		const fileMode = 0600

		flags := os.O_CREATE | os.O_APPEND | os.O_WRONLY
		logOut, err = os.OpenFile(f, flags, fileMode)
		if err != nil {
			return nil, fmt.Errorf("log: failed to open log file: %v", err)
		}
	}

	base := logging.NewLogBackend(logOut, "", 0)
	formatted := logging.NewBackendFormatter(base, logFmt)
	backend := logging.AddModuleLevel(formatted)
	logging.SetLevel(lvl, "")

	return &Logger{backend: backend}, nil
}
