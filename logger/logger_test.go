// logger_test.go - logger tests.
// Copyright (C) 2025 Logical Mechanism LLC
// SPDX-License-Identifier: GPL-3.0-only

package logger

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/op/go-logging.v1"
)

func TestLevelFromString(t *testing.T) {
	levels := []struct {
		str     string
		level   logging.Level
		isValid bool
	}{
		{str: "ERROR", level: logging.ERROR, isValid: true},
		{str: "WARNING", level: logging.WARNING, isValid: true},
		{str: "NOTICE", level: logging.NOTICE, isValid: true},
		{str: "INFO", level: logging.INFO, isValid: true},
		{str: "DEBUG", level: logging.DEBUG, isValid: true},

		{str: "error", level: logging.ERROR, isValid: true},
		{str: "NoTiCe", level: logging.NOTICE, isValid: true},

		{str: "", isValid: false},
		{str: "warn", isValid: false},
	}

	for _, l := range levels {
		lev, err := levelFromString(l.str)
		if l.isValid {
			assert.Nil(t, err)
			assert.Equal(t, l.level, lev)
		} else {
			assert.Error(t, err)
		}
	}
}

func TestNew(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "peace.log")

	tests := []struct {
		f       string
		disable bool

		isValid bool
	}{
		{f: "someinvalidnotexistingpath/", disable: false, isValid: false},

		{f: "", disable: true, isValid: true},
		// when disabled the sink path is never opened
		{f: "someinvalidnotexistingpath/", disable: true, isValid: true},
		{f: logFile, disable: false, isValid: true},
		{f: logFile, disable: true, isValid: true},
	}

	for _, test := range tests {
		l, err := New(test.f, "NOTICE", test.disable)
		if !test.isValid {
			assert.Nil(t, l)
			assert.Error(t, err)
			continue
		}
		assert.NotNil(t, l)
		assert.Nil(t, err)

		if test.f == logFile && !test.disable {
			l.GetLogger("test").Notice("Test log")

			file, err := os.Open(logFile)
			assert.Nil(t, err)
			scanner := bufio.NewScanner(file)
			scanner.Scan()
			assert.True(t, strings.HasSuffix(scanner.Text(), "Test log"))
			file.Close()
		}
	}
}

func TestNewRejectsInvalidLevel(t *testing.T) {
	l, err := New("", "VERBOSE", false)
	assert.Nil(t, l)
	assert.Error(t, err)
}
