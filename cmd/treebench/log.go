// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"

	"github.com/biogo/bst/bench"
)

// logWriter sends log output to stderr and, once initLogRotator has been
// called, to the rotating log file.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stderr.Write(p)
	if logRotator != nil {
		logRotator.Write(p)
	}
	return len(p), nil
}

var (
	backendLog = btclog.NewBackend(logWriter{})

	// logRotator is nil until initLogRotator is called.
	logRotator *rotator.Rotator

	tbchLog = backendLog.Logger("TBCH")
	bnchLog = backendLog.Logger("BNCH")
)

func init() {
	bench.UseLogger(bnchLog)
}

var subsystemLoggers = map[string]btclog.Logger{
	"TBCH": tbchLog,
	"BNCH": bnchLog,
}

// initLogRotator opens logFile for rotated logging, creating its directory
// if needed.
func initLogRotator(logFile string) error {
	if dir := filepath.Dir(logFile); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return fmt.Errorf("failed to create file rotator: %w", err)
	}
	logRotator = r
	return nil
}

// closeLogRotator closes the log file opened by initLogRotator, if any.
func closeLogRotator() {
	if logRotator != nil {
		logRotator.Close()
		logRotator = nil
	}
}

// setLogLevels sets every subsystem logger to the named level.
func setLogLevels(level string) error {
	lvl, ok := btclog.LevelFromString(level)
	if !ok {
		return fmt.Errorf("invalid log level %q", level)
	}
	for _, l := range subsystemLoggers {
		l.SetLevel(lvl)
	}
	return nil
}

// supportedSubsystems returns the sorted subsystem tags.
func supportedSubsystems() []string {
	subsystems := make([]string, 0, len(subsystemLoggers))
	for s := range subsystemLoggers {
		subsystems = append(subsystems, s)
	}
	sort.Strings(subsystems)
	return subsystems
}
