// Copyright 2025 Sonic Labs
// This file is part of Montecarlo, a Monte Carlo experiment suite for Sonic
//
// Montecarlo is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Montecarlo is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Montecarlo. If not, see <http://www.gnu.org/licenses/>.

package logger

import (
	"os"
	"strings"
	"time"

	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
)

// LogLevelFlag defines the level of logging of the app.
var LogLevelFlag = cli.StringFlag{
	Name:    "log",
	Aliases: []string{"l"},
	Usage:   "Level of the logging of the app action (\"critical\", \"error\", \"warning\", \"notice\", \"info\", \"debug\"; default: INFO)",
	Value:   "info",
}

const defaultLogFormat = "%{color}%{time:15:04:05.000} %{module} %{level:.4s}%{color:reset}: %{message}"

// Logger is the logging interface used across the project. It mirrors the
// method set of go-logging so that a logger can be mocked in tests.
//
//go:generate mockgen -source logger.go -destination logger_mock.go -package logger
type Logger interface {
	Critical(args ...interface{})
	Criticalf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Warning(args ...interface{})
	Warningf(format string, args ...interface{})
	Notice(args ...interface{})
	Noticef(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	Panic(args ...interface{})
	Panicf(format string, args ...interface{})
	IsEnabledFor(level logging.Level) bool
}

// NewLogger provides a new instance of the Logger based on given log-level
// and a module name. An unknown log-level falls back to INFO.
func NewLogger(level string, module string) Logger {
	logLevel, err := logging.LogLevel(strings.ToUpper(level))
	if err != nil {
		logLevel = logging.INFO
	}

	backend := logging.NewLogBackend(os.Stderr, "", 0)

	fm := logging.MustStringFormatter(defaultLogFormat)
	fmtBackend := logging.NewBackendFormatter(backend, fm)

	lvlBackend := logging.AddModuleLevel(fmtBackend)
	lvlBackend.SetLevel(logLevel, "")

	lg := logging.MustGetLogger(module)
	lg.SetBackend(lvlBackend)

	return lg
}

// ParseTime decomposes an elapsed duration into hours, minutes and seconds.
func ParseTime(elapsed time.Duration) (hours, minutes, seconds uint32) {
	seconds = uint32(elapsed.Round(time.Second).Seconds())
	hours = seconds / 3600
	seconds -= hours * 3600
	minutes = seconds / 60
	seconds -= minutes * 60
	return
}
