/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logging

import (
	"fmt"

	. "github.com/IBM/sharerecon/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type zapLogger struct {
	*zap.SugaredLogger
}

// New adapts the given zap logger to a Logger.
func New(l *zap.Logger) Logger {
	return &zapLogger{SugaredLogger: l.Sugar()}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return New(zap.NewNop())
}

// NewDevelopment returns a human friendly Logger writing to stderr at the given level
// (debug, info, warn, error).
func NewDevelopment(level string) (Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %v", level, err)
	}

	logConfig := zap.NewDevelopmentConfig()
	logConfig.Level.SetLevel(lvl)

	l, err := logConfig.Build()
	if err != nil {
		return nil, err
	}

	return New(l), nil
}

func (l *zapLogger) DebugEnabled() bool {
	return l.Desugar().Core().Enabled(zapcore.DebugLevel)
}
