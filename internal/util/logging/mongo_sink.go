// Copyright 2021 FerretDB Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"fmt"

	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// mongoSink is a MongoDB driver's [options.LogSink] implementation that uses zap.
type mongoSink struct {
	l *zap.Logger
}

// NewMongoSink creates a new [options.LogSink] that uses given [zap.Logger].
func NewMongoSink(l *zap.Logger) options.LogSink {
	return &mongoSink{
		l: l.WithOptions(zap.WithCaller(false)),
	}
}

// Info implements [options.LogSink].
//
// Level 0 is driver's info level, everything above is debug.
func (s *mongoSink) Info(level int, msg string, keysAndValues ...any) {
	if level <= 0 {
		s.l.Info(msg, fields(keysAndValues)...)
		return
	}

	if ce := s.l.Check(zap.DebugLevel, msg); ce != nil {
		ce.Write(fields(keysAndValues)...)
	}
}

// Error implements [options.LogSink].
func (s *mongoSink) Error(err error, msg string, keysAndValues ...any) {
	s.l.Error(msg, append(fields(keysAndValues), zap.Error(err))...)
}

// fields converts driver's alternating keys and values to zap fields.
func fields(keysAndValues []any) []zap.Field {
	res := make([]zap.Field, 0, (len(keysAndValues)+1)/2)

	for i := 0; i < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}

		if i+1 == len(keysAndValues) {
			res = append(res, zap.String("!BADKEY", key))
			break
		}

		res = append(res, zap.Any(key, keysAndValues[i+1]))
	}

	return res
}

// check interfaces
var (
	_ options.LogSink = (*mongoSink)(nil)
)
