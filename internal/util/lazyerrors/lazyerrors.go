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

// Package lazyerrors provides error wrapping that records the caller's location.
//
// Errors returned by the database engine are never classified by this repository;
// they are only annotated with the place they passed through.
package lazyerrors

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// withLocation wraps an error with the program counter of its creator.
type withLocation struct {
	error
	pc uintptr
}

// Error implements error interface.
func (e withLocation) Error() string {
	if e.pc == 0 {
		return e.error.Error()
	}

	f, _ := runtime.CallersFrames([]uintptr{e.pc}).Next()
	if f.File == "" {
		return "[unknown] " + e.error.Error()
	}

	_, file := filepath.Split(f.File)
	l := file + ":" + strconv.Itoa(f.Line)

	if f.Function != "" {
		i := strings.LastIndex(f.Function, "/")
		l += " " + f.Function[i+1:]
	}

	return fmt.Sprintf("[%s] %s", l, e.error)
}

// Unwrap returns the wrapped error.
func (e withLocation) Unwrap() error {
	return e.error
}

// pc returns the program counter of New/Error/Errorf caller.
func pc() uintptr {
	pcs := make([]uintptr, 1)
	if runtime.Callers(3, pcs) < 1 {
		return 0
	}

	return pcs[0]
}

// New returns new error based on string, enriched with caller's location.
func New(s string) error {
	return withLocation{
		error: errors.New(s),
		pc:    pc(),
	}
}

// Error returns new error based on err, enriched with caller's location.
//
// It panics if err is nil.
func Error(err error) error {
	if err == nil {
		panic("err is nil")
	}

	return withLocation{
		error: err,
		pc:    pc(),
	}
}

// Errorf returns formatted error enriched with caller's location.
func Errorf(format string, a ...any) error {
	return withLocation{
		error: fmt.Errorf(format, a...),
		pc:    pc(),
	}
}

// UnwrapAll returns the innermost error in the chain, or nil if err is nil.
func UnwrapAll(err error) error {
	for err != nil {
		next := errors.Unwrap(err)
		if next == nil {
			break
		}

		err = next
	}

	return err
}
