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

package testutil

import (
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/FerretDB/bookstore/internal/util/must"
)

// AssertEqualText asserts that two multiline texts are equal,
// reporting a unified diff if they are not.
func AssertEqualText(tb testing.TB, expected, actual string) bool {
	tb.Helper()

	if expected == actual {
		return true
	}

	diff := must.NotFail(difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  1,
	}))

	tb.Errorf("Not equal:\n%s", diff)

	return false
}
