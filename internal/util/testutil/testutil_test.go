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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// recordingTB records errors instead of failing the test.
type recordingTB struct {
	testing.TB
	errors []string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func TestNames(t *testing.T) {
	t.Parallel()

	t.Run("Sub Test$1", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "testnames_sub_test_1", DatabaseName(t))
		assert.Equal(t, "TestNames_Sub_Test_1", CollectionName(t))
		assert.Panics(t, func() { CollectionName(t) })
	})
}

func TestAssertEqualText(t *testing.T) {
	t.Parallel()

	assert.True(t, AssertEqualText(t, "a\nb\n", "a\nb\n"))

	r := &recordingTB{TB: t}
	assert.False(t, AssertEqualText(r, "a\nb\n", "a\nc\n"))
	assert.Len(t, r.errors, 1)
	assert.Contains(t, r.errors[0], "-b")
	assert.Contains(t, r.errors[0], "+c")
}

func TestCtx(t *testing.T) {
	t.Parallel()

	ctx := Ctx(t)
	assert.NoError(t, ctx.Err())
}
