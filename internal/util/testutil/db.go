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
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	namesM sync.Mutex
	names  = make(map[string]string) // name -> test that took it
)

// DatabaseName returns a stable database name for that test.
//
// It panics if another test already took the same name.
func DatabaseName(tb testing.TB) string {
	tb.Helper()

	// database names are always lowercase
	name := sanitize(strings.ToLower(tb.Name()))
	require.Less(tb, len(name), 64)

	reserve(tb, "db:"+name)

	return name
}

// CollectionName returns a stable collection name for that test.
//
// It panics if another test already took the same name.
func CollectionName(tb testing.TB) string {
	tb.Helper()

	// do not lowercase, collection names are case-sensitive
	name := sanitize(tb.Name())
	require.Less(tb, len(name), 255)

	reserve(tb, "coll:"+name)

	return name
}

// sanitize replaces characters that are not allowed in namespaces.
func sanitize(name string) string {
	return strings.NewReplacer("/", "_", " ", "_", "$", "_", ".", "_").Replace(name)
}

// reserve records that the given key is used by the current test.
func reserve(tb testing.TB, key string) {
	tb.Helper()

	namesM.Lock()
	defer namesM.Unlock()

	if another, ok := names[key]; ok {
		tb.Logf("Name %q already used by test %s.", key, another)
		panic("duplicate name")
	}

	names[key] = tb.Name()
}
