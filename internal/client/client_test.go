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

package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FerretDB/bookstore/internal/util/testutil"
)

func TestConnectErrors(t *testing.T) {
	t.Parallel()

	for name, tc := range map[string]struct {
		uri string
	}{
		"BadScheme": {
			uri: "http://127.0.0.1:27017/",
		},
		"Unreachable": {
			uri: "mongodb://127.0.0.1:1/?connectTimeoutMS=100",
		},
	} {
		name, tc := name, tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			client, err := Connect(testutil.Ctx(t), &ConnectOpts{
				URI:                    tc.uri,
				AppName:                "bookstore-test",
				ServerSelectionTimeout: 200 * time.Millisecond,
				Logger:                 testutil.Logger(t),
			})
			require.Error(t, err)
			assert.Nil(t, client)
		})
	}
}
