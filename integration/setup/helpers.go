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

package setup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/FerretDB/bookstore/internal/books"
	"github.com/FerretDB/bookstore/internal/catalogue"
	"github.com/FerretDB/bookstore/internal/runner"
	"github.com/FerretDB/bookstore/internal/util/lazyerrors"
)

// FetchAll returns all books in the collection in _id order.
func FetchAll(ctx context.Context, collection *mongo.Collection) ([]books.Book, error) {
	cursor, err := collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{books.FieldID, 1}}))
	if err != nil {
		return nil, lazyerrors.Error(err)
	}

	var res []books.Book
	if err = cursor.All(ctx, &res); err != nil {
		return nil, lazyerrors.Error(err)
	}

	return res, nil
}

// Run runs the catalogue query with the given number or name.
func (s *SetupResult) Run(tb testing.TB, key string) *runner.Result {
	tb.Helper()

	q, err := catalogue.Lookup(key)
	require.NoError(tb, err)

	res, err := s.Runner.Run(s.Ctx, q)
	require.NoError(tb, err)

	return res
}

// Decode decodes returned documents into books.
func Decode(tb testing.TB, res *runner.Result) []books.Book {
	tb.Helper()

	out := make([]books.Book, len(res.Documents))

	for i, doc := range res.Documents {
		b, err := bson.Marshal(doc)
		require.NoError(tb, err)
		require.NoError(tb, bson.Unmarshal(b, &out[i]))
	}

	return out
}

// Filter returns books that satisfy f, preserving their order.
func Filter(bs []books.Book, f func(*books.Book) bool) []books.Book {
	var res []books.Book

	for i := range bs {
		if f(&bs[i]) {
			res = append(res, bs[i])
		}
	}

	return res
}
