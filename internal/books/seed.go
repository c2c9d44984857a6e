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

package books

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/FerretDB/bookstore/internal/util/lazyerrors"
)

// Seed drops the collection and inserts given books into it.
//
// It returns the number of inserted documents.
func Seed(ctx context.Context, collection *mongo.Collection, books []Book) (int, error) {
	if err := collection.Drop(ctx); err != nil {
		return 0, lazyerrors.Error(err)
	}

	if len(books) == 0 {
		return 0, nil
	}

	docs := make([]any, len(books))
	for i, b := range books {
		docs[i] = b
	}

	res, err := collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, lazyerrors.Error(err)
	}

	return len(res.InsertedIDs), nil
}
