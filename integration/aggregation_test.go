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

package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/FerretDB/bookstore/integration/setup"
	"github.com/FerretDB/bookstore/internal/books"
)

func TestAveragePriceByGenre(t *testing.T) {
	t.Parallel()

	s := setup.Setup(t)

	sums := make(map[string]float64)
	counts := make(map[string]int)

	for _, b := range s.Books {
		sums[b.Genre] += b.Price
		counts[b.Genre]++
	}

	res := s.Run(t, "average-price-by-genre")
	require.Len(t, res.Documents, len(counts), "one group per genre")

	for _, doc := range res.Documents {
		var group struct {
			Genre        string  `bson:"_id"`
			AveragePrice float64 `bson:"averagePrice"`
		}
		require.NoError(t, bson.Unmarshal(marshal(t, doc), &group))

		require.Contains(t, counts, group.Genre)
		assert.InDelta(t, sums[group.Genre]/float64(counts[group.Genre]), group.AveragePrice, 1e-9, group.Genre)
	}
}

func TestAuthorWithMostBooks(t *testing.T) {
	t.Parallel()

	s := setup.Setup(t)

	counts := make(map[string]int32)
	for _, b := range s.Books {
		counts[b.Author]++
	}

	var top string
	for author, n := range counts {
		if n > counts[top] {
			top = author
		}
	}

	for author, n := range counts {
		if author != top {
			require.Less(t, n, counts[top], "fixture must have a unique top author")
		}
	}

	res := s.Run(t, "author-with-most-books")
	require.Len(t, res.Documents, 1)

	var group struct {
		Author     string `bson:"_id"`
		TotalBooks int32  `bson:"totalBooks"`
	}
	require.NoError(t, bson.Unmarshal(marshal(t, res.Documents[0]), &group))

	assert.Equal(t, "Cal Newport", top)
	assert.Equal(t, top, group.Author)
	assert.Equal(t, counts[top], group.TotalBooks)
}

func TestBooksByDecade(t *testing.T) {
	t.Parallel()

	s := setup.Setup(t)

	expected := make(map[string]int32)
	for _, b := range s.Books {
		expected[b.Decade()]++
	}

	require.Contains(t, expected, "2010s")

	res := s.Run(t, "books-by-decade")

	actual := make(map[string]int32, len(res.Documents))

	for _, doc := range res.Documents {
		var group struct {
			Decade string `bson:"_id"`
			Count  int32  `bson:"count"`
		}
		require.NoError(t, bson.Unmarshal(marshal(t, doc), &group))

		actual[group.Decade] = group.Count
	}

	assert.Equal(t, expected, actual)
	assert.Equal(t, "2010s", books.DecadeOf(2010))
}

// marshal returns BSON bytes of the document.
func marshal(t *testing.T, doc bson.D) []byte {
	t.Helper()

	b, err := bson.Marshal(doc)
	require.NoError(t, err)

	return b
}
