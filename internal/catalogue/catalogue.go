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

// Package catalogue contains the ordered list of requests issued against the books collection.
//
// Every entry is declarative: field names, operators, thresholds, limits and sort directions
// are preserved as they are defined here, and their semantics belong to the database engine.
// Entries are independent from each other except for the shared collection and field names.
package catalogue

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/AlekSi/pointer"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/FerretDB/bookstore/internal/books"
)

// Default namespace of the catalogue.
const (
	DefaultDatabase   = "plp_bookstore"
	DefaultCollection = "books"
)

// ErrNotFound is returned by [Lookup] for unknown queries.
var ErrNotFound = errors.New("query not found")

// Page size of pagination queries.
const pageSize = 5

// All returns all queries in order.
//
// Each call returns new values, so callers may modify them.
func All() []*Query {
	return []*Query{
		// Task 2: Basic CRUD Operations

		{
			Number:      1,
			Name:        "programming-books",
			Task:        TaskCRUD,
			Kind:        KindFilter,
			Description: `Find all books in the genre "Programming"`,
			Filter:      bson.D{{books.FieldGenre, "Programming"}},
		},
		{
			Number:      2,
			Name:        "published-after-2010",
			Task:        TaskCRUD,
			Kind:        KindFilter,
			Description: "Find books published after 2010",
			Filter:      bson.D{{books.FieldPublishedYear, bson.D{{"$gt", int32(2010)}}}},
		},
		{
			Number:      3,
			Name:        "books-by-cal-newport",
			Task:        TaskCRUD,
			Kind:        KindFilter,
			Description: `Find books by author "Cal Newport"`,
			Filter:      bson.D{{books.FieldAuthor, "Cal Newport"}},
		},
		{
			Number:      4,
			Name:        "update-sapiens-price",
			Task:        TaskCRUD,
			Kind:        KindUpdate,
			Description: `Update the price of "Sapiens" to 20.00`,
			Filter:      bson.D{{books.FieldTitle, "Sapiens"}},
			Update:      bson.D{{"$set", bson.D{{books.FieldPrice, 20.00}}}},
		},
		{
			Number:      5,
			Name:        "delete-1984",
			Task:        TaskCRUD,
			Kind:        KindDelete,
			Description: `Delete the book titled "1984"`,
			Filter:      bson.D{{books.FieldTitle, "1984"}},
		},

		// Task 3: Advanced Queries

		{
			Number:      6,
			Name:        "in-stock-after-2010",
			Task:        TaskAdvanced,
			Kind:        KindFilter,
			Description: "Find books that are in stock and published after 2010",
			Filter: bson.D{
				{books.FieldInStock, true},
				{books.FieldPublishedYear, bson.D{{"$gt", int32(2010)}}},
			},
		},
		{
			Number:      7,
			Name:        "title-author-price",
			Task:        TaskAdvanced,
			Kind:        KindProjection,
			Description: "Project only title, author, and price",
			Filter:      bson.D{},
			Projection: bson.D{
				{books.FieldID, int32(0)},
				{books.FieldTitle, int32(1)},
				{books.FieldAuthor, int32(1)},
				{books.FieldPrice, int32(1)},
			},
		},
		{
			Number:      8,
			Name:        "price-ascending",
			Task:        TaskAdvanced,
			Kind:        KindSort,
			Description: "Sort all books by price (ascending)",
			Filter:      bson.D{},
			Sort:        bson.D{{books.FieldPrice, int32(1)}},
		},
		{
			Number:      9,
			Name:        "price-descending",
			Task:        TaskAdvanced,
			Kind:        KindSort,
			Description: "Sort all books by price (descending)",
			Filter:      bson.D{},
			Sort:        bson.D{{books.FieldPrice, int32(-1)}},
		},
		{
			Number:      10,
			Name:        "page-1",
			Task:        TaskAdvanced,
			Kind:        KindPagination,
			Description: "Pagination - Page 1 (5 books)",
			Filter:      bson.D{},
			Sort:        bson.D{{books.FieldID, int32(1)}},
			Limit:       pointer.ToInt64(pageSize),
			Skip:        pointer.ToInt64(0),
		},
		{
			Number:      11,
			Name:        "page-2",
			Task:        TaskAdvanced,
			Kind:        KindPagination,
			Description: "Pagination - Page 2 (next 5 books)",
			Filter:      bson.D{},
			Sort:        bson.D{{books.FieldID, int32(1)}},
			Limit:       pointer.ToInt64(pageSize),
			Skip:        pointer.ToInt64(pageSize),
		},

		// Task 4: Aggregation Pipeline

		{
			Number:      12,
			Name:        "average-price-by-genre",
			Task:        TaskAggregation,
			Kind:        KindAggregation,
			Description: "Calculate average price of books by genre",
			Pipeline: mongo.Pipeline{
				{{"$group", bson.D{
					{"_id", "$" + books.FieldGenre},
					{"averagePrice", bson.D{{"$avg", "$" + books.FieldPrice}}},
				}}},
			},
		},
		{
			Number:      13,
			Name:        "author-with-most-books",
			Task:        TaskAggregation,
			Kind:        KindAggregation,
			Description: "Find the author with the most books",
			Pipeline: mongo.Pipeline{
				{{"$group", bson.D{
					{"_id", "$" + books.FieldAuthor},
					{"totalBooks", bson.D{{"$sum", int32(1)}}},
				}}},
				{{"$sort", bson.D{{"totalBooks", int32(-1)}}}},
				{{"$limit", int32(1)}},
			},
		},
		{
			Number:      14,
			Name:        "books-by-decade",
			Task:        TaskAggregation,
			Kind:        KindAggregation,
			Description: "Group books by publication decade and count them",
			Pipeline: mongo.Pipeline{
				{{"$project", bson.D{
					{"decade", bson.D{{"$concat", bson.A{
						bson.D{{"$substr", bson.A{"$" + books.FieldPublishedYear, int32(0), int32(3)}}},
						"0s",
					}}}},
				}}},
				{{"$group", bson.D{
					{"_id", "$decade"},
					{"count", bson.D{{"$sum", int32(1)}}},
				}}},
			},
		},

		// Task 5: Indexing

		{
			Number:      15,
			Name:        "title-index",
			Task:        TaskIndexing,
			Kind:        KindIndex,
			Description: `Create an index on the "title" field`,
			Keys:        bson.D{{books.FieldTitle, int32(1)}},
		},
		{
			Number:      16,
			Name:        "author-year-index",
			Task:        TaskIndexing,
			Kind:        KindIndex,
			Description: `Create a compound index on "author" and "published_year"`,
			Keys: bson.D{
				{books.FieldAuthor, int32(1)},
				{books.FieldPublishedYear, int32(-1)},
			},
		},
		{
			Number:      17,
			Name:        "explain-deep-work",
			Task:        TaskIndexing,
			Kind:        KindExplain,
			Description: "Use explain() to check performance of indexed query",
			Filter:      bson.D{{books.FieldTitle, "Deep Work"}},
			Verbosity:   "executionStats",
		},
	}
}

// Lookup returns the query with the given number or name.
func Lookup(key string) (*Query, error) {
	n, err := strconv.Atoi(key)
	byNumber := err == nil

	for _, q := range All() {
		if byNumber && q.Number == n || !byNumber && q.Name == key {
			return q, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
}

// ByTask returns queries of the given task in order.
func ByTask(task Task) []*Query {
	var res []*Query

	for _, q := range All() {
		if q.Task == task {
			res = append(res, q)
		}
	}

	return res
}
