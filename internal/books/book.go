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

// Package books provides the Book record stored in the books collection,
// the fixture data set, and helpers to seed a collection.
package books

import (
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field names of Book documents.
const (
	FieldID            = "_id"
	FieldTitle         = "title"
	FieldAuthor        = "author"
	FieldGenre         = "genre"
	FieldPublishedYear = "published_year"
	FieldPrice         = "price"
	FieldInStock       = "in_stock"
	FieldPages         = "pages"
	FieldPublisher     = "publisher"
)

// Book represents a single document of the books collection.
//
// Title is expected to be unique for point lookups, but that is not enforced.
type Book struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Title         string             `bson:"title"`
	Author        string             `bson:"author"`
	Genre         string             `bson:"genre"`
	PublishedYear int32              `bson:"published_year"`
	Price         float64            `bson:"price"`
	InStock       bool               `bson:"in_stock"`
	Pages         int32              `bson:"pages,omitempty"`
	Publisher     string             `bson:"publisher,omitempty"`
}

// Decade returns the decade label of the publication year, for example "2010s".
//
// It mirrors the server-side derivation that takes the first three characters
// of the year's string form and appends "0s".
func (b *Book) Decade() string {
	return DecadeOf(b.PublishedYear)
}

// DecadeOf returns the decade label for the given year.
func DecadeOf(year int32) string {
	s := strconv.FormatInt(int64(year), 10)
	if len(s) > 3 {
		s = s[:3]
	}

	return s + "0s"
}
