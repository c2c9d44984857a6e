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

// Genres lists genres present in the fixture.
var Genres = []string{"Programming", "Self-Help", "History", "Fiction", "Science"}

// Fixture returns the reference data set for the books collection.
//
// Each call returns a new slice, so callers may modify it.
func Fixture() []Book {
	return []Book{
		{
			Title: "The Pragmatic Programmer", Author: "Andrew Hunt", Genre: "Programming",
			PublishedYear: 1999, Price: 45.99, InStock: true, Pages: 352, Publisher: "Addison-Wesley",
		},
		{
			Title: "Clean Code", Author: "Robert C. Martin", Genre: "Programming",
			PublishedYear: 2008, Price: 39.99, InStock: true, Pages: 464, Publisher: "Prentice Hall",
		},
		{
			Title: "The Go Programming Language", Author: "Alan A. A. Donovan", Genre: "Programming",
			PublishedYear: 2015, Price: 34.99, InStock: true, Pages: 380, Publisher: "Addison-Wesley",
		},
		{
			Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", Genre: "Programming",
			PublishedYear: 2017, Price: 42.5, InStock: false, Pages: 616, Publisher: "O'Reilly Media",
		},
		{
			Title: "Deep Work", Author: "Cal Newport", Genre: "Self-Help",
			PublishedYear: 2016, Price: 18.99, InStock: true, Pages: 296, Publisher: "Grand Central Publishing",
		},
		{
			Title: "Digital Minimalism", Author: "Cal Newport", Genre: "Self-Help",
			PublishedYear: 2019, Price: 16.5, InStock: true, Pages: 284, Publisher: "Portfolio",
		},
		{
			Title: "So Good They Can't Ignore You", Author: "Cal Newport", Genre: "Self-Help",
			PublishedYear: 2012, Price: 15, InStock: false, Pages: 288, Publisher: "Grand Central Publishing",
		},
		{
			Title: "Sapiens", Author: "Yuval Noah Harari", Genre: "History",
			PublishedYear: 2011, Price: 22.99, InStock: true, Pages: 443, Publisher: "Harper",
		},
		{
			Title: "1984", Author: "George Orwell", Genre: "Fiction",
			PublishedYear: 1949, Price: 10.99, InStock: true, Pages: 328, Publisher: "Secker & Warburg",
		},
		{
			Title: "To Kill a Mockingbird", Author: "Harper Lee", Genre: "Fiction",
			PublishedYear: 1960, Price: 12.99, InStock: false, Pages: 281, Publisher: "J. B. Lippincott & Co.",
		},
		{
			Title: "The Immortal Life of Henrietta Lacks", Author: "Rebecca Skloot", Genre: "Science",
			PublishedYear: 2010, Price: 14.99, InStock: true, Pages: 381, Publisher: "Crown",
		},
		{
			Title: "Atomic Habits", Author: "James Clear", Genre: "Self-Help",
			PublishedYear: 2018, Price: 16.99, InStock: true, Pages: 320, Publisher: "Avery",
		},
	}
}
