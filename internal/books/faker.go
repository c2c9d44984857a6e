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
	"math/rand"
	"strings"
	"unicode"
	"unicode/utf8"

	fakerlib "github.com/jaswdr/faker"
)

// Generate returns n fake books.
//
// The same seed always produces the same books.
func Generate(n int, seed int64) []Book {
	src := rand.NewSource(seed)
	f := fakerlib.NewWithSeed(src)

	res := make([]Book, n)
	for i := range res {
		res[i] = Book{
			Title:         title(f.Lorem().Words(f.IntBetween(2, 5))),
			Author:        f.Person().Name(),
			Genre:         f.RandomStringElement(Genres),
			PublishedYear: int32(f.IntBetween(1900, 2024)),
			Price:         f.Float64(2, 5, 60),
			InStock:       f.Bool(),
			Pages:         int32(f.IntBetween(80, 1200)),
			Publisher:     f.Company().Name(),
		}
	}

	return res
}

// title joins words and capitalizes the first one.
func title(words []string) string {
	s := strings.Join(words, " ")

	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}
