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

// Package render writes query results for humans and tools.
package render

import (
	"fmt"
	"io"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/FerretDB/bookstore/internal/catalogue"
	"github.com/FerretDB/bookstore/internal/runner"
	"github.com/FerretDB/bookstore/internal/util/lazyerrors"
)

// Format is an output format.
type Format string

// Output formats.
const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Formats contains all supported output formats.
var Formats = []string{string(FormatJSON), string(FormatText)}

// Write writes a single result to w in the given format.
//
// The JSON format writes one relaxed Extended JSON document per line.
// The first one is a header with the query number, name, kind and counts;
// it is followed by returned documents for find and aggregate queries
// and by the raw reply for explain queries.
// The text format writes a header line with the summary followed by indented documents.
func Write(w io.Writer, res *runner.Result, format Format) error {
	var err error

	switch format {
	case FormatJSON:
		err = writeJSON(w, res)
	case FormatText:
		err = writeText(w, res)
	default:
		err = fmt.Errorf("unexpected format %q", format)
	}

	if err != nil {
		return lazyerrors.Error(err)
	}

	return nil
}

// WriteAll writes all results in order.
func WriteAll(w io.Writer, res []*runner.Result, format Format) error {
	for _, r := range res {
		if err := Write(w, r, format); err != nil {
			return err
		}
	}

	return nil
}

// header returns the first document written for the result in [FormatJSON].
func header(res *runner.Result) bson.D {
	q := res.Query

	h := bson.D{
		{"query", int32(q.Number)},
		{"name", q.Name},
		{"kind", q.Kind.String()},
	}

	switch q.Kind {
	case catalogue.KindUpdate:
		h = append(h, bson.E{"matchedCount", res.MatchedCount}, bson.E{"modifiedCount", res.ModifiedCount})
	case catalogue.KindDelete:
		h = append(h, bson.E{"deletedCount", res.DeletedCount})
	case catalogue.KindIndex:
		h = append(h, bson.E{"index", res.IndexName})
	case catalogue.KindExplain:
		// the raw reply follows
	default:
		h = append(h, bson.E{"documents", int32(len(res.Documents))})
	}

	return h
}

// writeJSON implements [FormatJSON].
func writeJSON(w io.Writer, res *runner.Result) error {
	docs := []any{header(res)}

	switch res.Query.Kind {
	case catalogue.KindExplain:
		if res.Explain != nil && res.Explain.Raw != nil {
			docs = append(docs, res.Explain.Raw)
		}
	case catalogue.KindUpdate, catalogue.KindDelete, catalogue.KindIndex:
		// header only
	default:
		for _, d := range res.Documents {
			docs = append(docs, d)
		}
	}

	for _, d := range docs {
		b, err := bson.MarshalExtJSON(d, false, false)
		if err != nil {
			return err
		}

		if _, err = fmt.Fprintf(w, "%s\n", b); err != nil {
			return err
		}
	}

	return nil
}

// writeText implements [FormatText].
func writeText(w io.Writer, res *runner.Result) error {
	q := res.Query

	if _, err := fmt.Fprintf(w, "%d. %s (%s): %s\n", q.Number, q.Name, q.Kind, Summary(res)); err != nil {
		return err
	}

	for _, d := range res.Documents {
		b, err := bson.MarshalExtJSON(d, false, false)
		if err != nil {
			return err
		}

		if _, err = fmt.Fprintf(w, "   %s\n", b); err != nil {
			return err
		}
	}

	return nil
}

// Summary returns a one-line description of the result.
func Summary(res *runner.Result) string {
	switch res.Query.Kind {
	case catalogue.KindUpdate:
		return fmt.Sprintf("matched %d, modified %d", res.MatchedCount, res.ModifiedCount)

	case catalogue.KindDelete:
		return fmt.Sprintf("deleted %d", res.DeletedCount)

	case catalogue.KindIndex:
		return "created index " + res.IndexName

	case catalogue.KindExplain:
		s := res.Explain
		if s == nil {
			return "no explain statistics"
		}

		plan := strings.Join(s.Stages, " <- ")
		if plan == "" {
			plan = "unknown plan"
		}

		if s.IndexUsed() {
			plan += ", index " + s.IndexName
		}

		return fmt.Sprintf(
			"%s, returned %d, keys examined %d, docs examined %d, %d ms",
			plan, s.NReturned, s.TotalKeysExamined, s.TotalDocsExamined, s.ExecutionTimeMillis,
		)

	default:
		if len(res.Documents) == 1 {
			return "1 document"
		}

		return fmt.Sprintf("%d documents", len(res.Documents))
	}
}
