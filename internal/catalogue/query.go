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

package catalogue

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/FerretDB/bookstore/internal/util/must"
)

// ErrInvalid is returned by [Query.Validate] for malformed definitions.
var ErrInvalid = errors.New("invalid query definition")

// Query is a single self-contained request of the catalogue.
//
// Only fields relevant for the Kind are set; others are nil or zero.
// Documents are passed to the driver exactly as they are defined.
//
//nolint:vet // for readability
type Query struct {
	Number      int
	Name        string
	Task        Task
	Kind        Kind
	Description string

	// Filter is used by all kinds except Aggregation and Index.
	// Empty (but not nil) filter matches all documents.
	Filter bson.D

	Projection bson.D
	Sort       bson.D
	Skip       *int64
	Limit      *int64

	// Update is an update document with operators, for Update kind.
	Update bson.D

	// Pipeline is a list of stages, for Aggregation kind.
	Pipeline mongo.Pipeline

	// Keys are index keys with directions, for Index kind.
	Keys bson.D

	// Verbosity is explain verbosity, for Explain kind.
	Verbosity string
}

// Validate checks that all parameters required by the Kind are present.
func (q *Query) Validate() error {
	var missing []string

	check := func(ok bool, what string) {
		if !ok {
			missing = append(missing, what)
		}
	}

	check(q.Number > 0, "number")
	check(q.Name != "", "name")

	switch q.Kind {
	case KindFilter:
		check(q.Filter != nil, "filter")
	case KindProjection:
		check(q.Filter != nil, "filter")
		check(len(q.Projection) > 0, "projection")
	case KindSort:
		check(q.Filter != nil, "filter")
		check(len(q.Sort) > 0, "sort")
	case KindPagination:
		check(q.Filter != nil, "filter")
		check(len(q.Sort) > 0, "sort")
		check(q.Skip != nil && *q.Skip >= 0, "skip")
		check(q.Limit != nil && *q.Limit > 0, "limit")
	case KindUpdate:
		check(len(q.Filter) > 0, "filter")
		check(len(q.Update) > 0, "update")
	case KindDelete:
		check(len(q.Filter) > 0, "filter")
	case KindAggregation:
		check(len(q.Pipeline) > 0, "pipeline")
	case KindIndex:
		check(len(q.Keys) > 0, "keys")
	case KindExplain:
		check(q.Filter != nil, "filter")
		check(q.Verbosity != "", "verbosity")
	default:
		return fmt.Errorf("%w: query %d: unexpected kind %s", ErrInvalid, q.Number, q.Kind)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: query %d (%s): missing %s", ErrInvalid, q.Number, q.Kind, strings.Join(missing, ", "))
	}

	return nil
}

// FindOptions returns find options with projection, sort, skip and limit of the query.
func (q *Query) FindOptions() *options.FindOptions {
	opts := options.Find()

	if q.Projection != nil {
		opts.SetProjection(q.Projection)
	}

	if q.Sort != nil {
		opts.SetSort(q.Sort)
	}

	if q.Skip != nil {
		opts.SetSkip(*q.Skip)
	}

	if q.Limit != nil {
		opts.SetLimit(*q.Limit)
	}

	return opts
}

// IndexModel returns index model for Index kind.
func (q *Query) IndexModel() mongo.IndexModel {
	return mongo.IndexModel{Keys: q.Keys}
}

// ExplainCommand returns explain command for the given collection.
func (q *Query) ExplainCommand(collection string) bson.D {
	return bson.D{
		{"explain", bson.D{
			{"find", collection},
			{"filter", q.Filter},
		}},
		{"verbosity", q.Verbosity},
	}
}

// Shell returns the query as mongosh statement for the given collection.
func (q *Query) Shell(collection string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "db.%s.", collection)

	switch q.Kind {
	case KindFilter, KindProjection, KindSort, KindPagination, KindExplain:
		sb.WriteString("find(" + extJSON(q.Filter))

		if q.Projection != nil {
			sb.WriteString(", " + extJSON(q.Projection))
		}

		sb.WriteString(")")

		if q.Sort != nil {
			sb.WriteString(".sort(" + extJSON(q.Sort) + ")")
		}

		if q.Limit != nil {
			fmt.Fprintf(&sb, ".limit(%d)", *q.Limit)
		}

		if q.Skip != nil {
			fmt.Fprintf(&sb, ".skip(%d)", *q.Skip)
		}

		if q.Kind == KindExplain {
			fmt.Fprintf(&sb, ".explain(%q)", q.Verbosity)
		}

	case KindUpdate:
		sb.WriteString("updateOne(" + extJSON(q.Filter) + ", " + extJSON(q.Update) + ")")

	case KindDelete:
		sb.WriteString("deleteOne(" + extJSON(q.Filter) + ")")

	case KindAggregation:
		stages := make([]string, len(q.Pipeline))
		for i, stage := range q.Pipeline {
			stages[i] = extJSON(stage)
		}

		sb.WriteString("aggregate([" + strings.Join(stages, ", ") + "])")

	case KindIndex:
		sb.WriteString("createIndex(" + extJSON(q.Keys) + ")")

	default:
		panic(fmt.Sprintf("unexpected kind %s", q.Kind))
	}

	return sb.String()
}

// extJSON returns relaxed Extended JSON representation of the document.
func extJSON(doc bson.D) string {
	if doc == nil {
		doc = bson.D{}
	}

	return string(must.NotFail(bson.MarshalExtJSON(doc, false, false)))
}
