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

// Package runner issues catalogue queries against a collection.
//
// Every query is a single request/response round trip.
// Errors returned by the database engine are passed through unchanged (but annotated),
// never retried or classified.
package runner

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/bson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/FerretDB/bookstore/internal/catalogue"
	"github.com/FerretDB/bookstore/internal/util/lazyerrors"
	"github.com/FerretDB/bookstore/internal/util/must"
)

// Result represents the outcome of a single query.
//
//nolint:vet // for readability
type Result struct {
	Query *catalogue.Query

	// Documents returned by find and aggregate queries.
	Documents []bson.D

	// Counts of update and delete queries.
	MatchedCount  int64
	ModifiedCount int64
	DeletedCount  int64

	// IndexName is the name of the index created by index queries.
	IndexName string

	// Explain is set for explain queries.
	Explain *ExplainStats

	Duration time.Duration
}

// Runner issues catalogue queries.
type Runner struct {
	c Collection
	l *zap.Logger
	m *metrics
}

// NewOpts represents [New] options.
type NewOpts struct {
	Collection Collection
	Logger     *zap.Logger
}

// New creates a new Runner.
func New(opts *NewOpts) *Runner {
	must.NotBeZero(opts)
	must.NotBeZero(opts.Collection)

	l := opts.Logger
	if l == nil {
		l = zap.NewNop()
	}

	return &Runner{
		c: opts.Collection,
		l: l,
		m: newMetrics(),
	}
}

// Run issues a single query.
func (r *Runner) Run(ctx context.Context, q *catalogue.Query) (*Result, error) {
	if err := q.Validate(); err != nil {
		return nil, lazyerrors.Error(err)
	}

	ctx, span := otel.Tracer("").Start(ctx, q.Name, trace.WithAttributes(
		attribute.Int("query.number", q.Number),
		attribute.String("query.kind", q.Kind.String()),
		attribute.String("db.collection", r.c.Name()),
	))
	defer span.End()

	start := time.Now()

	res, err := r.run(ctx, q)

	d := time.Since(start)

	result := "ok"
	if err != nil {
		result = "error"
	}

	r.m.queries.WithLabelValues(q.Name, q.Kind.String(), result).Inc()
	r.m.duration.WithLabelValues(q.Name, q.Kind.String()).Observe(d.Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		r.l.Warn(
			"Query failed",
			zap.Int("number", q.Number), zap.String("name", q.Name), zap.Duration("duration", d), zap.Error(err),
		)

		return nil, lazyerrors.Error(err)
	}

	res.Query = q
	res.Duration = d

	r.l.Debug(
		"Query executed",
		zap.Int("number", q.Number), zap.String("name", q.Name), zap.Stringer("kind", q.Kind),
		zap.Int("documents", len(res.Documents)), zap.Duration("duration", d),
	)

	return res, nil
}

// run dispatches the query to the collection according to its kind.
func (r *Runner) run(ctx context.Context, q *catalogue.Query) (*Result, error) {
	var res Result

	switch q.Kind {
	case catalogue.KindFilter, catalogue.KindProjection, catalogue.KindSort, catalogue.KindPagination:
		cursor, err := r.c.Find(ctx, q.Filter, q.FindOptions())
		if err != nil {
			return nil, err
		}

		// All closes the cursor
		if err = cursor.All(ctx, &res.Documents); err != nil {
			return nil, err
		}

	case catalogue.KindUpdate:
		u, err := r.c.UpdateOne(ctx, q.Filter, q.Update)
		if err != nil {
			return nil, err
		}

		res.MatchedCount = u.MatchedCount
		res.ModifiedCount = u.ModifiedCount

	case catalogue.KindDelete:
		d, err := r.c.DeleteOne(ctx, q.Filter)
		if err != nil {
			return nil, err
		}

		res.DeletedCount = d.DeletedCount

	case catalogue.KindAggregation:
		cursor, err := r.c.Aggregate(ctx, q.Pipeline)
		if err != nil {
			return nil, err
		}

		if err = cursor.All(ctx, &res.Documents); err != nil {
			return nil, err
		}

	case catalogue.KindIndex:
		name, err := r.c.CreateIndex(ctx, q.IndexModel())
		if err != nil {
			return nil, err
		}

		res.IndexName = name

	case catalogue.KindExplain:
		raw, err := r.c.RunCommand(ctx, q.ExplainCommand(r.c.Name()))
		if err != nil {
			return nil, err
		}

		if res.Explain, err = parseExplain(raw); err != nil {
			return nil, err
		}

	default:
		panic("unexpected kind " + q.Kind.String())
	}

	return &res, nil
}

// RunAll issues given queries in order.
//
// Without keepGoing, it stops at the first error.
// With keepGoing, it runs all queries and returns all errors joined.
// Results of successful queries are returned in both cases.
func (r *Runner) RunAll(ctx context.Context, qs []*catalogue.Query, keepGoing bool) ([]*Result, error) {
	res := make([]*Result, 0, len(qs))

	var errs []error

	for _, q := range qs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, lazyerrors.Error(err))
			break
		}

		qr, err := r.Run(ctx, q)
		if err != nil {
			errs = append(errs, err)

			if !keepGoing {
				break
			}

			continue
		}

		res = append(res, qr)
	}

	return res, errors.Join(errs...)
}

// Describe implements [prometheus.Collector].
func (r *Runner) Describe(ch chan<- *prometheus.Desc) {
	r.m.Describe(ch)
}

// Collect implements [prometheus.Collector].
func (r *Runner) Collect(ch chan<- prometheus.Metric) {
	r.m.Collect(ch)
}

// check interfaces
var (
	_ prometheus.Collector = (*Runner)(nil)
)
