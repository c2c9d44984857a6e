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

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/FerretDB/bookstore/build/version"
	"github.com/FerretDB/bookstore/internal/books"
	"github.com/FerretDB/bookstore/internal/catalogue"
	"github.com/FerretDB/bookstore/internal/render"
	"github.com/FerretDB/bookstore/internal/runner"
	"github.com/FerretDB/bookstore/internal/util/lazyerrors"
)

// printVersion prints build information.
func printVersion(w io.Writer) error {
	info := version.Get()

	_, err := fmt.Fprintf(w, "version: %s\ncommit: %s\ndirty: %t\ndebugBuild: %t\n",
		info.Version, info.Commit, info.Dirty, info.DebugBuild,
	)

	return err
}

// list prints all catalogue queries grouped by task.
func list(w io.Writer, collection string) error {
	for _, task := range catalogue.Tasks {
		if _, err := fmt.Fprintf(w, "# %s\n", task); err != nil {
			return err
		}

		for _, q := range catalogue.ByTask(task) {
			if _, err := fmt.Fprintf(w, "%2d. %s (%s)\n    %s\n", q.Number, q.Name, q.Kind, q.Shell(collection)); err != nil {
				return err
			}
		}
	}

	return nil
}

// show prints a single catalogue query.
func show(w io.Writer, key, collection string) error {
	q, err := catalogue.Lookup(key)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%d. %s (%s, %s)\n%s\n%s\n", q.Number, q.Name, q.Task, q.Kind, q.Description, q.Shell(collection))

	return err
}

// selectQueries returns queries for the given numbers or names in the given order,
// or all queries if keys are empty.
func selectQueries(keys []string) ([]*catalogue.Query, error) {
	if len(keys) == 0 {
		return catalogue.All(), nil
	}

	res := make([]*catalogue.Query, len(keys))

	for i, key := range keys {
		q, err := catalogue.Lookup(key)
		if err != nil {
			return nil, err
		}

		res[i] = q
	}

	return res, nil
}

// runQueriesOpts represents [runQueries] options.
type runQueriesOpts struct {
	w          io.Writer
	collection runner.Collection
	keys       []string
	keepGoing  bool
	format     render.Format
	registerer prometheus.Registerer
	l          *zap.Logger
}

// runQueries runs selected queries and writes their results.
//
// Results of successful queries are written even if some queries failed.
// The runner stays registered, so its metrics are available until the process exits.
func runQueries(ctx context.Context, opts *runQueriesOpts) error {
	qs, err := selectQueries(opts.keys)
	if err != nil {
		return err
	}

	r := runner.New(&runner.NewOpts{
		Collection: opts.collection,
		Logger:     opts.l,
	})

	if opts.registerer != nil {
		if err = opts.registerer.Register(r); err != nil {
			return lazyerrors.Error(err)
		}
	}

	res, runErr := r.RunAll(ctx, qs, opts.keepGoing)

	if err = render.WriteAll(opts.w, res, opts.format); err != nil {
		return err
	}

	return runErr
}

// seed replaces the collection content with the fixture and n generated books.
func seed(ctx context.Context, collection *mongo.Collection, n int, randSeed int64, l *zap.Logger) error {
	docs := books.Fixture()

	if n > 0 {
		docs = append(docs, books.Generate(n, randSeed)...)
	}

	inserted, err := books.Seed(ctx, collection, docs)
	if err != nil {
		return err
	}

	l.Info(
		"Collection seeded",
		zap.String("database", collection.Database().Name()), zap.String("collection", collection.Name()),
		zap.Int("inserted", inserted),
	)

	return nil
}
