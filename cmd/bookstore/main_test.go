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
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/FerretDB/bookstore/internal/catalogue"
	"github.com/FerretDB/bookstore/internal/render"
	"github.com/FerretDB/bookstore/internal/util/testutil"
)

// TestParse checks flags, defaults and environment variables.
// It is not parallel because it uses the global cli struct and the environment.
func TestParse(t *testing.T) {
	parser, err := kong.New(&cli, kongOptions...)
	require.NoError(t, err)

	kongCtx, err := parser.Parse([]string{"run", "--keep-going", "--format", "json", "1", "page-2"})
	require.NoError(t, err)

	assert.Equal(t, "run <queries>", kongCtx.Command())
	assert.Equal(t, []string{"1", "page-2"}, cli.Run.Queries)
	assert.True(t, cli.Run.KeepGoing)
	assert.Equal(t, "json", cli.Run.Format)
	assert.Equal(t, "mongodb://127.0.0.1:27017/", cli.URI)
	assert.Equal(t, "plp_bookstore", cli.Database)
	assert.Equal(t, "books", cli.Collection)
	assert.Equal(t, 30*time.Second, cli.Timeout)
	assert.Equal(t, "-", cli.DebugAddr)

	kongCtx, err = parser.Parse([]string{"run"})
	require.NoError(t, err)
	assert.Equal(t, "run", kongCtx.Command())
	assert.Empty(t, cli.Run.Queries)

	_, err = parser.Parse([]string{"run", "--format", "yaml"})
	assert.Error(t, err)

	t.Setenv("BOOKSTORE_DATABASE", "other")
	t.Setenv("BOOKSTORE_URI", "mongodb://example.com:27018/")

	kongCtx, err = parser.Parse([]string{"seed", "--generate", "100"})
	require.NoError(t, err)
	assert.Equal(t, "seed", kongCtx.Command())
	assert.Equal(t, 100, cli.Seed.Generate)
	assert.Equal(t, int64(42), cli.Seed.Seed)
	assert.Equal(t, "other", cli.Database)
	assert.Equal(t, "mongodb://example.com:27018/", cli.URI)
}

func TestList(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	require.NoError(t, list(&sb, "books"))

	out := sb.String()
	assert.True(t, strings.HasPrefix(out, "# Basic CRUD Operations\n 1. programming-books (filter)\n"), "%s", out)
	assert.Contains(t, out, "# Indexing\n")
	assert.Contains(t, out, `db.books.find({"genre":"Programming"})`)
	assert.Equal(t, len(catalogue.Tasks)+2*len(catalogue.All()), strings.Count(out, "\n"))
}

func TestShow(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	require.NoError(t, show(&sb, "delete-1984", "books"))

	expected := "5. delete-1984 (Basic CRUD Operations, delete)\n" +
		`Delete the book titled "1984"` + "\n" +
		`db.books.deleteOne({"title":"1984"})` + "\n"
	testutil.AssertEqualText(t, expected, sb.String())

	err := show(&sb, "42", "books")
	assert.ErrorIs(t, err, catalogue.ErrNotFound)
}

func TestSelectQueries(t *testing.T) {
	t.Parallel()

	qs, err := selectQueries(nil)
	require.NoError(t, err)
	assert.Len(t, qs, 17)

	qs, err = selectQueries([]string{"17", "title-index"})
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, 17, qs[0].Number)
	assert.Equal(t, 15, qs[1].Number)

	_, err = selectQueries([]string{"1", "no-such-query"})
	assert.ErrorIs(t, err, catalogue.ErrNotFound)
}

func TestPrintVersion(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	require.NoError(t, printVersion(&sb))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "version: "))
	assert.True(t, strings.HasPrefix(lines[3], "debugBuild: "))
}

// TestRunReportsErrors checks that errors of commands that run without a logger are printed.
// It is not parallel because it uses the global cli struct.
func TestRunReportsErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	exitCode := -1

	opts := []kong.Option{
		kong.Name("bookstore"),
		kong.Writers(&stdout, &stderr),
		kong.Exit(func(code int) { exitCode = code }),
	}
	opts = append(opts, kongOptions...)

	parser, err := kong.New(&cli, opts...)
	require.NoError(t, err)

	kongCtx, err := parser.Parse([]string{"show", "nope"})
	require.NoError(t, err)
	require.Equal(t, "show <query>", kongCtx.Command())

	err = run(kongCtx.Command())
	require.ErrorIs(t, err, catalogue.ErrNotFound)

	kongCtx.FatalIfErrorf(err)

	assert.Equal(t, 1, exitCode)
	assert.Empty(t, stdout.String())
	assert.Equal(t, "bookstore: error: query not found: \"nope\"\n", stderr.String())
}

// emptyCollection returns no documents for reads and fails for everything else.
type emptyCollection struct{}

var errReadOnly = errors.New("read-only collection")

func (emptyCollection) Name() string { return "books" }

func (emptyCollection) Find(context.Context, any, ...*options.FindOptions) (*mongo.Cursor, error) {
	return mongo.NewCursorFromDocuments(nil, nil, nil)
}

func (emptyCollection) UpdateOne(context.Context, any, any, ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return nil, errReadOnly
}

func (emptyCollection) DeleteOne(context.Context, any, ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	return nil, errReadOnly
}

func (emptyCollection) Aggregate(context.Context, any, ...*options.AggregateOptions) (*mongo.Cursor, error) {
	return mongo.NewCursorFromDocuments(nil, nil, nil)
}

func (emptyCollection) CreateIndex(context.Context, mongo.IndexModel) (string, error) {
	return "", errReadOnly
}

func (emptyCollection) RunCommand(context.Context, bson.D) (bson.Raw, error) {
	return nil, errReadOnly
}

func TestRunQueriesMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewPedanticRegistry()

	var sb strings.Builder
	err := runQueries(testutil.Ctx(t), &runQueriesOpts{
		w:          &sb,
		collection: emptyCollection{},
		keys:       []string{"1", "delete-1984", "12"},
		keepGoing:  true,
		format:     render.FormatText,
		registerer: reg,
	})
	require.ErrorIs(t, err, errReadOnly)

	expected := "1. programming-books (filter): 0 documents\n" +
		"12. average-price-by-genre (aggregation): 0 documents\n"
	testutil.AssertEqualText(t, expected, sb.String())

	// metrics are still available after runQueries returns, for example for the debug build dump
	mfs, err := reg.Gather()
	require.NoError(t, err)

	actual := make(map[string]float64)

	for _, mf := range mfs {
		if mf.GetName() != "bookstore_runner_queries_total" {
			continue
		}

		for _, m := range mf.GetMetric() {
			labels := make(map[string]string)
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}

			actual[labels["query"]+"/"+labels["result"]] = m.GetCounter().GetValue()
		}
	}

	expectedMetrics := map[string]float64{
		"programming-books/ok":      1,
		"delete-1984/error":         1,
		"average-price-by-genre/ok": 1,
	}
	assert.Equal(t, expectedMetrics, actual)
}
