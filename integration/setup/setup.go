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

// Package setup provides integration tests setup helpers.
package setup

import (
	"context"
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/FerretDB/bookstore/internal/books"
	"github.com/FerretDB/bookstore/internal/catalogue"
	"github.com/FerretDB/bookstore/internal/client"
	"github.com/FerretDB/bookstore/internal/runner"
	"github.com/FerretDB/bookstore/internal/util/testutil"
)

// Flags.
var (
	targetURLF = flag.String("target-url", "", "target system's URL; if empty, integration tests are skipped")

	// Disable noisy setup logs by default.
	debugSetupF = flag.Bool("debug-setup", false, "enable debug logs for tests setup")
	logLevelF   = zap.LevelFlag("log-level", zap.DebugLevel, "log level for tests")
)

// SetupOpts represents setup options.
type SetupOpts struct {
	// Number of generated books to insert in addition to the fixture.
	Generate int

	// NoFixture skips the fixture; only generated books are inserted.
	NoFixture bool
}

// SetupResult represents setup results.
type SetupResult struct {
	Ctx        context.Context
	Collection *mongo.Collection
	Runner     *runner.Runner

	// Books inserted into the collection, with IDs assigned.
	Books []books.Book
}

// SetupWithOpts setups the test according to given options.
//
// It skips the test if the target URL is not set.
// Each test gets its own database with a single seeded books collection;
// the database is dropped when test ends.
func SetupWithOpts(tb testing.TB, opts *SetupOpts) *SetupResult {
	tb.Helper()

	if *targetURLF == "" {
		tb.Skip("-target-url is not set")
	}

	if opts == nil {
		opts = new(SetupOpts)
	}

	ctx, cancel := context.WithCancel(testutil.Ctx(tb))

	setupCtx, span := otel.Tracer("").Start(ctx, "SetupWithOpts")
	defer span.End()

	level := zap.NewAtomicLevelAt(zap.ErrorLevel)
	if *debugSetupF {
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger := testutil.LevelLogger(tb, level)

	connectCtx, connectCancel := context.WithTimeout(setupCtx, 10*time.Second)
	defer connectCancel()

	c, err := client.Connect(connectCtx, &client.ConnectOpts{
		URI:     *targetURLF,
		AppName: "bookstore-integration",
		Logger:  logger.Named("client"),
	})
	require.NoError(tb, err, "URI: %s", *targetURLF)

	db := c.Database(testutil.DatabaseName(tb))
	collection := db.Collection(catalogue.DefaultCollection)

	tb.Cleanup(func() {
		// use background context, test context is already canceled
		cleanupCtx := context.Background()

		require.NoError(tb, db.Drop(cleanupCtx))
		require.NoError(tb, c.Disconnect(cleanupCtx))
	})

	// register after client cleanup to cancel context before dropping the database
	tb.Cleanup(cancel)

	var docs []books.Book
	if !opts.NoFixture {
		docs = books.Fixture()
	}

	if opts.Generate > 0 {
		docs = append(docs, books.Generate(opts.Generate, int64(opts.Generate))...)
	}

	n, err := books.Seed(setupCtx, collection, docs)
	require.NoError(tb, err)
	require.Equal(tb, len(docs), n)

	seeded := fetch(tb, setupCtx, collection)

	level.SetLevel(*logLevelF)

	r := runner.New(&runner.NewOpts{
		Collection: runner.WrapCollection(collection),
		Logger:     logger.Named("runner"),
	})

	return &SetupResult{
		Ctx:        ctx,
		Collection: collection,
		Runner:     r,
		Books:      seeded,
	}
}

// Setup setups a test with the fixture collection.
func Setup(tb testing.TB) *SetupResult {
	tb.Helper()

	return SetupWithOpts(tb, nil)
}

// fetch returns all books in the collection in _id order.
func fetch(tb testing.TB, ctx context.Context, collection *mongo.Collection) []books.Book {
	tb.Helper()

	res, err := FetchAll(ctx, collection)
	require.NoError(tb, err)

	return res
}
