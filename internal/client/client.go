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

// Package client connects to the document database engine.
package client

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/FerretDB/bookstore/internal/util/lazyerrors"
	"github.com/FerretDB/bookstore/internal/util/logging"
)

// DefaultURI is the connection string used when none is given.
const DefaultURI = "mongodb://127.0.0.1:27017/"

// ConnectOpts represents [Connect] options.
type ConnectOpts struct {
	URI     string
	AppName string

	// ServerSelectionTimeout limits how long Connect waits for a reachable server.
	// Zero means the driver default.
	ServerSelectionTimeout time.Duration

	// Logger receives driver command logs at debug level.
	Logger *zap.Logger
}

// Connect returns a client connected to the engine at the given URI.
//
// It pings the primary before returning, so an unreachable engine is reported here
// rather than on the first query. The caller is responsible for calling Disconnect.
func Connect(ctx context.Context, opts *ConnectOpts) (*mongo.Client, error) {
	ctx, span := otel.Tracer("").Start(ctx, "Connect")
	defer span.End()

	if opts == nil {
		opts = new(ConnectOpts)
	}

	uri := opts.URI
	if uri == "" {
		uri = DefaultURI
	}

	l := opts.Logger
	if l == nil {
		l = zap.NewNop()
	}

	clientOpts := options.Client().ApplyURI(uri)
	clientOpts.SetMonitor(otelmongo.NewMonitor())
	clientOpts.SetLoggerOptions(
		options.Logger().
			SetSink(logging.NewMongoSink(l.Named("driver"))).
			SetComponentLevel(options.LogComponentCommand, options.LogLevelDebug),
	)

	if opts.AppName != "" {
		clientOpts.SetAppName(opts.AppName)
	}

	if opts.ServerSelectionTimeout > 0 {
		clientOpts.SetServerSelectionTimeout(opts.ServerSelectionTimeout)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, lazyerrors.Error(err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, lazyerrors.Error(err)
	}

	l.Debug("Connected", zap.Strings("hosts", clientOpts.Hosts))

	return client, nil
}
