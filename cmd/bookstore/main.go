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

// Package main contains the bookstore command.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	_ "golang.org/x/crypto/x509roots/fallback" // register root TLS certificates for managed servers

	"github.com/FerretDB/bookstore/build/version"
	"github.com/FerretDB/bookstore/internal/catalogue"
	"github.com/FerretDB/bookstore/internal/client"
	"github.com/FerretDB/bookstore/internal/render"
	"github.com/FerretDB/bookstore/internal/runner"
	"github.com/FerretDB/bookstore/internal/util/ctxutil"
	"github.com/FerretDB/bookstore/internal/util/debug"
	"github.com/FerretDB/bookstore/internal/util/debugbuild"
	"github.com/FerretDB/bookstore/internal/util/logging"
	"github.com/FerretDB/bookstore/internal/util/must"
	"github.com/FerretDB/bookstore/internal/util/observability"
)

// The cli struct represents all command-line commands, fields and flags.
// It's used for parsing the user input.
//
//nolint:lll,vet // some tags are long; for readability
var cli struct {
	URI        string        `default:"${default_uri}"        help:"MongoDB URI."`
	Database   string        `default:"${default_database}"   help:"Database name."`
	Collection string        `default:"${default_collection}" help:"Collection name."`
	Timeout    time.Duration `default:"30s"                   help:"Timeout for the whole command; 0 disables it."`

	DebugAddr     string `default:"-" help:"Listen address for HTTP handlers for metrics, pprof, etc; '-' disables them."`
	OtelTracesURL string `default:""  help:"OpenTelemetry OTLP/HTTP traces endpoint (host:port)." name:"otel-traces-url"`

	Log struct {
		Level  string `default:"${default_log_level}" help:"${help_log_level}"`
		Format string `default:"console"              help:"${help_log_format}" enum:"${enum_log_format}"`
	} `embed:"" prefix:"log-"`

	List struct{} `cmd:"" help:"List all catalogue queries."`

	Show struct {
		Query string `arg:"" help:"Query number or name."`
	} `cmd:"" help:"Show a single catalogue query."`

	Run struct {
		Queries   []string `arg:"" optional:"" help:"Query numbers or names; all queries if empty."`
		KeepGoing bool     `default:"false"    help:"Run remaining queries after a failure."`
		Format    string   `default:"text"     help:"${help_format}" enum:"${enum_format}"`
	} `cmd:"" help:"Run catalogue queries."`

	Seed struct {
		Generate int   `default:"0"  help:"Number of additional generated books."`
		Seed     int64 `default:"42" help:"Random seed for generated books."`
	} `cmd:"" help:"Drop the collection and insert sample books."`

	Version struct{} `cmd:"" help:"Print version to stdout and exit."`
}

// Additional variables for the kong parsers.
var (
	kongOptions = []kong.Option{
		kong.Vars{
			"default_uri":        client.DefaultURI,
			"default_database":   catalogue.DefaultDatabase,
			"default_collection": catalogue.DefaultCollection,
			"default_log_level":  defaultLogLevel().String(),

			"enum_format":     strings.Join(render.Formats, ","),
			"enum_log_format": strings.Join(logging.Formats, ","),

			"help_format":     fmt.Sprintf("Output format: '%s'.", strings.Join(render.Formats, "', '")),
			"help_log_format": fmt.Sprintf("Log format: '%s'.", strings.Join(logging.Formats, "', '")),
			"help_log_level":  fmt.Sprintf("Log level: '%s'.", strings.Join(logging.Levels, "', '")),
		},
		kong.DefaultEnvars("BOOKSTORE"),
	}
)

func main() {
	kongCtx := kong.Parse(&cli, kongOptions...)

	// the logger is not set up for all commands, report errors on stderr
	kongCtx.FatalIfErrorf(run(kongCtx.Command()))
}

// defaultLogLevel returns the default log level.
func defaultLogLevel() zapcore.Level {
	if version.Get().DebugBuild {
		return zap.DebugLevel
	}

	return zap.InfoLevel
}

// setupLogger setups zap logger.
func setupLogger() *zap.Logger {
	level, err := zapcore.ParseLevel(cli.Log.Level)
	if err != nil {
		log.Fatal(err)
	}

	logging.Setup(level, cli.Log.Format, uuid.NewString())
	l := zap.L()

	info := version.Get()
	l.Debug(
		"Starting bookstore "+info.Version+"...",
		zap.String("commit", info.Commit),
		zap.Bool("dirty", info.Dirty),
		zap.Bool("debugBuild", info.DebugBuild),
		zap.Any("buildEnvironment", info.BuildEnvironment),
	)

	if debugbuild.Enabled {
		l.Info("This is debug build. The performance will be affected.")
	}

	return l
}

// dumpMetrics dumps all Prometheus metrics to stderr.
func dumpMetrics() {
	mfs := must.NotFail(prometheus.DefaultGatherer.Gather())

	for _, mf := range mfs {
		must.NotFail(expfmt.MetricFamilyToText(os.Stderr, mf))
	}
}

// run sets up environment based on provided flags and runs the given command.
func run(cmd string) error {
	// commands that do not touch the database
	switch cmd {
	case "version":
		return printVersion(os.Stdout)
	case "list":
		return list(os.Stdout, cli.Collection)
	case "show <query>":
		return show(os.Stdout, cli.Show.Query, cli.Collection)
	}

	logger := setupLogger()

	if _, err := maxprocs.Set(maxprocs.Logger(logger.Sugar().Debugf)); err != nil {
		logger.Sugar().Warnf("Failed to set GOMAXPROCS: %s.", err)
	}

	shutdown, err := observability.SetupOtel(&observability.SetupOtelOpts{
		Service:  "bookstore",
		Version:  version.Get().Version,
		Endpoint: cli.OtelTracesURL,
	})
	if err != nil {
		return err
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := shutdown(ctx); err != nil {
			logger.Warn("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	ctx, stop := ctxutil.SigTerm(context.Background())
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	// https://github.com/alecthomas/kong/issues/389
	if cli.DebugAddr != "" && cli.DebugAddr != "-" {
		debugCtx, debugCancel := context.WithCancel(ctx)
		defer debugCancel()

		wg.Add(1)

		go func() {
			defer wg.Done()

			l := logger.Named("debug")
			if err := debug.RunHandler(debugCtx, cli.DebugAddr, prometheus.DefaultRegisterer, prometheus.DefaultGatherer, l); err != nil {
				l.Warn("Failed to run debug handler", zap.Error(err))
			}
		}()
	}

	// to increase a chance of resource finalizers to spot problems
	if debugbuild.Enabled {
		defer func() {
			dumpMetrics()
			runtime.GC()
			runtime.GC()
		}()
	}

	ctx, cancel := ctxutil.WithOptionalTimeout(ctx, cli.Timeout)
	defer cancel()

	c, err := client.Connect(ctx, &client.ConnectOpts{
		URI:     cli.URI,
		AppName: "bookstore",
		Logger:  logger.Named("client"),
	})
	if err != nil {
		return err
	}

	defer func() {
		if err := c.Disconnect(context.Background()); err != nil {
			logger.Warn("Failed to disconnect", zap.Error(err))
		}
	}()

	coll := c.Database(cli.Database).Collection(cli.Collection)

	switch cmd {
	case "run", "run <queries>":
		return runQueries(ctx, &runQueriesOpts{
			w:          os.Stdout,
			collection: runner.WrapCollection(coll),
			keys:       cli.Run.Queries,
			keepGoing:  cli.Run.KeepGoing,
			format:     render.Format(cli.Run.Format),
			registerer: prometheus.DefaultRegisterer,
			l:          logger.Named("runner"),
		})

	case "seed":
		return seed(ctx, coll, cli.Seed.Generate, cli.Seed.Seed, logger)

	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}
