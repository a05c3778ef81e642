package main

import (
	"context"
	"flag"
	"os"

	"github.com/go-kit/kit/log/level"
	"github.com/kolide/kit/env"
	"github.com/kolide/kit/logutil"
	"github.com/peterbourgon/ff/v3"

	"github.com/juliusl/cargo-wix/pkg/contexts/ctxlog"
	"github.com/juliusl/cargo-wix/pkg/wix"
)

func main() {
	fs := flag.NewFlagSet("cargo-wix", flag.ExitOnError)

	var (
		flPrintTemplate = fs.Bool(
			"print-template",
			false,
			"print the example WiX source to stdout and exit",
		)
		flSign = fs.Bool(
			"sign",
			env.Bool("CARGO_WIX_SIGN", false),
			"sign the installer with signtool after linking",
		)
		flTimestamp = fs.String(
			"timestamp",
			env.String("CARGO_WIX_TIMESTAMP", ""),
			"URL of the timestamp server to use when signing",
		)
		flNoCapture = fs.Bool(
			"nocapture",
			false,
			"show the output of cargo and the WiX tools",
		)
		flManifest = fs.String(
			"manifest",
			wix.ManifestFile,
			"path to the package manifest",
		)
		flDebug = fs.Bool(
			"debug",
			false,
			"use a debug logger",
		)
	)

	ffOpts := []ff.Option{
		ff.WithEnvVarPrefix("CARGO_WIX"),
	}

	if err := ff.Parse(fs, os.Args[1:], ffOpts...); err != nil {
		logger := logutil.NewCLILogger(true)
		logutil.Fatal(logger, "msg", "Error parsing flags", "err", err)
	}

	logger := logutil.NewCLILogger(*flDebug)

	if *flPrintTemplate {
		if err := wix.PrintTemplate(os.Stdout); err != nil {
			logutil.Fatal(logger, "msg", "Error printing template", "err", err)
		}
		return
	}

	ctx := ctxlog.NewContext(context.Background(), logger)

	opts := []wix.Option{
		wix.WithManifest(*flManifest),
	}
	if *flSign {
		opts = append(opts, wix.Sign())
	}
	if *flTimestamp != "" {
		opts = append(opts, wix.WithTimestampServer(*flTimestamp))
	}
	if *flNoCapture {
		opts = append(opts, wix.NoCapture())
	}

	if err := wix.New(opts...).Run(ctx); err != nil {
		level.Info(logger).Log("msg", "Failed to create installer", "err", err)
		os.Exit(wix.ErrorCode(err))
	}
}
