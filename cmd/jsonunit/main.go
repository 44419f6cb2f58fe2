// Command jsonunit compares two JSON or YAML documents and reports how they
// differ. It exits 0 when the documents match, 1 when they differ & 2 when
// they can't be compared
//
//	jsonunit [flags] EXPECTED ACTUAL
//
// Either file may be "-" to read standard input. Files ending in .yaml or .yml
// are read as YAML
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/qri-io/jsonunit"
	"github.com/qri-io/jsonunit/jsonnode"
	"github.com/qri-io/jsonunit/selector"
	"github.com/qri-io/jsonunit/yamlnode"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

const (
	exitSimilar   = 0
	exitDifferent = 1
	exitError     = 2
)

type options struct {
	options     []string
	ignorePaths []string
	tolerance   string
	path        string
	jsonPath    string
	jq          string
	format      string
	stats       bool
	color       bool
	logLevel    string
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.StringSliceVarP(&o.options, "option", "o", nil, "comparison option, eg: ignoring-array-order. May be repeated")
	fs.StringSliceVar(&o.ignorePaths, "ignore-path", nil, "path pattern of nodes to skip. May be repeated")
	fs.StringVar(&o.tolerance, "tolerance", "", "accepted absolute difference of numbers")
	fs.StringVar(&o.path, "path", "", "compare expected with the node at this path of actual")
	fs.StringVar(&o.jsonPath, "jsonpath", "", "JSONPath query selecting the part of actual to compare")
	fs.StringVar(&o.jq, "jq", "", "jq program selecting the part of actual to compare")
	fs.StringVar(&o.format, "format", "text", "output format: text, pretty, json or patch")
	fs.BoolVar(&o.stats, "stats", false, "print node & difference counts")
	fs.BoolVar(&o.color, "color", false, "colorize pretty output")
	fs.StringVar(&o.logLevel, "log-level", "warn", "log level")
}

func (o *options) configuration() (jsonunit.Configuration, error) {
	cfg := jsonunit.Empty()
	for _, name := range o.options {
		opt, err := jsonunit.ParseOption(name)
		if err != nil {
			return cfg, err
		}
		cfg = cfg.WithOptions(opt)
	}
	if len(o.ignorePaths) > 0 {
		cfg = cfg.WhenIgnoringPaths(o.ignorePaths...)
	}
	if o.tolerance != "" {
		t, err := decimal.NewFromString(o.tolerance)
		if err != nil {
			return cfg, errors.Wrapf(err, "tolerance %q", o.tolerance)
		}
		cfg = cfg.WithTolerance(t)
	}
	return cfg, nil
}

func (o *options) selector() (selector.Selector, error) {
	switch {
	case o.jsonPath != "" && o.jq != "":
		return nil, errors.New("--jsonpath and --jq can't be combined")
	case o.jsonPath != "":
		return selector.JSONPath(o.jsonPath)
	case o.jq != "":
		return selector.JQ(o.jq)
	}
	return nil, nil
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o := &options{}
	fs := pflag.NewFlagSet("jsonunit", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	o.addFlags(fs)
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	logger := logrus.New()
	logger.SetOutput(stderr)
	level, err := logrus.ParseLevel(o.logLevel)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	logger.SetLevel(level)

	if fs.NArg() != 2 {
		fmt.Fprintln(stderr, "usage: jsonunit [flags] EXPECTED ACTUAL")
		fs.PrintDefaults()
		return exitError
	}

	similar, err := compare(ctx, o, fs.Arg(0), fs.Arg(1), stdin, stdout, logger)
	if err != nil {
		logger.WithError(err).Error("comparison failed")
		return exitError
	}
	if !similar {
		return exitDifferent
	}
	return exitSimilar
}

func compare(ctx context.Context, o *options, expectedFile, actualFile string, stdin io.Reader, w io.Writer, logger *logrus.Logger) (bool, error) {
	if expectedFile == "-" && actualFile == "-" {
		return false, errors.New("only one document can be read from standard input")
	}
	cfg, err := o.configuration()
	if err != nil {
		return false, err
	}
	sel, err := o.selector()
	if err != nil {
		return false, err
	}

	expected, err := readDocument(expectedFile, stdin)
	if err != nil {
		return false, errors.Wrap(err, "expected")
	}
	actual, err := readDocument(actualFile, stdin)
	if err != nil {
		return false, errors.Wrap(err, "actual")
	}
	if sel != nil {
		if actual, err = sel.Select(ctx, actual); err != nil {
			return false, errors.Wrap(err, "selecting actual")
		}
	}

	listener := jsonunit.NewPatchListener()
	cfg = cfg.WithLogger(logger.WithField("expected", expectedFile)).WithDifferenceListener(listener)

	stats := &jsonunit.Stats{}
	d := jsonunit.New(expected, actual, jsonunit.NewPath(o.path), cfg, jsonunit.OptionSetStats(stats))
	similar := d.Similar()
	logger.WithFields(logrus.Fields{"similar": similar, "differences": d.DifferenceList().Len()}).Debug("compared documents")

	if err := writeResult(w, o, d, listener); err != nil {
		return false, err
	}
	if o.stats {
		if o.color {
			fmt.Fprint(w, jsonunit.FormatPrettyStatsColor(stats))
		} else {
			fmt.Fprint(w, jsonunit.FormatPrettyStats(stats))
		}
	}
	return similar, nil
}

func writeResult(w io.Writer, o *options, d *jsonunit.Diff, listener *jsonunit.PatchListener) error {
	switch o.format {
	case "text":
		_, err := fmt.Fprintln(w, strings.TrimSuffix(d.Differences(), "\n"))
		return err
	case "pretty":
		return jsonunit.FormatPretty(w, d.DifferenceList(), o.color)
	case "json":
		diffs := d.DifferenceList()
		if diffs == nil {
			diffs = jsonunit.Differences{}
		}
		data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(diffs, "", "  ")
		if err != nil {
			return errors.Wrap(err, "encoding differences")
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case "patch":
		patch, err := listener.JSONPatch()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, patch)
		return err
	}
	return errors.Errorf("unknown format %q", o.format)
}

func readDocument(name string, stdin io.Reader) (jsonunit.Node, error) {
	var r io.Reader = stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return jsonunit.Missing, err
		}
		defer f.Close()
		r = f
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return yamlnode.ParseReader(r)
	}
	return jsonnode.ParseReader(r)
}
