// Package main provides the graphdef CLI: it decodes the constant tensors of
// text-format graph records and prints a summary, CBOR or SafeTensors.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/spf13/pflag"

	"github.com/born-ml/graphdef/internal/codec"
	"github.com/born-ml/graphdef/internal/config"
	"github.com/born-ml/graphdef/internal/decode"
	"github.com/born-ml/graphdef/internal/loader"
	"github.com/born-ml/graphdef/internal/parallel"
	"github.com/born-ml/graphdef/internal/serialization"
	"github.com/born-ml/graphdef/internal/tensor"
)

const version = "v0.1.0-dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the parsed command line.
type options struct {
	configPath  string
	tensorFiles bool
	format      string
	outputPath  string
	logLevel    string
	digest      bool
	legacyFloat bool
	jobs        int
	showVersion bool
	files       []string

	changed func(name string) bool
}

func parseOptions(args []string, stderr io.Writer) (*options, error) {
	var opts options
	flagSet := pflag.NewFlagSet("graphdef", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.configPath, "config", "", "path to YAML config (default: $"+config.EnvVar+")")
	flagSet.BoolVar(&opts.tensorFiles, "tensor", false, "treat each file as a single tensor record instead of a graph")
	flagSet.StringVar(&opts.format, "format", config.FormatText, "output format: text, cbor or safetensors")
	flagSet.StringVarP(&opts.outputPath, "output", "o", "", "write output to this file instead of stdout")
	flagSet.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flagSet.BoolVar(&opts.digest, "digest", false, "append a BLAKE3 digest of each array to text output")
	flagSet.BoolVar(&opts.legacyFloat, "legacy-float-values", false, "read DT_FLOAT values from int_val")
	flagSet.IntVarP(&opts.jobs, "jobs", "j", 0, "decode up to this many files concurrently (0: one per CPU)")
	flagSet.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage: graphdef [flags] FILE...\n\nDecodes the constant tensors of graph record documents (YAML, JSON, JSONC; zstd or gzip compressed).\n\nFlags:\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}
	opts.files = flagSet.Args()
	opts.changed = flagSet.Changed
	return &opts, nil
}

// resolve merges file config with explicitly set flags.
func (o *options) resolve() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.changed("format") {
		cfg.Output.Format = o.format
	}
	if o.changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if o.changed("digest") {
		cfg.Output.Digest = o.digest
	}
	if o.changed("legacy-float-values") {
		cfg.Decode.LegacyFloatValues = o.legacyFloat
	}
	if o.changed("jobs") {
		cfg.Decode.Workers = o.jobs
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "graphdef %s\n", version)
		return nil
	}
	if len(opts.files) == 0 {
		return fmt.Errorf("no input files (see --help)")
	}

	cfg, err := opts.resolve()
	if err != nil {
		return err
	}
	level, _ := config.ParseLevel(cfg.LogLevel) // validated by resolve
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var decoderOpts []decode.Option
	if cfg.Decode.LegacyFloatValues {
		decoderOpts = append(decoderOpts, decode.WithLegacyFloatValues())
	}
	decoder := decode.NewDecoder(logger, decoderOpts...)

	workers := parallel.DefaultConfig()
	if cfg.Decode.Workers > 0 {
		workers.NumWorkers = cfg.Decode.Workers
	}
	perFile := make([]map[string]*tensor.Array, len(opts.files))
	err = parallel.For(len(opts.files), func(i int) error {
		decoded, err := decodeFile(decoder, opts.files[i], opts.tensorFiles)
		if err != nil {
			return err
		}
		logger.Info("decoded file", "path", opts.files[i], "tensors", len(decoded))
		perFile[i] = decoded
		return nil
	}, workers)
	if err != nil {
		return err
	}

	// Later files win on name collisions.
	arrays := make(map[string]*tensor.Array)
	for _, decoded := range perFile {
		for name, arr := range decoded {
			arrays[name] = arr
		}
	}

	if opts.outputPath == "" {
		return write(stdout, arrays, cfg.Output, opts.files)
	}
	file, err := os.Create(opts.outputPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := write(file, arrays, cfg.Output, opts.files); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing output: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}

// decodeFile decodes one document into named arrays. A tensor document
// yields one array named after its path.
func decodeFile(decoder *decode.Decoder, path string, tensorFile bool) (map[string]*tensor.Array, error) {
	if tensorFile {
		record, err := loader.ReadTensor(path)
		if err != nil {
			return nil, err
		}
		arr, err := decoder.Tensor(record)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return map[string]*tensor.Array{path: arr}, nil
	}

	g, err := loader.ReadGraph(path)
	if err != nil {
		return nil, err
	}
	consts, err := decoder.Constants(g)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return consts, nil
}

func write(w io.Writer, arrays map[string]*tensor.Array, cfg config.OutputConfig, sources []string) error {
	if cfg.Format == config.FormatSafeTensors {
		metadata := map[string]string{
			"producer": "graphdef " + version,
			"sources":  strings.Join(sources, ","),
		}
		return serialization.WriteSafeTensors(w, arrays, metadata)
	}

	names := make([]string, 0, len(arrays))
	for name := range arrays {
		names = append(names, name)
	}
	sort.Strings(names)

	if cfg.Format == config.FormatCBOR {
		records := make([]codec.Record, len(names))
		for i, name := range names {
			records[i] = codec.NewRecord(name, arrays[name])
		}
		data, err := codec.EncodeAll(records)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	for _, name := range names {
		arr := arrays[name]
		fields := []string{name, arr.DType().String(), formatShape(arr.Shape())}
		if cfg.Digest {
			fields = append(fields, codec.Digest(arr))
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, " ")); err != nil {
			return err
		}
	}
	return nil
}

func formatShape(shape tensor.Shape) string {
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = fmt.Sprint(d)
	}
	return "[" + strings.Join(dims, ",") + "]"
}
