// Command sfxgen renders a table of procedural sound effects to WAV files.
//
// Usage:
//
//	sfxgen [flags]
//
// Without -defs it renders the built-in whack-a-mole set.
//
// Examples:
//
//	sfxgen -out assets/sounds
//	sfxgen -only hit,ting -seed 42
//	sfxgen -defs effects.yaml -report
//	sfxgen -list
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-sfx/dsp/core"
	"github.com/cwbudde/algo-sfx/dsp/osc"
	"github.com/cwbudde/algo-sfx/dsp/synth"
	"github.com/cwbudde/algo-sfx/internal/catalog"
	"github.com/cwbudde/algo-sfx/measure/summary"
	"github.com/cwbudde/algo-sfx/pcm"
)

type options struct {
	out    string
	defs   string
	seed   uint64
	jobs   int
	only   []string
	list   bool
	report bool
	verify bool
}

// result is the outcome of rendering one asset.
type result struct {
	name    string
	path    string
	summary summary.Summary
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("sfxgen: ")

	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cat, err := loadCatalog(opts.defs)
	if err != nil {
		return err
	}

	if opts.list {
		for _, name := range cat.Names() {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}

	assets, err := cat.Select(opts.only)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return fmt.Errorf("output directory: %w", err)
	}

	coreOpts := []core.ProcessorOption{
		core.WithSampleRate(cat.SampleRate),
		core.WithBitDepth(core.DefaultBitDepth),
	}

	enc, err := pcm.NewEncoder(coreOpts...)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "Generating audio files...")

	index := make(map[string]int, len(cat.Assets))
	for i, name := range cat.Names() {
		index[name] = i
	}

	results := make([]result, len(assets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs)

	for i, asset := range assets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			var genOpts []osc.Option
			if opts.seed != 0 {
				genOpts = append(genOpts, osc.WithSeed(opts.seed+uint64(index[asset.Name])))
			}

			s := synth.New(nil, synth.WithGenerator(osc.NewGeneratorWithOptions(coreOpts, genOpts...)))

			res, err := renderAsset(s, enc, asset, opts)
			if err != nil {
				return err
			}
			results[i] = res

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, res := range results {
		fmt.Fprintf(stdout, "✓ Generated %s\n", filepath.Base(res.path))
	}

	if opts.report {
		printReport(stdout, results)
	}

	fmt.Fprintln(stdout, "All audio files generated successfully!")

	return nil
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var (
		opts options
		only string
	)

	fs := flag.NewFlagSet("sfxgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.out, "out", ".", "output directory")
	fs.StringVar(&opts.defs, "defs", "", "YAML effect table (default: built-in set)")
	fs.Uint64Var(&opts.seed, "seed", 0, "noise seed; 0 draws a fresh seed per run")
	fs.IntVar(&opts.jobs, "jobs", runtime.GOMAXPROCS(0), "assets rendered in parallel")
	fs.StringVar(&only, "only", "", "comma-separated asset names to render")
	fs.BoolVar(&opts.list, "list", false, "list asset names and exit")
	fs.BoolVar(&opts.report, "report", false, "print level and pitch figures per asset")
	fs.BoolVar(&opts.verify, "verify", false, "read back each written file and check it")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: sfxgen [flags]\n\n")
		fmt.Fprintf(stderr, "Renders procedural sound effects to mono 16-bit WAV files.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if opts.jobs < 1 {
		opts.jobs = 1
	}
	if only != "" {
		opts.only = strings.Split(only, ",")
	}

	return opts, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

func renderAsset(s *synth.Synthesizer, enc *pcm.Encoder, asset synth.Asset, opts options) (result, error) {
	buf, err := s.Render(asset)
	if err != nil {
		return result{}, err
	}

	res := result{
		name: asset.Name,
		path: filepath.Join(opts.out, asset.Name+".wav"),
	}

	if err := enc.WriteFile(res.path, buf); err != nil {
		return result{}, err
	}

	if opts.verify {
		if err := verifyFile(res.path, enc, buf); err != nil {
			return result{}, err
		}
	}

	if opts.report {
		if res.summary, err = summary.Summarize(buf, s.SampleRate()); err != nil {
			return result{}, fmt.Errorf("asset %q: %w", asset.Name, err)
		}
	}

	return res, nil
}

func verifyFile(path string, enc *pcm.Encoder, want []float64) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	defer f.Close()

	got, format, err := pcm.Decode(f)
	if err != nil {
		return fmt.Errorf("verify %s: %w", path, err)
	}
	if format != enc.Format() {
		return fmt.Errorf("verify %s: format %+v, want %+v", path, format, enc.Format())
	}
	if len(got) != len(want) {
		return fmt.Errorf("verify %s: %d samples, want %d", path, len(got), len(want))
	}

	// Quantization moves an in-range sample by at most half a step.
	q := enc.Quantizer()
	lo, hi := q.Value(q.Sample(math.Inf(-1))), q.Value(q.Sample(math.Inf(1)))
	tol := 1 / q.Scale()
	for i, x := range want {
		x = core.Clamp(x, lo, hi)
		if math.Abs(got[i]-x) > tol {
			return fmt.Errorf("verify %s: sample %d = %f, want %f", path, i, got[i], x)
		}
	}

	return nil
}

func printReport(w io.Writer, results []result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Asset\tDuration\tPeak dBFS\tRMS dBFS\tCrest dB\tDominant Hz\tDominant dBFS")
	for _, r := range results {
		s := r.summary
		fmt.Fprintf(tw, "%s\t%.3f s\t%.1f\t%.1f\t%.1f\t%.0f\t%.1f\n",
			r.name, s.Duration, s.PeakDB, s.RMSDB, s.CrestDB, s.DominantHz, core.LinearToDB(s.DominantLevel))
	}
	tw.Flush()
}
