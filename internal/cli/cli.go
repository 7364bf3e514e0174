// Package cli implements the nativedb command line.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/saffronjam/nativedb/internal/browse"
	"github.com/saffronjam/nativedb/internal/common"
	"github.com/saffronjam/nativedb/internal/fetch"
	"github.com/saffronjam/nativedb/internal/generator"
	"github.com/saffronjam/nativedb/internal/parser"
	"github.com/saffronjam/nativedb/internal/schema"
	"github.com/saffronjam/nativedb/internal/server"
)

var (
	ErrUsage          = errors.New("nativedb: invalid usage")
	ErrNotFound       = errors.New("nativedb: native not found")
	ErrSyntaxProblems = errors.New("nativedb: generated header has syntax problems")
)

// allNamespaces passed to --ns selects every namespace.
const allNamespaces = "all"

type env struct {
	stdout io.Writer
	stderr io.Writer
	logger common.Logger
	cfg    *common.Config
}

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, e *env, args []string) error
}

var commands = []command{
	{"games", "list the configured native databases", runGames},
	{"parse", "parse a database and print the normalized catalog as JSON", runParse},
	{"generate", "generate a C++ header from a database", runGenerate},
	{"search", "search natives by name, hash, return or parameter type", runSearch},
	{"lookup", "find a native by hash and print call snippets", runLookup},
	{"joaat", "print the joaat hash of each argument", runJoaat},
	{"convert", "show a 32-bit number in every notation", runConvert},
	{"schema", "print the JSON schema of the catalog export", runSchema},
	{"serve", "serve the HTTP API", runServe},
}

// Execute runs the command line given by args.
func Execute(stdout io.Writer, stderr io.Writer, args []string) error {
	fs := flag.NewFlagSet("nativedb", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file (default "+common.DefaultConfigPath+" when present)")
	fs.Usage = func() { usage(fs) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("%w: missing command", ErrUsage)
	}

	logger := common.WrapLogger(log.New(stderr, "nativedb: ", 0))
	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv(logger)

	e := &env{stdout: stdout, stderr: stderr, logger: logger, cfg: cfg}
	name := fs.Arg(0)
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd.run(context.Background(), e, fs.Args()[1:])
		}
	}
	fs.Usage()
	return fmt.Errorf("%w: unknown command %q", ErrUsage, name)
}

func usage(fs *flag.FlagSet) {
	out := fs.Output()
	fmt.Fprintln(out, "usage: nativedb [--config file] <command> [flags]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "commands:")
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, cmd := range commands {
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.name, cmd.summary)
	}
	tw.Flush()
	fmt.Fprintln(out)
	fs.PrintDefaults()
}

func newFlagSet(e *env, name string) *flag.FlagSet {
	fs := flag.NewFlagSet("nativedb "+name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// source selects where a command reads its catalog from.
type source struct {
	in         string
	game       string
	format     string
	braceDepth bool
}

func (s *source) register(fs *flag.FlagSet) {
	fs.StringVar(&s.in, "in", "", "read the database from this file")
	fs.StringVar(&s.game, "game", "", "fetch the database of this game id")
	fs.StringVar(&s.format, "format", "", "database format for --in: json, header or cpp_class (default by extension)")
	fs.BoolVar(&s.braceDepth, "brace-depth", false, "track real brace depth when parsing header databases")
}

// name identifies the source in output file names.
func (s *source) name() string {
	if s.game != "" {
		return s.game
	}
	return strings.TrimSuffix(filepath.Base(s.in), filepath.Ext(s.in))
}

func (s *source) load(ctx context.Context, e *env) (*common.Catalog, error) {
	switch {
	case s.in != "":
		return s.loadFile(e)
	case s.game != "":
		return fetch.NewLoader(e.cfg, e.logger).Load(ctx, s.game)
	default:
		return nil, fmt.Errorf("%w: one of --in or --game is required", ErrUsage)
	}
}

func (s *source) loadFile(e *env) (*common.Catalog, error) {
	format, err := s.resolveFormat(e.cfg)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.in)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.in, err)
	}

	p, ok := parser.DefaultRegistry().Lookup(format)
	if format == common.FormatHeader && s.braceDepth {
		p, ok = parser.NewHeaderParser(parser.HeaderOptions{TrackBraceDepth: true}), true
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", parser.ErrUnknownFormat, format)
	}

	cat, stats, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.in, err)
	}
	e.logger.Printf("parsed %s: %d natives in %d namespaces", s.in, stats.Entries, len(cat.Namespaces))
	if dropped := stats.Skipped + stats.Unresolved; dropped > 0 {
		e.logger.Printf("parsed %s: dropped %d records", s.in, dropped)
	}
	return cat, nil
}

func (s *source) resolveFormat(cfg *common.Config) (common.Format, error) {
	if s.format != "" {
		return common.ParseFormat(s.format)
	}
	if s.game != "" {
		game, err := cfg.Game(s.game)
		if err != nil {
			return "", err
		}
		return game.Format, nil
	}
	switch strings.ToLower(filepath.Ext(s.in)) {
	case ".h", ".hpp":
		return common.FormatHeader, nil
	case ".ixx":
		return common.FormatEnumClass, nil
	default:
		return common.FormatJSON, nil
	}
}

func runGames(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "games")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tFORMAT\tURL")
	for _, g := range e.cfg.Games {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", g.ID, g.Name, g.Format, g.URL)
	}
	return tw.Flush()
}

func runParse(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "parse")
	var src source
	src.register(fs)
	out := fs.String("out", "", "write the catalog to this file instead of stdout")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	cat, err := src.load(ctx, e)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	data = append(data, '\n')
	return writeOutput(e, *out, data)
}

func runGenerate(ctx context.Context, e *env, args []string) error {
	defaults := e.cfg.GenerationOptions()

	fs := newFlagSet(e, "generate")
	var src source
	src.register(fs)
	namespaces := fs.String("ns", "", "comma separated namespaces to emit, or "+allNamespaces)
	vectorize := fs.Bool("vectorize", defaults.Vectorize, "collapse x/y/z parameter triples into Vector3")
	naming := fs.String("naming", string(defaults.NamingConvention), "function naming: default, camelCase, PascalCase, snake_case or lowercase")
	invoke := fs.String("invoke", defaults.InvokeToken, "name of the invoke helper")
	product := fs.String("product", defaults.Product, "product name printed in the banner")
	sanitize := fs.Bool("sanitize", defaults.SanitizeIdentifiers, "rename identifiers that are not valid C++")
	verify := fs.Bool("verify", false, "check the generated header parses as C++")
	out := fs.String("out", "", "output path, - for stdout (default <outputDir>/natives_<game>.hpp)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	convention, err := common.ParseNamingConvention(*naming)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	cat, err := src.load(ctx, e)
	if err != nil {
		return err
	}

	opts := common.GenerationOptions{
		SelectedNamespaces:  splitList(*namespaces),
		Vectorize:           *vectorize,
		NamingConvention:    convention,
		InvokeToken:         *invoke,
		Product:             *product,
		SanitizeIdentifiers: *sanitize,
	}
	if len(opts.SelectedNamespaces) == 1 && strings.EqualFold(opts.SelectedNamespaces[0], allNamespaces) {
		opts.SelectedNamespaces = generator.SelectAll(cat)
	}

	data, err := generator.New(opts).Generate(cat)
	if err != nil {
		return err
	}

	if *verify {
		issues, err := generator.Verify(ctx, data)
		if err != nil {
			return err
		}
		for _, issue := range issues {
			e.logger.Printf("verify: %s", issue)
		}
		if len(issues) > 0 {
			return fmt.Errorf("%w: %d issues", ErrSyntaxProblems, len(issues))
		}
	}

	path := *out
	if path == "" {
		path = filepath.Join(e.cfg.OutputDir, generator.FileName(src.name()))
	}
	if err := writeOutput(e, path, data); err != nil {
		return err
	}
	if path != "-" {
		e.logger.Printf("wrote %s (%d namespaces)", path, len(opts.SelectedNamespaces))
	}
	return nil
}

func runSearch(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "search")
	var src source
	src.register(fs)
	var q browse.Query
	fs.StringVar(&q.Text, "q", "", "substring of the name or hash")
	fs.StringVar(&q.Namespace, "ns", "", "restrict to this namespace")
	fs.StringVar(&q.ReturnType, "returns", "", "substring of the return type")
	fs.StringVar(&q.ParamType, "param", "", "substring of any parameter type")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	cat, err := src.load(ctx, e)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	for _, m := range browse.Search(cat, q) {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Namespace, m.Entry.Hash, browse.Snippet(browse.LangCpp, m.Entry))
	}
	return tw.Flush()
}

func runLookup(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "lookup")
	var src source
	src.register(fs)
	lang := fs.String("lang", "", "snippet language: cpp, csharp, lua, javascript or go (default all)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: lookup takes exactly one hash", ErrUsage)
	}

	languages := browse.Languages()
	if *lang != "" {
		l, err := browse.ParseLanguage(*lang)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		languages = []browse.Language{l}
	}

	cat, err := src.load(ctx, e)
	if err != nil {
		return err
	}
	match, found := browse.FindByHash(cat, fs.Arg(0))
	if !found {
		return fmt.Errorf("%w: %s", ErrNotFound, fs.Arg(0))
	}

	fmt.Fprintf(e.stdout, "%s::%s %s\n", match.Namespace, match.Entry.Name, match.Entry.Hash)
	if match.Entry.Comment != "" {
		fmt.Fprintf(e.stdout, "%s\n", match.Entry.Comment)
	}
	for _, l := range languages {
		fmt.Fprintf(e.stdout, "\n[%s]\n%s\n", l, browse.Snippet(l, match.Entry))
	}
	return nil
}

func runJoaat(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "joaat")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: joaat needs at least one key", ErrUsage)
	}
	for _, key := range fs.Args() {
		fmt.Fprintf(e.stdout, "%s\t%s\n", key, browse.FormatHash32(browse.Joaat(key)))
	}
	return nil
}

func runConvert(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "convert")
	base := fs.String("base", string(browse.BaseHex), "notation of the input: s32, u32, hex or bin")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: convert takes exactly one value", ErrUsage)
	}

	forms, err := browse.ConvertNumber(browse.NumberBase(strings.ToLower(*base)), fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "s32\t%d\nu32\t%d\nhex\t%s\nbin\t%s\n", forms.Signed, forms.Unsigned, forms.Hex, forms.Binary)
	return nil
}

func runSchema(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "schema")
	out := fs.String("out", "", "write the schema to this file instead of stdout")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	data, err := schema.Marshal()
	if err != nil {
		return err
	}
	return writeOutput(e, *out, data)
}

func runServe(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet(e, "serve")
	addr := fs.String("addr", e.cfg.Server.Addr, "listen address")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(fetch.NewLoader(e.cfg, e.logger), server.Config{
		Games:          e.cfg.Games,
		Defaults:       e.cfg.GenerationOptions(),
		LookupDebounce: e.cfg.Server.LookupDebounce,
		Logger:         e.logger,
	})
	return server.Run(ctx, *addr, srv.Handler(), e.logger)
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
func writeOutput(e *env, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := e.stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	sort.Strings(out)
	return out
}
