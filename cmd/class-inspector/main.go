// Package main provides the CLI entrypoint for class-inspector.
//
// class-inspector reports the declared members of Go types:
//   - fields carrying a struct tag key
//   - method names, including those of asserted interfaces
//   - constructor functions with their access and parameters
//
// It can also run a YAML query file into a YAML report, generate runtime
// descriptor registrations for a package, or serve the same operations as
// MCP tools over stdio.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"maps"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/davecgh/go-spew/spew"

	"class-inspector/descriptor"
	"class-inspector/inspect"
	"class-inspector/internal/analyze"
	"class-inspector/internal/gen"
	"class-inspector/internal/mcp"
	"class-inspector/internal/query"
	"class-inspector/internal/report"
)

const usage = `class-inspector - report declared members of Go types

Usage:
  class-inspector fields  -pkg PATTERN -type TYPE -marker KEY [-dir DIR] [-dump]
  class-inspector methods -pkg PATTERN -type TYPE [-dir DIR] [-dump]
  class-inspector ctors   -pkg PATTERN -type TYPE [-dir DIR] [-dump]
  class-inspector report  -config FILE [-out FILE] [-dir DIR] [-limit N]
  class-inspector gen     -pkg PATTERN [-dir DIR] [-suffix S] [-w]
  class-inspector serve

Run 'class-inspector <command> -h' for command flags.
`

var errUsage = errors.New("invalid usage")

// dumper keeps -dump readable: go/types values reach the whole universe scope.
var dumper = spew.ConfigState{
	Indent:                  "  ",
	MaxDepth:                3,
	DisableMethods:          true,
	DisablePointerAddresses: true,
}

func main() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			log.Printf("error: %v", err)
		}

		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errUsage
	}

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "fields", "methods", "ctors":
		return runInspect(ctx, cmd, rest, stdout)
	case "report":
		return runReport(ctx, rest, stdout)
	case "gen":
		return runGen(ctx, rest, stdout)
	case "serve":
		return runServe(ctx)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		return errUsage
	}
}

func runInspect(ctx context.Context, cmd string, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	dir := fs.String("dir", "", "directory package patterns are resolved in")
	pkg := fs.String("pkg", "./...", "package pattern to load")
	typeName := fs.String("type", "", "type to inspect (village.Villager, full path or bare name)")
	marker := fs.String("marker", "", "struct tag key (fields only)")
	dump := fs.Bool("dump", false, "dump the type descriptor with spew")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *typeName == "" {
		fs.Usage()
		return fmt.Errorf("%w: -type is required", errUsage)
	}

	if cmd == "fields" && *marker == "" {
		fs.Usage()
		return fmt.Errorf("%w: -marker is required", errUsage)
	}

	analyzer := analyze.NewAnalyzer()
	analyzer.Dir = *dir

	if _, err := analyzer.LoadPackagesContext(ctx, *pkg); err != nil {
		return err
	}

	for _, w := range analyzer.Diagnostics().Warnings {
		log.Printf("warning: %s", w)
	}

	info, err := analyzer.GetType(*typeName)
	if err != nil {
		return err
	}

	if *dump {
		dumper.Fdump(stdout, info)
		return nil
	}

	in := inspect.New()

	switch cmd {
	case "fields":
		fields, err := in.AnnotatedFields(info, descriptor.MarkerKind(*marker))
		if err != nil {
			return err
		}

		printLines(stdout, fields.Sorted())

	case "methods":
		methods, err := in.AllDeclaredMethods(info)
		if err != nil {
			return err
		}

		printLines(stdout, methods.Sorted())

	case "ctors":
		for _, c := range info.Ctors {
			fmt.Fprintf(stdout, "%s\t%s\n", c.Access(), c.Signature())
		}
	}

	return nil
}

func runReport(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	config := fs.String("config", "", "YAML query file")
	out := fs.String("out", "", "write the report to this file instead of stdout")
	dir := fs.String("dir", "", "directory package patterns are resolved in")
	limit := fs.Int("limit", 0, "types inspected at once (0 means GOMAXPROCS)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *config == "" {
		fs.Usage()
		return fmt.Errorf("%w: -config is required", errUsage)
	}

	f, err := query.LoadFile(*config)
	if err != nil {
		return err
	}

	r, diags, err := report.Run(ctx, f, report.Options{Dir: *dir, Limit: *limit})
	if diags != nil {
		for _, w := range diags.Warnings {
			log.Printf("warning: %s", w)
		}
	}

	if err != nil {
		return err
	}

	if *out != "" {
		return r.WriteFile(*out)
	}

	return r.Write(stdout)
}

func runGen(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	dir := fs.String("dir", "", "directory package patterns are resolved in")
	pkg := fs.String("pkg", ".", "package pattern to generate descriptors for")
	suffix := fs.String("suffix", "", "suffix of generated variable names")
	write := fs.Bool("w", false, "write into the package directory instead of stdout")

	if err := fs.Parse(args); err != nil {
		return err
	}

	analyzer := analyze.NewAnalyzer()
	analyzer.Dir = *dir

	graph, err := analyzer.LoadPackagesContext(ctx, *pkg)
	if err != nil {
		return err
	}

	cfg := gen.DefaultGeneratorConfig()
	if *suffix != "" {
		cfg.VarSuffix = *suffix
	}

	generator := gen.NewGenerator(cfg)

	for _, path := range slices.Sorted(maps.Keys(graph.Packages)) {
		file, err := generator.Generate(graph, path)
		if err != nil {
			log.Printf("skipping %s: %v", path, err)
			continue
		}

		if !*write {
			if _, err := stdout.Write(file.Content); err != nil {
				return err
			}

			continue
		}

		written, err := gen.WriteFile(file)
		if err != nil {
			return err
		}

		log.Printf("wrote %s", written)
	}

	return nil
}

func runServe(ctx context.Context) error {
	// stdout is reserved for the MCP protocol
	log.Printf("%s v%s listening on stdio", mcp.ServerName, mcp.ServerVersion)

	err := mcp.NewServer().Serve(ctx)
	if errors.Is(err, context.Canceled) {
		log.Println("server stopped")
		return nil
	}

	return err
}

func printLines(w io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}
