package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/OFFIS-RIT/chatlens/internal/config"
	"github.com/OFFIS-RIT/chatlens/internal/util"
	"github.com/OFFIS-RIT/chatlens/pkg/analysis"
	"github.com/OFFIS-RIT/chatlens/pkg/loader"
	ioloader "github.com/OFFIS-RIT/chatlens/pkg/loader/io"
	"github.com/OFFIS-RIT/chatlens/pkg/logger"
	"github.com/OFFIS-RIT/chatlens/pkg/logger/console"
	"github.com/OFFIS-RIT/chatlens/pkg/report"
	"github.com/OFFIS-RIT/chatlens/pkg/sample"

	"github.com/dustin/go-humanize"
)

const version = "0.1.0"

func main() {
	util.LoadEnv()
	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: util.GetEnvBool("DEBUG", false),
		JSON:  util.GetEnv("LOG_FORMAT") == "json",
	}))

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}

	var err error
	switch os.Args[1] {
	case "analyze":
		err = runAnalyze(os.Args[2:], os.Stdout)
	case "sample":
		err = runSample(os.Args[2:], os.Stdout)
	case "version", "--version", "-v":
		fmt.Printf("chatlens %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseInterspersed allows the positional argument before or after flags.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		return nil, nil
	}
	positional := rest[:1]
	if err := fs.Parse(rest[1:]); err != nil {
		return nil, err
	}
	return append(positional, fs.Args()...), nil
}

func runAnalyze(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	k := fs.Int("k", util.GetEnvInt("ANALYSIS_K", analysis.DefaultK), "number of clusters (2-20)")
	seed := fs.Int64("seed", int64(util.GetEnvInt("ANALYSIS_SEED", analysis.DefaultSeed)), "clustering seed")
	namesPath := fs.String("names", util.GetEnv("CLUSTER_NAMES_FILE"), "cluster names file (.yaml, .yml or .toml)")
	csvPath := fs.String("csv", "", "write the author table as CSV")
	pdfPath := fs.String("pdf", "", "write a PDF report")
	title := fs.String("title", report.DefaultTitle, "PDF report title")
	asJSON := fs.Bool("json", false, "print the result as JSON instead of tables")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("usage: chatlens analyze <file> [-k 5] [-seed 42] [-names names.yaml] [-csv out.csv] [-pdf out.pdf] [-json]")
	}

	opts := analysis.Options{K: *k, Seed: *seed}
	if *namesPath != "" {
		names, err := config.LoadClusterNames(*namesPath)
		if err != nil {
			return fmt.Errorf("loading cluster names: %w", err)
		}
		opts.ClusterNames = names
	}

	file := loader.TranscriptFile{ID: "cli", Path: positional[0], Loader: ioloader.NewIOTranscriptLoader()}
	raw, err := file.Load(context.Background())
	if err != nil {
		return err
	}

	res, err := analysis.AnalyzeBytes(raw, opts)
	if err != nil {
		return err
	}

	if *csvPath != "" {
		if err := writeFile(*csvPath, func(w io.Writer) error { return report.WriteCSV(w, res) }); err != nil {
			return err
		}
	}
	if *pdfPath != "" {
		if err := writeFile(*pdfPath, func(w io.Writer) error { return report.WritePDF(w, res, *title) }); err != nil {
			return err
		}
	}

	if *asJSON {
		return report.WriteJSON(stdout, res)
	}

	fmt.Fprintf(stdout, "%s of %s, %s messages from %s authors\n\n",
		positional[0], humanize.Bytes(uint64(len(raw))),
		humanize.Comma(int64(res.Stats.Messages)), humanize.Comma(int64(res.Stats.Authors)))
	fmt.Fprintln(stdout, renderAuthors(res))
	fmt.Fprintln(stdout, renderClusters(res))
	fmt.Fprintln(stdout, renderStats(res))
	for _, out := range []string{*csvPath, *pdfPath} {
		if out != "" {
			fmt.Fprintf(stdout, "Wrote %s\n", out)
		}
	}
	return nil
}

func runSample(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("sample", flag.ContinueOnError)
	out := fs.String("o", "sample_chat.txt", "output file, - for stdout")
	messages := fs.Int("messages", 550, "number of messages")
	users := fs.Int("users", 0, "number of participants (0 picks 10-15)")
	seed := fs.Uint64("seed", uint64(time.Now().UnixNano()), "random seed")
	if err := fs.Parse(args); err != nil {
		return err
	}

	chat := sample.Generate(sample.Options{Messages: *messages, Users: *users, Seed: *seed})
	if *out == "-" {
		_, err := io.WriteString(stdout, chat)
		return err
	}
	if err := os.WriteFile(*out, []byte(chat), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s messages to %s\n", humanize.Comma(int64(*messages)), *out)
	return nil
}

func writeFile(path string, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func printUsage() {
	fmt.Printf(`chatlens %s - behaviour analysis for group chat exports

Usage:
  chatlens <command> [arguments]

Commands:
  analyze <file>      Cluster the authors of a chat export and print their profiles
  sample              Write a synthetic chat export
  version             Print version

Run 'chatlens <command> -h' for the flags of a command.
`, version)
}
