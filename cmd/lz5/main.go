// lz5 compresses, decompresses and inspects raw LZ5 streams.
//
// Usage:
//
//	lz5 compress [--search-limit N] [--min-gain N] [--no-inverted] IN OUT
//	lz5 decompress [--offset N] [--max-output N] IN OUT
//	lz5 dump [--offset N] IN
//	lz5 stat IN
//
// Offsets accept decimal or 0x-prefixed hex, so a blob can be pulled
// straight out of a ROM image.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/woozymasta/lz5"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	err := runCommand(args, stdout, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		// pflag has already printed the command's flags.
		return nil
	}

	return err
}

func runCommand(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return errors.New("missing command")
	}

	command, rest := args[0], args[1:]
	flagSet := pflag.NewFlagSet("lz5 "+command, pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	verbose := flagSet.BoolP("verbose", "v", false, "log debug details")

	switch command {
	case "compress":
		opts := lz5.DefaultCompressOptions()
		flagSet.IntVar(&opts.SearchLimit, "search-limit", opts.SearchLimit, "max backward distance searched for repeats (0 = fills only)")
		flagSet.IntVar(&opts.MinGain, "min-gain", opts.MinGain, "bytes an instruction must save over a direct copy")
		noInverted := flagSet.Bool("no-inverted", false, "do not emit XOR 0xFF repeats")
		paths, err := parseArgs(flagSet, rest, 2)
		if err != nil {
			return err
		}
		opts.Inverted = !*noInverted
		return runCompress(newLogger(stderr, *verbose), paths[0], paths[1], opts)

	case "decompress":
		offset := flagSet.String("offset", "0", "byte offset of the stream inside IN")
		maxOutput := flagSet.Int("max-output", 0, "fail if the decoded size would exceed this (0 = no limit)")
		paths, err := parseArgs(flagSet, rest, 2)
		if err != nil {
			return err
		}
		start, err := parseOffset(*offset)
		if err != nil {
			return err
		}
		if *maxOutput < 0 {
			return fmt.Errorf("invalid --max-output %d: must be non-negative", *maxOutput)
		}
		return runDecompress(newLogger(stderr, *verbose), paths[0], paths[1], start, &lz5.Options{MaxOutputLen: *maxOutput})

	case "dump":
		offset := flagSet.String("offset", "0", "byte offset of the stream inside IN")
		paths, err := parseArgs(flagSet, rest, 1)
		if err != nil {
			return err
		}
		start, err := parseOffset(*offset)
		if err != nil {
			return err
		}
		return runDump(stdout, paths[0], start)

	case "stat":
		paths, err := parseArgs(flagSet, rest, 1)
		if err != nil {
			return err
		}
		return runStat(newLogger(stderr, *verbose), stdout, paths[0])

	case "help", "-h", "--help":
		printUsage(stdout)
		return nil

	default:
		printUsage(stderr)
		return fmt.Errorf("unknown command %q", command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `lz5: LZ5 (Super Metroid) compression tool

Usage:
  lz5 compress [--search-limit N] [--min-gain N] [--no-inverted] IN OUT
  lz5 decompress [--offset N] [--max-output N] IN OUT
  lz5 dump [--offset N] IN
  lz5 stat IN

All commands accept -v/--verbose.
`)
}

// parseArgs parses flags and checks the number of positional arguments.
func parseArgs(flagSet *pflag.FlagSet, args []string, want int) ([]string, error) {
	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}
	if flagSet.NArg() != want {
		return nil, fmt.Errorf("%s: expected %d argument(s), got %d", flagSet.Name(), want, flagSet.NArg())
	}

	return flagSet.Args(), nil
}

// parseOffset accepts decimal, 0x-prefixed hex or 0-prefixed octal.
func parseOffset(value string) (int64, error) {
	offset, err := strconv.ParseInt(value, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q: %w", value, err)
	}
	if offset < 0 {
		return 0, fmt.Errorf("invalid offset %q: must be non-negative", value)
	}

	return offset, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runCompress(logger *slog.Logger, inPath, outPath string, opts *lz5.CompressOptions) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	logger.Debug("compressing", "input", inPath, "size", len(data), "search_limit", opts.SearchLimit, "min_gain", opts.MinGain)
	encoded := lz5.Compress(data, opts)

	if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.Info("compressed", "output", outPath, "input_size", len(data), "output_size", len(encoded))
	return nil
}

func runDecompress(logger *slog.Logger, inPath, outPath string, offset int64, opts *lz5.Options) error {
	file, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if offset >= info.Size() {
		return fmt.Errorf("offset 0x%x is past end of %s (%d bytes)", offset, inPath, info.Size())
	}

	// consumed counts bytes handed out by the buffer, not bytes it read ahead.
	section := bufio.NewReader(io.NewSectionReader(file, offset, info.Size()-offset))
	decoded, consumed, err := lz5.DecompressFromReader(section, opts)
	if err != nil {
		return fmt.Errorf("decompress %s at 0x%x (after %d bytes): %w", inPath, offset, consumed, err)
	}

	if err := os.WriteFile(outPath, decoded, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.Info("decompressed", "output", outPath, "offset", offset, "consumed", consumed, "output_size", len(decoded))
	return nil
}

func runDump(w io.Writer, inPath string, offset int64) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if offset >= int64(len(data)) {
		return fmt.Errorf("offset 0x%x is past end of %s (%d bytes)", offset, inPath, len(data))
	}

	instructions, consumed, err := lz5.Parse(data[offset:])
	if err != nil {
		return fmt.Errorf("parse %s at 0x%x (after %d bytes): %w", inPath, offset, consumed, err)
	}

	produced := 0
	for i, in := range instructions {
		fmt.Fprintf(w, "%5d  out=%06x  %s\n", i, produced, in)
		produced += in.Length
	}
	fmt.Fprintf(w, "end at 0x%x: %d instructions, %d bytes in, %d bytes out\n", offset+int64(consumed), len(instructions), consumed, produced)

	return nil
}
