// attrcfg - attribute configuration tool
//
// Usage:
//
//	attrcfg fmt [file]               Parse a config and re-emit canonical text
//	attrcfg to-json [file]           Convert config text to JSON
//	attrcfg from-json [file]         Convert JSON to config text
//	attrcfg to-yaml [file]           Convert config text to YAML
//	attrcfg from-yaml [file]         Convert YAML to config text
//	attrcfg sort --key N [file]      Sort the top-level list by nested field N
//	attrcfg repl                     Interactive prompt
//	attrcfg version                  Print version info
//
// Options:
//
//	--service NAME   Register a stub service (repeatable) so configs with
//	                 {'Type':'IService','ModuleName':NAME} references parse
//	-o FILE          Write output to FILE instead of stdout
//
// Files ending in .zst are read and written zstd-compressed. If no file is
// given, input is read from stdin.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/klauspost/compress/zstd"
	"github.com/peterh/liner"

	"github.com/PMLSRANDD/riscv-vhdl/attr"
)

const version = "1.0.0"

const historyFile = ".attrcfg_history"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	reg := attr.NewMapRegistry()

	// Parse flags and the optional file argument.
	keyIdx := 0
	inFile := ""
	outFile := ""
	args := os.Args[2:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--service":
			i++
			if i >= len(args) {
				fatal("--service requires a name")
			}
			if err := reg.Register(attr.StubService{Name: args[i]}); err != nil {
				fatal("%v", err)
			}
		case "--key":
			i++
			if i >= len(args) {
				fatal("--key requires an index")
			}
			n, err := strconv.Atoi(args[i])
			if err != nil {
				fatal("--key: %v", err)
			}
			keyIdx = n
		case "-o":
			i++
			if i >= len(args) {
				fatal("-o requires a file")
			}
			outFile = args[i]
		default:
			if strings.HasPrefix(args[i], "-") {
				fatal("unknown option: %s", args[i])
			}
			inFile = args[i]
		}
	}

	switch cmd {
	case "fmt":
		v := parseInput(inFile, reg)
		emit(outFile, attr.Encode(v))

	case "to-json":
		v := parseInput(inFile, reg)
		b, err := attr.ToJSON(v)
		if err != nil {
			fatal("%v", err)
		}
		emit(outFile, string(b))

	case "from-json":
		v, err := attr.FromJSON(readInput(inFile), attr.BridgeOptions{Registry: reg})
		if err != nil {
			fatal("%v", err)
		}
		emit(outFile, attr.Encode(v))

	case "to-yaml":
		v := parseInput(inFile, reg)
		b, err := attr.ToYAML(v)
		if err != nil {
			fatal("%v", err)
		}
		emit(outFile, string(b))

	case "from-yaml":
		v, err := attr.FromYAML(readInput(inFile), attr.BridgeOptions{Registry: reg})
		if err != nil {
			fatal("%v", err)
		}
		emit(outFile, attr.Encode(v))

	case "sort":
		v := parseInput(inFile, reg)
		if err := v.Sort(keyIdx); err != nil {
			fatal("%v", err)
		}
		emit(outFile, attr.Encode(v))

	case "repl":
		os.Exit(cmdRepl(reg))

	case "version":
		fmt.Printf("attrcfg %s\n", version)

	default:
		fmt.Fprintf(os.Stderr, "attrcfg: unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func parseInput(path string, reg attr.Registry) *attr.Value {
	v, err := attr.ParseWithOptions(string(readInput(path)), attr.ParseOptions{Registry: reg})
	if err != nil {
		fatal("%v", err)
	}
	return v
}

// readInput reads a file, stdin when path is empty or "-", decompressing
// .zst transparently.
func readInput(path string) []byte {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			fatal("open: %v", err)
		}
		defer f.Close()
		r = f
	}
	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(r)
		if err != nil {
			fatal("zstd: %v", err)
		}
		defer zr.Close()
		r = zr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		fatal("read: %v", err)
	}
	return b
}

// emit writes text to stdout or -o FILE, compressing when FILE ends in .zst.
func emit(path, text string) {
	if path == "" {
		fmt.Println(text)
		return
	}
	f, err := os.Create(path)
	if err != nil {
		fatal("create: %v", err)
	}
	defer f.Close()
	var w io.Writer = f
	if strings.HasSuffix(path, ".zst") {
		zw, err := zstd.NewWriter(f)
		if err != nil {
			fatal("zstd: %v", err)
		}
		defer zw.Close()
		w = zw
	}
	if _, err := io.WriteString(w, text+"\n"); err != nil {
		fatal("write: %v", err)
	}
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(reg attr.Registry) int {
	fmt.Printf("attrcfg %s — enter config text, :json/:yaml/:text to switch output, :quit to exit\n", version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	mode := "text"
	for {
		line, err := ln.Prompt("attr> ")
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if err != nil {
			continue
		}
		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, ":") {
			switch input {
			case ":quit", ":q":
				return 0
			case ":json", ":yaml", ":text":
				mode = input[1:]
			default:
				fmt.Println("commands: :json :yaml :text :quit")
			}
			continue
		}

		v, err := attr.ParseWithOptions(input, attr.ParseOptions{Registry: reg})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}

		switch mode {
		case "json":
			b, err := attr.ToJSON(v)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			fmt.Println(string(b))
		case "yaml":
			b, err := attr.ToYAML(v)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			fmt.Print(string(b))
		default:
			fmt.Println(attr.Encode(v))
		}
		ln.AppendHistory(input)
	}
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "attrcfg: "+format+"\n", args...)
	os.Exit(1)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage: attrcfg <command> [options] [file]

commands:
  fmt         parse a config and re-emit canonical text
  to-json     convert config text to JSON
  from-json   convert JSON to config text
  to-yaml     convert config text to YAML
  from-yaml   convert YAML to config text
  sort        sort the top-level list (--key N for nested field)
  repl        interactive prompt
  version     print version info

options:
  --service NAME   register a stub service (repeatable)
  --key N          sort key index for container elements
  -o FILE          write output to FILE (.zst compresses)`)
}
