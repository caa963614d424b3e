// Command fastxdr compiles an XDR (RFC 4506) interface definition into Go
// type declarations with Decode, Encode and WireSize methods.
//
// Usage:
//
//	fastxdr [flags] input.x
//
// Flags:
//
//	-o file       output file (default stdout)
//	-pkg name     package clause for the generated file
//	-prologue s   line emitted above each type declaration
//	-config file  YAML file supplying the options above
//	-dump-ast     print the AST as JSON and exit
//	-quiet        suppress progress output
//
// Flags override values read from the config file.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/fastxdr/fastxdr"
	"github.com/fastxdr/fastxdr/ast"
	"github.com/fastxdr/fastxdr/parse"
)

type config struct {
	Output   string `yaml:"output"`
	Package  string `yaml:"package"`
	Prologue string `yaml:"prologue"`
}

var quiet bool

func logf(format string, args ...interface{}) {
	if !quiet {
		log.Printf(format, args...)
	}
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("fastxdr: ")

	var (
		output     = flag.String("o", "", "output file (default stdout)")
		pkg        = flag.String("pkg", "", "package clause for the generated file")
		prologue   = flag.String("prologue", "", "line emitted above each type declaration")
		configPath = flag.String("config", "", "YAML config file")
		dumpAST    = flag.Bool("dump-ast", false, "print the AST as JSON and exit")
	)
	flag.BoolVar(&quiet, "quiet", false, "suppress progress output")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("usage: fastxdr [flags] input.x")
	}
	input := flag.Arg(0)

	cfg := config{Package: fastxdr.DefaultPackage}
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			log.Fatalf("read config: %v", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("parse config %s: %v", *configPath, err)
		}
		if cfg.Package == "" {
			cfg.Package = fastxdr.DefaultPackage
		}
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *pkg != "" {
		cfg.Package = *pkg
	}
	if *prologue != "" {
		cfg.Prologue = *prologue
	}

	idl, err := os.ReadFile(input)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}

	if *dumpAST {
		if err := dump(string(idl)); err != nil {
			log.Fatalf("dump AST: %v", err)
		}
		return
	}

	logf("compiling %s", input)
	g := fastxdr.New(
		fastxdr.WithPackage(cfg.Package),
		fastxdr.WithPrologue(cfg.Prologue),
	)
	src, err := g.Generate(string(idl))
	if err != nil {
		log.Fatalf("%s: %v", input, err)
	}

	if cfg.Output == "" {
		fmt.Print(src)
		return
	}
	if err := os.WriteFile(cfg.Output, []byte(src), 0o644); err != nil {
		log.Fatalf("write output: %v", err)
	}
	logf("wrote %s (package %s)", cfg.Output, cfg.Package)
}

// dump prints the lowered declarations as indented JSON for debugging
// definitions that generate surprising code.
func dump(idl string) error {
	root, err := parse.Parse(idl)
	if err != nil {
		return err
	}
	a, err := ast.New(ast.Build(root))
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(a.Decls, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
