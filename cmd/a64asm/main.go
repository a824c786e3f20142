// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/ezrec/a64asm/a64"
	"github.com/ezrec/a64asm/translate"
)

func main() {
	var output string
	var listing bool
	var origin uint64
	var language string
	var verbose bool

	parser := &a64.Parser{}

	flag.StringVar(&output, "o", "", "Binary output file")
	flag.BoolVar(&listing, "x", false, "Print a hex listing")
	flag.Uint64Var(&origin, "origin", 0, "Absolute address of the first word")
	flag.StringVar(&language, "lang", "", "Message language, e.g. en-US")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Func("D", "Predefine an equate, NAME=VALUE", func(arg string) error {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			value = "1"
		}
		parser.Predefine(name, value)
		return nil
	})

	flag.Parse()

	if len(language) != 0 {
		translate.SetLanguage(language)
	}

	var input io.Reader = os.Stdin
	source := "-"
	switch flag.NArg() {
	case 0:
	case 1:
		source = flag.Arg(0)
		if source != "-" {
			inf, err := os.Open(source)
			if err != nil {
				log.Fatalf("%v: %v", source, err)
			}
			defer inf.Close()
			input = inf
		}
	default:
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args()[1:])
	}

	parser.Origin = origin
	parser.Verbose = verbose

	prog, err := parser.Parse(input)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	if listing {
		out := bufio.NewWriter(os.Stdout)
		for _, st := range prog.Statements {
			for n, code := range st.Codes {
				text := ""
				if n == 0 {
					text = strings.Join(st.Words, " ")
				}
				fmt.Fprintf(out, "%08x: %08x %4d  %v\n", prog.Origin+uint64(st.Offset+4*n), code, st.LineNo, text)
			}
		}
		out.Flush()
	}

	if len(output) != 0 {
		err = os.WriteFile(output, prog.Binary(), 0o644)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
	}
}
