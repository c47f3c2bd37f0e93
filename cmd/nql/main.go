// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ezrec/nql/dsl"
	"github.com/ezrec/nql/machine"
	"github.com/ezrec/nql/nql"
)

func main() {
	var printAST bool
	var printTM bool
	var printSubs bool
	var runTM bool
	var noCompress bool
	var noCFG bool
	var adder bool
	var limit int
	var verbose bool

	flag.BoolVar(&printAST, "print-ast", false, "Print the parsed program tree")
	flag.BoolVar(&printTM, "print-tm", false, "Print the machine transition table")
	flag.BoolVar(&printSubs, "print-subs", false, "Print the subprogram layout")
	flag.BoolVar(&runTM, "run-tm", false, "Run the machine and print the registers")
	flag.BoolVar(&noCompress, "no-compress", false, "Skip state table compression")
	flag.BoolVar(&noCFG, "no-cfg", false, "Disable goto threading")
	flag.BoolVar(&adder, "adder", false, "Resolve branches with relative adders")
	flag.IntVar(&limit, "limit", 100_000_000, "Simulation step limit")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: expected one program file, got: %v", os.Args[0], flag.Args())
	}
	path := flag.Arg(0)

	var prog *nql.Program
	var err error
	if strings.HasSuffix(path, ".star") {
		prog, err = dsl.Load(path, nil)
	} else {
		var src []byte
		src, err = os.ReadFile(path)
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}
		prog, err = nql.Parse(string(src))
	}
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	if !printAST && !printTM && !printSubs {
		runTM = true
	}

	if printAST {
		prog.Dump(os.Stdout)
	}

	m, err := machine.New(prog.Compile, &machine.Options{
		BranchAdder: adder,
		NoCFGOpt:    noCFG,
		Verbose:     verbose,
	})
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	if !noCompress {
		err = m.Compress()
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}
	}

	if verbose {
		states, serr := m.States()
		if serr != nil {
			log.Fatalf("%v: %v", path, serr)
		}
		log.Printf("%v: %v counter bits, %v states", path, m.PCBits, states)
	}

	if printSubs {
		err = m.PrintSubs(os.Stdout)
		if err != nil {
			log.Fatal(err)
		}
	}

	if printTM {
		err = m.Print(os.Stdout)
		if err != nil {
			log.Fatal(err)
		}
	}

	if runTM {
		s := m.Simulator()
		halted, err := s.Run(limit)
		if err != nil {
			log.Fatal(err)
		}
		if !halted {
			log.Fatalf("%v: still running after %v steps", path, s.Steps)
		}
		fmt.Printf("%v steps\n", s.Steps)
		fmt.Println(m.DumpRegisters(s))
	}
}
