// diff runs the implementations used for benchmarking on two inputs and prints their output.
//
// Usage:
//
//	diff [-lib name] <x> <y>
//	diff [-lib name] -txtar <file>
//	diff -list
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"

	"golang.org/x/tools/txtar"
	"znkr.io/syntaxdiff/internal/benchmarks"
)

var (
	lib     = flag.String("lib", "syntaxdiff", "implementation to use, \"all\" runs every implementation")
	archive = flag.String("txtar", "", "read x and y from a txtar file instead of two input files")
	list    = flag.Bool("list", false, "list all implementations and exit")
)

func main() {
	flag.Parse()
	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if *list {
		for _, impl := range benchmarks.Impls {
			fmt.Println(impl.Name)
		}
		return nil
	}

	x, y, err := inputs(args)
	if err != nil {
		return err
	}

	impls := benchmarks.Impls
	if *lib != "all" {
		i := slices.IndexFunc(impls, func(impl benchmarks.Impl) bool { return impl.Name == *lib })
		if i < 0 {
			return fmt.Errorf("unknown implementation %q, use -list to see all", *lib)
		}
		impls = impls[i : i+1]
	}
	for _, impl := range impls {
		if len(impls) > 1 {
			fmt.Printf("=== %s\n", impl.Name)
		}
		os.Stdout.Write(impl.Diff(x, y))
	}
	return nil
}

func inputs(args []string) (x, y []byte, err error) {
	if *archive != "" {
		if len(args) != 0 {
			return nil, nil, errors.New("usage: diff -txtar <file>")
		}
		ar, err := txtar.ParseFile(*archive)
		if err != nil {
			return nil, nil, err
		}
		for _, f := range ar.Files {
			switch f.Name {
			case "x":
				x = f.Data
			case "y":
				y = f.Data
			}
		}
		return x, y, nil
	}

	if len(args) != 2 {
		return nil, nil, errors.New("usage: diff <x> <y>")
	}
	if x, err = os.ReadFile(args[0]); err != nil {
		return nil, nil, err
	}
	if y, err = os.ReadFile(args[1]); err != nil {
		return nil, nil, err
	}
	return x, y, nil
}
