package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/suparena/dynblocks"
	"github.com/suparena/dynblocks/docstore/file"
	"github.com/suparena/dynblocks/host/sim"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	storeFlag   = flag.String("store", "", "Path to a dynblocks YAML store file to inspect")
)

func main() {
	// Parse flags early to catch version flag
	flag.Parse()

	// Handle version flag
	if *versionFlag || *vFlag {
		info := dynblocks.GetVersionInfo()
		fmt.Printf("dynblocks version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if *storeFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: dynblocks -store <file> | -version")
		os.Exit(2)
	}

	if err := inspect(*storeFlag); err != nil {
		fmt.Fprintf(os.Stderr, "dynblocks: %v\n", err)
		os.Exit(1)
	}
}

// inspect prints the families and instances recorded in a store file.
func inspect(path string) error {
	ctx := context.Background()

	reg, err := dynblocks.New(ctx, file.New(path), sim.New())
	if err != nil {
		return err
	}

	families := reg.Families()
	if len(families) == 0 {
		fmt.Println("No families registered.")
		return nil
	}

	for _, fam := range families {
		fmt.Printf("Family %s (%s)\n", fam.Name, fam.Kind)
		for _, spec := range fam.Schema {
			fmt.Printf("  param %s (default %g)\n", spec.Name, spec.Default)
		}
		fmt.Printf("  definitions: %d\n", reg.DefinitionCount(fam.Name))

		instances, err := reg.Instances(fam.Name)
		if err != nil {
			return err
		}
		for _, inst := range instances {
			fmt.Printf("  instance %s -> %s %v\n", inst.ID, inst.Definition, inst.Values)
		}
	}
	return nil
}
