// Command draft4-validate checks a JSON or YAML instance against a draft-4
// schema.
//
// Usage:
//
//	draft4-validate [-i instance.json] [-defaults] root-schema.json [uri=extra-schema.json ...]
//
// The first schema file becomes the root schema. Additional schemas are given
// as uri=file pairs and are inserted in whatever order lets their references
// resolve. The instance is read from stdin unless -i is given; files ending
// in .yaml or .yml are parsed as YAML.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	draft4 "github.com/reoring/draft4"
	"github.com/reoring/draft4/jsontree"
)

func main() {
	var instancePath string
	var withDefaults bool
	flag.StringVar(&instancePath, "i", "", "instance file (default: stdin)")
	flag.BoolVar(&withDefaults, "defaults", false, "insert schema-declared default values into the instance")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: draft4-validate [-i instance.json] [-defaults] root-schema.json [uri=extra-schema.json ...]")
		os.Exit(2)
	}

	var opts []draft4.Option
	if withDefaults {
		opts = append(opts, draft4.WithDefaultInsertion())
	}
	v := draft4.New(opts...)

	type pending struct{ id, file string }
	queue := make([]pending, 0, flag.NArg())
	for _, arg := range flag.Args()[1:] {
		id, file, ok := strings.Cut(arg, "=")
		if !ok {
			fatalf("extra schema %q: want uri=file", arg)
		}
		queue = append(queue, pending{id: id, file: file})
	}
	queue = append(queue, pending{id: draft4.RootMarker, file: flag.Arg(0)})

	// Insertion may report still-undefined references when schemas arrive
	// out of dependency order; keep retrying while any pass makes progress.
	for len(queue) > 0 {
		var stuck []pending
		progress := false
		for _, p := range queue {
			doc, err := loadValue(p.file)
			if err != nil {
				fatalf("%s: %v", p.file, err)
			}
			undefined, err := v.InsertSchema(doc, p.id)
			if err != nil {
				fatalf("%s: %v", p.file, err)
			}
			if len(undefined) > 0 {
				stuck = append(stuck, p)
				continue
			}
			progress = true
		}
		if !progress {
			for _, p := range stuck {
				fmt.Fprintf(os.Stderr, "%s: unresolved references remain\n", p.file)
			}
			os.Exit(1)
		}
		queue = stuck
	}

	instance, err := loadInstance(instancePath)
	if err != nil {
		fatalf("instance: %v", err)
	}
	if err := v.Validate(instance); err != nil {
		fatalf("%v", err)
	}
	if withDefaults {
		fmt.Println(instance)
	}
}

func loadInstance(path string) (*jsontree.Value, error) {
	if path == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		return jsontree.DecodeJSON(data)
	}
	return loadValue(path)
}

func loadValue(path string) (*jsontree.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return jsontree.DecodeYAML(data)
	}
	return jsontree.DecodeJSON(data)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
