package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fudge-schema/internal/analyze"
	"fudge-schema/internal/common"
	"fudge-schema/internal/render"
	"fudge-schema/manifest"
	"fudge-schema/typegraph"
)

func newResolveCommand(a *app) *cobra.Command {
	var patterns []string

	cmd := &cobra.Command{
		Use:   "resolve <manifest> [type...]",
		Short: "Print the resolved schema of declared types",
		Long: `Resolve the given types, or every declared type when none is given, and
print their schema graphs.

With --package the types come from Go packages instead of a manifest:
every argument is a type name such as Order, shop.Order or
example.com/shop.Order, and no names select every struct type.

Formats: tree (default), yaml, json, dump.`,
		Example: `  fudgeschema resolve shop.yaml Order
  fudgeschema resolve --package ./shop Order -f yaml`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(patterns) > 0 {
				return nil
			}

			return cobra.MinimumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runResolve(cmd.Context(), cmd.OutOrStdout(), patterns, args)
		},
	}

	cmd.Flags().StringSliceVarP(&patterns, "package", "p", nil, "resolve Go types of these package patterns")
	cmd.Flags().StringP("format", "f", "tree", "output format: tree, yaml, json, dump")
	cmd.Flags().Bool("color", true, "colorize tree output")
	cmd.Flags().Int("parallelism", 0, "types resolved at once (default GOMAXPROCS)")

	return cmd
}

func (a *app) runResolve(ctx context.Context, w io.Writer, patterns, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		src  typegraph.Source
		refs []typegraph.Type
		err  error
	)

	if len(patterns) > 0 {
		src, refs, err = a.packageTypes(ctx, patterns, args)
	} else {
		src, refs, err = manifestTypes(args[0], args[1:])
	}
	if err != nil {
		return err
	}

	cache := typegraph.New(src,
		typegraph.WithLogger(a.logger),
		typegraph.WithParallelism(a.cfg.Parallelism),
	)

	if err := cache.Warm(ctx, a.cfg.Convention, refs...); err != nil {
		return err
	}

	roots := make([]*typegraph.Node, 0, len(refs))
	for _, ref := range refs {
		n, err := cache.Resolve(ref, a.cfg.Convention)
		if err != nil {
			return err
		}

		roots = append(roots, n)
	}

	switch a.cfg.Format {
	case "tree":
		return render.Tree(w, render.TreeOptions{NoColor: !a.cfg.Color}, roots...)
	case "yaml":
		return render.YAML(w, render.Build(a.cfg.Convention, roots...))
	case "json":
		return render.JSON(w, render.Build(a.cfg.Convention, roots...))
	case "dump":
		return render.Dump(w, render.Build(a.cfg.Convention, roots...))
	default:
		return fmt.Errorf("unsupported format %q", a.cfg.Format)
	}
}

func manifestTypes(path string, names []string) (typegraph.Source, []typegraph.Type, error) {
	f, err := manifest.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}

	src, err := manifest.NewSource(f)
	if err != nil {
		return nil, nil, err
	}

	if common.IsEmpty(names) {
		names = f.TypeNames()
	}

	refs := make([]typegraph.Type, 0, len(names))
	for _, name := range names {
		refs = append(refs, manifest.Ref(name))
	}

	return src, refs, nil
}

func (a *app) packageTypes(ctx context.Context, patterns, names []string) (typegraph.Source, []typegraph.Type, error) {
	analyzer := analyze.NewAnalyzer(analyze.WithLogger(a.logger))

	graph, err := analyzer.LoadPackages(ctx, patterns...)
	if err != nil {
		return nil, nil, err
	}

	var infos []*analyze.TypeInfo
	if common.IsEmpty(names) {
		infos = graph.Structs()
	}

	for _, name := range names {
		info, err := graph.Lookup(name)
		if err != nil {
			return nil, nil, err
		}

		infos = append(infos, info)
	}

	refs := make([]typegraph.Type, 0, len(infos))
	for _, info := range infos {
		refs = append(refs, info.Type())
	}

	return analyzer.Source(), refs, nil
}
