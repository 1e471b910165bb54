package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"fudge-schema/introspect"
	"fudge-schema/naming"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// conventionDirective introduces a naming convention in a type doc comment.
const conventionDirective = "//fudge:convention"

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	dir    string
	tag    string
	logger *zap.Logger
	graph  *TypeGraph
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDir sets the directory package patterns are relative to. Defaults to
// the working directory.
func WithDir(dir string) Option {
	return func(a *Analyzer) {
		a.dir = dir
	}
}

// WithTag sets the struct tag key read by the Source. Defaults to
// introspect.DefaultTag.
func WithTag(key string) Option {
	return func(a *Analyzer) {
		if key != "" {
			a.tag = key
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		tag:    introspect.DefaultTag,
		logger: zap.NewNop(),
		graph:  NewTypeGraph(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// LoadPackages loads the packages matching patterns, e.g. "./shop" or
// "example.com/app/...", and adds their exported named types to the graph.
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode:    LoadMode,
		Context: ctx,
		Dir:     a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// Source returns a typegraph.Source over the loaded types.
func (a *Analyzer) Source() *Source {
	return newSource(a.graph, a.tag)
}

// processPackage extracts the exported named types of pkg.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	directives := conventionDirectives(pkg.Syntax)

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() || typeName.IsAlias() {
			continue
		}

		info := &TypeInfo{
			ID:  introspect.TypeID{PkgPath: pkg.PkgPath, Name: name},
			Obj: typeName,
		}

		if value, ok := directives[name]; ok {
			c, err := naming.Parse(value)
			if err != nil {
				info.conventionErr = fmt.Errorf("%s directive of %s: %w", conventionDirective, info.ID, err)
				a.logger.Warn("invalid convention directive",
					zap.Stringer("type", info.ID),
					zap.String("value", value),
				)
			} else {
				info.Convention = &c
			}
		}

		a.graph.add(info)
		pkgInfo.Types = append(pkgInfo.Types, info.ID)
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo

	a.logger.Debug("package analyzed",
		zap.String("package", pkg.PkgPath),
		zap.Int("types", len(pkgInfo.Types)),
	)
}

// conventionDirectives maps type names to the value of their convention
// directive. A directive in the doc of a grouped declaration applies when
// the group declares a single type.
func conventionDirectives(files []*ast.File) map[string]string {
	out := make(map[string]string)

	for _, file := range files {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}

			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)

				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}

				if value, ok := directiveValue(doc); ok {
					out[ts.Name.Name] = value
				}
			}
		}
	}

	return out
}

func directiveValue(doc *ast.CommentGroup) (string, bool) {
	if doc == nil {
		return "", false
	}

	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, conventionDirective)
		if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
			continue
		}

		return strings.TrimSpace(rest), true
	}

	return "", false
}
