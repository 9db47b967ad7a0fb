// Package evaluate wraps the yaegi interpreter as an interactive Go
// evaluation session. A Session holds the interpreter state for the
// lifetime of the REPL: declarations accumulate across Eval calls the
// way they would in a single growing main package.
package evaluate

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"io"
	"os"
	gopath "path"
	"reflect"
	"sort"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"go.uber.org/zap"
)

// prelude is evaluated into every fresh session. It mirrors the handful
// of math conveniences regulars expect to have on hand without typing
// the package prefix.
const prelude = `
import "math"

var (
	Inf = math.Inf(1)
	NaN = math.NaN()
)

const Tau = 2 * math.Pi
`

// Config controls how a Session is created.
type Config struct {
	// Stdout and Stderr receive output from evaluated code. Nil falls
	// back to the process streams.
	Stdout io.Writer
	Stderr io.Writer

	// Imports are package paths imported into the session at startup.
	Imports []string

	Logger *zap.Logger
}

// Session is a stateful Go evaluation session.
type Session struct {
	config  Config
	interp  *interp.Interpreter
	imports map[string]struct{}
	globals map[string]struct{}
	logger  *zap.Logger
}

// NewSession creates a session, loads the standard library symbols and
// evaluates the prelude plus the configured imports. A bad configured
// import is logged and skipped rather than failing the whole session.
func NewSession(config Config) (*Session, error) {
	if config.Stdout == nil {
		config.Stdout = os.Stdout
	}
	if config.Stderr == nil {
		config.Stderr = os.Stderr
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	s := &Session{
		config: config,
		logger: config.Logger,
	}
	if err := s.initInterpreter(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) initInterpreter() error {
	i := interp.New(interp.Options{
		Stdout: s.config.Stdout,
		Stderr: s.config.Stderr,
	})
	if err := i.Use(stdlib.Symbols); err != nil {
		return fmt.Errorf("failed to load stdlib symbols: %w", err)
	}
	if _, err := i.Eval(prelude); err != nil {
		return fmt.Errorf("failed to evaluate prelude: %w", err)
	}

	s.interp = i
	s.imports = map[string]struct{}{"math": {}}
	s.globals = make(map[string]struct{})
	for _, name := range declaredNames(prelude) {
		s.globals[name] = struct{}{}
	}

	for _, path := range s.config.Imports {
		if err := s.Import(path); err != nil {
			s.logger.Warn("skipping configured import",
				zap.String("path", path), zap.Error(err))
		}
	}
	return nil
}

// Eval evaluates a chunk of Go source in the session. The returned
// value is the result of the last expression; it is invalid for
// statements that produce no value. Cancelling the context stops the
// running program.
func (s *Session) Eval(ctx context.Context, src string) (reflect.Value, error) {
	v, err := s.interp.EvalWithContext(ctx, src)
	if err != nil {
		s.logger.Debug("eval failed", zap.String("src", src), zap.Error(err))
		return reflect.Value{}, err
	}
	for _, name := range declaredNames(src) {
		s.globals[name] = struct{}{}
	}
	return v, nil
}

// EvalFile evaluates the contents of a file in the session. A leading
// shebang line is skipped.
func (s *Session) EvalFile(ctx context.Context, path string) (reflect.Value, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	source := string(src)
	if strings.HasPrefix(source, "#!") {
		if idx := strings.Index(source, "\n"); idx >= 0 {
			source = source[idx+1:]
		}
	}
	return s.Eval(ctx, source)
}

// Import imports a package into the session and remembers it so that
// Imports can report the session's import set.
func (s *Session) Import(path string) error {
	if _, err := s.interp.Eval(fmt.Sprintf("import %q", path)); err != nil {
		return err
	}
	s.imports[path] = struct{}{}
	return nil
}

// Imports returns the session's imported package paths, sorted.
func (s *Session) Imports() []string {
	paths := make([]string, 0, len(s.imports))
	for path := range s.imports {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Globals returns the names defined at the top level of the session,
// including the prelude bindings, sorted. The interpreter's symbol
// table only surfaces package-level declarations, so names bound with
// := are tracked by parsing each evaluated chunk and merged in here.
func (s *Session) Globals() []string {
	set := make(map[string]struct{}, len(s.globals))
	for name := range s.globals {
		set[name] = struct{}{}
	}
	for _, scope := range s.interp.Symbols("main") {
		for name := range scope {
			set[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// declaredNames extracts the names a chunk of REPL source binds at its
// top level. The chunk is parsed as a file first (func, var, const and
// type declarations) and as a function body otherwise (:= assignments
// and declaration statements).
func declaredNames(src string) []string {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, "", "package main\n"+src, parser.SkipObjectResolution)
	if err == nil {
		var names []string
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				if d.Recv == nil && d.Name.Name != "_" {
					names = append(names, d.Name.Name)
				}
			case *ast.GenDecl:
				names = append(names, specNames(d)...)
			}
		}
		return names
	}

	file, err = parser.ParseFile(fset, "", "package main\nfunc _() {\n"+src+"\n}", parser.SkipObjectResolution)
	if err != nil || len(file.Decls) == 0 {
		return nil
	}
	fn, ok := file.Decls[0].(*ast.FuncDecl)
	if !ok || fn.Body == nil {
		return nil
	}

	var names []string
	for _, stmt := range fn.Body.List {
		switch st := stmt.(type) {
		case *ast.AssignStmt:
			if st.Tok != token.DEFINE {
				continue
			}
			for _, lhs := range st.Lhs {
				if ident, ok := lhs.(*ast.Ident); ok && ident.Name != "_" {
					names = append(names, ident.Name)
				}
			}
		case *ast.DeclStmt:
			if d, ok := st.Decl.(*ast.GenDecl); ok {
				names = append(names, specNames(d)...)
			}
		}
	}
	return names
}

func specNames(decl *ast.GenDecl) []string {
	var names []string
	for _, spec := range decl.Specs {
		switch sp := spec.(type) {
		case *ast.ValueSpec:
			for _, ident := range sp.Names {
				if ident.Name != "_" {
					names = append(names, ident.Name)
				}
			}
		case *ast.TypeSpec:
			names = append(names, sp.Name.Name)
		}
	}
	return names
}

// Reset discards all session state and starts over with a fresh
// interpreter, prelude and configured imports.
func (s *Session) Reset() error {
	return s.initInterpreter()
}

// IsIncomplete reports whether an eval error means src was cut off
// mid-construct, so the REPL should keep reading continuation lines
// instead of reporting the error. The interpreter only flags an
// unfinished brace block as a parse error at EOF; unclosed parens,
// brackets and raw string literals surface as other errors, so those
// are detected from the source itself.
func IsIncomplete(src string, err error) bool {
	if err == nil {
		return false
	}
	if strings.Contains(err.Error(), "found 'EOF'") {
		return true
	}
	return unbalanced(src)
}

// unbalanced reports whether src ends inside an open bracket pair or an
// unterminated raw string literal.
func unbalanced(src string) bool {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))

	openRawString := false
	var sc scanner.Scanner
	sc.Init(file, []byte(src), func(_ token.Position, msg string) {
		if strings.Contains(msg, "raw string literal not terminated") {
			openRawString = true
		}
	}, 0)

	depth := 0
	for {
		_, tok, _ := sc.Scan()
		if tok == token.EOF {
			break
		}
		switch tok {
		case token.LPAREN, token.LBRACK, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACK, token.RBRACE:
			depth--
		}
	}
	return depth > 0 || openRawString
}

// IsExpression reports whether src parses as a single Go expression.
func IsExpression(src string) bool {
	_, err := parser.ParseExpr(src)
	return err == nil
}

// FormatResult renders an eval result for display, or the empty string
// when src is not an expression. The interpreter returns a value for
// statements too, so expression-ness is decided from the source rather
// than from the value.
func FormatResult(src string, v reflect.Value) string {
	if !IsExpression(src) {
		return ""
	}
	return FormatValue(v)
}

// FormatValue renders a value for display. Strings are quoted; invalid
// values render as the empty string.
func FormatValue(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	if v.Kind() == reflect.String {
		return fmt.Sprintf("%q", v.String())
	}
	return fmt.Sprintf("%v", v)
}

// PackageMembers returns the exported symbols of a standard library
// package, sorted, or nil if the package is unknown.
func PackageMembers(path string) []string {
	symbols, ok := stdlib.Symbols[path+"/"+gopath.Base(path)]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(symbols))
	for name := range symbols {
		// yaegi keeps interface wrapper types under underscore names.
		if strings.HasPrefix(name, "_") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StdlibPackages returns every importable standard library package
// path, sorted.
func StdlibPackages() []string {
	paths := make([]string, 0, len(stdlib.Symbols))
	for key := range stdlib.Symbols {
		// Keys look like "net/http/http"; drop the repeated base.
		paths = append(paths, gopath.Dir(key))
	}
	sort.Strings(paths)
	return paths
}
