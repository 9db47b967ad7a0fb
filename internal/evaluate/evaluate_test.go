package evaluate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestSession(t *testing.T, imports ...string) (*Session, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	session, err := NewSession(Config{
		Stdout:  &out,
		Stderr:  &out,
		Imports: imports,
	})
	require.NoError(t, err)
	return session, &out
}

func TestSessionEvalExpression(t *testing.T) {
	session, _ := newTestSession(t)

	v, err := session.Eval(context.Background(), "1 + 2")
	require.NoError(t, err)
	assert.Equal(t, "3", FormatValue(v))
}

func TestSessionPrelude(t *testing.T) {
	session, _ := newTestSession(t)

	tests := []struct {
		src  string
		want string
	}{
		{"Tau > 6.28 && Tau < 6.29", "true"},
		{"math.IsNaN(NaN)", "true"},
		{"math.IsInf(Inf, 1)", "true"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			v, err := session.Eval(context.Background(), tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatValue(v))
		})
	}
}

func TestSessionStdout(t *testing.T) {
	session, out := newTestSession(t, "fmt")

	_, err := session.Eval(context.Background(), `fmt.Println("hello")`)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out.String())
}

func TestSessionStateAccumulates(t *testing.T) {
	session, _ := newTestSession(t)

	_, err := session.Eval(context.Background(), "x := 40")
	require.NoError(t, err)

	v, err := session.Eval(context.Background(), "x + 2")
	require.NoError(t, err)
	assert.Equal(t, "42", FormatValue(v))

	assert.Contains(t, session.Globals(), "x")
}

func TestSessionGlobals(t *testing.T) {
	session, _ := newTestSession(t)
	ctx := context.Background()

	for _, src := range []string{
		"x := 40",
		"a, b := 1, 2",
		"var count int",
		"const limit = 8",
		"func double(n int) int { return n * 2 }",
		"type point struct{ X, Y int }",
	} {
		_, err := session.Eval(ctx, src)
		require.NoError(t, err)
	}

	globals := session.Globals()
	for _, name := range []string{
		"x", "a", "b", "count", "limit", "double", "point",
		// Prelude bindings are listed too.
		"Inf", "NaN", "Tau",
	} {
		assert.Contains(t, globals, name)
	}
	assert.IsIncreasing(t, globals)

	require.NoError(t, session.Reset())
	assert.NotContains(t, session.Globals(), "x")
	assert.Contains(t, session.Globals(), "Tau")
}

func TestSessionImport(t *testing.T) {
	session, _ := newTestSession(t)

	require.NoError(t, session.Import("sort"))
	assert.Contains(t, session.Imports(), "sort")
	assert.Contains(t, session.Imports(), "math")

	v, err := session.Eval(context.Background(), "sort.SearchInts([]int{1, 2, 3}, 2)")
	require.NoError(t, err)
	assert.Equal(t, "1", FormatValue(v))
}

func TestSessionConfiguredImports(t *testing.T) {
	session, _ := newTestSession(t, "strings")

	v, err := session.Eval(context.Background(), `strings.ToUpper("ok")`)
	require.NoError(t, err)
	assert.Equal(t, `"OK"`, FormatValue(v))
}

func TestSessionReset(t *testing.T) {
	session, _ := newTestSession(t)

	_, err := session.Eval(context.Background(), "x := 1")
	require.NoError(t, err)

	require.NoError(t, session.Reset())

	_, err = session.Eval(context.Background(), "x")
	assert.Error(t, err)

	// The prelude survives a reset.
	v, err := session.Eval(context.Background(), "Tau > 0")
	require.NoError(t, err)
	assert.Equal(t, "true", FormatValue(v))
}

func TestSessionEvalFile(t *testing.T) {
	session, out := newTestSession(t, "fmt")

	path := filepath.Join(t.TempDir(), "script.go")
	require.NoError(t, os.WriteFile(path, []byte(`fmt.Println(6 * 7)`), 0644))

	_, err := session.EvalFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "42\n", out.String())
}

func TestIsIncomplete(t *testing.T) {
	session, _ := newTestSession(t, "fmt")

	incomplete := []struct {
		name string
		src  string
	}{
		{"open paren", "fmt.Println("},
		{"open bracket", "x := []int{1, 2,"},
		{"open func body", "func add(a, b int) int {"},
		{"open raw string", "s := `multi"},
	}
	for _, tt := range incomplete {
		t.Run(tt.name, func(t *testing.T) {
			_, err := session.Eval(context.Background(), tt.src)
			require.Error(t, err)
			assert.True(t, IsIncomplete(tt.src, err))
		})
	}

	t.Run("undefined identifier is a real error", func(t *testing.T) {
		_, err := session.Eval(context.Background(), "noSuchThing")
		require.Error(t, err)
		assert.False(t, IsIncomplete("noSuchThing", err))
	})

	t.Run("nil", func(t *testing.T) {
		assert.False(t, IsIncomplete("1 + 2", nil))
	})
}

func TestFormatResult(t *testing.T) {
	session, _ := newTestSession(t)

	t.Run("declaration is not echoed", func(t *testing.T) {
		v, err := session.Eval(context.Background(), "var unused int")
		require.NoError(t, err)
		assert.Empty(t, FormatResult("var unused int", v))
	})

	t.Run("loop is not echoed", func(t *testing.T) {
		src := "for i := 0; i < 3; i++ {}"
		v, err := session.Eval(context.Background(), src)
		require.NoError(t, err)
		assert.Empty(t, FormatResult(src, v))
	})

	t.Run("expression is echoed", func(t *testing.T) {
		v, err := session.Eval(context.Background(), "6 * 7")
		require.NoError(t, err)
		assert.Equal(t, "42", FormatResult("6 * 7", v))
	})

	t.Run("string is quoted", func(t *testing.T) {
		v, err := session.Eval(context.Background(), `"hi"`)
		require.NoError(t, err)
		assert.Equal(t, `"hi"`, FormatResult(`"hi"`, v))
	})
}

func TestPackageMembers(t *testing.T) {
	assert.Contains(t, PackageMembers("fmt"), "Println")
	assert.Contains(t, PackageMembers("net/http"), "Get")
	assert.Nil(t, PackageMembers("no/such/pkg"))
}

func TestStdlibPackages(t *testing.T) {
	packages := StdlibPackages()
	assert.Contains(t, packages, "fmt")
	assert.Contains(t, packages, "net/http")
}
