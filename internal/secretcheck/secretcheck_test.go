package secretcheck

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const module = "github.com/kochabx/ecies"

var checked = []string{
	module + "/core/crypto/ecies",
	module + "/core/crypto/ecies/batch",
	module + "/boundary",
	module + "/mobile",
	module + "/cmd/ecies/commands",
}

// Identifiers that name secret values. Matched case-insensitively against
// the last identifier of a logged expression.
var secretNames = []string{"secret", "plaintext", "priv", "shared", "message", "envelope", "ciphertext"}

func load(t *testing.T) []*packages.Package {
	t.Helper()

	cfg := &packages.Config{
		Mode: packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedFiles | packages.NeedName,
	}
	pkgs, err := packages.Load(cfg, checked...)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			t.Fatalf("load %s: %v", pkg.PkgPath, e)
		}
	}
	return pkgs
}

// inspectCalls visits every call whose callee resolves to a package-level
// function or a method.
func inspectCalls(pkgs []*packages.Package, fn func(pkg *packages.Package, call *ast.CallExpr, obj types.Object)) {
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			ast.Inspect(file, func(n ast.Node) bool {
				call, ok := n.(*ast.CallExpr)
				if !ok {
					return true
				}
				selector, ok := call.Fun.(*ast.SelectorExpr)
				if !ok {
					return true
				}
				obj := pkg.TypesInfo.Uses[selector.Sel]
				if obj == nil || obj.Pkg() == nil {
					return true
				}
				fn(pkg, call, obj)
				return true
			})
		}
	}
}

func TestNoHexFormatting(t *testing.T) {
	var findings []string

	inspectCalls(load(t), func(pkg *packages.Package, call *ast.CallExpr, obj types.Object) {
		idx, ok := formatIndex(obj.Pkg().Path(), obj.Name())
		if !ok || len(call.Args) <= idx {
			return
		}

		lit, ok := call.Args[idx].(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			return
		}
		value, err := strconv.Unquote(lit.Value)
		if err != nil {
			return
		}

		if strings.Contains(value, "%x") || strings.Contains(value, "%X") {
			findings = append(findings, fmt.Sprintf("%s: avoid %%x formatting", pkg.Fset.Position(lit.Pos())))
		}
	})

	if len(findings) > 0 {
		t.Fatalf("hex formatting found:\n%s", strings.Join(findings, "\n"))
	}
}

func TestNoSecretsLogged(t *testing.T) {
	var findings []string

	inspectCalls(load(t), func(pkg *packages.Package, call *ast.CallExpr, obj types.Object) {
		if obj.Pkg().Path() != "github.com/rs/zerolog" {
			return
		}
		if obj.Name() == "Hex" || obj.Name() == "Bytes" {
			findings = append(findings, fmt.Sprintf("%s: zerolog %s logs raw bytes", pkg.Fset.Position(call.Pos()), obj.Name()))
			return
		}

		for _, arg := range call.Args {
			if isKeyType(pkg.TypesInfo.TypeOf(arg)) {
				findings = append(findings, fmt.Sprintf("%s: private key passed to logger", pkg.Fset.Position(arg.Pos())))
				continue
			}
			if name := lastIdent(arg); name != "" && isSecretName(name) {
				findings = append(findings, fmt.Sprintf("%s: %s passed to logger", pkg.Fset.Position(arg.Pos()), name))
			}
		}
	})

	if len(findings) > 0 {
		t.Fatalf("secret logging policy violation:\n%s", strings.Join(findings, "\n"))
	}
}

func formatIndex(pkgPath, name string) (int, bool) {
	switch pkgPath {
	case "fmt":
		switch name {
		case "Errorf", "Printf", "Sprintf":
			return 0, true
		case "Fprintf":
			return 1, true
		}
	case "github.com/rs/zerolog":
		switch name {
		case "Msgf":
			return 0, true
		}
	case module + "/log":
		switch name {
		case "Debugf", "Infof", "Warnf", "Errorf", "Fatalf", "Panicf":
			return 0, true
		}
	}
	return 0, false
}

func isKeyType(t types.Type) bool {
	if t == nil {
		return false
	}
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	named, ok := t.(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return false
	}
	return named.Obj().Pkg().Path() == module+"/core/crypto/ecies" && named.Obj().Name() == "PrivateKey"
}

func lastIdent(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.SelectorExpr:
		return e.Sel.Name
	case *ast.IndexExpr:
		return lastIdent(e.X)
	case *ast.SliceExpr:
		return lastIdent(e.X)
	case *ast.CallExpr:
		// string(x), []byte(x)
		if len(e.Args) != 1 {
			return ""
		}
		switch fun := e.Fun.(type) {
		case *ast.ArrayType:
			return lastIdent(e.Args[0])
		case *ast.Ident:
			if fun.Name == "string" {
				return lastIdent(e.Args[0])
			}
		}
	}
	return ""
}

func isSecretName(name string) bool {
	name = strings.ToLower(name)
	for _, s := range secretNames {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}
