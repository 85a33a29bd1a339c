package main

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// globalRandFuncs — функции math/rand, использующие общий для процесса источник.
var globalRandFuncs = map[string]bool{
	"ExpFloat64": true, "Float32": true, "Float64": true,
	"Int": true, "Int31": true, "Int31n": true, "Int63": true, "Int63n": true, "Intn": true,
	"NormFloat64": true, "Perm": true, "Read": true, "Seed": true, "Shuffle": true,
	"Uint32": true, "Uint64": true,
}

// GlobalRandAnalyzer сообщает о вызовах функций math/rand с глобальным источником
// вне тестов.
var GlobalRandAnalyzer = &analysis.Analyzer{
	Name:     "globalrand",
	Doc:      "reports calls to math/rand functions backed by the global source",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      runGlobalRand,
}

func runGlobalRand(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		if strings.HasSuffix(pass.Fset.File(call.Pos()).Name(), "_test.go") {
			return
		}
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return
		}
		fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
		if !ok || fn.Pkg() == nil || fn.Pkg().Path() != "math/rand" {
			return
		}
		if sig, ok := fn.Type().(*types.Signature); ok && sig.Recv() != nil {
			return
		}
		if globalRandFuncs[fn.Name()] {
			pass.Reportf(sel.Sel.Pos(), "math/rand.%s uses the global source; pass a *rand.Rand instead", fn.Name())
		}
	})
	return nil, nil
}
