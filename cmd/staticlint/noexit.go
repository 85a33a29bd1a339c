package main

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// ExitMainAnalyzer сообщает о прямых вызовах os.Exit внутри функции main пакета main:
// os.Exit пропускает отложенные вызовы, в том числе закрытие хранилища и sync логгера.
var ExitMainAnalyzer = &analysis.Analyzer{
	Name:     "exitmain",
	Doc:      "reports direct calls to os.Exit in main function of package main",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      runExitMain,
}

func runExitMain(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil
	}
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	insp.Preorder([]ast.Node{(*ast.FuncDecl)(nil)}, func(n ast.Node) {
		fn := n.(*ast.FuncDecl)
		if fn.Name.Name != "main" || fn.Recv != nil || fn.Body == nil {
			return
		}
		ast.Inspect(fn.Body, func(node ast.Node) bool {
			call, ok := node.(*ast.CallExpr)
			if !ok {
				return true
			}
			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			if f, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func); ok &&
				f.Pkg() != nil && f.Pkg().Path() == "os" && f.Name() == "Exit" {
				pass.Reportf(sel.Sel.Pos(), "direct call to os.Exit is not allowed in main")
			}
			return true
		})
	})
	return nil, nil
}
