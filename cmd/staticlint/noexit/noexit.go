// Package noexit содержит анализатор, запрещающий прямой вызов os.Exit в функции main пакета main.
package noexit

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// NoExitAnalyzer проверяет отсутствие прямых вызовов os.Exit в функции main пакета main
var NoExitAnalyzer = &analysis.Analyzer{
	Name: "noexit",
	Doc:  "запрещает использование прямого вызова os.Exit в функции main пакета main",
	Run:  run,
}

// run ищет вызовы os.Exit в теле функции main
func run(pass *analysis.Pass) (interface{}, error) {
	// Анализируем только файлы проекта, зависимости пропускаем
	if !strings.HasPrefix(pass.Fset.Position(pass.Files[0].Pos()).Filename, pass.Pkg.Path()) {
		return nil, nil
	}

	for _, file := range pass.Files {
		if file.Name.Name != "main" {
			continue
		}

		ast.Inspect(file, func(node ast.Node) bool {
			funcDecl, ok := node.(*ast.FuncDecl)
			if !ok || funcDecl.Name.Name != "main" || funcDecl.Body == nil {
				return true
			}

			ast.Inspect(funcDecl.Body, func(n ast.Node) bool {
				callExpr, ok := n.(*ast.CallExpr)
				if !ok {
					return true
				}
				selExpr, ok := callExpr.Fun.(*ast.SelectorExpr)
				if !ok || selExpr.Sel.Name != "Exit" {
					return true
				}
				if ident, ok := selExpr.X.(*ast.Ident); ok {
					if obj := pass.TypesInfo.Uses[ident]; obj != nil {
						if pkg, ok := obj.(*types.PkgName); ok && pkg.Imported().Path() == "os" {
							pass.Reportf(callExpr.Pos(), "прямой вызов os.Exit в функции main запрещен")
						}
					}
				}
				return true
			})
			return true
		})
	}

	return nil, nil
}
