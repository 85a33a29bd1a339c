// Package main реализует команду «staticlint» на базе multichecker.
// Набор: стандартные анализаторы golang.org/x/tools, правила SA из staticcheck,
// один анализатор simple и два собственных:
//   - exitmain: запрещает os.Exit в функции main пакета main;
//   - globalrand: запрещает функции math/rand, работающие с глобальным источником,
//     ключи должны генерироваться из внедрённого *rand.Rand.
//
// Использование:
//
//	go install ./cmd/staticlint
//	staticlint ./...
package main

import (
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
)

func main() {
	analyzers := []*analysis.Analyzer{
		printf.Analyzer,
		shadow.Analyzer,
		structtag.Analyzer,
		errorsas.Analyzer,
		httpresponse.Analyzer,
		lostcancel.Analyzer,
		nilness.Analyzer,
		unusedresult.Analyzer,
		ExitMainAnalyzer,
		GlobalRandAnalyzer,
	}

	for _, la := range staticcheck.Analyzers {
		if strings.HasPrefix(la.Analyzer.Name, "SA") {
			analyzers = append(analyzers, la.Analyzer)
		}
	}

	for _, la := range simple.Analyzers {
		// S1005: лишний blank identifier в присваивании.
		if la.Analyzer.Name == "S1005" {
			analyzers = append(analyzers, la.Analyzer)
		}
	}

	multichecker.Main(analyzers...)
}
