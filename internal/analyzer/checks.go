package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gubarz/blockaudit/internal/parser"
)

var definitionRegex = regexp.MustCompile(`^(\s*)(def|class)\s+(\w+)`)

var docstringDelimiters = []string{`"""`, `'''`}

// Definition is a function or class found in a block. Lines are relative
// to the block content, 1-based.
type Definition struct {
	Name      string
	Kind      string // "def" or "class"
	Indent    int
	StartLine int
	EndLine   int
}

// Span returns the number of lines the definition covers
func (d Definition) Span() int {
	return d.EndLine - d.StartLine + 1
}

// ScanDefinitions walks lines once. Each definition ends where the next one
// starts, or at the end of the content.
func ScanDefinitions(lines []string) []Definition {
	var defs []Definition
	var current *Definition

	for i, line := range lines {
		matches := definitionRegex.FindStringSubmatch(line)
		if matches == nil {
			continue
		}
		n := i + 1
		if current != nil {
			current.EndLine = n - 1
			defs = append(defs, *current)
		}
		current = &Definition{
			Name:      matches[3],
			Kind:      matches[2],
			Indent:    len(matches[1]),
			StartLine: n,
		}
	}

	if current != nil {
		current.EndLine = len(lines)
		defs = append(defs, *current)
	}
	return defs
}

func checkLongFunctions(block parser.CodeBlock, opts Options) []Issue {
	var issues []Issue
	for _, def := range ScanDefinitions(block.Lines()) {
		if def.Span() > opts.MaxFunctionLines {
			issues = append(issues, newIssue(LongFunction,
				lineRange(def.StartLine, def.EndLine),
				"Function '%s' is %d lines long (consider refactoring if > %d lines)",
				def.Name, def.Span(), opts.MaxFunctionLines))
		}
	}
	return issues
}

func checkDocstrings(block parser.CodeBlock, opts Options) []Issue {
	lines := block.Lines()

	var issues []Issue
	for _, def := range ScanDefinitions(lines) {
		body := strings.Join(lines[def.StartLine-1:def.EndLine], "\n")
		// Classes only count when their span reaches a method
		if !strings.Contains(body, "def ") {
			continue
		}
		if hasDocstring(headRunes(body, opts.DocstringWindow)) {
			continue
		}
		issues = append(issues, newIssue(MissingDocstring,
			lineAt(def.StartLine),
			"Function '%s' is missing a docstring", def.Name))
	}
	return issues
}

func checkCommentRatio(block parser.CodeBlock, opts Options) []Issue {
	lines := block.Lines()

	comments, nonBlank := 0, 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			nonBlank++
		}
		if strings.HasPrefix(trimmed, "#") || hasDocstring(line) {
			comments++
		}
	}

	var ratio float64
	if nonBlank > 0 {
		ratio = float64(comments) / float64(nonBlank)
	}
	if ratio >= opts.MinCommentRatio || len(lines) <= opts.MinCommentLines {
		return nil
	}
	return []Issue{newIssue(LowCommentRatio, "throughout",
		"Low comment ratio (%.1f%%), code may benefit from more explanatory comments",
		ratio*100)}
}

// checkUndefinedMethods is a textual co-occurrence test over the whole block.
// Definitions in other blocks are not seen.
func checkUndefinedMethods(block parser.CodeBlock, opts Options) []Issue {
	var issues []Issue
	for _, name := range opts.UndefinedMethods {
		if name == "" {
			continue
		}
		if !strings.Contains(block.Content, name) || strings.Contains(block.Content, "def "+name) {
			continue
		}
		issues = append(issues, newIssue(UndefinedMethod,
			"see calls to "+name,
			"Method '%s' is called but not defined in this class", name))
	}
	return issues
}

func checkMissingImports(block parser.CodeBlock, opts Options) []Issue {
	var issues []Issue
	for _, module := range opts.RequiredImports {
		if module == "" {
			continue
		}
		if !strings.Contains(block.Content, module+".") || strings.Contains(block.Content, "import "+module) {
			continue
		}
		issues = append(issues, newIssue(MissingImport, "throughout",
			"Uses '%s' module but doesn't import it", module))
	}
	return issues
}

func checkBlockLength(block parser.CodeBlock, opts Options) []Issue {
	if block.LineCount <= opts.MaxBlockLines {
		return nil
	}
	return []Issue{newIssue(LongCodeBlock,
		lineRange(block.StartLine, block.EndLine),
		"Code block is %d lines long (consider breaking into smaller, more focused examples)",
		block.LineCount)}
}

func hasDocstring(s string) bool {
	for _, delim := range docstringDelimiters {
		if strings.Contains(s, delim) {
			return true
		}
	}
	return false
}

// headRunes returns at most n runes from the start of s
func headRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func lineAt(n int) string {
	return fmt.Sprintf("line %d", n)
}

func lineRange(start, end int) string {
	return fmt.Sprintf("lines %d-%d", start, end)
}
