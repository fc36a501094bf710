/*
Copyright 2025 sql-parser Contributors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/jedib0t/go-pretty/v6/table"

	sqlparser "github.com/sandra449/sql-parser"
	"github.com/sandra449/sql-parser/internal/common"
)

// CLI is the interactive statement parser shell
type CLI struct {
	historyFile string
	readline    *readline.Instance

	// Output options
	jsonOutput    bool // Whether to output syntax trees in JSON format
	showTokens    bool // Whether to print the token stream before the tree
	isInteractive bool // Whether running in interactive mode

	// Multi-line statement state
	currentQuery   strings.Builder // Accumulates multi-line statement text
	inMultiLine    bool            // Whether we're in a multi-line statement
	emptyLineCount int             // Consecutive blank lines, two force a parse
}

// NewCLI creates a new CLI instance
func NewCLI(jsonOutput, showTokens bool) (*CLI, error) {
	// Determine history file location (in user's home directory)
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	historyFile := homeDir + "/.sqlparser_history"

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[1;36m>\033[0m ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold: true, // Case-insensitive history search

		VimMode: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize readline: %v", err)
	}

	// Check if we're running interactively (terminal attached)
	isInteractive := true
	if stat, err := os.Stdin.Stat(); err == nil {
		isInteractive = (stat.Mode() & os.ModeCharDevice) != 0
	}

	return &CLI{
		historyFile:   historyFile,
		readline:      rl,
		jsonOutput:    jsonOutput,
		showTokens:    showTokens,
		isInteractive: isInteractive,
	}, nil
}

// updatePrompt updates the readline prompt based on current state
func (c *CLI) updatePrompt() {
	if c.inMultiLine {
		c.readline.SetPrompt("\033[1;36m->\033[0m ")
	} else {
		c.readline.SetPrompt("\033[1;36m>\033[0m ")
	}
}

// Run starts the CLI
func (c *CLI) Run() error {
	if c.isInteractive {
		fmt.Println(common.VersionString)
		fmt.Println("Enter SQL statements (each ending with a semicolon), 'help' for assistance, or 'exit' to quit.")
		fmt.Println("Press Enter twice to force-parse an incomplete statement.")
		if c.jsonOutput {
			fmt.Println("JSON output mode enabled.")
		}
		fmt.Println()
	}

	c.updatePrompt()

	for {
		line, err := c.readline.Readline()
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				break
			}
			return err
		}

		// Handle multi-line history items (contains escaped newlines)
		if strings.Contains(line, "\\n") {
			actualQuery := strings.ReplaceAll(line, "\\n", "\n")
			lines := strings.Split(actualQuery, "\n")

			// Display the statement in multi-line format
			fmt.Printf("%s\n", lines[0])
			for i := 1; i < len(lines); i++ {
				if strings.TrimSpace(lines[i]) != "" {
					fmt.Printf("\033[1;36m->\033[0m %s\n", lines[i])
				}
			}

			c.parseBuffered(strings.TrimSpace(actualQuery))
			continue
		}

		line = strings.TrimSpace(line)

		// A blank line counts toward the force-parse threshold
		if line == "" {
			c.emptyLineCount++
			if c.emptyLineCount >= 2 && c.currentQuery.Len() > 0 {
				c.forceParse()
			}
			continue
		}
		c.emptyLineCount = 0

		// Handle special commands (only when not in multi-line mode)
		if !c.inMultiLine {
			switch strings.ToLower(line) {
			case "exit", "quit", "\\q":
				return nil
			case "help", "\\h", "\\?":
				c.printHelp()
				continue
			case "tokens", "\\t":
				c.showTokens = !c.showTokens
				if c.showTokens {
					fmt.Println("Token stream display enabled.")
				} else {
					fmt.Println("Token stream display disabled.")
				}
				continue
			}
		}

		// Add line to current statement (preserve line breaks for history)
		if c.currentQuery.Len() > 0 {
			c.currentQuery.WriteString("\n")
		}
		c.currentQuery.WriteString(line)

		fullQuery := strings.TrimSpace(c.currentQuery.String())
		if strings.HasSuffix(fullQuery, ";") {
			// Add the complete multi-line statement to history as a
			// single entry
			historyEntry := strings.ReplaceAll(fullQuery, "\n", "\\n")
			c.readline.SaveHistory(historyEntry)

			c.parseBuffered(fullQuery)
		} else {
			// Continue multi-line input
			c.inMultiLine = true
			c.updatePrompt()
		}
	}

	return nil
}

// parseBuffered parses the accumulated statement text, splitting on
// semicolons so several statements on one line each get parsed
func (c *CLI) parseBuffered(fullQuery string) {
	c.inMultiLine = false
	c.currentQuery.Reset()
	c.updatePrompt()

	for _, stmt := range splitStatements(fullQuery) {
		trimmed := strings.TrimSpace(stmt)
		if trimmed == "" {
			continue
		}

		if err := parseAndRender(trimmed, c.jsonOutput, c.showTokens); err != nil {
			fmt.Fprintf(os.Stderr, "\033[1;31mError:\033[0m %v\n", err)
		}
	}
}

// forceParse parses the incomplete statement after two blank lines
func (c *CLI) forceParse() {
	fullQuery := strings.TrimSpace(c.currentQuery.String())
	c.currentQuery.Reset()
	c.inMultiLine = false
	c.emptyLineCount = 0
	c.updatePrompt()

	fmt.Println("Parsing incomplete statement...")
	if !strings.Contains(fullQuery, ";") {
		fmt.Fprintf(os.Stderr, "\033[1;31mError:\033[0m Missing semicolon at the end of the statement\n")
	}
	if err := parseAndRender(fullQuery, c.jsonOutput, c.showTokens); err != nil {
		fmt.Fprintf(os.Stderr, "\033[1;31mError:\033[0m %v\n", err)
		fmt.Printf("Current statement: %s\n", fullQuery)
	}
}

// printHelp displays help information
func (c *CLI) printHelp() {
	fmt.Println("\033[1msqlparser Commands:\033[0m")
	fmt.Println("")
	fmt.Println("  \033[1;33mSQL Statements:\033[0m")
	fmt.Println("    SELECT ...             Parse a SELECT statement")
	fmt.Println("    CREATE TABLE ...       Parse a CREATE TABLE statement")
	fmt.Println("")
	fmt.Println("  \033[1;33mSpecial Commands:\033[0m")
	fmt.Println("    tokens, \\t             Toggle token stream display")
	fmt.Println("    exit, quit, \\q         Exit the CLI")
	fmt.Println("    help, \\h, \\?          Show this help message")
	fmt.Println("")
	fmt.Println("  \033[1;33mKeyboard Shortcuts:\033[0m")
	fmt.Println("    Up/Down arrow keys     Navigate command history")
	fmt.Println("    Ctrl+R                 Search command history")
	fmt.Println("    Ctrl+A                 Move cursor to beginning of line")
	fmt.Println("    Ctrl+E                 Move cursor to end of line")
	fmt.Println("    Ctrl+L                 Clear screen")
	fmt.Println("")
}

// Close closes the CLI and cleans up resources
func (c *CLI) Close() error {
	if c.readline != nil {
		return c.readline.Close()
	}
	return nil
}

// renderStatement prints the syntax tree of a parsed statement as a
// connected list, followed by the normalized statement text
func renderStatement(stmt sqlparser.Statement) {
	l := list.NewWriter()
	l.SetOutputMirror(os.Stdout)
	l.SetStyle(list.StyleConnectedRounded)

	switch s := stmt.(type) {
	case *sqlparser.SelectStatement:
		l.AppendItem("SELECT")
		l.Indent()

		l.AppendItem("Columns")
		l.Indent()
		for _, col := range s.Columns {
			l.AppendItem(col.String())
		}
		l.UnIndent()

		l.AppendItem(fmt.Sprintf("FROM %s", s.TableName.Value))

		if s.Where != nil {
			l.AppendItem("WHERE")
			l.Indent()
			l.AppendItem(s.Where.String())
			l.UnIndent()
		}

		if len(s.OrderBy) > 0 {
			l.AppendItem("ORDER BY")
			l.Indent()
			for _, expr := range s.OrderBy {
				l.AppendItem(expr.String())
			}
			l.UnIndent()
		}
		l.UnIndent()

	case *sqlparser.CreateTableStatement:
		l.AppendItem(fmt.Sprintf("CREATE TABLE %s", s.TableName.Value))
		l.Indent()
		for _, col := range s.Columns {
			l.AppendItem(fmt.Sprintf("%s %s", col.Name.Value, col.Type.String()))
			if len(col.Constraints) > 0 {
				l.Indent()
				for _, constraint := range col.Constraints {
					l.AppendItem(constraint.String())
				}
				l.UnIndent()
			}
		}
		l.UnIndent()

	default:
		l.AppendItem(stmt.String())
	}

	l.Render()
	fmt.Printf("\033[1;32m%s\033[0m\n", stmt.String())
}

// renderTokens prints the token stream of a statement as a table
func renderTokens(query string) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.Style().Options.SeparateRows = false

	t.AppendHeader(table.Row{"#", "TYPE", "LITERAL", "VALUE", "LINE", "COL"})

	for i, tok := range sqlparser.Tokenize(query) {
		value := ""
		switch {
		case tok.Type == sqlparser.TokenError:
			value = tok.Error
		case tok.Value != nil:
			value = fmt.Sprintf("%v", tok.Value)
		}

		t.AppendRow(table.Row{
			i + 1,
			tok.Type.String(),
			tok.Literal,
			value,
			tok.Position.Line,
			tok.Position.Column,
		})
	}

	t.Render()
}
