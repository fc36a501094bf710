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
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	sqlparser "github.com/sandra449/sql-parser"
	"github.com/sandra449/sql-parser/internal/common"
)

var (
	jsonOutput bool
	quiet      bool
	showTokens bool
	execute    string
	file       string
)

var rootCmd = &cobra.Command{
	Use:   "sqlparser",
	Short: "SQL statement parser CLI",
	Long: `sqlparser parses SELECT and CREATE TABLE statements and prints the
resulting syntax tree. It provides an interactive interface as well as
batch modes for files and pipes.`,
	Version: common.VersionMajor + "." + common.VersionMinor + "." + common.VersionPatch,
	RunE:    runRootCommand,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output syntax trees in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress banner and summary messages")
	rootCmd.PersistentFlags().BoolVarP(&showTokens, "tokens", "t", false, "Print the token stream alongside the syntax tree")
	rootCmd.Flags().StringVarP(&execute, "execute", "e", "", "Parse a single statement and exit")
	rootCmd.Flags().StringVarP(&file, "file", "f", "", "Parse statements from a file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runRootCommand(cmd *cobra.Command, args []string) error {
	// Handle execute flag - parse single statement and exit
	if execute != "" {
		return parseAndRender(execute, jsonOutput, showTokens)
	}

	// Handle file flag - parse statements from a file
	if file != "" {
		return parseFromFile(file, jsonOutput, showTokens)
	}

	// Check if we're getting input from a pipe
	stat, _ := os.Stdin.Stat()
	isPipe := (stat.Mode() & os.ModeCharDevice) == 0

	if isPipe {
		return parsePipedInput(jsonOutput, showTokens)
	}

	// Interactive mode
	cli, err := NewCLI(jsonOutput, showTokens)
	if err != nil {
		return fmt.Errorf("error initializing CLI: %v", err)
	}
	defer cli.Close()

	return cli.Run()
}

func parseFromFile(filename string, jsonOutput, showTokens bool) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("error opening file %s: %v", filename, err)
	}
	defer f.Close()

	return parseReaderInput(bufio.NewScanner(f), jsonOutput, showTokens)
}

func parsePipedInput(jsonOutput, showTokens bool) error {
	return parseReaderInput(bufio.NewScanner(os.Stdin), jsonOutput, showTokens)
}

// parseReaderInput accumulates lines into statements and parses each
// one. Statements are delimited by semicolons outside string literals;
// comment-style lines are skipped so piped scripts can be annotated.
func parseReaderInput(scanner *bufio.Scanner, jsonOutput, showTokens bool) error {
	var current strings.Builder

	flush := func() {
		q := strings.TrimSpace(current.String())
		current.Reset()
		if q == "" {
			return
		}

		for _, stmt := range splitStatements(q) {
			trimmed := strings.TrimSpace(stmt)
			if trimmed == "" {
				continue
			}
			if err := parseAndRender(trimmed, jsonOutput, showTokens); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}

	for scanner.Scan() {
		line := scanner.Text()

		// Skip shell-style comment lines
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "--") {
			continue
		}

		// A blank line ends the current statement group
		if trimmed == "" && current.Len() > 0 {
			flush()
			continue
		}

		current.WriteString(line)
		current.WriteString(" ")
	}

	if scanner.Err() != nil {
		return fmt.Errorf("error reading input: %v", scanner.Err())
	}

	flush()
	return nil
}

// parseAndRender validates, parses and prints one statement
func parseAndRender(query string, jsonOutput, showTokens bool) error {
	if showTokens && !jsonOutput {
		renderTokens(query)
	}

	if err := preCheck(query); err != nil {
		if jsonOutput {
			return renderErrorJSON(err)
		}
		return err
	}

	stmt, err := sqlparser.Parse(query)
	if err != nil {
		if jsonOutput {
			return renderErrorJSON(err)
		}
		if parseErr, ok := err.(*sqlparser.ParseError); ok {
			return fmt.Errorf("%s", sqlparser.FormatError(parseErr))
		}
		return err
	}

	if jsonOutput {
		return renderStatementJSON(stmt)
	}
	renderStatement(stmt)
	return nil
}

// preCheck applies coarse validation before tokenizing, so the most
// common mistakes get a direct message instead of a grammar error
func preCheck(query string) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("Empty query")
	}

	lower := strings.ToLower(query)
	if strings.HasPrefix(lower, "select") {
		if !strings.Contains(lower, "from") {
			return fmt.Errorf("SELECT statement must contain FROM clause")
		}
	} else if strings.HasPrefix(lower, "create table") {
		if strings.Contains(lower, "varchar") && !strings.Contains(lower, "varchar(") {
			return fmt.Errorf("VARCHAR type must specify length using VARCHAR(n)")
		}
	}

	return nil
}

// renderStatementJSON prints the syntax tree as a JSON document
func renderStatementJSON(stmt sqlparser.Statement) error {
	var kind string
	switch stmt.(type) {
	case *sqlparser.SelectStatement:
		kind = "SELECT"
	case *sqlparser.CreateTableStatement:
		kind = "CREATE_TABLE"
	default:
		kind = "UNKNOWN"
	}

	result := map[string]interface{}{
		"type": kind,
		"text": stmt.String(),
		"ast":  stmt,
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %v", err)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

// renderErrorJSON prints a parse failure as a JSON document
func renderErrorJSON(err error) error {
	detail := map[string]interface{}{
		"message": err.Error(),
	}
	if parseErr, ok := err.(*sqlparser.ParseError); ok {
		detail["kind"] = parseErr.Kind.String()
		detail["message"] = parseErr.Message
		detail["line"] = parseErr.Position.Line
		detail["column"] = parseErr.Position.Column
	}

	jsonBytes, marshalErr := json.Marshal(map[string]interface{}{"error": detail})
	if marshalErr != nil {
		return fmt.Errorf("failed to marshal JSON: %v", marshalErr)
	}

	fmt.Println(string(jsonBytes))
	return nil
}

// splitStatements splits input into statements on semicolons, keeping
// each delimiter with its statement since the grammar requires it.
// Semicolons inside string literals do not split.
func splitStatements(input string) []string {
	var statements []string
	var current strings.Builder

	inSingleQuotes := false
	inDoubleQuotes := false

	for i := 0; i < len(input); i++ {
		char := input[i]

		if char == '\'' && !inDoubleQuotes {
			inSingleQuotes = !inSingleQuotes
		} else if char == '"' && !inSingleQuotes {
			inDoubleQuotes = !inDoubleQuotes
		}

		current.WriteByte(char)

		if char == ';' && !inSingleQuotes && !inDoubleQuotes {
			statements = append(statements, current.String())
			current.Reset()
		}
	}

	if strings.TrimSpace(current.String()) != "" {
		statements = append(statements, current.String())
	}

	return statements
}
