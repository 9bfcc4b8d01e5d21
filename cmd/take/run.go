package main

import (
	"fmt"
	"os"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/takedsl/take"
	"github.com/takedsl/take/internal/loader"
)

var (
	runBaseURL string
	runPath    string
	runPretty  bool
)

func init() {
	runCmd.Flags().StringVar(&runBaseURL, "base-url", "", "resolve relative URLs against this base")
	runCmd.Flags().StringVarP(&runPath, "path", "p", "", "pluck a JSONPath from the result")
	runCmd.Flags().BoolVar(&runPretty, "pretty", false, "indent the JSON output")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run <template> [document]",
	Short: "Run a template against a document and print the result as JSON",
	Long: `Run compiles the template file and executes it against the document.
The document may be a file path, an http(s) URL or - for stdin; it
defaults to stdin. Markdown documents render to HTML first.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		tmpl, err := take.New(string(src))
		if err != nil {
			return describeCompileError(args[0], err)
		}

		ref := "-"
		if len(args) == 2 {
			ref = args[1]
		}
		markup, err := loader.New().Load(cmd.Context(), ref)
		if err != nil {
			return err
		}

		var opts []take.ExecOption
		if runBaseURL != "" {
			opts = append(opts, take.ExecBaseURL(runBaseURL))
		}
		data, err := tmpl.Exec(markup, opts...)
		if err != nil {
			return err
		}

		out := take.Flatten(data)
		if runPath != "" {
			expr, err := jp.ParseString(runPath)
			if err != nil {
				return fmt.Errorf("parse path %q: %w", runPath, err)
			}
			matches := expr.Get(out)
			if len(matches) == 1 {
				out = matches[0]
			} else {
				out = matches
			}
		}

		if runPretty {
			fmt.Println(oj.JSON(out, 2))
		} else {
			fmt.Println(oj.JSON(out))
		}
		return nil
	},
}
