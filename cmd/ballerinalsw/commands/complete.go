package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/ballerina-platform/ballerinalsw/i18n"
	"github.com/ballerina-platform/ballerinalsw/internal/completion"
	"github.com/ballerina-platform/ballerinalsw/internal/logging"
	"github.com/ballerina-platform/ballerinalsw/internal/scope"
	"github.com/ballerina-platform/ballerinalsw/internal/syntax"
)

type completeOptions struct {
	offset     int
	line, col  int
	marker     string
	jsonOutput bool
}

// candidateJSON is the JSON form of a completion candidate.
type candidateJSON struct {
	Label      string `json:"label"`
	InsertText string `json:"insertText"`
	Snippet    bool   `json:"snippet,omitempty"`
	Kind       string `json:"kind"`
	Detail     string `json:"detail,omitempty"`
}

func (a *app) completeCmd() *cobra.Command {
	opts := &completeOptions{}
	cmd := &cobra.Command{
		Use:   "complete FILE",
		Short: "Print the completion candidates at a position of a file",
		Long: `Print the completion candidates at a position of a Ballerina file.

The position is a byte offset (--offset), a 1-based line and column
(--line, --col), or the first occurrence of a marker string (--marker)
which is removed before parsing.`,
		Example: `  ballerinalsw complete main.bal --offset 42
  ballerinalsw complete main.bal --line 3 --col 5 --json
  ballerinalsw complete main.bal --marker '|'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runComplete(cmd, args[0], opts)
		},
	}
	cmd.Flags().IntVar(&opts.offset, "offset", -1, "Byte offset of the cursor")
	cmd.Flags().IntVar(&opts.line, "line", 0, "1-based line of the cursor")
	cmd.Flags().IntVar(&opts.col, "col", 0, "1-based byte column of the cursor")
	cmd.Flags().StringVar(&opts.marker, "marker", "", "Cursor marker to look for and remove")
	cmd.Flags().BoolVarP(&opts.jsonOutput, "json", "j", false, "Output candidates as JSON")
	cmd.MarkFlagsMutuallyExclusive("offset", "line")
	cmd.MarkFlagsMutuallyExclusive("offset", "marker")
	cmd.MarkFlagsMutuallyExclusive("line", "marker")
	cmd.MarkFlagsRequiredTogether("line", "col")
	return cmd
}

func (a *app) runComplete(cmd *cobra.Command, path string, opts *completeOptions) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}
	src, offset, err := cursorOffset(src, opts)
	if err != nil {
		return err
	}

	engine, err := a.newEngine()
	if err != nil {
		return err
	}
	f := syntax.Parse(src)
	if len(f.Errors) > 0 {
		warn := pterm.Warning.WithWriter(cmd.ErrOrStderr())
		for _, e := range f.Errors {
			warn.Println(fmt.Sprintf("%s:%d: %s", path, e.Offset, i18n.Translate(e.Msg, a.cfg.Language())))
		}
	}
	candidates := engine.Complete(f, offset, scope.New(f, logging.Named("scope")))

	if opts.jsonOutput {
		out := make([]candidateJSON, 0, len(candidates))
		for _, c := range candidates {
			out = append(out, candidateJSON{
				Label:      c.Label,
				InsertText: c.InsertText,
				Snippet:    c.Format == completion.Snippet,
				Kind:       c.Kind.String(),
				Detail:     c.Detail,
			})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(out), "failed to encode candidates")
	}

	data := pterm.TableData{{"Label", "Kind", "Detail", "Insert"}}
	for _, c := range candidates {
		data = append(data, []string{c.Label, c.Kind.String(), c.Detail, fmt.Sprintf("%q", c.InsertText)})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(cmd.OutOrStdout()).Render()
}

// cursorOffset resolves the cursor of opts in src. With a marker, the
// returned source has the marker removed.
func cursorOffset(src []byte, opts *completeOptions) ([]byte, int, error) {
	switch {
	case opts.marker != "":
		i := bytes.Index(src, []byte(opts.marker))
		if i < 0 {
			return nil, 0, errors.Newf("marker %q not found", opts.marker)
		}
		out := make([]byte, 0, len(src)-len(opts.marker))
		out = append(out, src[:i]...)
		out = append(out, src[i+len(opts.marker):]...)
		return out, i, nil
	case opts.line > 0:
		offset, err := lineColOffset(src, opts.line, opts.col)
		return src, offset, err
	case opts.offset >= 0:
		if opts.offset > len(src) {
			return nil, 0, errors.Newf("offset %d is past the end of the file (%d bytes)", opts.offset, len(src))
		}
		return src, opts.offset, nil
	}
	return nil, 0, errors.WithHint(
		errors.New("no cursor position given"),
		"use --offset, --line and --col, or --marker",
	)
}

// lineColOffset converts a 1-based line and byte column to an offset.
func lineColOffset(src []byte, line, col int) (int, error) {
	if line < 1 || col < 1 {
		return 0, errors.Newf("line and column are 1-based, got %d:%d", line, col)
	}
	start := 0
	for l := 1; l < line; l++ {
		i := bytes.IndexByte(src[start:], '\n')
		if i < 0 {
			return 0, errors.Newf("line %d is past the end of the file", line)
		}
		start += i + 1
	}
	end := len(src)
	if i := bytes.IndexByte(src[start:], '\n'); i >= 0 {
		end = start + i
	}
	if start+col-1 > end {
		return 0, errors.Newf("column %d is past the end of line %d", col, line)
	}
	return start + col - 1, nil
}
