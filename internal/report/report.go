// Package report prints the human-readable status lines of a run.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/kailas-cloud/kbindex/internal/domain"
)

const startLine = "Creating OpenSearch Serverless vector index for Bedrock Knowledge Base..."

// Reporter writes status lines to out.
type Reporter struct {
	out  io.Writer
	ok   *color.Color
	fail *color.Color
}

// New creates a Reporter. Colors follow color.NoColor, which is set when
// stdout is not a terminal.
func New(out io.Writer) *Reporter {
	return &Reporter{
		out:  out,
		ok:   color.New(color.FgGreen),
		fail: color.New(color.FgRed),
	}
}

// WithoutColor disables colored symbols.
func (r *Reporter) WithoutColor() *Reporter {
	r.ok.DisableColor()
	r.fail.DisableColor()
	return r
}

// Start prints the banner line.
func (r *Reporter) Start() {
	_, _ = fmt.Fprintln(r.out, startLine)
}

// Result prints the outcome of the run.
func (r *Reporter) Result(res domain.Result) {
	switch {
	case res.Outcome == domain.OutcomeCreated:
		r.line(r.ok, "✅", fmt.Sprintf("Successfully created index '%s'", res.Index))
		r.response(res.Body)
	case res.Outcome == domain.OutcomeExists:
		r.line(r.ok, "✅", fmt.Sprintf("Index '%s' already exists", res.Index))
		r.response(res.Body)
	case res.Outcome == domain.OutcomeRejected && res.StatusCode > 0:
		r.line(r.fail, "❌", fmt.Sprintf("Failed to create index. Status: %d", res.StatusCode))
		r.response(res.Body)
	default:
		r.line(r.fail, "❌", fmt.Sprintf("Error creating index: %v", res.Err))
	}
}

func (r *Reporter) line(c *color.Color, symbol, msg string) {
	_, _ = fmt.Fprintf(r.out, "%s %s\n", c.Sprint(symbol), msg)
}

func (r *Reporter) response(body string) {
	_, _ = fmt.Fprintf(r.out, "Response: %s\n", body)
}
