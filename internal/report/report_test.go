package report

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/kailas-cloud/kbindex/internal/domain"
)

func render(res domain.Result) string {
	var buf bytes.Buffer
	New(&buf).WithoutColor().Result(res)
	return buf.String()
}

func TestStart(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).WithoutColor().Start()
	want := "Creating OpenSearch Serverless vector index for Bedrock Knowledge Base...\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestResult(t *testing.T) {
	body := `{"acknowledged":true}`

	tests := []struct {
		name string
		res  domain.Result
		want string
	}{
		{
			name: "created",
			res:  domain.Created("ai-assistant-index", 200, body),
			want: "✅ Successfully created index 'ai-assistant-index'\nResponse: " + body + "\n",
		},
		{
			name: "exists accepted",
			res: domain.Failed("kb",
				domain.NewRejected(400, `{"error":{}}`, true), true),
			want: "✅ Index 'kb' already exists\nResponse: {\"error\":{}}\n",
		},
		{
			name: "rejected",
			res:  domain.Failed("kb", domain.NewRejected(403, `{"message":"denied"}`, false), false),
			want: "❌ Failed to create index. Status: 403\nResponse: {\"message\":\"denied\"}\n",
		},
		{
			name: "transport",
			res:  domain.Failed("kb", fmt.Errorf("%w: dial tcp: refused", domain.ErrTransport), false),
			want: "❌ Error creating index: transport failure: dial tcp: refused\n",
		},
		{
			name: "credentials",
			res:  domain.Failed("kb", fmt.Errorf("%w: expired", domain.ErrCredentials), false),
			want: "❌ Error creating index: credential resolution failed: expired\n",
		},
		{
			name: "invalid definition",
			res:  domain.Failed("kb", errors.Join(domain.ErrInvalidDefinition, errors.New("no fields")), false),
			want: "❌ Error creating index: invalid index definition\nno fields\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := render(tc.res); got != tc.want {
				t.Errorf("got:\n%q\nwant:\n%q", got, tc.want)
			}
		})
	}
}
