package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/jobbook/jobbook-backend/internal/types"
)

func TestStatusChangedCapitalizesLabel(t *testing.T) {
	f := NewFormatter("http://jobbook.test/")
	jobID := uuid.New()

	msg := f.StatusChanged(jobID, types.JobStatusReadyToStakeOut)
	if !strings.Contains(msg.Content, "<strong>Ready to stake out</strong>") {
		t.Fatalf("content: got=%q", msg.Content)
	}
	if !strings.Contains(msg.Content, f.JobURL(jobID)) {
		t.Fatalf("content should link the job page, got=%q", msg.Content)
	}
}

func TestJobURLTrimsTrailingSlash(t *testing.T) {
	f := NewFormatter("http://jobbook.test/")
	jobID := uuid.New()
	want := "http://jobbook.test/jobs/" + jobID.String()
	if got := f.JobURL(jobID); got != want {
		t.Fatalf("url: want=%q got=%q", want, got)
	}
}

func TestJobCreatedEscapesNames(t *testing.T) {
	f := NewFormatter("http://jobbook.test")
	msg := f.JobCreated("Alex <script>", "Road & Rail")
	if strings.Contains(msg.Content, "<script>") {
		t.Fatalf("principal name not escaped: %q", msg.Content)
	}
	if !strings.Contains(msg.Content, "Road &amp; Rail") {
		t.Fatalf("trade name not escaped: %q", msg.Content)
	}
}

func TestRenderHTMLWrapsContentInFrame(t *testing.T) {
	html, err := RenderHTML("Kim", "The job is <strong>late</strong>.")
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	if !strings.Contains(html, "Hello Kim,") {
		t.Fatalf("missing greeting: %q", html)
	}
	if !strings.Contains(html, "<strong>late</strong>") {
		t.Fatalf("content HTML must pass through unescaped: %q", html)
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"<p>Hello</p>", "Hello"},
		{"a <strong>b</strong> c", "a b c"},
		{"check <a href=http://x>[CLICK]</a>", "check [CLICK]"},
	}
	for _, tc := range tests {
		if got := StripTags(tc.in); got != tc.want {
			t.Fatalf("StripTags(%q): want=%q got=%q", tc.in, tc.want, got)
		}
	}
}
