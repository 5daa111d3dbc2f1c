package classify

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/local/pressclip/internal/ai"
)

// stubClient scripts provider behavior per call.
type stubClient struct {
	name  string
	calls int
	fn    func(req ai.Request) (ai.Response, error)
}

func (s *stubClient) Name() string { return s.name }

func (s *stubClient) Classify(ctx context.Context, req ai.Request) (ai.Response, error) {
	s.calls++
	return s.fn(req)
}

func answer(text string) func(ai.Request) (ai.Response, error) {
	return func(ai.Request) (ai.Response, error) {
		return ai.Response{Text: text}, nil
	}
}

func failWith(err error) func(ai.Request) (ai.Response, error) {
	return func(ai.Request) (ai.Response, error) {
		return ai.Response{}, err
	}
}

func hybridOpts() Options {
	return Options{
		MinTextLen:      100,
		FallbackEnabled: true,
		MaxRetries:      1,
		RequestTimeout:  time.Second,
	}
}

// longText pads s past the sparse-page threshold without adding keywords.
func longText(s string) string {
	return s + " " + strings.Repeat("quarterly municipal council proceedings ", 5)
}

func TestClassify_SparsePageNeverReachesRemote(t *testing.T) {
	stub := &stubClient{name: "gemini", fn: answer("other")}
	c := New(hybridOpts(), stub, "m", nil, "", nil)

	got := c.Classify(context.Background(), 3, "editorial")

	if stub.calls != 0 {
		t.Fatalf("remote called %d times for sparse page, want 0", stub.calls)
	}
	if got.Label != LabelEditorial || got.Source != SourceKeyword {
		t.Errorf("got %+v, want editorial via keyword fallback", got)
	}
}

func TestClassify_SparsePageSimpleVariantSkipped(t *testing.T) {
	opts := hybridOpts()
	opts.FallbackEnabled = false
	stub := &stubClient{name: "gemini", fn: answer("editorial")}
	c := New(opts, stub, "m", nil, "", nil)

	got := c.Classify(context.Background(), 0, "editorial")

	if stub.calls != 0 {
		t.Fatalf("remote called %d times for sparse page, want 0", stub.calls)
	}
	if got.Label != LabelOther || got.Source != SourceSkipped {
		t.Errorf("got %+v, want other/skipped", got)
	}
}

func TestClassify_RemoteLabels(t *testing.T) {
	tests := []struct {
		name string
		resp string
		want Label
	}{
		{"plain editorial", "editorial", LabelEditorial},
		{"capitalized with newline", "Opinion\n", LabelOpinion},
		{"quoted", `"editorial"`, LabelEditorial},
		{"other", "other", LabelOther},
		{"unrecognized maps to other", "maybe editorial", LabelOther},
		{"empty response maps to other", "", LabelOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubClient{name: "gemini", fn: answer(tt.resp)}
			c := New(hybridOpts(), stub, "m", nil, "", nil)

			got := c.Classify(context.Background(), 1, longText("council news"))

			if stub.calls != 1 {
				t.Fatalf("remote called %d times, want 1", stub.calls)
			}
			if got.Label != tt.want || got.Source != SourceRemote {
				t.Errorf("got %+v, want {%s remote_model}", got, tt.want)
			}
		})
	}
}

func TestClassify_TransientFailureFallsBackToKeywords(t *testing.T) {
	stub := &stubClient{name: "gemini", fn: failWith(&ai.HTTPError{Provider: "gemini", StatusCode: 503})}
	c := New(hybridOpts(), stub, "m", nil, "", nil)

	got := c.Classify(context.Background(), 5, longText("the opinion pages, an op-ed"))

	if stub.calls != 2 {
		t.Fatalf("remote called %d times, want 2 (one retry)", stub.calls)
	}
	if got.Label != LabelOpinion || got.Source != SourceKeyword {
		t.Errorf("got %+v, want opinion via keyword fallback", got)
	}
}

func TestClassify_TransientFailureSimpleVariantExcludes(t *testing.T) {
	opts := hybridOpts()
	opts.FallbackEnabled = false
	stub := &stubClient{name: "gemini", fn: failWith(ai.ErrRateLimited)}
	c := New(opts, stub, "m", nil, "", nil)

	got := c.Classify(context.Background(), 5, longText("the opinion pages, an op-ed"))

	if got.Label != LabelOther || got.Source != SourceSkipped {
		t.Errorf("got %+v, want other/skipped", got)
	}
}

func TestClassify_FatalErrorNotRetried(t *testing.T) {
	stub := &stubClient{name: "gemini", fn: failWith(&ai.HTTPError{Provider: "gemini", StatusCode: 400})}
	c := New(hybridOpts(), stub, "m", nil, "", nil)

	got := c.Classify(context.Background(), 2, longText("letters to the editor"))

	if stub.calls != 1 {
		t.Fatalf("remote called %d times, want 1 (no retry on fatal)", stub.calls)
	}
	if got.Source != SourceKeyword {
		t.Errorf("got %+v, want keyword fallback", got)
	}
}

func TestClassify_FailoverToSecondaryProvider(t *testing.T) {
	primary := &stubClient{name: "gemini", fn: failWith(&ai.HTTPError{Provider: "gemini", StatusCode: 500})}
	secondary := &stubClient{name: "openai", fn: answer("opinion")}
	c := New(hybridOpts(), primary, "m1", secondary, "m2", nil)

	got := c.Classify(context.Background(), 4, longText("council news"))

	if primary.calls != 2 {
		t.Errorf("primary called %d times, want 2", primary.calls)
	}
	if secondary.calls != 1 {
		t.Errorf("secondary called %d times, want 1", secondary.calls)
	}
	if got.Label != LabelOpinion || got.Source != SourceRemote {
		t.Errorf("got %+v, want opinion via remote", got)
	}
}

func TestClassify_OpenBreakerSkipsProvider(t *testing.T) {
	primary := &stubClient{name: "gemini", fn: answer("editorial")}
	breaker := NewBreaker(time.Minute, time.Hour)
	breaker.Trip("gemini")
	c := New(hybridOpts(), primary, "m", nil, "", breaker)

	got := c.Classify(context.Background(), 0, longText("editorial board writes"))

	if primary.calls != 0 {
		t.Fatalf("provider called %d times behind open breaker, want 0", primary.calls)
	}
	if got.Source != SourceKeyword {
		t.Errorf("got %+v, want keyword fallback", got)
	}
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		raw  string
		want Label
	}{
		{"editorial", LabelEditorial},
		{"EDITORIAL.", LabelEditorial},
		{"  opinion\n", LabelOpinion},
		{"'other'", LabelOther},
		{"maybe editorial", LabelOther},
		{"editorials", LabelOther},
		{"", LabelOther},
	}

	for _, tt := range tests {
		if got := ParseLabel(tt.raw); got != tt.want {
			t.Errorf("ParseLabel(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
