package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/hyperifyio/economist-mcp/internal/diag"
	"github.com/hyperifyio/economist-mcp/internal/fetch"
)

const briefHTML = `<!doctype html><html><body>
<article data-testid="Article">
  <p data-component="the-world-in-brief-paragraph">Central banks in three big economies held interest rates steady on Wednesday.</p>
  <h3 class="css-p09rkj e1pqka930">Figure of the day</h3>
  <p data-component="paragraph">The share of adults who say they read a newspaper every day, down from half in 2000.</p>
</article></body></html>`

const articleHTML = `<!doctype html><html><body>
<article data-testid="Article">
  <h1 class="css-1tik00t e1qjd5lc0">How to fix the railways</h1>
  <h2 class="css-1fxcbca e6h2z500">Fewer tickets, more trains</h2>
  <p data-component="paragraph">Europe’s railways are busier than at any time since the 1920s.</p>
  <p data-component="paragraph">Governments want more of them.</p>
</article></body></html>`

// newSite serves the brief at the default path and an article at /article,
// recording the request headers it sees.
func newSite(t *testing.T) (*httptest.Server, *http.Header) {
	t.Helper()
	var mu sync.Mutex
	seen := &http.Header{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		*seen = r.Header.Clone()
		mu.Unlock()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		switch r.URL.Path {
		case DefaultBriefPath:
			_, _ = w.Write([]byte(briefHTML))
		case "/article":
			_, _ = w.Write([]byte(articleHTML))
		case "/paywall":
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`<html><body><p>Subscribe to continue reading</p></body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, seen
}

func TestLatestBriefing_FetchesFixedPathWithHeaders(t *testing.T) {
	srv, seen := newSite(t)
	a, err := New(Config{BaseURL: srv.URL + "/", Cookie: "ec_session=xyz"})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	got, err := a.LatestBriefing(context.Background())
	if err != nil {
		t.Fatalf("LatestBriefing: %v", err)
	}
	want := "Central banks in three big economies held interest rates steady on Wednesday." +
		"\n\n\n## Figure of the day\n\n" +
		"The share of adults who say they read a newspaper every day, down from half in 2000."
	if got != want {
		t.Fatalf("briefing mismatch\n got: %q\nwant: %q", got, want)
	}
	if ua := seen.Get("User-Agent"); ua != DefaultUserAgent {
		t.Fatalf("User-Agent=%q", ua)
	}
	if c := seen.Get("Cookie"); c != "ec_session=xyz" {
		t.Fatalf("Cookie=%q", c)
	}
}

func TestReadArticle_RendersTitleSubheadingBody(t *testing.T) {
	srv, _ := newSite(t)
	a, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	got, err := a.ReadArticle(context.Background(), srv.URL+"/article")
	if err != nil {
		t.Fatalf("ReadArticle: %v", err)
	}
	want := "Title: How to fix the railways\n" +
		"Subheading: Fewer tickets, more trains\n" +
		"\nBody:\nEurope’s railways are busier than at any time since the 1920s.\n\nGovernments want more of them."
	if got != want {
		t.Fatalf("article mismatch\n got: %q\nwant: %q", got, want)
	}
}

// A paywall response is not a transport failure; it surfaces as a soft
// diagnostic once extraction finds nothing.
func TestReadArticle_PaywallIsSoftFailure(t *testing.T) {
	srv, _ := newSite(t)
	a, err := New(Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	_, err = a.ReadArticle(context.Background(), srv.URL+"/paywall")
	if msg, ok := diag.Message(err); !ok || msg != diag.ArticleNotFound {
		t.Fatalf("expected container diagnostic, got %q (%v)", msg, err)
	}
}

func TestReadArticle_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	a, err := New(Config{})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	_, err = a.ReadArticle(context.Background(), addr+"/article")
	if !diag.IsKind(err, diag.TransportFailure) {
		t.Fatalf("expected TransportFailure, got %v", err)
	}
	if _, ok := diag.Message(err); ok {
		t.Fatalf("transport failures must not render as diagnostics")
	}
}

func TestReadArticle_RejectsNonHTTPURL(t *testing.T) {
	a, err := New(Config{})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	_, err = a.ReadArticle(context.Background(), "ftp://example.com/a")
	if !errors.Is(err, fetch.ErrUnsupportedScheme) || !diag.IsKind(err, diag.TransportFailure) {
		t.Fatalf("expected unsupported scheme transport failure, got %v", err)
	}
}

type stubFetcher struct {
	body  string
	calls []string
}

func (s *stubFetcher) Get(_ context.Context, url string) (*fetch.Response, error) {
	s.calls = append(s.calls, url)
	return &fetch.Response{URL: url, Status: 200, ContentType: "text/html", Body: []byte(s.body)}, nil
}

func TestNewWithFetcher_Idempotent(t *testing.T) {
	f := &stubFetcher{body: briefHTML}
	a, err := NewWithFetcher(Config{}, f)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	first, err1 := a.LatestBriefing(context.Background())
	second, err2 := a.LatestBriefing(context.Background())
	if err1 != nil || err2 != nil || first != second {
		t.Fatalf("expected identical results, got %q/%v and %q/%v", first, err1, second, err2)
	}
	if len(f.calls) != 2 || f.calls[0] != DefaultBaseURL+DefaultBriefPath {
		t.Fatalf("unexpected fetches: %v", f.calls)
	}
}

func TestLatestBriefing_EmptyPage(t *testing.T) {
	a, err := NewWithFetcher(Config{}, &stubFetcher{body: "<html></html>"})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	_, err = a.LatestBriefing(context.Background())
	if msg, _ := diag.Message(err); msg != diag.BriefingNotFound {
		t.Fatalf("expected briefing-not-found diagnostic, got %v", err)
	}
}

func TestNew_RejectsBadBaseURL(t *testing.T) {
	for _, base := range []string{"www.economist.com", "ftp://example.com", "http://"} {
		if _, err := New(Config{BaseURL: base}); err == nil {
			t.Fatalf("expected error for base %q", base)
		}
	}
}

func TestBriefURL_JoinsBaseAndPath(t *testing.T) {
	a, err := NewWithFetcher(Config{BaseURL: "https://example.com///"}, &stubFetcher{})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	if got := a.BriefURL(); got != "https://example.com/the-world-in-brief" {
		t.Fatalf("BriefURL=%q", got)
	}
	if !strings.HasPrefix(a.Config().UserAgent, "Mozilla/5.0") {
		t.Fatalf("expected default user agent, got %q", a.Config().UserAgent)
	}
}
