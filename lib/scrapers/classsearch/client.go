package classsearch

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"classfinder-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	defaultBaseUrl = "https://pisa.ucsc.edu/class_search/index.php"

	// the feed serves at most this many records per page and the offset
	// arithmetic below assumes exactly this stride
	pageSize = 100

	actionInitial = "update_segment"
	actionNext    = "next"

	defaultMaxPages = 1000
)

// ErrStalled reports a feed whose progress counter never reached its total
// within the page budget. It is distinct from transport failures so callers
// can tell a wedged feed apart from a dead one.
var ErrStalled = errors.New("classsearch: progress counter stalled, page budget exhausted")

type Client struct {
	http *resty.Client

	// upper bound on request/response cycles per scrape, 0 means the
	// default of 1000. The feed's own progress counter is the only real
	// termination condition; this guards against one that never completes.
	maxPages int
}

type ClientOptions struct {
	// overrides the production feed endpoint, for tests
	BaseUrl  string
	Timeout  time.Duration
	MaxPages int
}

func NewClient(opts ClientOptions) *Client {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = defaultBaseUrl
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "text/html")
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	telemetry.InstrumentResty(client, "scrapers/classsearch/http")

	return &Client{http: client, maxPages: opts.MaxPages}
}

// payload is the running request state of one scrape. The feed's paging
// protocol is quirky and preserved exactly as observed against the real
// server: rec_start advances by the page size after every page, except that
// the first advance (the switch from the initial action to "next") resets
// it to zero instead.
type payload struct {
	action   string
	recStart int
	term     int
}

func newPayload(term int) *payload {
	return &payload{action: actionInitial, term: term}
}

func (p *payload) advance() {
	p.recStart += pageSize
	if p.action != actionNext {
		p.action = actionNext
		p.recStart = 0
	}
}

func (p *payload) formData() map[string]string {
	return map[string]string{
		"action":                   p.action,
		"binds[:term]":             strconv.Itoa(p.term),
		"binds[:reg_status]":       "all",
		"binds[:subject]":          "",
		"binds[:catalog_nbr_op]":   "=",
		"binds[:catalog_nbr]":      "",
		"binds[:title]":            "",
		"binds[:instr_name_op]":    "=",
		"binds[:instructor]":       "",
		"binds[:ge]":               "",
		"binds[:crse_units_op]":    "=",
		"binds[:crse_units_from]":  "",
		"binds[:crse_units_to]":    "",
		"binds[:crse_units_exact]": "",
		"binds[:days]":             "",
		"binds[:times]":            "",
		"binds[:acad_career]":      "",
		"binds[:asynch]":           "A",
		"binds[:hybrid]":           "H",
		"binds[:synch]":            "S",
		"binds[:person]":           "P",
		"rec_start":                strconv.Itoa(p.recStart),
		"rec_dur":                  strconv.Itoa(pageSize),
	}
}

// Scrape pulls every page of class data for the given numeric term code and
// writes the class document to out. It returns the number of records
// written. Requests are strictly sequential; the next page is not fetched
// until the previous one has been fully parsed and written.
//
// Any transport error or non-200 status aborts the run and leaves the
// document unfinalized. No retries happen here; retry policy belongs to the
// caller.
func (c *Client) Scrape(ctx context.Context, term int, out io.WriteSeeker) (int, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()
	span.SetAttributes(attribute.Int("term", term))

	writer, err := NewDocumentWriter(out)
	if err != nil {
		return 0, err
	}

	// one stamp for the whole run, every record shares it
	stamp := time.Now().UTC().Format("2006-01-02 15:04:05")
	acc := newAccumulator(stamp, writer)
	p := newPayload(term)

	maxPages := c.maxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	done := false
	for page := 0; !done; page++ {
		if page >= maxPages {
			span.RecordError(ErrStalled)
			span.SetStatus(codes.Error, ErrStalled.Error())
			return acc.emitted, ErrStalled
		}

		res, err := c.http.R().
			SetContext(ctx).
			SetFormData(p.formData()).
			Post("")
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "request failed")
			return acc.emitted, err
		}
		if res.StatusCode() != http.StatusOK {
			err := fmt.Errorf("classsearch: POST returned %s", res.Status())
			span.RecordError(err)
			span.SetStatus(codes.Error, "non-200 response")
			return acc.emitted, err
		}

		done, err = scanPage(ctx, res.Body(), acc)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "page scan failed")
			return acc.emitted, err
		}

		p.advance()
	}

	if err := writer.Close(); err != nil {
		return acc.emitted, err
	}
	return acc.emitted, nil
}

// scanPage runs one response through the classifier and accumulator. It
// reports whether the page's progress counter says the scrape is complete;
// the rest of the page is still consumed either way, since records follow
// the counter on the final page too.
func scanPage(ctx context.Context, body []byte, acc *accumulator) (bool, error) {
	done := false

	sc := bufio.NewScanner(bytes.NewReader(body))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		f, ok := classify(sc.Text())
		if !ok {
			continue
		}
		if f.kind == fieldProgress {
			slog.DebugContext(ctx, "scrape progress", "current", f.current, "total", f.total)
			if f.current >= f.total {
				done = true
			}
			continue
		}
		if err := acc.consume(f); err != nil {
			return false, err
		}
	}
	return done, sc.Err()
}
