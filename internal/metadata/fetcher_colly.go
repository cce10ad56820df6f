package metadata

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// CollyFetcher implements the Fetcher interface using the Colly collector.
type CollyFetcher struct {
	baseCollector *colly.Collector
	logger        *zap.Logger
}

// NewCollyFetcher constructs a configured Colly-based Fetcher.
func NewCollyFetcher(cfg FetchConfig, logger *zap.Logger) (*CollyFetcher, error) {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	// The fetch impersonates a browser; robots.txt is a crawler concern
	// and a single preview fetch is not a crawl.
	base := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.IgnoreRobotsTxt(),
		colly.MaxBodySize(cfg.MaxBodyBytes),
	)
	base.AllowURLRevisit = false
	base.WithTransport(&http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          16,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   cfg.Timeout,
		ResponseHeaderTimeout: cfg.Timeout,
		ForceAttemptHTTP2:     true,
	})
	base.SetRequestTimeout(cfg.Timeout)

	return &CollyFetcher{
		baseCollector: base,
		logger:        logger,
	}, nil
}

// Fetch retrieves one page via a clone of the configured collector.
// Any transport failure, timeout, or non-2xx status surfaces as *FetchError.
func (f *CollyFetcher) Fetch(ctx context.Context, rawURL string) (Page, error) {
	collector := f.baseCollector.Clone()
	resultCh := make(chan fetchResult, 1)
	var once sync.Once
	send := func(res fetchResult) {
		once.Do(func() {
			resultCh <- res
		})
	}

	collector.OnResponse(func(r *colly.Response) {
		page := Page{
			URL:        rawURL,
			FinalURL:   r.Request.URL.String(),
			StatusCode: r.StatusCode,
			Body:       append([]byte{}, r.Body...),
		}
		send(fetchResult{page: page})
	})

	collector.OnError(func(r *colly.Response, err error) {
		if err == nil {
			err = errors.New("unknown colly error")
		}
		fe := &FetchError{URL: rawURL, Err: err}
		if r != nil {
			fe.StatusCode = r.StatusCode
		}
		send(fetchResult{err: fe})
	})

	if err := collector.Visit(rawURL); err != nil {
		f.logger.Debug("Visit failed", zap.String("url", rawURL), zap.Error(err))
		// OnError usually fired first with the status code attached.
		select {
		case res := <-resultCh:
			if res.err != nil {
				return Page{}, res.err
			}
		default:
		}
		return Page{}, &FetchError{URL: rawURL, Err: err}
	}
	collector.Wait()

	select {
	case res := <-resultCh:
		if err := ctx.Err(); err != nil {
			return Page{}, &FetchError{URL: rawURL, Err: err}
		}
		return res.page, res.err
	default:
		return Page{}, &FetchError{URL: rawURL, Err: errors.New("fetch produced no result")}
	}
}

type fetchResult struct {
	page Page
	err  error
}
