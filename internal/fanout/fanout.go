package fanout

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Result is the outcome for one candidate URL. A transport failure or timeout
// sets Err; anything the node answered with — including a 404 miss body — is
// carried in Body.
type Result struct {
	URL  string
	Body string
	Err  error
}

// Client locates the latest call record for a number that may live on any of
// several nodes under any of several dialing-prefix interpretations. It
// queries every node × prefix combination concurrently and collects the raw
// responses.
type Client struct {
	nodes    []string
	prefixes []string
	port     int
	timeout  time.Duration
	http     *http.Client
}

func NewClient(nodes, prefixes []string, port int, timeout time.Duration) *Client {
	return &Client{
		nodes:    nodes,
		prefixes: prefixes,
		port:     port,
		timeout:  timeout,
		http:     &http.Client{},
	}
}

// URLs builds the full candidate set for baseNumber, node-major: every prefix
// for the first node, then every prefix for the next.
func (c *Client) URLs(baseNumber string) []string {
	urls := make([]string, 0, len(c.nodes)*len(c.prefixes))
	for _, node := range c.nodes {
		for _, prefix := range c.prefixes {
			urls = append(urls, fmt.Sprintf("http://%s:%d/cdr/%s%s", node, c.port, prefix, baseNumber))
		}
	}
	return urls
}

// Run issues one request per candidate URL, all concurrently, each bounded by
// its own timeout. A failed or timed-out request only fails its own entry;
// the siblings keep going and are never cancelled early. Entries come back in
// candidate-set order once every request has finished or timed out.
func (c *Client) Run(ctx context.Context, baseNumber string) []Result {
	urls := c.URLs(baseNumber)
	results := make([]Result, len(urls))

	var wg sync.WaitGroup
	for i, url := range urls {
		i, url := i, url
		wg.Add(1)
		go func() {
			defer wg.Done()
			body, err := c.fetch(ctx, url)
			results[i] = Result{URL: url, Body: body, Err: err}
		}()
	}
	wg.Wait()

	return results
}

func (c *Client) fetch(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return string(body), nil
}
