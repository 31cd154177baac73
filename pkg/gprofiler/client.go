package gprofiler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"
)

// Query is the parameter set of one g:GOSt profile request. Genes order
// matters: the response's per-term evidence arrays align with it.
type Query struct {
	Organism   string   `json:"organism"`
	Genes      []string `json:"query"`
	Sources    []string `json:"sources"`
	Background []string `json:"background,omitempty"`

	UserThreshold    float64 `json:"user_threshold"`
	CorrectionMethod string  `json:"significance_threshold_method"`
	DomainScope      string  `json:"domain_scope"`

	Ordered      bool `json:"ordered"`
	AllResults   bool `json:"all_results"`
	NoIEA        bool `json:"no_iea"`
	MeasureUnder bool `json:"measure_underrepresentation"`

	// false so the service returns per-gene evidence codes
	NoEvidences bool `json:"no_evidences"`
}

func NewQuery(genes []string) *Query {
	return &Query{
		Organism:         Organism,
		Genes:            genes,
		Sources:          DefaultSources,
		UserThreshold:    UserThreshold,
		CorrectionMethod: CorrectionMethod,
		DomainScope:      "annotated",
	}
}

// SetBackground switches the test universe from all annotated genes to a
// custom gene list.
func (q *Query) SetBackground(genes []string) *Query {
	q.Background = genes
	q.DomainScope = "custom"
	return q
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// Profile sends one profile request and returns the typed result rows
// sorted by (source, p-value). Single attempt, no retry.
func (c *Client) Profile(ctx context.Context, query *Query) (*Response, error) {
	if len(query.Genes) == 0 {
		return nil, fmt.Errorf("empty gene list")
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	url := c.BaseURL + "/api/gost/profile/"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	slog.Info("Profile", "url", url, "organism", query.Organism, "genes", len(query.Genes), "background", len(query.Background), "sources", query.Sources)
	resp, err := c.HTTP.Do(req)
	if err != nil {
		slog.Error("Profile", "err", err)
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile: %s: %s", resp.Status, snippet(raw))
	}

	var response Response
	if err := json.Unmarshal(raw, &response); err != nil {
		slog.Error("Unmarshal profile response", "err", err, "body", snippet(raw))
		return nil, err
	}

	response.CalIntersections(query.Genes)
	sort.SliceStable(
		response.Result,
		func(i, j int) bool {
			if response.Result[i].Source == response.Result[j].Source {
				return response.Result[i].PValue < response.Result[j].PValue
			}
			return response.Result[i].Source < response.Result[j].Source
		},
	)

	slog.Info("Profile done", "terms", len(response.Result))
	return &response, nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
