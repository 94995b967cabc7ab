// Package googlebooks resolves title/author pairs against the Google Books
// volumes API.
package googlebooks

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/core/domain"
	"github.com/DeathlighterZ1/E-Library-Organizer-Agent/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL, apiKey string, timeout time.Duration, executor *resilience.Executor) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		executor:   executor,
	}
}

type volumesResponse struct {
	Items []struct {
		VolumeInfo struct {
			Title       string   `json:"title"`
			Authors     []string `json:"authors"`
			Categories  []string `json:"categories"`
			Description string   `json:"description"`
			ImageLinks  struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Search queries the volumes endpoint with "title author" joined by the
// URL-safe '+' separator and consumes the first matching volume. A nil
// result with a nil error means the catalog had no match.
func (c *Client) Search(ctx context.Context, title, author string) (*domain.CatalogResult, error) {
	query := buildQuery(title, author)
	if query == "" {
		return nil, nil
	}

	var payload volumesResponse
	call := func(ctx context.Context) error {
		return c.getVolumes(ctx, query, &payload)
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "googlebooks_volumes", call, classifyLookupError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, domain.WrapError(domain.ErrCatalogUnavailable, "google books search", err)
	}

	if len(payload.Items) == 0 {
		return nil, nil
	}

	info := payload.Items[0].VolumeInfo
	result := &domain.CatalogResult{
		Title:       info.Title,
		Description: info.Description,
		Thumbnail:   info.ImageLinks.Thumbnail,
	}
	if len(info.Authors) > 0 {
		result.Author = info.Authors[0]
	}
	if len(info.Categories) > 0 {
		result.Genre = info.Categories[0]
	}
	return result, nil
}

func buildQuery(title, author string) string {
	joined := strings.TrimSpace(fmt.Sprintf("%s %s", title, author))
	return strings.ReplaceAll(joined, " ", "+")
}
