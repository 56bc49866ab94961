package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/randomtoy/planar-go/internal/domain"
)

// planarQuery selects every plane and phenomenon card.
const planarQuery = "t:plane or t:phenomenon"

// maxPages bounds pagination in case next_page never clears.
const maxPages = 20

// Client implements ports.CardCatalog via the Scryfall search API.
// The first successful listing is cached for the life of the client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *slog.Logger

	mu    sync.Mutex
	cards []domain.Card
}

func NewClient(httpClient *http.Client, baseURL, userAgent string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		logger:     logger,
	}
}

// searchResponse mirrors the Scryfall list object.
type searchResponse struct {
	Data     []scryfallCard `json:"data"`
	HasMore  bool           `json:"has_more"`
	NextPage string         `json:"next_page"`
}

type scryfallCard struct {
	Name          string  `json:"name"`
	TypeLine      string  `json:"type_line"`
	MultiverseIDs []int64 `json:"multiverse_ids"`
	ImageURIs     struct {
		ArtCrop string `json:"art_crop"`
		Normal  string `json:"normal"`
	} `json:"image_uris"`
}

func (c *Client) Cards(ctx context.Context) ([]domain.Card, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cards != nil {
		return c.cards, nil
	}

	cards, err := c.fetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}
	c.logger.InfoContext(ctx, "loaded scryfall catalog", "cards", len(cards))
	c.cards = cards
	return cards, nil
}

func (c *Client) fetchAll(ctx context.Context) ([]domain.Card, error) {
	q := url.Values{}
	q.Set("q", planarQuery)
	q.Set("unique", "cards")
	next := c.baseURL + "/cards/search?" + q.Encode()

	var cards []domain.Card
	seen := make(map[int64]struct{})
	for page := 0; next != ""; page++ {
		if page == maxPages {
			return nil, fmt.Errorf("more than %d result pages", maxPages)
		}
		resp, err := c.fetchPage(ctx, next)
		if err != nil {
			return nil, err
		}
		for _, sc := range resp.Data {
			card, ok := toCard(sc)
			if !ok {
				c.logger.DebugContext(ctx, "skipping card without multiverse id", "name", sc.Name)
				continue
			}
			if _, dup := seen[card.ID]; dup {
				continue
			}
			seen[card.ID] = struct{}{}
			cards = append(cards, card)
		}
		next = ""
		if resp.HasMore {
			next = resp.NextPage
		}
	}

	if len(cards) == 0 {
		return nil, fmt.Errorf("search returned no usable cards")
	}
	return cards, nil
}

func (c *Client) fetchPage(ctx context.Context, pageURL string) (searchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return searchResponse{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return searchResponse{}, fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return searchResponse{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return searchResponse{}, fmt.Errorf("upstream status %d: %s", resp.StatusCode, string(body))
	}

	var out searchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return searchResponse{}, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

func toCard(sc scryfallCard) (domain.Card, bool) {
	if len(sc.MultiverseIDs) == 0 {
		return domain.Card{}, false
	}
	art := sc.ImageURIs.ArtCrop
	if art == "" {
		art = sc.ImageURIs.Normal
	}
	return domain.Card{
		ID:   sc.MultiverseIDs[0],
		Name: sc.Name,
		Type: cardType(sc.Name, sc.TypeLine),
		Art:  art,
	}, true
}

func cardType(name, typeLine string) domain.CardType {
	if !strings.HasPrefix(typeLine, "Phenomenon") {
		return domain.TypePlane
	}
	switch name {
	case "Spatial Merging":
		return domain.TypeSpatialMerging
	case "Interplanar Tunnel":
		return domain.TypeInterplanarTunnel
	default:
		return domain.TypePhenomenon
	}
}
