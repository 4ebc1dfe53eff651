package providers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"weathertrack.app/config"
	"weathertrack.app/errors"
	"weathertrack.app/metrics"
	"weathertrack.app/models"
)

// YouTubeProvider implements VideoProvider against the YouTube Data API.
// With MockMode enabled it serves fixed demo videos instead.
type YouTubeProvider struct {
	apiKey     string
	baseURL    string
	mockMode   bool
	httpClient *http.Client
}

// NewYouTubeProvider creates a new YouTube video provider
func NewYouTubeProvider(config *config.YouTubeConfig) *YouTubeProvider {
	return &YouTubeProvider{
		apiKey:     config.APIKey,
		baseURL:    config.BaseURL,
		mockMode:   config.MockMode,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
			Thumbnails   struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// SearchVideos finds travel videos about a location
func (p *YouTubeProvider) SearchVideos(location string, maxResults int) ([]models.Video, error) {
	if location == "" {
		return nil, errors.NewValidationError("location cannot be empty")
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	if p.mockMode {
		slog.Debug("YouTube provider in mock mode", "location", location)
		return mockVideos(location, maxResults), nil
	}

	values := url.Values{}
	values.Set("part", "snippet")
	values.Set("q", fmt.Sprintf("%s travel tourism attractions", location))
	values.Set("type", "video")
	values.Set("maxResults", fmt.Sprintf("%d", maxResults))
	values.Set("key", p.apiKey)

	start := time.Now()
	resp, err := p.httpClient.Get(fmt.Sprintf("%s/search?%s", p.baseURL, values.Encode()))
	metrics.ObserveUpstream("youtube", start, err)
	if err != nil {
		return nil, errors.NewExternalAPIError("video search request failed", err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewExternalAPIError(
			fmt.Sprintf("video search returned status %d", resp.StatusCode), nil)
	}

	var payload youtubeSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.NewExternalAPIError("decode video search response", err)
	}

	videos := make([]models.Video, 0, len(payload.Items))
	for _, item := range payload.Items {
		videos = append(videos, models.Video{
			ID:           item.ID.VideoID,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			Thumbnail:    item.Snippet.Thumbnails.Medium.URL,
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  item.Snippet.PublishedAt,
			URL:          fmt.Sprintf("https://www.youtube.com/watch?v=%s", item.ID.VideoID),
		})
	}
	return videos, nil
}
