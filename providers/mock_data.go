package providers

import (
	"fmt"

	"weathertrack.app/models"
)

// mockPlaces returns a fixed demo dataset for one place type, positioned
// near the given coordinate so the results look plausible on a map.
func mockPlaces(lat, lon float64, placeType string) []models.Place {
	seeds, ok := mockPlaceSeeds[placeType]
	if !ok {
		seeds = mockPlaceSeeds["restaurant"]
	}

	places := make([]models.Place, 0, len(seeds))
	for i, seed := range seeds {
		openNow := i%2 == 0
		places = append(places, models.Place{
			PlaceID:          fmt.Sprintf("mock_%s_%d", placeType, i+1),
			Name:             seed.name,
			FormattedAddress: seed.address,
			Rating:           seed.rating,
			UserRatingsTotal: seed.ratings,
			Types:            []string{placeType, "point_of_interest", "establishment"},
			Location: models.Coordinates{
				Lat: lat + float64(i+1)*0.002,
				Lon: lon - float64(i+1)*0.003,
			},
			PhotoURL: "https://via.placeholder.com/400x300/4A90E2/ffffff?text=Place+Photo",
			OpenNow:  &openNow,
		})
	}
	return places
}

type mockPlaceSeed struct {
	name    string
	address string
	rating  float64
	ratings int
}

var mockPlaceSeeds = map[string][]mockPlaceSeed{
	"restaurant": {
		{"The Garden Bistro", "12 Market Street", 4.6, 324},
		{"Blue Harbor Grill", "48 Riverside Avenue", 4.3, 189},
		{"Casa Milano", "7 Old Town Square", 4.5, 512},
	},
	"hospital": {
		{"Central City Hospital", "200 Health Boulevard", 4.1, 98},
		{"St. Mary Medical Center", "15 Hillcrest Road", 4.4, 156},
	},
	"lodging": {
		{"Grand Plaza Hotel", "1 Station Square", 4.2, 871},
		{"Riverside Inn", "33 Waterfront Lane", 4.0, 243},
		{"The Old Mill Guesthouse", "9 Miller's Way", 4.7, 64},
	},
}

// mockVideos returns demo travel videos for a location
func mockVideos(location string, maxResults int) []models.Video {
	titles := []string{
		"Top 10 Things to Do in %s",
		"%s Travel Guide",
		"Exploring %s in 4K",
		"Hidden Gems of %s",
		"A Weekend in %s",
	}

	if maxResults > len(titles) {
		maxResults = len(titles)
	}

	videos := make([]models.Video, 0, maxResults)
	for i := 0; i < maxResults; i++ {
		id := fmt.Sprintf("mock_video_%d", i+1)
		videos = append(videos, models.Video{
			ID:           id,
			Title:        fmt.Sprintf(titles[i], location),
			Description:  fmt.Sprintf("Discover the best attractions, food and culture %s has to offer.", location),
			Thumbnail:    "https://via.placeholder.com/320x180/E24A4A/ffffff?text=Travel+Video",
			ChannelTitle: "World Travel Channel",
			PublishedAt:  "2024-05-01T12:00:00Z",
			URL:          fmt.Sprintf("https://www.youtube.com/watch?v=%s", id),
		})
	}
	return videos
}
