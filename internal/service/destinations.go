package service

import (
	"encoding/json"

	"github.com/atinyakov/travelguide/internal/models"
)

var catalog = []models.Destination{
	{
		ID:          1,
		Name:        "Kyoto, Japan",
		Description: "Immerse yourself in the ancient traditions of Japan's cultural capital.",
		Image:       photo("1599620919128-a95eeb2d38de"),
		Rating:      4.9,
		Tags:        []string{"Heritage"},
	},
	{
		ID:          2,
		Name:        "Venice, Italy",
		Description: "Experience the floating city's timeless beauty and artistic heritage.",
		Image:       photo("1516483638261-f4dbaf036963"),
		Rating:      4.7,
		Tags:        []string{"Romantic"},
	},
	{
		ID:          3,
		Name:        "Marrakech, Morocco",
		Description: "Discover vibrant markets, exotic flavors and architectural wonders.",
		Image:       photo("1566438480900-0609be27a4be"),
		Rating:      4.8,
		Tags:        []string{"Food"},
	},
	{
		ID:          4,
		Name:        "Angkor Wat, Cambodia",
		Description: "The world's largest religious monument, blending Hindu and Buddhist traditions.",
		Image:       photo("1531572753322-ad063cecc140"),
		Rating:      4.9,
		Tags:        []string{"Heritage", "Spiritual"},
	},
	{
		ID:          5,
		Name:        "Machu Picchu, Peru",
		Description: "The iconic Incan citadel set amidst breathtaking mountain scenery.",
		Image:       photo("1525874684015-58379d421a52"),
		Rating:      4.8,
		Tags:        []string{"Heritage", "Nature"},
	},
	{
		ID:          6,
		Name:        "Istanbul, Turkey",
		Description: "Where East meets West, offering rich cultural fusion and architectural marvels.",
		Image:       photo("1543429257-2b13a540c0c3"),
		Rating:      4.7,
		Tags:        []string{"Food", "Art"},
	},
	{
		ID:          7,
		Name:        "Varanasi, India",
		Description: "One of the world's oldest continuously inhabited cities, sacred to Hindus.",
		Image:       photo("1568797629192-908f6f1cfbcf"),
		Rating:      4.6,
		Tags:        []string{"Spiritual", "Food"},
	},
	{
		ID:          8,
		Name:        "Petra, Jordan",
		Description: "The ancient city carved into pink sandstone cliffs, a wonder of engineering.",
		Image:       photo("1519922639192-e73293ca430e"),
		Rating:      4.9,
		Tags:        []string{"Heritage", "Art"},
	},
}

func photo(id string) string {
	return "https://images.unsplash.com/photo-" + id + "?ixlib=rb-1.2.1&auto=format&fit=crop&w=800&q=80"
}

// DestinationService serves the static destination catalog.
type DestinationService struct {
	body []byte
}

// NewDestinationService encodes the catalog once. Every response body is the
// same byte slice for the lifetime of the process.
func NewDestinationService() (*DestinationService, error) {
	body, err := json.Marshal(struct {
		Destinations []models.Destination `json:"destinations"`
	}{catalog})
	if err != nil {
		return nil, err
	}
	return &DestinationService{body: body}, nil
}

// CatalogJSON returns the encoded {"destinations": [...]} response body.
// Callers must not modify it.
func (s *DestinationService) CatalogJSON() []byte {
	return s.body
}
