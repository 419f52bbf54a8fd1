package provider

import (
	"context"
	"errors"
	"io"
)

// Kind is an artwork kind.
type Kind string

const (
	// KindGrid is the portrait library capsule (600x900).
	KindGrid Kind = "grid"
	// KindHero is the wide banner behind the game page header.
	KindHero Kind = "hero"
	// KindLogo is the transparent title logo.
	KindLogo Kind = "logo"
	// KindHome is the landscape capsule shown on the home shelf (920x430).
	KindHome Kind = "home"
)

// Kinds lists every kind in processing order.
var Kinds = []Kind{KindGrid, KindHero, KindLogo, KindHome}

var (
	// ErrNotFound is returned when the provider has no such resource.
	ErrNotFound = errors.New("provider: not found")
	// ErrUnauthorized is returned when the credential is missing or rejected.
	ErrUnauthorized = errors.New("provider: unauthorized")
)

// Game is one search result.
type Game struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Image is one candidate image of a kind.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ImageProvider looks up games and their artwork.
type ImageProvider interface {
	// SearchByName returns matching games, best match first.
	SearchByName(ctx context.Context, name string) ([]Game, error)
	// FetchURLs returns the candidate images of kind for gameID.
	FetchURLs(ctx context.Context, gameID int, kind Kind) ([]Image, error)
	// Download opens the image at url. The caller closes the body.
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}
