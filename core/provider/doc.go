// Package provider defines the remote image lookup capability and its SteamGridDB client.
//
// An ImageProvider answers two questions: which provider games match a name, and which
// images of a given kind exist for a provider game. Download streams an image body.
//
// # SteamGridDB
//
// SteamGridDB implements ImageProvider over the public v2 HTTP API. The API key is sent
// unchanged as a bearer token. Any non-200 status or a response with success=false is an
// error; 404 and 401/403 additionally match ErrNotFound and ErrUnauthorized.
//
// Searches are memoized per client and concurrent searches for the same name share one
// request through singleflight.
//
// # Usage
//
//	p := provider.NewSteamGridDB(cfg.APIKey, provider.WithTimeout(30*time.Second))
//	games, err := p.SearchByName(ctx, "Celeste")
//	images, err := p.FetchURLs(ctx, games[0].ID, provider.KindGrid)
package provider
