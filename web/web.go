// Package web carries the static assets baked into the foodgram
// binaries: the API reference page and the stylesheet of the admin
// listings. `foodgramctl collectstatic` copies the same tree out to
// STATIC_ROOT for the frontend proxy to serve.
package web

import "embed"

//go:embed static
var Static embed.FS
