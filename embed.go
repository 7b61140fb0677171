package blogpage

import "embed"

// EmbeddedAssets holds the stylesheet served at /public/site.css.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
