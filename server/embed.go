package server

import "embed"

// EmbeddedAssets contains the stylesheet used by the inspection pages.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
