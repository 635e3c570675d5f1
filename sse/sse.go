// Package sse consumes the generation service's server-sent event stream.
//
// Bytes from the transport pass through a [Decoder], which reassembles
// `data: ` frames across arbitrary chunk boundaries. [Classify] turns each
// frame payload into a [studio.Event], and [Run] folds the events into
// [studio.State] snapshots with [studio.Apply], one snapshot per Next.
package sse

const (
	dataPrefix        = "data: "
	defaultBufferSize = 4096
)
