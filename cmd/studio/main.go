// Command studio drives the Content Creation Studio: it submits content
// briefs, follows the multi-agent workflow as it runs and saves the finished
// content package.
//
// Usage:
//
//	studio generate [--brief 'briefs/**/*.yaml'] [--plain] [--out package.md]
//	studio analyze [--gemini] [text | --file path | -]
//	studio health
//
// The service URL comes from --url or STUDIO_URL (default http://localhost:8000).
// Direct Gemini analysis reads GEMINI_API_KEY.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Getenv).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
