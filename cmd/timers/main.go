package main

import (
	"context"

	"github.com/faizmokh/timers/internal/cli"
)

func main() {
	ctx := context.Background()
	cli.Main(ctx)
}
