// Package main is the entry point for the clipper application.
package main

import (
	"github.com/babua-dev/clipper/cmd"
	"github.com/babua-dev/clipper/config"
	"github.com/babua-dev/clipper/internal/cache"
	"github.com/babua-dev/clipper/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.CollectGarbage()

	cmd.Execute()
}
