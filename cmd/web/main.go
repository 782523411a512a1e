// Package main starts the HyperLocal web shell service.
package main

import (
	webcmd "github.com/louisbranch/hyperlocal/internal/cmd/web"
	entrypoint "github.com/louisbranch/hyperlocal/internal/platform/cmd"
)

func main() {
	entrypoint.Main(entrypoint.ServiceWeb, webcmd.ParseConfig, webcmd.Run)
}
