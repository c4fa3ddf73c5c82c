// Package main provides the stride CLI.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/stride-hpc/stride/internal/parallel"
	"github.com/stride-hpc/stride/internal/simd"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("stride %s\n", version)
		return
	}

	cfg := parallel.DefaultConfig()

	fmt.Println("stride - portable loop execution for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Host capabilities:")
	fmt.Printf("  CPUs:          %d\n", runtime.NumCPU())
	fmt.Printf("  Workers:       %d (grain %d)\n", cfg.NumWorkers, cfg.MinGrain)
	fmt.Printf("  SIMD level:    %s\n", simd.CurrentLevel())
	fmt.Printf("  Vector width:  %d bytes (%d float32 lanes)\n", simd.CurrentWidth(), simd.Lanes(4))
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
}
