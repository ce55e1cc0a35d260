package main

import (
	"fmt"
	"os"

	"gltf-sketch/internal/config"
	"gltf-sketch/internal/launch"
)

func main() {
	if err := launch.Run(config.VariantRotating); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
