package main

import (
	"fmt"
	"os"

	"github.com/Ahmemez28/VideoSubtitler/cmd"
	"github.com/Ahmemez28/VideoSubtitler/internal"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// a bad menu choice or an empty input directory ends the run normally
		if internal.IsUserError(err) {
			fmt.Println(err)
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
