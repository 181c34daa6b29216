package main

import "os"

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		console{w: os.Stderr}.failure("error: %v", err)
		os.Exit(1)
	}
}
