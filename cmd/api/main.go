package main

import "github.com/safar/artisan-market/internal/cmd"

func main() {
	cmd.Execute()
}
