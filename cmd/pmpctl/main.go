package main

import "github.com/yanmoais/project-management-platform/internal/cli"

func main() {
	cli.Execute()
}
