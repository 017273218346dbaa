package main

import "github.com/widgetlab/widget-cli/cmd"

func main() {
	cmd.Execute()
}
