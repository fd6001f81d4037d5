package main

import (
	"github.com/spf13/cobra"

	"github.com/malonaz/chatd/configuration"
	"github.com/malonaz/chatd/webserver"
)

const configFilepath = "~/.chatd/config.json"

var rootCmd = &cobra.Command{
	Use:   "chatd",
	Short: "A local-first AI chat application",
}

func main() {
	config, err := configuration.Parse(configFilepath)
	if err != nil {
		panic(err)
	}

	rootCmd.AddCommand(webserver.NewServeCmd(config))
	rootCmd.Execute()
}
