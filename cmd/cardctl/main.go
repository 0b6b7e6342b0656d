package main

import "github.com/devstats/social-card-service/cmd/cardctl/commands"

func main() {
	cli := commands.NewRootCmd()

	err := cli.Execute()
	if err != nil {
		panic(err)
	}
}
