package main

import "github.com/WanXcodinG/socialgrab/cmd"

var version = "dev"

func main() {
	cmd.SocialgrabVersion = version
	cmd.Execute()
}
