package main

import "github.com/luiz-simples/keyop.git/internal/cli"

func main() {
	cli.Execute()
}
