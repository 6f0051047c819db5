package main

import "github.com/liamg/scandiff/cmd"

func main() {
	cmd.Execute()
}
