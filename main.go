package main

import "github.com/quocvuong92/qw/cmd"

func main() {
	cmd.Execute()
}
