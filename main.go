package main

import "javaboot/cmd"

func main() {
	cmd.Execute()
}
