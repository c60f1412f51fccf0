package main

import "gene_weaver_go/cmd"

func main() {
	cmd.Execute()
}
