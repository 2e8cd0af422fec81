/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/tabkit/tabrec/cmd/tabrec/cmd"

func main() {
	cmd.Execute()
}
