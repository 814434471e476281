/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/ssargent/sealink/cmd/ferry/cmd"

func main() {
	cmd.Execute()
}
