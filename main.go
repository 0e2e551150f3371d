package main

import "github.com/hiromon0125/swen746-project/cmd"

func main() {
	cmd.Execute()
}
