package main

import "github.com/dbsmedya/sizereport/cmd/sizereport/cmd"

func main() {
	cmd.Execute()
}
