package main

import (
	"context"

	"github.com/PrinceRuselBStaMaria/Rezo/cmd"
)

func main() {
	cmd.Execute(context.Background())
}
