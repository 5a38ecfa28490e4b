// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli"

	"github.com/gogpu/raytrace/backend"
)

func backendsCommand() cli.Command {
	return cli.Command{
		Name:  "backends",
		Usage: "list registered backends and demo scenes",
		Action: func(*cli.Context) error {
			fmt.Println("backends:", strings.Join(backend.Available(), ", "))
			fmt.Println("demos:   ", strings.Join(demoNames(), ", "))
			return nil
		},
	}
}
