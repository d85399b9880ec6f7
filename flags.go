package main

import (
	"github.com/urfave/cli/v2"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "Path to the YAML configuration file",
	}

	abiFlag = &cli.StringFlag{
		Name:     "abi",
		Usage:    "Path to the contract interface description (ABI JSON)",
		Required: true,
	}

	targetFlag = &cli.StringFlag{
		Name:     "target",
		Usage:    "Address of the deployed contract under test",
		Required: true,
	}

	networkFlag = &cli.StringFlag{
		Name:  "network",
		Usage: "Named network to run against (unknown names use the default)",
	}

	seedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "Seed for fuzz argument sampling (0 = time-based)",
	}

	skipValidationFlag = &cli.BoolFlag{
		Name:  "skip-validation",
		Usage: "Run even when the target fails the code-existence probe",
	}
)
