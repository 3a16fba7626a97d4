package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"hr-tui/internal/app"
	"hr-tui/internal/hrclient"
	"hr-tui/internal/logger"
	"hr-tui/internal/mock"
)

func main() {
	cliApp := &cli.App{
		Name:  "hr-tui",
		Usage: "terminal chat client for the HR assistant backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "backend",
				Usage:   "backend base URL",
				EnvVars: []string{"HR_API_URL"},
				Value:   "http://localhost:8000",
			},
		},
		Action: runTUI,
		Commands: []*cli.Command{
			{
				Name:  "mock",
				Usage: "run a mock HR backend for local development",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "port",
						Usage: "port to listen on",
						Value: 8000,
					},
				},
				Action: func(c *cli.Context) error {
					return mock.NewServer(c.Int("port")).Start()
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(c *cli.Context) error {
	log, closer := logger.New()
	if closer != nil {
		defer closer.Close()
	}

	client := hrclient.NewClient(c.String("backend"), hrclient.WithLogger(log))

	model := app.New(client, log)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Set program reference for stream callbacks
	model.SetProgram(p)

	_, err := p.Run()
	return err
}
