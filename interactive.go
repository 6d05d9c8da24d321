package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/signal"
	"sync"
	"syscall"

	"weather-lookup/lookup"
	"weather-lookup/render"

	"github.com/spf13/cobra"
)

func newInteractiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Show the configured location, then look up every city typed on stdin",
		Long: "Each line starts its own lookup against a shared display. Lookups may " +
			"overlap; whichever finishes last is what the display shows.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			provider := cfg.Provider()
			o := lookup.New(provider, provider, render.NewText(cfg.Language), lookup.WithForecastDays(cfg.ForecastDays))
			return runInteractive(ctx, o, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runInteractive drives one shared page from input lines until EOF or ctx ends
func runInteractive(ctx context.Context, o *lookup.Orchestrator, in io.Reader, out io.Writer) error {
	page := render.NewPage()
	var (
		wg    sync.WaitGroup
		outMu sync.Mutex
	)
	show := func() {
		outMu.Lock()
		defer outMu.Unlock()
		writeText(out, page)
		fmt.Fprintln(out)
	}

	_, _ = o.ByCoordinates(ctx, cfg.Location, cfg.PlaceName, page)
	show()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil
		case line, ok := <-lines:
			if !ok {
				wg.Wait()
				return nil
			}
			wg.Add(1)
			go func(city string) {
				defer wg.Done()
				_, _ = o.ByCity(ctx, city, page)
				show()
			}(line)
		}
	}
}
