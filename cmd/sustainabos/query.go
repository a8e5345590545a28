package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sustainabos/sustainabos-go/pkg/sustainabos"
	"github.com/sustainabos/sustainabos-go/pkg/sustainabos/output"
)

func newVesselCmd(a *app) *cobra.Command {
	var rf renderFlags
	cmd := &cobra.Command{
		Use:   "vessel NAME",
		Short: "Show the tracker rows of a vessel",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.loadStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("load failed: %w", err)
			}
			name := strings.Join(args, " ")
			view, err := store.GetVesselSummary(name)
			if errors.Is(err, sustainabos.ErrNoData) {
				return fmt.Errorf("vessel %q: %w", name, err)
			}
			if err != nil {
				return fmt.Errorf("vessel summary: %w", err)
			}
			return rf.render(cmd, view, nil)
		},
	}
	rf.register(cmd)
	return cmd
}

func newDeviceCmd(a *app) *cobra.Command {
	var rf renderFlags
	cmd := &cobra.Command{
		Use:   "device NAME",
		Short: "Show the installations of a device on every vessel",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.loadStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("load failed: %w", err)
			}
			name := strings.Join(args, " ")
			view, err := store.GetDeviceSummary(name)
			if err != nil {
				return fmt.Errorf("device %q: %w", name, err)
			}
			if view.Empty() {
				a.logger.Info("no installations found")
			}
			return rf.render(cmd, view, nil)
		},
	}
	rf.register(cmd)
	return cmd
}

func newListsCmd(a *app) *cobra.Command {
	var rf renderFlags
	var summary string
	cmd := &cobra.Command{
		Use:   "lists [vessels|devices|summaries]",
		Short: "Print the vessel and device lookup lists or a summary block",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.loadStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("load failed: %w", err)
			}
			if summary != "" {
				view, ok := store.Summary(summary)
				if !ok {
					return fmt.Errorf("summary %q not found (have %s)", summary, strings.Join(store.SummaryNames(), ", "))
				}
				return rf.render(cmd, view, nil)
			}

			which := "vessels"
			if len(args) == 1 {
				which = args[0]
			}
			switch which {
			case "vessels":
				return rf.render(cmd, output.ListView("Vessel", store.Vessels()), store.Vessels())
			case "devices":
				return rf.render(cmd, output.ListView("Device", store.Devices()), store.Devices())
			case "summaries":
				return rf.render(cmd, output.ListView("Summary", store.SummaryNames()), store.SummaryNames())
			default:
				return fmt.Errorf("unknown list: %s (must be vessels, devices, or summaries)", which)
			}
		},
	}
	cmd.Flags().StringVar(&summary, "summary", "", "Print the named summary block instead")
	rf.register(cmd)
	return cmd
}

func newTopCmd(a *app) *cobra.Command {
	var rf renderFlags
	var limit int
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Rank vessels by total yearly savings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.loadStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("load failed: %w", err)
			}
			totals := store.TopVessels(limit)
			return rf.render(cmd, output.TotalsView(totals), totals)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of vessels (default from config)")
	rf.register(cmd)
	return cmd
}
