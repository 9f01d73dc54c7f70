package main

import (
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func seasonsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seasons",
		Short: "List the available seasons and the source serving each",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"Season", "Source"})
			for _, s := range a.client.Seasons(time.Now()) {
				tw.AppendRow(table.Row{s.Year, s.Source})
			}
			tw.Render()
			return nil
		},
	}
}
