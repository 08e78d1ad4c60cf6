package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdfocr/internal/config"
	"github.com/thywilljoshua/pdfocr/internal/inspect"
)

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [pdf...]",
		Short: "Report page count and existing text layer for PDFs (defaults to FILES or --config)",
		RunE: func(cmd *cobra.Command, args []string) error {
			files := args
			if len(files) == 0 {
				cfgPath, _ := cmd.Flags().GetString("config")
				var err error
				if files, err = config.Files(os.LookupEnv, cfgPath); err != nil {
					return err
				}
			}

			var reports []inspect.Report
			for _, path := range files {
				rep, err := inspect.File(path)
				if err != nil {
					return err
				}
				reports = append(reports, rep)
			}
			b, _ := json.MarshalIndent(reports, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
}
