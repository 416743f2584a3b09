package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/noulaye/Scrap-beac/internal/server"
	"github.com/noulaye/Scrap-beac/pkg/rates"
)

var showJSON bool

// overallTimeout はパイプライン全体の制限時間です。リトライを考慮してクライアントタイムアウトの2倍とします。
func overallTimeout() time.Duration {
	return appConfig.Timeout * 2
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "為替レート表を取得して標準出力に表示します",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), overallTimeout())
		defer cancel()

		report, err := p.Scrape(ctx, appConfig.SourceURL)
		if err != nil {
			return fmt.Errorf("レート表の取得に失敗しました: %w", err)
		}

		if showJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(server.NewReportResponse(*report))
		}
		return printReport(cmd.OutOrStdout(), *report)
	},
}

// printReport は表を整形して w に出力します。
func printReport(w io.Writer, report rates.Report) error {
	fmt.Fprintf(w, "Date de publication : %s\n", report.DateSource)
	fmt.Fprintf(w, "Source : %s\n\n", report.SourceURL)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(rates.Columns, "\t"))
	for _, row := range report.Rows {
		fmt.Fprintln(tw, strings.Join(row.Cells(), "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n合計: %d 件\n", len(report.Rows))
	return nil
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "JSON形式で出力します")
}
