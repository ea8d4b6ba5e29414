package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zappabad/tickerboard/internal/format"
	newsview "github.com/zappabad/tickerboard/internal/news/view"
	"github.com/zappabad/tickerboard/tui/panels"
)

func newNewsCmd(a *app) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "news TICKER",
		Short: "Print one page of news for a ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			closeLog, err := a.initLogging(os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			_, ns, err := a.services()
			if err != nil {
				return err
			}

			feed := newsview.NewFeedState(args[0], ns.PageSize())
			feed.Page = max(page, 1)
			key := feed.Key()

			loaded, err := ns.LoadPage(cmd.Context(), key.Ticker, key.Page)
			if err != nil {
				return err
			}
			return writeNews(a.out, loaded)
		},
	}
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number, starting at 1")
	return cmd
}

func writeNews(out io.Writer, page newsview.Page) error {
	w := bufio.NewWriter(out)

	switch {
	case page.Exhausted():
		fmt.Fprintln(w, "No more news")
	case page.Empty():
		fmt.Fprintln(w, "No news found for this ticker.")
	}
	for _, item := range page.Items {
		fmt.Fprintf(w, "%s · %s\n", orPlaceholder(item.Source), orPlaceholder(item.UpdatedTime))
		fmt.Fprintf(w, "  %s\n", item.Title)
		if item.Description != "" {
			fmt.Fprintf(w, "  %s\n", item.Description)
		}
		if item.CanonicalURL != "" {
			fmt.Fprintf(w, "  %s\n", item.CanonicalURL)
		}
		fmt.Fprintln(w)
	}

	label := panels.PageLabel(page)
	if page.HasNext() {
		label += fmt.Sprintf(" (next: --page %d)", page.Number+1)
	}
	fmt.Fprintln(w, label)
	return w.Flush()
}

func orPlaceholder(s string) string {
	if s == "" {
		return format.Placeholder
	}
	return s
}
