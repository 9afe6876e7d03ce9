package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/go-archviz-kit/pkg/history"
)

var historyLimit int

// historyCmd はローカルの生成履歴を表示するのだ。
var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "生成履歴を表示するのだ。",
	Long:  `id を省略すると新しい順に一覧を、指定するとその1件を JSON で表示するのだ。`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  historyCommand,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", history.DefaultListLimit, "表示する件数なのだ。")
}

func historyCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig()

	store, err := history.Open(ctx, cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if len(args) == 1 {
		rec, err := store.Get(ctx, args[0])
		if errors.Is(err, history.ErrNotFound) {
			return fmt.Errorf("履歴 '%s' は見つからないのだ", args[0])
		}
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), rec)
	}

	records, err := store.List(ctx, historyLimit)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%-8s\t%-14s\t%s\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.ID, r.Status, r.StyleID, r.OutputPath)
	}
	return nil
}
