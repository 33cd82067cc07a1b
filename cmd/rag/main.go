package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"ragpipe/internal/config"
	"ragpipe/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	var dims int

	rootCmd := &cobra.Command{
		Use:           "rag",
		Short:         "chunk a text document, index it and answer queries against it",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ./config.yaml or ~/.config/rag/config.yaml)")
	rootCmd.PersistentFlags().IntVar(&dims, "dims", 0, "Embedding dimensionality, clamped to [2,8] (overrides config)")

	loadConfig := func(console bool) (*config.AppConfig, error) {
		var cfg *config.AppConfig
		var path string
		var err error
		if cfgPath == "" {
			cfg, path, err = config.LoadDefault()
		} else {
			cfg, err = config.Load(cfgPath)
			path = cfgPath
		}
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if dims != 0 {
			cfg.Index.Dimensions = dims
		}
		if !console {
			cfg.Log.Console = false
			if cfg.Log.File == "" {
				cfg.Log.File = filepath.Join(os.TempDir(), "rag.log")
			}
		}
		logger.Init(cfg.Log.File, cfg.Log.Level, cfg.Log.FileCount, cfg.Log.FileSize, cfg.Log.KeepDays, cfg.Log.Console)
		logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", path))
		return cfg, nil
	}

	tuiCmd := &cobra.Command{
		Use:   "tui <file>",
		Short: "interactive query screen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(false)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			sess, err := newSession(ctx, cfg, args[0], cmd.InOrStdin(), nil)
			if err != nil {
				return err
			}
			defer sess.Close()
			_, err = tea.NewProgram(tui.New(ctx, sess), tea.WithAltScreen()).Run()
			return err
		},
	}

	queryCmd := &cobra.Command{
		Use:   "query <file> <question...>",
		Short: "rank chunks for a question and print the synthesized answer",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(true)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			sess, err := newSession(ctx, cfg, args[0], cmd.InOrStdin(), nil)
			if err != nil {
				return err
			}
			defer sess.Close()

			res, pending := sess.Query(ctx, strings.Join(args[1:], " "))
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "query vector %v\n", res.QueryVector)
			for _, r := range res.Results {
				fmt.Fprintf(out, "#%d\t%.4f\t%s\n", r.ID, r.Similarity, strings.TrimSpace(r.Text))
			}
			answer, err := pending.Wait(ctx)
			if err != nil {
				return fmt.Errorf("wait for answer: %w", err)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, answer)
			return nil
		},
	}

	chunksCmd := &cobra.Command{
		Use:   "chunks <file>",
		Short: "print the index built from a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(true)
			if err != nil {
				return err
			}
			sess, err := newSession(cmd.Context(), cfg, args[0], cmd.InOrStdin(), nil)
			if err != nil {
				return err
			}
			defer sess.Close()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "dimensions %d\n", sess.Dimensions())
			for _, e := range sess.Index() {
				fmt.Fprintf(out, "#%d\t%v\t%q\n", e.ID, e.Vector, e.Text)
			}
			return nil
		},
	}

	rootCmd.AddCommand(tuiCmd, queryCmd, chunksCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logutil.GetLogger(context.Background()).Error("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func readDocument(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return string(data), nil
}
