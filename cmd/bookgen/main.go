// Command bookgen computes an opening book for Connect Four and writes
// it to a file in the compact binary record format internal/book reads.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/connect4go/connect4-go/internal/book"
	"github.com/connect4go/connect4-go/internal/bookgen"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "connect4-bookgen",
		Short: "Generate a Connect Four opening book",
	}
	root.AddCommand(newGenerateCmd())
	return root
}

func newGenerateCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compute a book of the given depth and write it to disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), v)
		},
	}

	flags := cmd.Flags()
	flags.Int("depth", 6, "maximum number of plies from the empty board to score")
	flags.String("out", "opening-book-6.bin", "output path for the generated book")
	flags.Int("table-size", 0, "transposition table size per worker (0 = engine default)")
	flags.String("log-level", "info", "zerolog level: debug, info, warn, error")

	v.SetEnvPrefix("connect4")
	v.AutomaticEnv()
	_ = v.BindPFlags(flags)

	return cmd
}

func runGenerate(ctx context.Context, v *viper.Viper) error {
	level, err := zerolog.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	logger := zerolog.New(zerolog.NewConsoleWriter()).
		Level(level).
		With().Timestamp().Logger()

	depth := v.GetInt("depth")
	out := v.GetString("out")
	tableSize := v.GetInt("table-size")

	logger.Info().
		Int("depth", depth).
		Str("out", out).
		Msg("generating book")

	start := time.Now()
	b, err := bookgen.Generate(ctx, bookgen.Config{
		Depth:     depth,
		TableSize: tableSize,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("generate book: %w", err)
	}

	if err := book.Save(out, b.Entries()); err != nil {
		return fmt.Errorf("save book: %w", err)
	}

	logger.Info().
		Int("positions", b.Len()).
		Dur("elapsed", time.Since(start)).
		Str("out", out).
		Msg("book written")
	return nil
}
