package main

import (
	"fmt"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/spf13/cobra"

	"arrowview/adapters/arrowfile"
	"arrowview/app"
	"arrowview/internal"
	"arrowview/internal/config"
	"arrowview/internal/container"
	"arrowview/internal/errors"
	"arrowview/internal/render"
	"arrowview/internal/testkit"
)

// settings are the flags shared by every view command
type settings struct {
	workers   int
	width     int
	quantile  string
	precision int
	xlsx      string
	sheet     string
	logLevel  string
}

func (s *settings) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.IntVar(&s.workers, "workers", 0, "Columns described in parallel (default: number of CPUs)")
	flags.IntVar(&s.width, "width", 0, "Terminal width override (default: detect, 80 when not a terminal)")
	flags.StringVar(&s.quantile, "quantile", "", "Quantile interpolation: linear|nearest (default linear)")
	flags.IntVar(&s.precision, "precision", 0, "Decimal places for describe values (default 3)")
	flags.StringVar(&s.xlsx, "xlsx", "", "Also write the reports to this .xlsx workbook")
	flags.StringVar(&s.sheet, "sheet", "", "Worksheet to read from .xlsx inputs (default: first)")
	flags.StringVar(&s.logLevel, "log-level", "", "ERROR|WARN|INFO|DEBUG|TRACE (default from LOG_LEVEL, WARN)")
}

// load reads the environment and applies the flags that were set
func (s *settings) load(cmd *cobra.Command) (*config.Config, *internal.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Describe.Workers = s.workers
	}
	if flags.Changed("width") {
		cfg.Terminal.Width = s.width
	}
	if flags.Changed("quantile") {
		cfg.Describe.Quantile = strings.ToLower(s.quantile)
	}
	if flags.Changed("precision") {
		cfg.Describe.Precision = s.precision
	}
	if flags.Changed("sheet") {
		cfg.View.Sheet = s.sheet
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = s.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, err
	}

	level, ok := internal.ParseLogLevel(cfg.Log.Level)
	if !ok {
		return nil, nil, errors.ConfigInvalid(fmt.Sprintf("unknown log level %q", cfg.Log.Level))
	}
	return cfg, internal.NewLoggerTo(cmd.ErrOrStderr(), level), nil
}

func newRootCmd() *cobra.Command {
	s := &settings{}
	var headRows int
	var describe, info bool

	cmd := &cobra.Command{
		Use:   "arrowview [flags] FILE",
		Short: "Preview Arrow, Parquet and CSV table files",
		Long: `Print the first rows, a field summary, or descriptive statistics of a table file.

Views print in the order info, head, describe. Without a view flag the first
rows are shown (ARROWVIEW_HEAD_ROWS, default 5).

Inputs: Arrow IPC file or stream, Parquet, CSV and .xlsx; any of them may
be zstd compressed with a .zst suffix.

Example: arrowview --info --describe --head=10 --workers 4 orders.arrow`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, logger, err := s.load(cmd)
			if err != nil {
				return err
			}

			req := app.ViewRequest{
				Path:       args[0],
				Info:       info,
				Describe:   describe,
				Head:       cmd.Flags().Changed("head"),
				HeadRows:   headRows,
				ExportPath: s.xlsx,
			}
			if req.Head && headRows < 0 {
				return errors.InvalidInput("--head must be non-negative")
			}
			if !req.Info && !req.Head && !req.Describe {
				req.Head = true
				req.HeadRows = cfg.View.HeadRows
			}
			return runView(cmd, cfg, logger, req)
		},
	}

	s.register(cmd)
	// -h belongs to --head, so --help is declared first without a shorthand
	cmd.Flags().Bool("help", false, "help for arrowview")
	cmd.Flags().IntVarP(&headRows, "head", "h", 5, "Print the first N rows (--head alone prints 5; use --head=N or -h=N)")
	cmd.Flags().Lookup("head").NoOptDefVal = "5"
	cmd.Flags().BoolVarP(&describe, "describe", "d", false, "Print descriptive statistics of numeric columns")
	cmd.Flags().BoolVarP(&info, "info", "i", false, "Print fields, non-null counts and types")

	cmd.AddCommand(
		newHeadCmd(s),
		newInfoCmd(s),
		newDescribeCmd(s),
		newConvertCmd(s),
		newSampleCmd(s),
	)
	return cmd
}

func newHeadCmd(s *settings) *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "head FILE",
		Short: "Print the first rows of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, logger, err := s.load(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("rows") {
				rows = cfg.View.HeadRows
			}
			return runView(cmd, cfg, logger, app.ViewRequest{Path: args[0], Head: true, HeadRows: rows, ExportPath: s.xlsx})
		},
	}
	cmd.Flags().IntVarP(&rows, "rows", "n", 5, "Number of rows")
	return cmd
}

func newInfoCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Print fields, non-null counts and types",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, logger, err := s.load(cmd)
			if err != nil {
				return err
			}
			return runView(cmd, cfg, logger, app.ViewRequest{Path: args[0], Info: true, ExportPath: s.xlsx})
		},
	}
}

func newDescribeCmd(s *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "describe FILE",
		Short: "Print count, mean, std and quartiles of numeric columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, logger, err := s.load(cmd)
			if err != nil {
				return err
			}
			return runView(cmd, cfg, logger, app.ViewRequest{Path: args[0], Describe: true, ExportPath: s.xlsx})
		},
	}
}

func newConvertCmd(s *settings) *cobra.Command {
	var compression string

	cmd := &cobra.Command{
		Use:   "convert SRC DST",
		Short: "Re-encode a table file",
		Long: `Read SRC in any supported input format and write DST.

The output format follows the DST extension: .parquet, .arrows for an Arrow
IPC stream, anything else an Arrow IPC file. A trailing .zst compresses the
whole file, e.g. orders.parquet.zst.

Example: arrowview convert orders.csv orders.arrow --compress zstd`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, logger, err := s.load(cmd)
			if err != nil {
				return err
			}
			c, err := container.New(cfg, logger)
			if err != nil {
				return err
			}
			rows, err := c.Converter(compression).Convert(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", rows, args[1])
			return nil
		},
	}
	cmd.Flags().StringVar(&compression, "compress", arrowfile.CompressionNone, "Body compression: none|zstd|lz4")
	return cmd
}

func newSampleCmd(s *settings) *cobra.Command {
	var compression string
	gen := testkit.DefaultShoppingConfig()

	cmd := &cobra.Command{
		Use:   "sample DST",
		Short: "Write a synthetic orders table for trying the viewer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			_, logger, err := s.load(cmd)
			if err != nil {
				return err
			}

			mem := memory.DefaultAllocator
			tbl, err := testkit.NewShoppingDataGenerator(gen).GenerateTable(mem)
			if err != nil {
				return errors.WithCode(errors.CodeInvalidInput, err)
			}
			defer tbl.Release()

			if err := arrowfile.Write(args[0], tbl, arrowfile.WriteOptions{Compression: compression, Allocator: mem}); err != nil {
				return err
			}
			logger.Info("sample: %d rows in batches of %d (seed %d)", gen.Rows, gen.BatchSize, gen.Seed)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d rows to %s\n", tbl.NumRows(), args[0])
			return nil
		},
	}
	cmd.Flags().IntVar(&gen.Rows, "rows", gen.Rows, "Number of orders")
	cmd.Flags().IntVar(&gen.BatchSize, "batch-size", gen.BatchSize, "Rows per record batch")
	cmd.Flags().Int64Var(&gen.Seed, "seed", gen.Seed, "Random seed for deterministic output")
	cmd.Flags().StringVar(&compression, "compress", arrowfile.CompressionNone, "Body compression: none|zstd|lz4")
	return cmd
}

// runView builds every report first and prints only when all succeeded
func runView(cmd *cobra.Command, cfg *config.Config, logger *internal.Logger, req app.ViewRequest) error {
	c, err := container.New(cfg, logger)
	if err != nil {
		return err
	}

	res, err := c.Viewer.View(cmd.Context(), req)
	if err != nil {
		return err
	}
	logger.Debug("%s: %d reports in %dms", req.Path, len(res.Tables), res.RuntimeMs)

	width := render.TerminalWidth(cfg.Terminal.Width)
	return render.NewRenderer(cmd.OutOrStdout(), width).RenderAll(res.Tables)
}
