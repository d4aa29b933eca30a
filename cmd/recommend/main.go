package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
	"github.com/vacayzen/product-recommendation/internal/cache"
	"github.com/vacayzen/product-recommendation/internal/config"
	"github.com/vacayzen/product-recommendation/internal/domain"
	"github.com/vacayzen/product-recommendation/internal/drive"
	"github.com/vacayzen/product-recommendation/internal/ingest"
	"github.com/vacayzen/product-recommendation/internal/pipeline/recommendation"
	"github.com/vacayzen/product-recommendation/internal/service"
	"github.com/vacayzen/product-recommendation/pkg/logger"
)

const dateLayout = "2006-01-02"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Log.Error().Err(err).Msg("recommend failed")
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "recommend",
		Usage: "Stocking recommendations from rental history",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   "console",
				Usage:   "Log format (console, json)",
				EnvVars: []string{"LOG_FORMAT"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Configure(os.Stderr, c.String("log-level"), c.String("log-format"))
			return nil
		},
		Commands: []*cli.Command{
			optionsCommand(),
			analyzeCommand(),
			driveCommand(),
			flushCacheCommand(),
		},
	}
}

func rentalsFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "rentals",
		Usage:    "Rental agreement lines (path, s3://, drive:// or sql:// URI)",
		Required: true,
		EnvVars:  []string{"RECOMMEND_RENTALS"},
	}
}

func optionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "options",
		Usage: "List product categories and the assets within them",
		Flags: []cli.Flag{
			rentalsFlag(),
			&cli.StringFlag{
				Name:  "category",
				Usage: "Only list assets of this category",
			},
		},
		Action: func(c *cli.Context) error {
			svc, resolver, cleanup, err := setup(c.Context)
			if err != nil {
				return err
			}
			defer cleanup()

			rentals, err := resolver.Resolve(ingest.TableRentals, c.String("rentals"))
			if err != nil {
				return err
			}

			opts, err := svc.Options(c.Context, rentals)
			if err != nil {
				return err
			}

			return writeOptions(c.App.Writer, opts, c.String("category"))
		},
	}
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Compute the break-even stocking level for one asset",
		Flags: []cli.Flag{
			rentalsFlag(),
			&cli.StringFlag{
				Name:    "costs",
				Usage:   "Cost per product table",
				EnvVars: []string{"RECOMMEND_COSTS"},
			},
			&cli.StringFlag{
				Name:    "inventory",
				Usage:   "Current inventory table",
				EnvVars: []string{"RECOMMEND_INVENTORY"},
			},
			&cli.StringFlag{
				Name:     "category",
				Usage:    "Product category",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "asset",
				Usage:    "Asset description",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "start",
				Usage: "First day of the window (YYYY-MM-DD, default Jan 1 of this year)",
			},
			&cli.StringFlag{
				Name:  "end",
				Usage: "Last day of the window (YYYY-MM-DD, default Dec 31 of this year)",
			},
			&cli.StringFlag{
				Name:  "rental-rate",
				Value: "0",
				Usage: "Revenue per unit per day",
			},
			&cli.StringFlag{
				Name:  "acquire-cost",
				Usage: "Override the acquisition cost from the cost table",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: "text",
				Usage: "Output format (text, json, csv)",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "Write output to a file instead of stdout",
			},
		},
		Action: func(c *cli.Context) error {
			req, err := parseRequest(c, time.Now())
			if err != nil {
				return err
			}

			svc, resolver, cleanup, err := setup(c.Context)
			if err != nil {
				return err
			}
			defer cleanup()

			var sources ingest.DatasetSources
			if sources.Rentals, err = resolver.Resolve(ingest.TableRentals, c.String("rentals")); err != nil {
				return err
			}
			if uri := c.String("costs"); uri != "" {
				if sources.Costs, err = resolver.Resolve(ingest.TableCosts, uri); err != nil {
					return err
				}
			}
			if uri := c.String("inventory"); uri != "" {
				if sources.Inventory, err = resolver.Resolve(ingest.TableInventory, uri); err != nil {
					return err
				}
			}

			analysis, err := svc.Analyze(c.Context, sources, req)
			if err != nil {
				return err
			}

			out := c.App.Writer
			if path := c.String("output"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			return writeAnalysis(out, analysis, c.String("format"))
		},
	}
}

func driveCommand() *cli.Command {
	return &cli.Command{
		Name:  "drive",
		Usage: "List Google Drive files usable as drive:// sources",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "path",
				Usage: "Folder path, e.g. Exports/2024 (default: My Drive root)",
			},
		},
		Action: func(c *cli.Context) error {
			cfg := config.Load()
			svc, err := drive.NewService(c.Context, cfg.Drive.CredentialsJSON)
			if err != nil {
				return err
			}

			folderID, err := svc.FindFolderByPath(c.Context, c.String("path"))
			if err != nil {
				return err
			}
			files, err := svc.ListFiles(c.Context, folderID)
			if err != nil {
				return err
			}

			return writeDriveFiles(c.App.Writer, files)
		},
	}
}

func flushCacheCommand() *cli.Command {
	return &cli.Command{
		Name:  "flush-cache",
		Usage: "Drop every memoized analysis from Redis",
		Action: func(c *cli.Context) error {
			cfg := config.Load()
			if !cfg.Cache.Enabled {
				fmt.Fprintln(c.App.Writer, "cache disabled, nothing to flush")
				return nil
			}

			analysisCache, err := cache.NewAnalysisCache(cfg.Cache)
			if err != nil {
				return err
			}
			if err := analysisCache.InvalidateAll(c.Context); err != nil {
				return err
			}

			logger.Log.Info().Msg("analysis cache flushed")
			return nil
		},
	}
}

func setup(ctx context.Context) (*service.RecommendationService, *ingest.Resolver, func(), error) {
	cfg := config.Load()

	resolver, cleanup, err := ingest.NewResolver(ctx, cfg, true)
	if err != nil {
		return nil, nil, cleanup, err
	}

	analysisCache, err := cache.NewAnalysisCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("analysis cache unavailable, continuing without it")
		analysisCache = cache.NewNoopAnalysisCache()
	}

	pipeline := recommendation.NewPipeline(recommendation.Config{CancelledStage: cfg.Ingest.CancelledStage})
	return service.NewRecommendationService(ingest.NewLoader(), pipeline, analysisCache), resolver, cleanup, nil
}

func parseRequest(c *cli.Context, now time.Time) (domain.AnalysisRequest, error) {
	start, end := recommendation.DefaultRange(now)
	req := domain.AnalysisRequest{
		Category: strings.TrimSpace(c.String("category")),
		Asset:    strings.TrimSpace(c.String("asset")),
		Start:    start,
		End:      end,
	}

	var err error
	if v := c.String("start"); v != "" {
		if req.Start, err = time.Parse(dateLayout, v); err != nil {
			return req, fmt.Errorf("invalid --start %q, expected YYYY-MM-DD", v)
		}
	}
	if v := c.String("end"); v != "" {
		if req.End, err = time.Parse(dateLayout, v); err != nil {
			return req, fmt.Errorf("invalid --end %q, expected YYYY-MM-DD", v)
		}
	}
	if req.RentalRate, err = decimal.NewFromString(c.String("rental-rate")); err != nil {
		return req, fmt.Errorf("invalid --rental-rate %q", c.String("rental-rate"))
	}
	if v := c.String("acquire-cost"); v != "" {
		cost, err := decimal.NewFromString(v)
		if err != nil {
			return req, fmt.Errorf("invalid --acquire-cost %q", v)
		}
		req.AcquireCost = &cost
	}

	return req, nil
}

func writeDriveFiles(w io.Writer, files []*drive.File) error {
	for _, f := range files {
		kind := "file"
		if f.IsFolder() {
			kind = "folder"
		}
		if _, err := fmt.Fprintf(w, "%-7s drive://%-36s %s\n", kind, f.ID, f.Name); err != nil {
			return err
		}
	}
	return nil
}
