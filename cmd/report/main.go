// backend-go/cmd/report/main.go
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sellora/salesboard/backend-go/internal/config"
	"github.com/sellora/salesboard/backend-go/internal/domain"
	"github.com/sellora/salesboard/backend-go/internal/mapping"
	"github.com/sellora/salesboard/backend-go/internal/period"
	"github.com/sellora/salesboard/backend-go/internal/service"
	"github.com/sellora/salesboard/backend-go/internal/sheets"
	"github.com/urfave/cli/v2"
)

func periodFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "period",
			Usage: "Named period token (today, this-week, this-month, last-3-months, all, custom, ...)",
			Value: "this-month",
		},
		&cli.StringFlag{
			Name:  "start",
			Usage: "Custom period start (2006-01-02), requires --period custom",
		},
		&cli.StringFlag{
			Name:  "end",
			Usage: "Custom period end (2006-01-02), requires --period custom",
		},
		&cli.BoolFlag{
			Name:  "compare",
			Usage: "Include growth vs the comparable previous period",
		},
	}
}

func newService() (*service.DashboardService, error) {
	cfg := config.Load()

	source, err := sheets.NewSource(cfg.Sheets)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets source: %w", err)
	}

	store := mapping.NewStore(nil)
	calculator := period.NewCalculator(cfg.DataEpochTime(), nil)
	return service.NewDashboardService(source, store, calculator, nil, cfg.Dashboard), nil
}

func parseQuery(c *cli.Context) (service.PeriodQuery, error) {
	return service.ParsePeriodQuery(
		c.String("period"),
		c.String("start"),
		c.String("end"),
		c.Bool("compare"),
	)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "report",
		Usage: "Dump dashboard views as JSON for cron and debugging",
		Commands: []*cli.Command{
			{
				Name:  "summary",
				Usage: "Period totals, channel breakdown and optional growth",
				Flags: periodFlags(),
				Action: func(c *cli.Context) error {
					svc, err := newService()
					if err != nil {
						return err
					}
					q, err := parseQuery(c)
					if err != nil {
						return err
					}
					summary, err := svc.Summary(c.Context, q)
					if err != nil {
						return err
					}
					return printJSON(summary)
				},
			},
			{
				Name:  "products",
				Usage: "Per-product rollups with margin and commission",
				Flags: periodFlags(),
				Action: func(c *cli.Context) error {
					svc, err := newService()
					if err != nil {
						return err
					}
					q, err := parseQuery(c)
					if err != nil {
						return err
					}
					products, err := svc.Products(c.Context, q)
					if err != nil {
						return err
					}
					return printJSON(products)
				},
			},
			{
				Name:  "series",
				Usage: "Dense time-bucketed sales series",
				Flags: append(periodFlags(),
					&cli.StringFlag{
						Name:  "granularity",
						Usage: "Bucket width: day, week or month",
						Value: "day",
					},
				),
				Action: func(c *cli.Context) error {
					svc, err := newService()
					if err != nil {
						return err
					}
					q, err := parseQuery(c)
					if err != nil {
						return err
					}
					buckets, err := svc.Series(c.Context, q, domain.Granularity(c.String("granularity")))
					if err != nil {
						return err
					}
					return printJSON(buckets)
				},
			},
			{
				Name:  "cohorts",
				Usage: "Repurchase cohort statistics",
				Flags: periodFlags(),
				Action: func(c *cli.Context) error {
					svc, err := newService()
					if err != nil {
						return err
					}
					q, err := parseQuery(c)
					if err != nil {
						return err
					}
					cohorts, err := svc.Cohorts(c.Context, q)
					if err != nil {
						return err
					}
					return printJSON(cohorts)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
