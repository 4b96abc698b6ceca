// Command viewsqlctl is a thin CLI over viewsql.Compiler. It never
// executes the SQL it prints; every subcommand except serve (which
// starts the httpapi server) is a façade over one compiler operation,
// consistent with the compiler's own does-not-execute-queries
// invariant.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/pivotdb/viewsql"
	"github.com/pivotdb/viewsql/httpapi"
	"github.com/pivotdb/viewsql/viewconfig"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	app := &cli.App{
		Name:  "viewsqlctl",
		Usage: "compile pivot-table view specifications to SQL",
		Commands: cli.Commands{
			{
				Name:      "tables",
				Usage:     "list every hosted table",
				ArgsUsage: " ",
				Action: func(ctx *cli.Context) error {
					return printSQL(viewsql.New().GetHostedTables())
				},
			},
			{
				Name:      "schema",
				Usage:     "print a table's schema query",
				ArgsUsage: "<table>",
				Action: func(ctx *cli.Context) error {
					table, err := requireArg(ctx, "table")
					if err != nil {
						return err
					}
					return printSQL(viewsql.New().TableSchema(table))
				},
			},
			{
				Name:      "size",
				Usage:     "print a table's row-count query",
				ArgsUsage: "<table>",
				Action: func(ctx *cli.Context) error {
					table, err := requireArg(ctx, "table")
					if err != nil {
						return err
					}
					return printSQL(viewsql.New().TableSize(table))
				},
			},
			{
				Name:      "view-schema",
				Usage:     "print a view's schema query",
				ArgsUsage: "<view>",
				Action: func(ctx *cli.Context) error {
					view, err := requireArg(ctx, "view")
					if err != nil {
						return err
					}
					return printSQL(viewsql.New().ViewSchema(view))
				},
			},
			{
				Name:      "view-size",
				Usage:     "print a view's row-count query",
				ArgsUsage: "<view>",
				Action: func(ctx *cli.Context) error {
					view, err := requireArg(ctx, "view")
					if err != nil {
						return err
					}
					return printSQL(viewsql.New().ViewSize(view))
				},
			},
			{
				Name:      "view-delete",
				Usage:     "print a view's drop query",
				ArgsUsage: "<view>",
				Action: func(ctx *cli.Context) error {
					view, err := requireArg(ctx, "view")
					if err != nil {
						return err
					}
					return printSQL(viewsql.New().ViewDelete(view))
				},
			},
			makeViewCommand(),
			getDataCommand(),
			serveCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("viewsqlctl")
	}
}

func requireArg(ctx *cli.Context, name string) (string, error) {
	v := ctx.Args().First()
	if v == "" {
		return "", fmt.Errorf("missing required argument <%s>", name)
	}
	return v, nil
}

func printSQL(sql string, err error) error {
	if err != nil {
		return err
	}
	fmt.Println(sql)
	return nil
}

func makeViewCommand() *cli.Command {
	return &cli.Command{
		Name:  "make-view",
		Usage: "compile a ViewConfig file into a CREATE ... AS (...) query",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "table", Required: true},
			&cli.StringFlag{Name: "view", Required: true},
			&cli.StringFlag{Name: "config", Required: true, Usage: "path to a YAML or JSON ViewConfig file"},
			&cli.BoolFlag{Name: "watch", Usage: "recompile and reprint whenever --config changes"},
		},
		Action: func(ctx *cli.Context) error {
			table := ctx.String("table")
			view := ctx.String("view")
			configPath := ctx.String("config")
			compiler := viewsql.New()

			compile := func() error {
				cfg, err := loadViewConfig(configPath)
				if err != nil {
					return err
				}
				if err := viewconfig.ValidateViewConfig(cfg); err != nil {
					return err
				}
				return printSQL(compiler.TableMakeView(table, view, cfg))
			}

			if err := compile(); err != nil {
				return err
			}
			if !ctx.Bool("watch") {
				return nil
			}
			return watchAndRecompile(configPath, compile)
		},
	}
}

func watchAndRecompile(path string, compile func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := compile(); err != nil {
				log.Error().Err(err).Str("config", path).Msg("recompile failed")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("watcher error")
		}
	}
}

func getDataCommand() *cli.Command {
	return &cli.Command{
		Name:  "get-data",
		Usage: "compile a view_get_data query for the given viewport",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "view", Required: true},
			&cli.StringFlag{Name: "config", Required: true, Usage: "path to a YAML or JSON ViewConfig file"},
			&cli.StringFlag{Name: "schema", Required: true, Usage: "path to a YAML or JSON list of {column, type} entries, in column order"},
			&cli.Uint64Flag{Name: "start-row"},
			&cli.Uint64Flag{Name: "end-row"},
			&cli.Uint64Flag{Name: "start-col"},
			&cli.Uint64Flag{Name: "end-col"},
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := loadViewConfig(ctx.String("config"))
			if err != nil {
				return err
			}

			schema, err := loadSchema(ctx.String("schema"))
			if err != nil {
				return err
			}

			viewport := viewconfig.ViewPort{}
			if ctx.IsSet("start-row") {
				v := ctx.Uint64("start-row")
				viewport.StartRow = &v
			}
			if ctx.IsSet("end-row") {
				v := ctx.Uint64("end-row")
				viewport.EndRow = &v
			}
			if ctx.IsSet("start-col") {
				v := ctx.Uint64("start-col")
				viewport.StartCol = &v
			}
			if ctx.IsSet("end-col") {
				v := ctx.Uint64("end-col")
				viewport.EndCol = &v
			}
			if err := viewconfig.ValidateViewPort(viewport); err != nil {
				return err
			}

			return printSQL(viewsql.New().ViewGetData(ctx.String("view"), cfg, viewport, schema))
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "start the httpapi HTTP transport",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: ":8080"},
		},
		Action: func(ctx *cli.Context) error {
			addr := ctx.String("addr")
			server := httpapi.NewServer(viewsql.New())
			log.Info().Str("addr", addr).Msg("viewsqlctl serve listening")
			return http.ListenAndServe(addr, server)
		},
	}
}

func loadViewConfig(path string) (viewconfig.ViewConfig, error) {
	var cfg viewconfig.ViewConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// schemaColumnFile is one (column, type) entry of the schema file.
// The file is a list, not a map: schema order drives view_get_data's
// default column ordering (spec.md §4.7 step 2), and a YAML/JSON map
// decode has no defined key order (Go additionally randomizes map
// iteration), so a map here would silently scramble it.
type schemaColumnFile struct {
	Column string `yaml:"column"`
	Type   string `yaml:"type"`
}

func loadSchema(path string) (*viewconfig.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", path, err)
	}

	var raw []schemaColumnFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", path, err)
	}

	schema := viewconfig.NewSchema()
	for _, col := range raw {
		schema.Set(col.Column, viewconfig.ParseColumnType(col.Type))
	}
	return schema, nil
}
