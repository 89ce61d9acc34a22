/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command edmwrite renders an entity described in YAML as an Atom entry and
// optionally writes it to a configured table.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/suparena/tablestore"
	"github.com/suparena/tablestore/config"
	"github.com/suparena/tablestore/tablewriter"
)

var (
	recordFlag  = flag.String("record", "", "YAML file describing the entity (stdin when empty)")
	configFlag  = flag.String("config", "", "tablestore configuration file")
	tableFlag   = flag.String("table", "", "table to write the entity to")
	sendFlag    = flag.Bool("send", false, "insert the entity into the table instead of printing it")
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
)

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := tablestore.GetVersionInfo()
		fmt.Printf("TableStore edmwrite version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "edmwrite: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	in := os.Stdin
	if *recordFlag != "" {
		f, err := os.Open(*recordFlag)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	entity, err := loadRecord(in)
	if err != nil {
		return err
	}

	if !*sendFlag {
		out, err := render(entity, time.Now(), tablewriter.NewWriter())
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(append(out, '\n'))
		return err
	}

	if *tableFlag == "" {
		return fmt.Errorf("-table is required with -send")
	}
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	if len(cfg.Tables) == 0 {
		cfg.Tables = []config.TableConfig{{Name: *tableFlag}}
	}

	storage, err := tablestore.NewStorage(ctx, cfg)
	if err != nil {
		return err
	}
	ds, err := storage.Get(*tableFlag)
	if err != nil {
		return err
	}
	if err := ds.Insert(ctx, entity); err != nil {
		return err
	}
	cfg.Logger().Info("entity inserted", "table", *tableFlag, "pk", entity.PartitionKey(), "rk", entity.RowKey())
	return nil
}
