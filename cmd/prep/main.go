package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"corpusprep/cmd"
	"corpusprep/internal/config"
	"corpusprep/internal/core"
	"corpusprep/internal/corpus"
	"corpusprep/internal/database"
	"corpusprep/internal/storage"
)

// Exit codes of the prep command.
const (
	ExitOK        = 0
	ExitIOFailure = 1
	ExitBadConfig = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		usage()
		return ExitBadConfig
	}

	switch args[0] {
	case "dataprep":
		return runDataPrep(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		usage()
		return ExitBadConfig
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: prep dataprep -config <file> [-env <file>] [-seed <n>]")
}

func runDataPrep(args []string) int {
	fs := flag.NewFlagSet("dataprep", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to the experiment yaml file")
	envPath := fs.String("env", "", "path to load env from")
	seed := fs.Int64("seed", 0, "override the split seed")
	if err := fs.Parse(args); err != nil {
		return ExitBadConfig
	}
	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "dataprep: -config is required")
		return ExitBadConfig
	}

	cmd.LoadEnvFile(*envPath)

	runtime, err := config.LoadRuntime()
	if err != nil {
		log.Printf("invalid environment config: %v", err)
		return ExitBadConfig
	}
	if *seed != 0 {
		runtime.Seed = *seed
	}

	exp, err := config.LoadExperiment(*configPath)
	if err != nil {
		log.Printf("invalid experiment config: %v", err)
		return ExitBadConfig
	}

	store, err := newObjectStore(runtime)
	if err != nil {
		log.Printf("failed to initialize object store: %v", err)
		return ExitIOFailure
	}

	prep := &core.DataPrep{
		Store:   store,
		Fetcher: corpus.NewFetcher(store),
		Rng:     rand.New(rand.NewSource(runtime.Seed)),
		Bucket:  runtime.CorpusBucketName,
	}

	if runtime.DatabasePath != "" {
		db, err := database.NewDatabase(runtime.DatabasePath)
		if err != nil {
			log.Printf("failed to open run database: %v", err)
			return ExitIOFailure
		}
		prep.DB = db
	}

	log.Println("Running Data Preparation.")
	if err := prep.Run(context.Background(), exp.Data); err != nil {
		if errors.Is(err, core.ErrInvalidSplitSize) {
			log.Printf("invalid split configuration: %v", err)
			return ExitBadConfig
		}
		log.Printf("data preparation failed: %v", err)
		return ExitIOFailure
	}

	log.Println("Data preparation complete.")
	return ExitOK
}

func newObjectStore(cfg *config.Runtime) (storage.ObjectStore, error) {
	if cfg.LocalStorageDir != "" {
		return storage.NewLocalProvider(cfg.LocalStorageDir), nil
	}
	return storage.NewS3Provider(&storage.S3ProviderConfig{
		S3EndpointURL:     cfg.S3EndpointURL,
		S3AccessKeyID:     cfg.S3AccessKeyID,
		S3SecretAccessKey: cfg.S3SecretAccessKey,
		S3Region:          cfg.S3Region,
	})
}
