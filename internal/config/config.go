package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v2"
)

// DataConfig is the data: block of an experiment file. It is the full
// configuration surface of the preparation pipeline; unknown keys are
// rejected at load time instead of being forwarded anywhere.
type DataConfig struct {
	CSVDataset string `yaml:"csv_dataset"`
	CSVTrain   string `yaml:"csv_train"`
	CSVTest    string `yaml:"csv_test"`
	CSVVal     string `yaml:"csv_val"`

	SizeTrain float64 `yaml:"size_train"`
	SizeTest  float64 `yaml:"size_test"`
	SizeVal   float64 `yaml:"size_val"`

	// NRows bounds acquisition; 0 downloads the full corpus.
	NRows int `yaml:"nrows"`
	// MaxSentenceSize bounds the length filter; 0 disables it.
	MaxSentenceSize int  `yaml:"max_sentence_size"`
	DropNA          bool `yaml:"drop_na"`

	// SourceURL overrides the default corpus location when set.
	SourceURL string `yaml:"source_url"`
}

func (c DataConfig) Validate() error {
	for name, path := range map[string]string{
		"csv_dataset": c.CSVDataset,
		"csv_train":   c.CSVTrain,
		"csv_test":    c.CSVTest,
		"csv_val":     c.CSVVal,
	} {
		if path == "" {
			return fmt.Errorf("missing %s in data config", name)
		}
	}
	for name, size := range map[string]float64{
		"size_train": c.SizeTrain,
		"size_test":  c.SizeTest,
		"size_val":   c.SizeVal,
	} {
		if size < 0 || size > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %v", name, size)
		}
	}
	if c.NRows < 0 {
		return fmt.Errorf("nrows must not be negative, got %d", c.NRows)
	}
	if c.MaxSentenceSize < 0 {
		return fmt.Errorf("max_sentence_size must not be negative, got %d", c.MaxSentenceSize)
	}
	return nil
}

// Experiment is the root of an experiment yaml file.
type Experiment struct {
	Data DataConfig `yaml:"data"`
}

func LoadExperiment(path string) (*Experiment, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading experiment config %s: %w", path, err)
	}

	var exp Experiment
	if err := yaml.UnmarshalStrict(raw, &exp); err != nil {
		return nil, fmt.Errorf("parsing experiment config %s: %w", path, err)
	}
	if err := exp.Data.Validate(); err != nil {
		return nil, fmt.Errorf("invalid experiment config %s: %w", path, err)
	}

	return &exp, nil
}

// Runtime is the environment-backed configuration: storage endpoint and
// credentials, bucket, optional run database and split seed.
type Runtime struct {
	S3EndpointURL     string `env:"S3_ENDPOINT_URL"`
	S3AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	S3Region          string `env:"AWS_REGION" envDefault:"us-east-1"`

	CorpusBucketName string `env:"CORPUS_BUCKET_NAME" envDefault:"corpus"`

	// LocalStorageDir selects the directory-backed store when non-empty.
	LocalStorageDir string `env:"LOCAL_STORAGE_DIR"`

	// DatabasePath enables run recording when non-empty.
	DatabasePath string `env:"DATABASE_PATH"`

	Seed int64 `env:"SEED" envDefault:"42"`
}

func LoadRuntime() (*Runtime, error) {
	var cfg Runtime
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}
	return &cfg, nil
}
