package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/goliatone/go-formbind/pkg/builders"
	"github.com/goliatone/go-formbind/pkg/config"
	"github.com/goliatone/go-formbind/pkg/native/prompt"
	"github.com/goliatone/go-formbind/pkg/schemafield"
)

func main() {
	source := flag.String("schema", "schema.json", "JSON schema or OpenAPI document path")
	name := flag.String("name", "", "component schema or operation ID inside an OpenAPI document")
	attempts := flag.Int("attempts", 0, "maximum attempts per invalid field (0 asks until valid)")
	labels := flag.String("labels", "", "message code prefix used to translate labels")
	verbose := flag.Bool("verbose", false, "log debug output to stderr")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	defaults, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to read configuration: %v", err)
	}
	settings, err := defaults.Settings(logger)
	if err != nil {
		log.Fatalf("Failed to prepare settings: %v", err)
	}

	schema, err := schemafield.LoadFile(ctx, *source, *name)
	if err != nil {
		log.Fatalf("Failed to load schema: %v", err)
	}

	opts := []schemafield.Option{
		schemafield.WithBuilderOptions(builders.WithSettings(settings)),
		schemafield.WithLogger(logger),
		schemafield.WithFormatValidation(),
	}
	if *labels != "" {
		opts = append(opts, schemafield.WithLabelCodes(*labels))
	}
	group, err := schemafield.New(prompt.NewFactory(), opts...).Build(schema)
	if err != nil {
		log.Fatalf("Failed to build form: %v", err)
	}

	err = prompt.Fill(ctx, prompt.NewSurveyDriver(), group,
		prompt.WithMaxAttempts(*attempts),
		prompt.WithLogger(logger),
	)
	if errors.Is(err, prompt.ErrAborted) {
		fmt.Fprintln(os.Stderr, "aborted")
		os.Exit(130)
	}
	if err != nil {
		log.Fatalf("Failed to fill form: %v", err)
	}

	out, err := json.MarshalIndent(group.Values(), "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode values: %v", err)
	}
	fmt.Println(string(out))
}
