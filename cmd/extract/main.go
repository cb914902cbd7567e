package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/alihamza/reedit-backend/pkg/cli"
	"github.com/alihamza/reedit-backend/pkg/extractor"
	"github.com/alihamza/reedit-backend/pkg/logutils"
	"github.com/alihamza/reedit-backend/pkg/ocr"
	"github.com/alihamza/reedit-backend/pkg/preprocess"
	"github.com/alihamza/reedit-backend/pkg/vision"
)

var args struct {
	File              string   `arg:"positional,required" help:"Image file to extract fields from"`
	GeminiApiKey      string   `arg:"--gemini-api-key,env:GEMINI_API_KEY"`
	GeminiModel       string   `arg:"--gemini-model,env:GEMINI_MODEL"`
	LogLevel          string   `arg:"--log-level,env:LOG_LEVEL" default:"warn"`
	PreprocessProfile string   `arg:"--preprocess-profile" default:"contrast"`
	TessLanguages     []string `arg:"--tesseract-lang"`
}

var log = logrus.StandardLogger()

func main() {
	_ = godotenv.Load()
	arg.MustParse(&args)
	if err := cli.FillKeychainValues(&args); err != nil {
		log.Fatalf("fill keychain values: %v", err)
	}
	logutils.SetupLogger(args.LogLevel)

	data, err := os.ReadFile(args.File)
	if err != nil {
		log.Fatalf("read file: %v", err)
	}

	visionClient, err := vision.New(args.GeminiApiKey, args.GeminiModel)
	if err != nil {
		log.Fatalf("create vision client: %v", err)
	}

	ext := extractor.New(extractor.Config{
		Vision:  visionClient,
		Engine:  &ocr.TesseractEngine{Languages: args.TessLanguages},
		Profile: preprocess.Profile(args.PreprocessProfile),
	})

	result := ext.Extract(context.Background(), data, http.DetectContentType(data))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatalf("encode result: %v", err)
	}
}
