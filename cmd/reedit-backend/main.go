package main

import (
	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	backend "github.com/alihamza/reedit-backend"
	"github.com/alihamza/reedit-backend/pkg/cli"
	"github.com/alihamza/reedit-backend/pkg/extractor"
	"github.com/alihamza/reedit-backend/pkg/logutils"
	"github.com/alihamza/reedit-backend/pkg/ocr"
	"github.com/alihamza/reedit-backend/pkg/preprocess"
	"github.com/alihamza/reedit-backend/pkg/storage/fs"
	"github.com/alihamza/reedit-backend/pkg/storage/model"
	"github.com/alihamza/reedit-backend/pkg/vision"
)

var args struct {
	ArchivePath       string   `arg:"--archive-path,env:ARCHIVE_PATH" help:"Directory where uploaded and generated images are archived (optional)"`
	GeminiApiKey      string   `arg:"--gemini-api-key,env:GEMINI_API_KEY" help:"API key for the vision service - empty disables the vision path"`
	GeminiModel       string   `arg:"--gemini-model,env:GEMINI_MODEL" help:"Vision model name"`
	ListenAddr        string   `arg:"-L,--listen-addr" default:"127.0.0.1:8085"`
	LogLevel          string   `arg:"--log-level,env:LOG_LEVEL" default:"info"`
	PreprocessProfile string   `arg:"--preprocess-profile,env:PREPROCESS_PROFILE" default:"contrast" help:"Preprocessing profile: contrast or denoise"`
	TessLanguages     []string `arg:"--tesseract-lang" help:"Languages passed to Tesseract"`
}

var log = logrus.StandardLogger()

func main() {
	_ = godotenv.Load()
	arg.MustParse(&args)
	if err := cli.FillKeychainValues(&args); err != nil {
		log.Fatalf("fill keychain values: %v", err)
	}
	logutils.SetupLogger(args.LogLevel)

	visionClient, err := vision.New(args.GeminiApiKey, args.GeminiModel)
	if err != nil {
		log.Fatalf("create vision client: %v", err)
	}
	if visionClient.Available() {
		log.Infof("vision service configured")
	} else {
		log.Warnf("vision service not configured, text recognition only")
	}

	ext := extractor.New(extractor.Config{
		Vision:  visionClient,
		Engine:  &ocr.TesseractEngine{Languages: args.TessLanguages},
		Profile: preprocess.Profile(args.PreprocessProfile),
	})

	var archive model.RWStorage
	if args.ArchivePath != "" {
		archive, err = fs.New(args.ArchivePath)
		if err != nil {
			log.Fatalf("create archive storage: %v", err)
		}
	}

	s := backend.New(ext, archive)
	if err := s.Run(args.ListenAddr); err != nil {
		log.Fatalf("listen: %v", err)
	}
}
