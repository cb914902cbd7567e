package main

import (
	"encoding/json"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/sirupsen/logrus"

	"github.com/alihamza/reedit-backend/pkg/logutils"
	"github.com/alihamza/reedit-backend/pkg/models"
	"github.com/alihamza/reedit-backend/pkg/synth"
)

var args struct {
	File     string `arg:"positional,required" help:"JSON file with the edited payment record"`
	Output   string `arg:"-o,--output" default:"receipt.png"`
	Template string `arg:"-t,--template" default:"jazzcash"`
	LogLevel string `arg:"--log-level,env:LOG_LEVEL" default:"info"`
}

var log = logrus.StandardLogger()

func main() {
	arg.MustParse(&args)
	logutils.SetupLogger(args.LogLevel)

	data, err := os.ReadFile(args.File)
	if err != nil {
		log.Fatalf("read file: %v", err)
	}

	var req models.SynthesisRequest
	if err := json.Unmarshal(data, &req); err != nil {
		log.Fatalf("parse record: %v", err)
	}
	if req.Template == "" {
		req.Template = args.Template
	}

	img, err := synth.Render(req)
	if err != nil {
		log.Fatalf("render receipt: %v", err)
	}

	if err := os.WriteFile(args.Output, img, 0644); err != nil {
		log.Fatalf("write output: %v", err)
	}
	log.Infof("wrote %s (%d bytes)", args.Output, len(img))
}
