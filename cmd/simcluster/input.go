package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/katalvlaran/simcluster/config"
	"github.com/katalvlaran/simcluster/engine"
)

// readRequest loads one request from path ("-" is stdin).
//
// A bare array of records takes every setting from cfg. A request object
// keeps its own non-zero values and borrows the rest from cfg. Threshold is
// kept whenever the key is present, so an explicit 0 survives.
func readRequest(stdin io.Reader, path string, cfg *config.Config) (engine.Request, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return engine.Request{}, fmt.Errorf("read input: %w", err)
	}

	req, err := engine.ParseRequest(data)
	if err != nil {
		return engine.Request{}, err
	}
	base := cfg.Request(req.Characters)
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		return base, nil
	}

	var head struct {
		Threshold *float64 `json:"threshold"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return engine.Request{}, fmt.Errorf("%w: %v", engine.ErrBadRequest, err)
	}

	base.ID = req.ID
	if head.Threshold != nil {
		base.Threshold = *head.Threshold
	}
	if req.Method != "" {
		base.Method = req.Method
	}
	if len(req.Fields) > 0 {
		base.Fields = req.Fields
	}
	if req.Mode != "" {
		base.Mode = req.Mode
	}
	if req.Count > 0 {
		base.Count = req.Count
	}
	if req.SearchDepth > 0 {
		base.SearchDepth = req.SearchDepth
	}

	return base, nil
}

// inputs returns the files named on the command line, stdin when none.
func inputs(args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{"-"}, nil
	}
	stdin := 0
	for _, a := range args {
		if a == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return nil, fmt.Errorf("stdin can be read only once")
	}

	return args, nil
}
