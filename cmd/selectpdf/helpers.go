package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/gabriel-vasile/mimetype"
	"github.com/goccy/go-yaml"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	client "github.com/hsn0918/selectpdf-client"
)

// clientOptions turns the resolved CLI settings into library options. A
// non-nil limiter is shared by every client built from the result.
func clientOptions(opts *cliOptions, limiter *rate.Limiter) []client.Option {
	options := []client.Option{
		client.WithBaseURL(opts.baseURL),
		client.WithTimeout(opts.timeout),
		client.WithPollInterval(opts.pollInterval),
		client.WithMaxPolls(opts.maxPolls),
		client.WithLogger(opts.logger),
	}
	if limiter != nil {
		options = append(options, client.WithLimiter(limiter))
	}
	return options
}

func resolveAPIKey(opts *cliOptions) (string, error) {
	if opts.apiKey != "" {
		return opts.apiKey, nil
	}
	return "", errors.New("api key is required (flag --api-key or SELECTPDF_API_KEY)")
}

// customParameterSetter is implemented by every endpoint client.
type customParameterSetter interface {
	SetCustomParameter(name, value string)
}

// loadParams reads a YAML map of raw API parameters. Keys are returned sorted
// so requests are built the same way on every run.
func loadParams(path string) ([]param, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read params file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse params file %s: %w", path, err)
	}

	params := make([]param, 0, len(raw))
	for name, value := range raw {
		params = append(params, param{name: name, value: paramValue(value)})
	}
	sort.Slice(params, func(i, j int) bool { return params[i].name < params[j].name })
	return params, nil
}

type param struct {
	name  string
	value string
}

func paramValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case bool:
		return client.FormatBool(t)
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func applyParams(target customParameterSetter, params []param) {
	for _, p := range params {
		target.SetCustomParameter(p.name, p.value)
	}
}

// checkPDF rejects local inputs whose content is not a PDF document.
func checkPDF(path string) error {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("detect type of %s: %w", path, err)
	}
	if !mtype.Is("application/pdf") {
		return fmt.Errorf("%s is not a pdf (detected %s)", path, mtype.String())
	}
	return nil
}

func isRemote(input string) bool {
	lower := strings.ToLower(input)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func writeJSON(w io.Writer, data any) error {
	content, err := sonic.ConfigStd.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	content = append(content, '\n')
	_, err = w.Write(content)
	return err
}

// writeJSONFile writes data to path, or to w when path is empty.
func writeJSONFile(w io.Writer, path string, data any) error {
	if path == "" {
		return writeJSON(w, data)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()
	return writeJSON(f, data)
}

func changeExt(name, ext string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return base + ext
}

// fail records err in the fail log and returns it, joined with any error
// from writing the log itself.
func fail(opts *cliOptions, jobID, target string, err error) error {
	opts.logger.Error("task failed", zap.String("target", target), zap.String("job-id", jobID), zap.Error(err))
	if logErr := logFailure(opts.failLogPath, jobID, target, err); logErr != nil {
		return fmt.Errorf("%w; also failed to write fail log: %v", err, logErr)
	}
	return err
}
