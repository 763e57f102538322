// Copyright (c) 2026 Lerian Studio. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/docstackhq/docstack/pkg/constant"

	"github.com/LerianStudio/lib-commons/v3/commons/log"
)

// Compile-time interface satisfaction check.
var _ Engine = (*SofficeEngine)(nil)

// SofficeEngine shells out to LibreOffice in headless mode. Every conversion
// runs in its own temp dir so concurrent requests never share scratch space,
// and the subprocess dies with the caller's context.
type SofficeEngine struct {
	bin     string
	timeout time.Duration
	logger  log.Logger
}

// NewSofficeEngine creates an engine around the given binary. Empty bin and
// zero timeout fall back to the defaults.
func NewSofficeEngine(bin string, timeout time.Duration, logger log.Logger) *SofficeEngine {
	if strings.TrimSpace(bin) == "" {
		bin = constant.DefaultConverterBin
	}

	if timeout <= 0 {
		timeout = constant.DefaultConverterTimeout
	}

	return &SofficeEngine{
		bin:     bin,
		timeout: timeout,
		logger:  logger,
	}
}

// Convert writes the source into an isolated work dir, runs the converter with
// a hard timeout and reads back the produced file plus any sibling assets.
// One attempt only; retry policy belongs to the caller.
func (e *SofficeEngine) Convert(ctx context.Context, src []byte, srcExt, targetExt string) (*Result, error) {
	workDir, err := os.MkdirTemp("", "docstack-convert-*")
	if err != nil {
		return nil, conversionError(constant.ErrConversionFailed, srcExt, targetExt, err)
	}

	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			e.logger.Warnf("Failed to remove conversion work dir %s: %v", workDir, err)
		}
	}()

	inputName := "source" + srcExt

	inputPath := filepath.Join(workDir, inputName)
	if err := os.WriteFile(inputPath, src, constant.ArtifactFilePermissions); err != nil {
		return nil, conversionError(constant.ErrConversionFailed, srcExt, targetExt, err)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	target := strings.TrimPrefix(targetExt, ".")

	cmd := exec.CommandContext(ctxTimeout, e.bin,
		"--headless",
		"--norestore",
		"--convert-to", target,
		"--outdir", workDir,
		inputPath,
	)
	// LibreOffice insists on a writable profile dir; point it inside the work dir.
	cmd.Env = append(os.Environ(), "HOME="+workDir)

	started := time.Now()

	output, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(ctxTimeout.Err(), context.DeadlineExceeded) {
			e.logger.Errorf("Conversion %s -> %s timed out after %v", srcExt, targetExt, e.timeout)

			return nil, conversionError(constant.ErrConversionTimeout, srcExt, targetExt, ctxTimeout.Err())
		}

		e.logger.Errorf("Converter failed (%s -> %s): %v: %s", srcExt, targetExt, err, string(output))

		return nil, conversionError(constant.ErrConversionFailed, srcExt, targetExt, fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err))
	}

	outputName := "source" + targetExt

	data, err := os.ReadFile(filepath.Join(workDir, outputName))
	if err != nil {
		return nil, conversionError(constant.ErrConversionFailed, srcExt, targetExt, fmt.Errorf("converter produced no output: %w", err))
	}

	assets, err := e.collectAssets(workDir, inputName, outputName)
	if err != nil {
		return nil, conversionError(constant.ErrConversionFailed, srcExt, targetExt, err)
	}

	e.logger.Infof("Converted %s -> %s in %v (%d bytes, %d assets)", srcExt, targetExt, time.Since(started), len(data), len(assets))

	return &Result{Data: data, Assets: assets}, nil
}

// collectAssets reads every regular file the converter left in the work dir
// besides the input and the primary output. HTML conversions extract embedded
// images this way.
func (e *SofficeEngine) collectAssets(workDir, inputName, outputName string) (map[string][]byte, error) {
	entries, err := os.ReadDir(workDir)
	if err != nil {
		return nil, err
	}

	assets := make(map[string][]byte)

	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == inputName || entry.Name() == outputName {
			continue
		}

		// Profile leftovers from the scratch HOME are not conversion output.
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(workDir, entry.Name()))
		if err != nil {
			return nil, err
		}

		assets[entry.Name()] = content
	}

	return assets, nil
}
