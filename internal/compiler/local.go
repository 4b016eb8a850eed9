package compiler

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// executeLocal writes the source to a uniquely named scratch file, runs the
// matching interpreter under a hard deadline and removes the scratch file on
// every exit path.
func (s *Service) executeLocal(ctx context.Context, lang Language, req Request) Result {
	if len(lang.localCmd) == 0 {
		return Result{
			Status: StatusUnsupported,
			Stderr: lang.DisplayName + " is not available for local execution",
			Code:   req.Code,
		}
	}

	scratch := filepath.Join(os.TempDir(), "exec-"+uuid.NewString()+fileExt[lang.Name])
	if err := os.WriteFile(scratch, []byte(req.Code), 0o600); err != nil {
		return Result{Status: StatusUnavailable, Stderr: "scratch file: " + err.Error(), Code: req.Code}
	}
	defer os.Remove(scratch)

	ctx, cancel := context.WithTimeout(ctx, localTimeout)
	defer cancel()

	args := append(append([]string{}, lang.localCmd[1:]...), scratch)
	cmd := exec.CommandContext(ctx, lang.localCmd[0], args...)
	cmd.Stdin = strings.NewReader(req.Input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
		TimeMs: elapsed.Milliseconds(),
	}
	switch {
	case ctx.Err() != nil && errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.Status = StatusTimeLimit
	case err != nil:
		res.Status = StatusRuntimeError
		if res.Stderr == "" {
			res.Stderr = err.Error()
		}
	default:
		res.Status = StatusAccepted
	}
	return res
}
