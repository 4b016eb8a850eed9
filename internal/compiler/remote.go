package compiler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

type judge0Submission struct {
	SourceCode string `json:"source_code"`
	LanguageID int    `json:"language_id"`
	Stdin      string `json:"stdin,omitempty"`
}

type judge0Response struct {
	Stdout        *string `json:"stdout"`
	Stderr        *string `json:"stderr"`
	CompileOutput *string `json:"compile_output"`
	Time          *string `json:"time"`   // seconds, decimal string
	Memory        *int64  `json:"memory"` // kilobytes
	Status        struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"status"`
}

func (s *Service) configured() bool {
	key := strings.TrimSpace(s.apiKey)
	return key != "" && !strings.HasPrefix(key, "changeme") && key != "your-api-key"
}

// executeRemote forwards the submission to Judge0. Upstream trouble —
// timeouts, rate limits, auth failures — is reported in-band with the
// original code attached, never as a transport error.
func (s *Service) executeRemote(ctx context.Context, lang Language, req Request) Result {
	if !s.configured() {
		return Result{
			Status: StatusConfigMissing,
			Stderr: "execution service credentials are not configured",
			Code:   req.Code,
		}
	}

	body, err := json.Marshal(judge0Submission{
		SourceCode: req.Code,
		LanguageID: lang.Judge0ID,
		Stdin:      req.Input,
	})
	if err != nil {
		return Result{Status: StatusUnavailable, Stderr: err.Error(), Code: req.Code}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.judge0URL+"/submissions?base64_encoded=false&wait=true", bytes.NewReader(body))
	if err != nil {
		return Result{Status: StatusUnavailable, Stderr: err.Error(), Code: req.Code}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-RapidAPI-Key", s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return Result{
			Status: StatusUnavailable,
			Stderr: "execution service unreachable: " + err.Error(),
			Code:   req.Code,
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return Result{Status: StatusUnavailable, Stderr: "execution service rate limit exceeded", Code: req.Code}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return Result{Status: StatusConfigMissing, Stderr: "execution service rejected credentials", Code: req.Code}
	case resp.StatusCode >= 400:
		return Result{Status: StatusUnavailable, Stderr: "execution service error: " + resp.Status, Code: req.Code}
	}

	var j judge0Response
	if err := json.NewDecoder(resp.Body).Decode(&j); err != nil {
		return Result{Status: StatusUnavailable, Stderr: "malformed execution response", Code: req.Code}
	}

	res := Result{Status: j.Status.Description}
	if res.Status == "" {
		res.Status = StatusUnavailable
	}
	if j.Stdout != nil {
		res.Stdout = *j.Stdout
	}
	if j.Stderr != nil {
		res.Stderr = *j.Stderr
	}
	if j.CompileOutput != nil {
		res.CompileOutput = *j.CompileOutput
	}
	if j.Time != nil {
		if secs, err := strconv.ParseFloat(*j.Time, 64); err == nil {
			res.TimeMs = int64(secs * 1000)
		}
	}
	if j.Memory != nil {
		res.MemoryKb = *j.Memory
	}
	return res
}
