// Package compiler forwards code to an execution backend and normalizes the
// response. Execution failures are communicative, not fatal: the caller is
// an interactive editor, so degraded outcomes come back as in-band statuses
// on a successful response rather than as transport errors.
package compiler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
)

// Request is one execution submission.
type Request struct {
	Code     string `json:"code"`
	Language string `json:"language"`
	Input    string `json:"input,omitempty"`
}

// Result is the normalized execution outcome.
type Result struct {
	Stdout        string `json:"stdout"`
	Stderr        string `json:"stderr"`
	CompileOutput string `json:"compile_output,omitempty"`
	Status        string `json:"status"`
	TimeMs        int64  `json:"time_ms"`
	MemoryKb      int64  `json:"memory_kb"`
	// Code carries the submitted source back on degraded outcomes so the
	// editor can keep rendering it.
	Code string `json:"code,omitempty"`
}

// Normalized status values.
const (
	StatusAccepted      = "Accepted"
	StatusRuntimeError  = "Runtime Error"
	StatusTimeLimit     = "Time Limit Exceeded"
	StatusConfigMissing = "Configuration Required"
	StatusUnavailable   = "Execution Service Unavailable"
	StatusUnsupported   = "Language Not Supported"
)

// Language describes one member of the fixed supported set.
type Language struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Judge0ID    int    `json:"judge0_id,omitempty"`
	EditorMode  string `json:"editor_mode"`
	// Markup languages are echoed back, never executed.
	Markup bool `json:"markup,omitempty"`
	// localCmd runs the source file in local mode; empty means remote-only.
	localCmd []string
}

var supported = []Language{
	{Name: "javascript", DisplayName: "JavaScript (Node.js)", Judge0ID: 63, EditorMode: "javascript", localCmd: []string{"node"}},
	{Name: "python", DisplayName: "Python 3", Judge0ID: 71, EditorMode: "python", localCmd: []string{"python3"}},
	{Name: "java", DisplayName: "Java", Judge0ID: 62, EditorMode: "java"},
	{Name: "c", DisplayName: "C (GCC)", Judge0ID: 50, EditorMode: "c_cpp"},
	{Name: "cpp", DisplayName: "C++ (GCC)", Judge0ID: 54, EditorMode: "c_cpp"},
	{Name: "html", DisplayName: "HTML", EditorMode: "html", Markup: true},
	{Name: "css", DisplayName: "CSS", EditorMode: "css", Markup: true},
}

var fileExt = map[string]string{
	"javascript": ".js",
	"python":     ".py",
	"java":       ".java",
	"c":          ".c",
	"cpp":        ".cpp",
	"html":       ".html",
	"css":        ".css",
}

// ErrUnsupportedLanguage is a caller error, not an execution outcome.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// ErrEmptyCode is returned when there is nothing to run.
var ErrEmptyCode = errors.New("code is required")

// Service dispatches executions to the configured backend.
type Service struct {
	mode      string // "local" | "remote"
	judge0URL string
	apiKey    string
	client    *http.Client
}

func New(mode, judge0URL, apiKey string) *Service {
	return &Service{
		mode:      mode,
		judge0URL: strings.TrimSuffix(judge0URL, "/"),
		apiKey:    apiKey,
		client:    &http.Client{Timeout: remoteTimeout},
	}
}

func lookup(name string) (Language, bool) {
	for _, l := range supported {
		if l.Name == name {
			return l, true
		}
	}
	return Language{}, false
}

// SupportedLanguages returns the fixed set with display metadata.
func (s *Service) SupportedLanguages() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// Execute runs one submission. A non-nil error means the request itself was
// invalid; backend trouble comes back inside the Result.
func (s *Service) Execute(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.Code) == "" {
		return Result{}, ErrEmptyCode
	}
	lang, ok := lookup(req.Language)
	if !ok {
		return Result{}, ErrUnsupportedLanguage
	}

	// Markup is a rendering artifact; echo it back untouched.
	if lang.Markup {
		return Result{Stdout: req.Code, Status: StatusAccepted}, nil
	}

	if s.mode == "local" {
		return s.executeLocal(ctx, lang, req), nil
	}
	return s.executeRemote(ctx, lang, req), nil
}

// HealthReport describes the execution backend's reachability.
type HealthReport struct {
	Mode   string `json:"mode"`
	OK     bool   `json:"ok"`
	Status string `json:"status"`
}

// HealthCheck runs a trivial known-good program through the configured path.
func (s *Service) HealthCheck(ctx context.Context) HealthReport {
	ctx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()

	res, err := s.Execute(ctx, Request{Code: `print("ok")`, Language: "python"})
	if err != nil {
		return HealthReport{Mode: s.mode, OK: false, Status: err.Error()}
	}
	return HealthReport{Mode: s.mode, OK: res.Status == StatusAccepted, Status: res.Status}
}

const (
	localTimeout  = 10 * time.Second
	remoteTimeout = 30 * time.Second
)
