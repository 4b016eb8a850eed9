package compiler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteValidation(t *testing.T) {
	s := New("remote", "http://example.invalid", "key")

	_, err := s.Execute(context.Background(), Request{Code: "  ", Language: "python"})
	assert.ErrorIs(t, err, ErrEmptyCode)

	_, err = s.Execute(context.Background(), Request{Code: "x", Language: "brainfuck"})
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestMarkupIsEchoedNotExecuted(t *testing.T) {
	// Point at a server that fails the test if contacted.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("markup must not reach the execution backend")
	}))
	defer srv.Close()
	s := New("remote", srv.URL, "key")

	for _, lang := range []string{"html", "css"} {
		res, err := s.Execute(context.Background(), Request{Code: "<b>&</b>", Language: lang})
		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, res.Status)
		assert.Equal(t, "<b>&</b>", res.Stdout)
	}
}

func TestRemoteMissingCredentials(t *testing.T) {
	for _, key := range []string{"", "changeme", "your-api-key"} {
		s := New("remote", "http://example.invalid", key)
		res, err := s.Execute(context.Background(), Request{Code: "print(1)", Language: "python"})
		require.NoError(t, err)
		assert.Equal(t, StatusConfigMissing, res.Status)
		assert.Equal(t, "print(1)", res.Code)
	}
}

func TestRemoteSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret", r.Header.Get("X-RapidAPI-Key"))

		var sub judge0Submission
		require.NoError(t, json.NewDecoder(r.Body).Decode(&sub))
		assert.Equal(t, 71, sub.LanguageID)

		stdout := "hello\n"
		tm := "0.021"
		mem := int64(3188)
		_ = json.NewEncoder(w).Encode(judge0Response{
			Stdout: &stdout,
			Time:   &tm,
			Memory: &mem,
			Status: struct {
				ID          int    `json:"id"`
				Description string `json:"description"`
			}{ID: 3, Description: "Accepted"},
		})
	}))
	defer srv.Close()

	s := New("remote", srv.URL, "secret")
	res, err := s.Execute(context.Background(), Request{Code: `print("hello")`, Language: "python"})
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, res.Status)
	assert.Equal(t, "hello\n", res.Stdout)
	assert.Equal(t, int64(21), res.TimeMs)
	assert.Equal(t, int64(3188), res.MemoryKb)
}

func TestRemoteDegradedOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		want       string
	}{
		{"rate limited", http.StatusTooManyRequests, StatusUnavailable},
		{"bad credentials", http.StatusUnauthorized, StatusConfigMissing},
		{"server error", http.StatusBadGateway, StatusUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer srv.Close()

			s := New("remote", srv.URL, "secret")
			res, err := s.Execute(context.Background(), Request{Code: "print(1)", Language: "python"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Status)
			assert.Equal(t, "print(1)", res.Code)
			assert.NotEmpty(t, res.Stderr)
		})
	}
}

func TestRemoteUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	s := New("remote", srv.URL, "secret")
	res, err := s.Execute(context.Background(), Request{Code: "print(1)", Language: "python"})
	require.NoError(t, err)
	assert.Equal(t, StatusUnavailable, res.Status)
	assert.Equal(t, "print(1)", res.Code)
}

func TestLocalRemoteOnlyLanguage(t *testing.T) {
	s := New("local", "", "")
	res, err := s.Execute(context.Background(), Request{Code: "int main(){}", Language: "c"})
	require.NoError(t, err)
	assert.Equal(t, StatusUnsupported, res.Status)
	assert.Equal(t, "int main(){}", res.Code)
}

func TestSupportedLanguages(t *testing.T) {
	s := New("remote", "", "")
	langs := s.SupportedLanguages()
	require.Len(t, langs, 7)

	byName := map[string]Language{}
	for _, l := range langs {
		byName[l.Name] = l
	}
	assert.True(t, byName["html"].Markup)
	assert.True(t, byName["css"].Markup)
	assert.Equal(t, 71, byName["python"].Judge0ID)
	assert.Equal(t, 63, byName["javascript"].Judge0ID)
}
