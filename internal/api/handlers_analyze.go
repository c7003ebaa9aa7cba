package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dgallion1/codementor/internal/analysis"
	"github.com/dgallion1/codementor/internal/parser"
	"github.com/dgallion1/codementor/internal/source"
)

const multipartMemory = 32 << 20

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	if err := parseForm(r); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			jsonError(w, fmt.Sprintf("request exceeds max size (%d bytes)", tooBig.Limit), http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	codeFile, err := readUpload(r, "code_file")
	if err != nil {
		jsonError(w, "failed to read code_file: "+err.Error(), http.StatusBadRequest)
		return
	}
	docsFile, err := readUpload(r, "docs_file")
	if err != nil {
		jsonError(w, "failed to read docs_file: "+err.Error(), http.StatusBadRequest)
		return
	}
	if docsFile != nil && !parser.IsSupportedExtension(docsFile.Name) {
		s.log.Warn("docs_file skipped", "filename", docsFile.Name, "reason", "unsupported file type")
		docsFile = nil
	}

	req := analysis.Request{
		Input:    source.Bundle{Code: r.FormValue("code"), File: codeFile},
		Docs:     r.FormValue("docs"),
		DocsFile: docsFile,
		OldCode:  r.FormValue("old_code"),
		Question: r.FormValue("question"),
	}

	// Calls run to completion even if the client goes away.
	result, err := s.analyzer.Analyze(context.WithoutCancel(r.Context()), req)
	switch {
	case errors.Is(err, analysis.ErrNoCode):
		jsonError(w, "No code detected.", http.StatusBadRequest)
		return
	case err != nil:
		s.log.Error("analyze failed", "error", err)
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, result)
}

// parseForm accepts both multipart and urlencoded bodies.
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(multipartMemory)
	if err == nil || errors.Is(err, http.ErrNotMultipart) {
		return nil
	}
	return err
}

// readUpload returns the named file part, or nil when it was not sent.
func readUpload(r *http.Request, field string) (*source.File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	f, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", header.Filename, err)
	}
	return &source.File{Name: header.Filename, Data: data}, nil
}
