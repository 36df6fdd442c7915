package handlers

import (
	"bytes"
	"net/http"
)

// ResumePDF serves the configured résumé document.
func ResumePDF(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	if resumeDoc == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="`+resumeDoc.Name+`"`)
	http.ServeContent(w, r, resumeDoc.Name, resumeDoc.ModTime, bytes.NewReader(resumeDoc.Data))
}

// ResumeText serves the plain text extracted from the résumé.
func ResumeText(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	if resumeDoc == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(resumeDoc.Text))
}
