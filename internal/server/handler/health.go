// Package handler holds the HTTP handlers for the public API surface.
package handler

import (
	"net/http"

	"github.com/vyrlabs/vyr/internal/version"
	"github.com/vyrlabs/vyr/internal/xhttp"
)

func HandleHealth(w http.ResponseWriter, _ *http.Request) {
	xhttp.WriteOK(w, map[string]string{
		"status":  "ok",
		"version": version.Get(),
	})
}
