package endpoints

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/fantasy-forge/forge-api/pkg/server"
	"github.com/fantasy-forge/forge-api/pkg/server/middleware"
	"github.com/fantasy-forge/forge-api/pkg/server/store"
)

// ImageResponse is one element of the image listing.
type ImageResponse struct {
	Filename string `json:"filename"`
}

// RegisterImagesEndpoints registers the /image endpoints. Any authenticated
// principal may read images; there is no ownership concept for files.
func RegisterImagesEndpoints(s *server.Server, auth *middleware.Authenticator) {
	images := s.ImagesStore

	imageRouter := s.Router.PathPrefix("/image").Subrouter()
	imageRouter.Use(auth.Middleware)

	imageRouter.HandleFunc("/", handleListImages(images)).Methods("GET")
	imageRouter.HandleFunc("/{filename}", handleGetImage(images)).Methods("GET")
}

func handleListImages(images store.ImagesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		files, err := images.ListImages()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list images")
			return
		}

		response := make([]ImageResponse, 0, len(files))
		for _, f := range files {
			response = append(response, ImageResponse{Filename: f})
		}
		respondWithJSON(w, http.StatusOK, response)
	}
}

func handleGetImage(images store.ImagesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// The router matches on the encoded path, so the var needs a
		// decode before it names a file.
		filename, err := url.PathUnescape(mux.Vars(r)["filename"])
		if err != nil {
			respondWithError(w, http.StatusNotFound, "Image not found")
			return
		}

		rc, err := images.OpenImage(filename)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondWithError(w, http.StatusNotFound, "Image not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to open image")
			return
		}
		defer rc.Close()

		w.Header().Set("Content-Type", "image/png")
		_, _ = io.Copy(w, rc)
	}
}
