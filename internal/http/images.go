package http

import (
	"io"
	"net/http"

	"github.com/monospace/pagebuilder/internal/images"
)

type imageUploadFromURLPayload struct {
	URL string `json:"url"`
}

// imageView augments a catalog row with the convenience URL for the
// requested rendition.
type imageView struct {
	*images.Image
	URL string `json:"url"`
}

type imageListResponse struct {
	Images []imageView `json:"images"`
	Total  int         `json:"total"`
	Page   int         `json:"page"`
	Limit  int         `json:"limit"`
}

func (api *API) registerImageRoutes(mux *http.ServeMux, base string) {
	root := joinPath(base, "images")
	mux.HandleFunc("GET "+root, api.handleImageList)
	mux.HandleFunc("POST "+root+"/upload", api.handleImageUpload)
	mux.HandleFunc("POST "+root+"/upload-from-url", api.handleImageUploadFromURL)
	mux.HandleFunc("GET "+root+"/file/{filename}", api.handleImageFileRedirect)
	mux.HandleFunc("GET "+root+"/{id}", api.handleImageGet)
	mux.HandleFunc("DELETE "+root+"/{id}", api.handleImageDelete)
}

// preferredResolution reads the ?type= query; unknown values fall back to
// the original rendition.
func preferredResolution(r *http.Request) images.Resolution {
	if res, ok := images.ParseResolution(r.URL.Query().Get("type")); ok {
		return res
	}
	return images.ResolutionOriginal
}

func (api *API) handleImageList(w http.ResponseWriter, r *http.Request) {
	req := images.ListImagesRequest{
		Page:       parseIntQuery(r.URL.Query().Get("page"), 1),
		Limit:      parseIntQuery(r.URL.Query().Get("limit"), images.DefaultPageSize),
		Resolution: preferredResolution(r),
	}
	if r.URL.Query().Get("mine") == "true" {
		id, ok := requireActor(w, r)
		if !ok {
			return
		}
		req.UserID = &id
	}

	result, err := api.images.List(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]imageView, 0, len(result.Images))
	for _, record := range result.Images {
		views = append(views, imageView{Image: record, URL: record.URL(result.Resolution)})
	}
	writeJSON(w, http.StatusOK, imageListResponse{
		Images: views,
		Total:  result.Total,
		Page:   result.Page,
		Limit:  result.Limit,
	})
}

func (api *API) handleImageUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, api.maxUpload+(1<<20))
	if err := r.ParseMultipartForm(api.maxUpload); err != nil {
		writeError(w, &images.FileTooLargeError{Limit: api.maxUpload})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, images.ErrNoFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "could not read file"})
		return
	}

	req := images.UploadImageRequest{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}
	if id, ok := actorID(r); ok {
		req.UserID = &id
	}

	record, err := api.images.Upload(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *API) handleImageUploadFromURL(w http.ResponseWriter, r *http.Request) {
	var payload imageUploadFromURLPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}

	req := images.UploadFromURLRequest{URL: payload.URL}
	if id, ok := actorID(r); ok {
		req.UserID = &id
	}

	record, err := api.images.UploadFromURL(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// handleImageFileRedirect resolves a stored filename to the public address
// of the requested rendition and redirects there.
func (api *API) handleImageFileRedirect(w http.ResponseWriter, r *http.Request) {
	record, err := api.images.GetByFilename(r.Context(), r.PathValue("filename"))
	if err != nil {
		writeError(w, err)
		return
	}
	http.Redirect(w, r, record.URL(preferredResolution(r)), http.StatusFound)
}

func (api *API) handleImageGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	record, err := api.images.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *API) handleImageDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}
	if err := api.images.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
